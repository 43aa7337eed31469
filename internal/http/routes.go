package http

import "github.com/gin-gonic/gin"

// RouteGroup registers a set of API routes.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}
