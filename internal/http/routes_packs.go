package http

import "github.com/gin-gonic/gin"

// PackRoutes mounts the packing endpoints.
type PackRoutes struct {
	handler *Handler
}

// NewPackRoutes creates the packing route group.
func NewPackRoutes(handler *Handler) *PackRoutes {
	return &PackRoutes{handler: handler}
}

// RegisterRoutes mounts POST /pack, /pack/fit and /pack/cart.
func (r *PackRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	pack := rg.Group("/pack")
	pack.POST("", r.handler.Pack)
	pack.POST("/fit", r.handler.Fit)
	pack.POST("/cart", r.handler.PackCart)
}

// CatalogRoutes mounts the read-only catalog endpoints.
type CatalogRoutes struct {
	handler *Handler
}

// NewCatalogRoutes creates the catalog route group.
func NewCatalogRoutes(handler *Handler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterRoutes mounts GET /products, /products/categories and /containers.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", r.handler.Products)
	rg.GET("/products/categories", r.handler.Categories)
	rg.GET("/containers", r.handler.Containers)
}
