package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Prometheus scrapes
// negotiate their own encoding, so /metrics is left alone.
func Compression(excludedPaths ...string) gin.HandlerFunc {
	excluded := append([]string{"/metrics"}, excludedPaths...)
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excluded))
}
