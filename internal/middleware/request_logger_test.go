//go:build !integration

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		path      string
		status    int
		err       error
		wantLevel string
		persisted bool
	}{
		{name: "success", path: "/api/pack", status: http.StatusOK, wantLevel: "info", persisted: true},
		{name: "client error", path: "/api/pack/cart", status: http.StatusBadRequest, wantLevel: "warn", persisted: true},
		{name: "server error", path: "/api/pack", status: http.StatusInternalServerError, err: errors.New("boom"), wantLevel: "error", persisted: true},
		{name: "health probe", path: "/healthz", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{}
			sink := NewAsyncLogger(w, quietConfig())

			router := gin.New()
			router.Use(RequestID(), RequestLogger(sink))
			router.GET(tt.path, func(c *gin.Context) {
				if tt.err != nil {
					_ = c.Error(tt.err)
				}
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(RequestIDHeader, "req-9")
			router.ServeHTTP(httptest.NewRecorder(), req)
			sink.Stop()

			entries := w.entries()
			if !tt.persisted {
				assert.Empty(t, entries)
				return
			}
			require.Len(t, entries, 1)
			e := entries[0]
			assert.Equal(t, "req-9", e.RequestID)
			assert.Equal(t, tt.path, e.Path)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.wantLevel, e.Level)
			if tt.err != nil {
				assert.Equal(t, "boom", e.Error)
			}
		})
	}
}

func TestRequestLogger_NilSink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil)) })
	assert.Equal(t, http.StatusOK, w.Code)
}
