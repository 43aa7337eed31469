//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Cache:    config.CacheConfig{Size: 100, TTL: time.Minute},
		Carriers: config.CarrierConfig{RefreshInterval: time.Minute},
		Log:      config.LogConfig{Level: "error"},
		Packing:  config.PackingConfig{PlacerTimeout: time.Second, MaxItems: 50},
	}
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestInitializeApp_WithoutDatabase(t *testing.T) {
	a := InitializeApp(testConfig())
	t.Cleanup(func() { a.Close(context.Background()) })

	require.NotNil(t, a.Router)
	assert.Nil(t, a.Database)
	assert.Nil(t, a.Routes.AuditLogger)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "liveness", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "readiness", method: http.MethodGet, path: "/readyz", wantStatus: http.StatusOK},
		{name: "default containers", method: http.MethodGet, path: "/api/containers", wantStatus: http.StatusOK, wantBody: `"source":"defaults"`},
		{
			name:       "manual items pack",
			method:     http.MethodPost,
			path:       "/api/pack",
			body:       `{"items":[{"name":"Card Case","length_cm":10,"width_cm":7,"height_cm":2,"weight_g":25,"quantity":2}]}`,
			wantStatus: http.StatusOK,
			wantBody:   `"outcome":"packed"`,
		},
		{
			name:       "cart needs the catalog",
			method:     http.MethodPost,
			path:       "/api/pack/cart",
			body:       `{"items":[{"product_id":1,"quantity":1}]}`,
			wantStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(a.Router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestInitializeApp_MaxItems(t *testing.T) {
	cfg := testConfig()
	cfg.Packing.MaxItems = 3
	a := InitializeApp(cfg)
	t.Cleanup(func() { a.Close(context.Background()) })

	w := serve(a.Router, http.MethodPost, "/api/pack", `{"items":[{"name":"badge","length_cm":5,"width_cm":5,"height_cm":1,"quantity":4}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "3")
}

func TestInitializeServices(t *testing.T) {
	t.Run("configured containers replace the defaults", func(t *testing.T) {
		cfg := testConfig()
		cfg.Packing.Containers = []packing.Container{{Name: "tube", Length: 600, Width: 80, Height: 80}}

		s := InitializeServices(cfg)

		assert.Equal(t, cfg.Packing.Containers, s.Engine.Containers())
	})

	t.Run("built-in containers otherwise", func(t *testing.T) {
		s := InitializeServices(testConfig())

		assert.Equal(t, packing.DefaultContainers(), s.Engine.Containers())
	})

	t.Run("calculator packs through the layer placer", func(t *testing.T) {
		s := InitializeServices(testConfig())
		items := []packing.Item{
			{Name: "coaster", LengthCm: 10, WidthCm: 10, HeightCm: 2},
			{Name: "coaster", LengthCm: 10, WidthCm: 10, HeightCm: 2},
		}

		res, err := s.Calculator.Pack(context.Background(), items, nil)

		require.NoError(t, err)
		assert.Equal(t, packing.OutcomePacked, res.Outcome)
		assert.Len(t, res.Placements, 2)
	})
}

func TestInitializeLogger(t *testing.T) {
	InitializeLogger(config.LogConfig{Level: "debug"})
	assert.Equal(t, "debug", zerolog.GlobalLevel().String())

	InitializeLogger(config.LogConfig{Level: "error"})
	assert.Equal(t, "error", zerolog.GlobalLevel().String())
}
