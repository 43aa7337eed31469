//go:build integration

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := testConfig()
	cfg.Database = databaseConfig(t)

	a := InitializeApp(cfg)
	require.NotNil(t, a.Database)
	t.Cleanup(func() { a.Close(ctx) })

	w := serve(a.Router, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)

	w = serve(a.Router, http.MethodPost, "/api/pack/cart", `{"items":[{"product_id":6,"quantity":2},{"product_id":8,"quantity":1}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"outcome":"packed"`)

	w = serve(a.Router, http.MethodGet, "/api/containers", "")
	assert.Contains(t, w.Body.String(), `"source":"carriers"`)

	// Stopping the routes flushes the async audit logger.
	a.Routes.Stop()

	entries, err := a.Database.LoggingService.QueryLogs(ctx, model.LogQueryOptions{ActionType: model.ActionCart})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].RequestID)
	assert.Equal(t, "packed", entries[0].Fields["outcome"])

	n, err := a.Database.LoggingService.CountLogs(ctx, model.LogQueryOptions{Path: "/api/pack/cart"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
}
