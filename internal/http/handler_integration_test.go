//go:build integration

package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/packing/layer"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/guttosm/parcel-service/internal/service"
	"github.com/guttosm/parcel-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })

	products := repository.NewProductRepository(db)
	carriers := repository.NewCarrierRepository(db)
	require.NoError(t, repository.Seed(ctx, products, carriers))

	engine := packing.New(packing.WithPlacer(layer.New()))
	h := NewHandler(
		service.NewParcelCalculatorService(engine),
		service.NewContainerService(carriers, packing.DefaultContainers(), 0),
		service.NewCatalogService(products),
	)
	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))
	return NewRouter(h, health, DefaultRouterConfig())
}

func TestHandler_Integration(t *testing.T) {
	router := seededRouter(t)

	t.Run("readiness sees mongo", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/readyz", "").Code)
	})

	t.Run("cart of hobby goods fits a flat parcel", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/pack/cart", `{"items":[{"product_id":6,"quantity":1},{"product_id":7,"quantity":1}]}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := decodeData[dto.CartResponse](t, w)
		assert.Equal(t, packing.OutcomePacked, res.Result.Outcome)
		assert.Len(t, res.Items, 2)
		assert.Len(t, res.Result.Placements, 2)
		assert.LessOrEqual(t, res.Result.Dimensions.HeightCm, 3.0)
	})

	t.Run("unknown product", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/pack/cart", `{"items":[{"product_id":404,"quantity":1}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "404", decodeError(t, w).Details["product_ids"])
	})

	t.Run("containers come from carriers", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/containers", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"source":"carriers"`)
		assert.Contains(t, w.Body.String(), "Yamato Nekoposu")
	})

	t.Run("products by category", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/products?category=books", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":2`)
	})
}
