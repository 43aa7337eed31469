//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/internal/circuitbreaker"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/guttosm/parcel-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_parcel_service")
	require.NoError(t, err)

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "products",
	})
	products := repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), cb)
	carriers := repository.NewCarrierRepositoryWithCircuitBreaker(
		repository.NewCarrierRepository(db),
		circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, Name: "carriers"}),
	)

	t.Run("healthy database keeps circuits closed", func(t *testing.T) {
		require.NoError(t, repository.Seed(ctx, products, carriers))

		found, err := products.FindByIDs(ctx, []int{1, 2})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.True(t, cb.GetStats().IsHealthy)
	})

	t.Run("disconnected client opens the circuit", func(t *testing.T) {
		require.NoError(t, db.Close(ctx))

		for i := 0; i < 2; i++ {
			_, err := products.FindByIDs(ctx, []int{1})
			require.Error(t, err)
		}
		assert.True(t, cb.IsOpen())

		_, err := products.FindByIDs(ctx, []int{1})
		assert.ErrorIs(t, err, repository.ErrCatalogUnavailable)
	})

	t.Run("open carrier circuit yields no carriers", func(t *testing.T) {
		_, err := carriers.FindAll(ctx)
		require.Error(t, err)

		found, err := carriers.FindAll(ctx)
		assert.NoError(t, err)
		assert.Empty(t, found)
	})
}
