package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/catalog"
	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapFetcher serves products from a plain map, standing in for the catalog.
func mapFetcher(products map[string]models.Product) ProductFetcher {
	return func(_ context.Context, id string) (models.Product, error) {
		p, ok := products[id]
		if !ok {
			return models.Product{}, catalog.ErrProductNotFound
		}
		return p, nil
	}
}

func testProducts() map[string]models.Product {
	return map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Widget", Price: 10.00, Stock: 5, IsActive: true},
		"p2": {ProductID: "p2", Name: "Gadget", Price: 4.50, Stock: 2, IsActive: true},
		"p3": {ProductID: "p3", Name: "Retired", Price: 1.00, Stock: 9, IsActive: false},
	}
}

func TestViewLazilyCreatesEmptyCart(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))

	view := store.View(context.Background(), "s1")
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
	assert.Equal(t, "s1", view.SessionID)
}

func TestAddCapturesPriceAndRecomputesTotal(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 3))
	require.NoError(t, store.Add(ctx, "s1", "p2", 2))

	view := store.View(ctx, "s1")
	require.Len(t, view.Items, 2)
	assert.Equal(t, 10.00, view.Items[0].Price)
	assert.Equal(t, 3*10.00+2*4.50, view.Total)
}

func TestAddRejectsMissingInactiveAndOverstock(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	err := store.Add(ctx, "s1", "nope", 1)
	assert.ErrorIs(t, err, catalog.ErrProductUnavailable)

	err = store.Add(ctx, "s1", "p3", 1)
	assert.ErrorIs(t, err, catalog.ErrProductUnavailable)

	err = store.Add(ctx, "s1", "p2", 3)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	assert.Empty(t, store.View(ctx, "s1").Items)
}

func TestAddMergeIncrementsWithoutCombinedStockCheck(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	// Each increment is within stock (5), but the merged quantity is not.
	require.NoError(t, store.Add(ctx, "s1", "p1", 3))
	require.NoError(t, store.Add(ctx, "s1", "p1", 4))

	view := store.View(ctx, "s1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, 7, view.Items[0].Quantity)
}

func TestUpdateRevalidatesStock(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))

	err := store.Update(ctx, "s1", "p1", 9)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	require.NoError(t, store.Update(ctx, "s1", "p1", 5))
	assert.Equal(t, 5, store.View(ctx, "s1").Items[0].Quantity)
}

func TestUpdateToZeroRemovesLine(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))
	require.NoError(t, store.Update(ctx, "s1", "p1", 0))

	assert.Empty(t, store.View(ctx, "s1").Items)
}

func TestUpdateMissingLineFails(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))

	err := store.Update(context.Background(), "s1", "p1", 1)
	assert.Error(t, err)
}

func TestViewDropsDeletedProducts(t *testing.T) {
	products := testProducts()
	store := NewStore(mapFetcher(products))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 1))
	require.NoError(t, store.Add(ctx, "s1", "p2", 1))

	delete(products, "p2")

	view := store.View(ctx, "s1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
	assert.Equal(t, 10.00, view.Total)
}

// A lookup failure that is not a missing product must not empty the cart:
// once the catalog recovers the lines are still there.
func TestViewKeepsLinesWhenLookupFails(t *testing.T) {
	healthy := mapFetcher(testProducts())
	failing := false
	store := NewStore(func(ctx context.Context, id string) (models.Product, error) {
		if failing {
			return models.Product{}, errors.New("connection reset")
		}
		return healthy(ctx, id)
	})
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))

	failing = true
	view := store.View(ctx, "s1")
	require.Len(t, view.Items, 1)

	failing = false
	view = store.View(ctx, "s1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
	assert.Equal(t, 20.00, view.Total)
}

func TestAddSurfacesLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	store := NewStore(func(context.Context, string) (models.Product, error) {
		return models.Product{}, boom
	})

	err := store.Add(context.Background(), "s1", "p1", 1)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, catalog.ErrProductUnavailable)
}

func TestRemoveAndClear(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 1))
	require.NoError(t, store.Add(ctx, "s1", "p2", 1))

	store.Remove("s1", "p1")
	require.Len(t, store.View(ctx, "s1").Items, 1)

	store.Clear("s1")
	assert.Empty(t, store.View(ctx, "s1").Items)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore(mapFetcher(testProducts()))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "alice", "p1", 1))
	require.NoError(t, store.Add(ctx, "bob", "p2", 2))

	assert.Len(t, store.View(ctx, "alice").Items, 1)
	assert.Equal(t, "p2", store.View(ctx, "bob").Items[0].ProductID)
}
