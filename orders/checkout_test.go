package orders

import (
	"context"
	"errors"
	"testing"

	"storefront/cart"
	"storefront/catalog"
	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapFetcher(products map[string]models.Product) cart.ProductFetcher {
	return func(_ context.Context, id string) (models.Product, error) {
		p, ok := products[id]
		if !ok {
			return models.Product{}, catalog.ErrProductNotFound
		}
		return p, nil
	}
}

func checkoutProducts() map[string]models.Product {
	return map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Widget", Price: 10.00, Stock: 5, IsActive: true},
		"p2": {ProductID: "p2", Name: "Gadget", Price: 4.50, Stock: 2, IsActive: true},
		"p3": {ProductID: "p3", Name: "Retired", Price: 1.00, Stock: 9, IsActive: false},
	}
}

func TestBuildOrderLinesTotalsAndSnapshots(t *testing.T) {
	fetch := mapFetcher(checkoutProducts())

	lines, total, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 2},
	}, fetch)

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 3*10.00+2*4.50, total)

	// Each line freezes the catalog price and name at submission time.
	assert.Equal(t, models.OrderItem{ProductID: "p1", Name: "Widget", Quantity: 3, Price: 10.00}, lines[0])
	assert.Equal(t, models.OrderItem{ProductID: "p2", Name: "Gadget", Quantity: 2, Price: 4.50}, lines[1])

	// The total matches the sum of the persisted line extensions.
	var extensions float64
	for _, l := range lines {
		extensions += l.Price * float64(l.Quantity)
	}
	assert.Equal(t, extensions, total)
}

func TestBuildOrderLinesMissingProductFailsWhole(t *testing.T) {
	fetch := mapFetcher(checkoutProducts())

	lines, total, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	}, fetch)

	assert.ErrorIs(t, err, catalog.ErrProductUnavailable)
	assert.Contains(t, err.Error(), "ghost")
	assert.Nil(t, lines)
	assert.Zero(t, total)
}

func TestBuildOrderLinesInactiveProductFailsWhole(t *testing.T) {
	fetch := mapFetcher(checkoutProducts())

	_, _, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p3", Quantity: 1},
	}, fetch)

	assert.ErrorIs(t, err, catalog.ErrProductUnavailable)
	assert.Contains(t, err.Error(), "p3")
}

func TestBuildOrderLinesOverstockFailsWhole(t *testing.T) {
	fetch := mapFetcher(checkoutProducts())

	lines, total, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	}, fetch)

	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Gadget")
	assert.Nil(t, lines)
	assert.Zero(t, total)
}

func TestBuildOrderLinesRejectsNonPositiveQuantity(t *testing.T) {
	fetch := mapFetcher(checkoutProducts())

	_, _, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p1", Quantity: 0},
	}, fetch)
	assert.ErrorIs(t, err, errInvalidQuantity)
}

// A failing catalog lookup is not the shopper's fault and must not surface
// as a product-unavailable rejection.
func TestBuildOrderLinesSurfacesLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	fetch := func(context.Context, string) (models.Product, error) {
		return models.Product{}, boom
	}

	_, _, err := buildOrderLines(context.Background(), []ItemRequest{
		{ProductID: "p1", Quantity: 1},
	}, fetch)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, catalog.ErrProductUnavailable)
}

// Stock 5 at 10.00: buying 3 succeeds with total 30.00; after stock drops
// to 2 a second request for 3 is rejected.
func TestBuildOrderLinesSequentialPurchases(t *testing.T) {
	products := checkoutProducts()
	fetch := mapFetcher(products)
	ctx := context.Background()

	lines, total, err := buildOrderLines(ctx, []ItemRequest{{ProductID: "p1", Quantity: 3}}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 30.00, total)
	assert.Equal(t, 3, lines[0].Quantity)

	p := products["p1"]
	p.Stock -= 3
	products["p1"] = p

	_, _, err = buildOrderLines(ctx, []ItemRequest{{ProductID: "p1", Quantity: 3}}, fetch)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
}
