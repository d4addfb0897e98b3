package catalog

import (
	"errors"
	"testing"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProductFilterAlwaysActiveOnly(t *testing.T) {
	filter := buildProductFilter(map[string]string{})
	assert.Equal(t, bson.M{"isActive": true}, filter)
}

func TestBuildProductFilterCategoryAndSearch(t *testing.T) {
	filter := buildProductFilter(map[string]string{
		"category": "c42",
		"search":   "widget",
	})

	assert.Equal(t, "c42", filter["categoryId"])

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter := buildProductFilter(map[string]string{
		"minPrice": "5",
		"maxPrice": "25.5",
	})

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 5.0, price["$gte"])
	assert.Equal(t, 25.5, price["$lte"])
}

func TestBuildProductFilterIgnoresBadPrices(t *testing.T) {
	filter := buildProductFilter(map[string]string{
		"minPrice": "cheap",
	})
	_, ok := filter["price"]
	assert.False(t, ok)
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		sort  string
		field string
		dir   int
	}{
		{"newest", "createdAt", -1},
		{"price-low", "price", 1},
		{"price-high", "price", -1},
		{"name", "name", 1},
		{"rating", "rating", -1},
		{"", "createdAt", -1},
		{"bogus", "createdAt", -1},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			spec := sortSpec(tt.sort)
			require.Len(t, spec, 1)
			assert.Equal(t, tt.field, spec[0].Key)
			assert.Equal(t, tt.dir, spec[0].Value)
		})
	}
}

// Deactivated products must look deleted on the public detail endpoint.
func TestProductVisible(t *testing.T) {
	active := models.Product{ProductID: "p1", IsActive: true}
	inactive := models.Product{ProductID: "p2", IsActive: false}

	assert.True(t, productVisible(active, nil))
	assert.False(t, productVisible(inactive, nil))
	assert.False(t, productVisible(models.Product{}, ErrProductNotFound))
	assert.False(t, productVisible(active, errors.New("connection reset")))
}
