package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "/api/products", 0, 10},
		{"explicit page and limit", "/api/products?page=3&limit=20", 40, 20},
		{"limit capped", "/api/products?limit=500", 0, 100},
		{"garbage falls back", "/api/products?page=x&limit=-2", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			skip, limit := ParsePagination(r, 10, 100)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestRegexFilter(t *testing.T) {
	filter := RegexFilter("name", "wid")
	inner, ok := filter["name"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "wid", inner["$regex"])
	assert.Equal(t, "i", inner["$options"])
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(10)
	assert.Len(t, s, 10)
	assert.NotEqual(t, s, GenerateRandomString(10))
}

func TestGetUUID(t *testing.T) {
	_, err := uuid.Parse(GetUUID())
	assert.NoError(t, err)
}
