package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildProductFilter translates listing query parameters into a Mongo
// filter. Only active products are ever visible on the public surface.
func buildProductFilter(q map[string]string) bson.M {
	filter := bson.M{"isActive": true}

	if cat := q["category"]; cat != "" {
		filter["categoryId"] = cat
	}
	if search := q["search"]; search != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", search),
			utils.RegexFilter("description", search),
		}
	}

	price := bson.M{}
	if min := q["minPrice"]; min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			price["$gte"] = v
		}
	}
	if max := q["maxPrice"]; max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			price["$lte"] = v
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// sortSpec maps the public sort keys onto Mongo sort documents. Unknown
// keys fall back to newest-first.
func sortSpec(sort string) bson.D {
	switch sort {
	case "price-low":
		return bson.D{{Key: "price", Value: 1}}
	case "price-high":
		return bson.D{{Key: "price", Value: -1}}
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "rating":
		return bson.D{{Key: "rating", Value: -1}}
	default: // "newest"
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)

	q := r.URL.Query()
	params := map[string]string{
		"category": q.Get("category"),
		"search":   q.Get("search"),
		"minPrice": q.Get("minPrice"),
		"maxPrice": q.Get("maxPrice"),
	}
	filter := buildProductFilter(params)

	opts := options.Find().
		SetSort(sortSpec(q.Get("sort"))).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding products")
		return
	}
	if len(products) == 0 {
		products = []models.Product{}
	}

	total, _ := db.ProductCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products": products,
		"total":    total,
		"page":     skip/limit + 1,
		"limit":    limit,
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	product, err := FetchProduct(r.Context(), ps.ByName("productid"))
	if !productVisible(product, err) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// productVisible reports whether a lookup result may be shown on the public
// detail endpoint. Deactivated products stay loadable internally but are
// indistinguishable from deleted ones to shoppers.
func productVisible(product models.Product, err error) bool {
	return err == nil && product.IsActive
}

// FetchProduct loads one product by id, active or not. Used by the cart and
// checkout components for stock validation as well as the public detail
// endpoint.
func FetchProduct(ctx context.Context, productID string) (models.Product, error) {
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return product, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return product, err
}
