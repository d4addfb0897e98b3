package catalog

import (
	"context"
	"net/http"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.CategoryCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding categories")
		return
	}
	if len(categories) == 0 {
		categories = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var category models.Category
	err := db.CategoryCollection.FindOne(r.Context(), bson.M{"categoryid": ps.ByName("categoryid")}).Decode(&category)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, category)
}

// GetCategoryProducts lists the active products in one category, paginated.
func GetCategoryProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")
	if err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	filter := bson.M{"isActive": true, "categoryId": categoryID}

	opts := options.Find().
		SetSort(sortSpec(r.URL.Query().Get("sort"))).
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
