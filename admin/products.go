package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// productInput carries the admin-writable product fields. IsActive defaults
// to true on create when omitted.
type productInput struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Images        []string          `json:"images"`
	Price         float64           `json:"price"`
	OriginalPrice float64           `json:"originalPrice"`
	Discount      float64           `json:"discount"`
	Rating        float64           `json:"rating"`
	ReviewCount   int               `json:"reviewCount"`
	Stock         int               `json:"stock"`
	Specs         map[string]string `json:"specs"`
	CategoryID    string            `json:"categoryId"`
	IsActive      *bool             `json:"isActive"`
}

func validateProductInput(in productInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required"
	}
	if in.Price < 0.01 {
		fields["price"] = "Price must be at least 0.01"
	}
	if in.Discount < 0 || in.Discount > 100 {
		fields["discount"] = "Discount must be between 0 and 100"
	}
	if in.Rating < 0 || in.Rating > 5 {
		fields["rating"] = "Rating must be between 0 and 5"
	}
	if in.ReviewCount < 0 {
		fields["reviewCount"] = "Review count must not be negative"
	}
	if in.Stock < 0 {
		fields["stock"] = "Stock must not be negative"
	}
	return fields
}

func categoryExists(ctx context.Context, categoryID string) bool {
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": categoryID}).Err()
	return err == nil
}

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if fields := validateProductInput(input); len(fields) > 0 {
		utils.RespondWithValidationError(w, fields)
		return
	}
	if input.CategoryID != "" && !categoryExists(ctx, input.CategoryID) {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now()
	product := models.Product{
		ProductID:     "p" + utils.GenerateRandomString(10),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Images:        input.Images,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Discount:      input.Discount,
		Rating:        input.Rating,
		ReviewCount:   input.ReviewCount,
		InStock:       input.Stock > 0,
		Stock:         input.Stock,
		Specs:         input.Specs,
		CategoryID:    input.CategoryID,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if fields := validateProductInput(input); len(fields) > 0 {
		utils.RespondWithValidationError(w, fields)
		return
	}
	if input.CategoryID != "" && !categoryExists(ctx, input.CategoryID) {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	update := bson.M{
		"name":          strings.TrimSpace(input.Name),
		"description":   input.Description,
		"images":        input.Images,
		"price":         input.Price,
		"originalPrice": input.OriginalPrice,
		"discount":      input.Discount,
		"rating":        input.Rating,
		"reviewCount":   input.ReviewCount,
		"stock":         input.Stock,
		"inStock":       input.Stock > 0,
		"specs":         input.Specs,
		"categoryId":    input.CategoryID,
		"updatedAt":     time.Now(),
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := db.ProductCollection.DeleteOne(r.Context(), bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted"})
}

// ListProducts returns all products for the admin console, inactive ones
// included, paginated with optional name/description search.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)

	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", search),
			utils.RegexFilter("description", search),
		}
	}

	opts := mongoFindPage(skip, limit, bson.D{{Key: "createdAt", Value: -1}})
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

// BulkSetCategory re-categorizes a batch of products in one update.
func BulkSetCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductIDs []string `json:"productIds"`
		CategoryID string   `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.ProductIDs) == 0 {
		utils.RespondWithValidationError(w, map[string]string{"productIds": "At least one product id is required"})
		return
	}
	if input.CategoryID != "" && !categoryExists(ctx, input.CategoryID) {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	result, err := db.ProductCollection.UpdateMany(ctx,
		bson.M{"productid": bson.M{"$in": input.ProductIDs}},
		bson.M{"$set": bson.M{"categoryId": input.CategoryID, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"updated": result.ModifiedCount})
}
