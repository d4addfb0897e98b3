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
	"go.mongodb.org/mongo-driver/mongo"
)

func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	err := db.CategoryCollection.FindOne(ctx, bson.M{"name": name}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.Category{
		CategoryID:  "c" + utils.GenerateRandomString(10),
		Name:        name,
		Description: input.Description,
	}

	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithValidationError(w, map[string]string{"name": "Name is required"})
		return
	}

	// Unique name, excluding this category itself.
	var existing models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"name": name}).Decode(&existing)
	if err == nil && existing.CategoryID != categoryID {
		utils.RespondWithError(w, http.StatusConflict, "Category name already exists")
		return
	}

	result, err := db.CategoryCollection.UpdateOne(ctx,
		bson.M{"categoryid": categoryID},
		bson.M{"$set": bson.M{"name": name, "description": input.Description}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.Category{
		CategoryID:  categoryID,
		Name:        name,
		Description: input.Description,
	})
}

// DeleteCategory refuses to remove a category while any product still
// references it.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")

	inUse, err := db.ProductCollection.CountDocuments(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if inUse > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Category is referenced by existing products")
		return
	}

	result, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryid": categoryID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Category deleted"})
}
