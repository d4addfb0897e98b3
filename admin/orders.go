package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			utils.RespondWithValidationError(w, map[string]string{"status": "Unknown order status"})
			return
		}
		filter["status"] = status
	}

	opts := mongoFindPage(skip, limit, bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	total, _ := db.OrderCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": orders,
		"total":  total,
		"page":   skip/limit + 1,
		"limit":  limit,
	})
}

// UpdateOrderStatus sets the status directly. Any status is reachable from
// any other; only membership in the enumeration is checked.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		utils.RespondWithValidationError(w, map[string]string{"status": "Unknown order status"})
		return
	}

	orderID := ps.ByName("orderid")
	result, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": input.Status}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// BulkUpdateOrderStatus sets the same status on a batch of orders.
func BulkUpdateOrderStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderIDs []string `json:"orderIds"`
		Status   string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.OrderIDs) == 0 {
		utils.RespondWithValidationError(w, map[string]string{"orderIds": "At least one order id is required"})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		utils.RespondWithValidationError(w, map[string]string{"status": "Unknown order status"})
		return
	}

	result, err := db.OrderCollection.UpdateMany(ctx,
		bson.M{"orderid": bson.M{"$in": input.OrderIDs}},
		bson.M{"$set": bson.M{"status": input.Status}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"updated": result.ModifiedCount})
}
