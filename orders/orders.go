package orders

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

// MyOrders lists the caller's orders, newest first.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// canViewOrder reports whether the caller may read an order: the owner and
// admins only.
func canViewOrder(order models.Order, userID, role string) bool {
	return order.UserID == userID || role == models.RoleAdmin
}

// fetchOwnedOrder loads an order and enforces that the caller owns it or is
// an admin.
func fetchOwnedOrder(r *http.Request, orderID string) (models.Order, int, string) {
	var order models.Order
	err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		return order, http.StatusNotFound, "Order not found"
	}

	if !canViewOrder(order, utils.GetUserIDFromRequest(r), utils.GetRoleFromRequest(r)) {
		return order, http.StatusForbidden, "Not your order"
	}
	return order, 0, ""
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, code, msg := fetchOwnedOrder(r, ps.ByName("orderid"))
	if code != 0 {
		utils.RespondWithError(w, code, msg)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}
