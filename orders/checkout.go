package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/cart"
	"storefront/catalog"
	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ItemRequest is one proposed order line: a product reference and the
// desired quantity. The unit price is never client-supplied.
type ItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

var errInvalidQuantity = errors.New("quantity must be at least 1")

type Handler struct {
	carts *cart.Store
	fetch cart.ProductFetcher
}

func NewHandler(carts *cart.Store) *Handler {
	return &Handler{carts: carts, fetch: catalog.FetchProduct}
}

// buildOrderLines validates each requested line in submission order against
// current catalog state and snapshots the unit price. Any failure aborts the
// whole operation before anything is persisted or decremented.
func buildOrderLines(ctx context.Context, items []ItemRequest, fetch cart.ProductFetcher) ([]models.OrderItem, float64, error) {
	lines := make([]models.OrderItem, 0, len(items))
	var total float64

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, fmt.Errorf("%w for %s", errInvalidQuantity, item.ProductID)
		}

		product, err := fetch(ctx, item.ProductID)
		if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
			return nil, 0, fmt.Errorf("product lookup for %s: %w", item.ProductID, err)
		}
		if err != nil || !product.IsActive {
			return nil, 0, fmt.Errorf("%w: %s", catalog.ErrProductUnavailable, item.ProductID)
		}
		if item.Quantity > product.Stock {
			return nil, 0, fmt.Errorf("%w: %s", catalog.ErrInsufficientStock, product.Name)
		}

		lines = append(lines, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	return lines, total, nil
}

// Checkout turns a validated line list into a persisted order, then
// decrements stock line by line. The decrement pass runs after the insert
// with no transaction linking the two; a decrement failure leaves the order
// standing and is only logged.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Items   []ItemRequest `json:"items"`
		Address string        `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if len(strings.TrimSpace(input.Address)) < 10 {
		utils.RespondWithValidationError(w, map[string]string{
			"address": "Delivery address must be at least 10 characters",
		})
		return
	}

	// Fall back to the session cart when the body carries no items.
	sessionKey := r.Header.Get(cart.SessionHeader)
	if len(input.Items) == 0 && sessionKey != "" {
		for _, line := range h.carts.Lines(sessionKey) {
			input.Items = append(input.Items, ItemRequest{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
	}
	if len(input.Items) == 0 {
		utils.RespondWithValidationError(w, map[string]string{
			"items": "At least one item is required",
		})
		return
	}

	lines, total, err := buildOrderLines(ctx, input.Items, h.fetch)
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrProductUnavailable),
		errors.Is(err, catalog.ErrInsufficientStock),
		errors.Is(err, errInvalidQuantity):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	default:
		log.Println("Checkout product lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify products")
		return
	}

	order := models.Order{
		OrderID:   utils.GetUUID(),
		UserID:    userID,
		Items:     lines,
		Total:     total,
		Status:    models.OrderPending,
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: time.Now(),
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("Checkout InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	for _, line := range order.Items {
		_, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": line.ProductID},
			bson.M{
				"$inc": bson.M{"stock": -line.Quantity},
				"$set": bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			log.Printf("Checkout stock decrement failed for %s: %v", line.ProductID, err)
			continue
		}
		// Flip the flag once stock reaches zero.
		db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": line.ProductID, "stock": bson.M{"$lte": 0}},
			bson.M{"$set": bson.M{"inStock": false}},
		)
	}

	if sessionKey != "" {
		h.carts.Clear(sessionKey)
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}
