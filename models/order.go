package models

import "time"

// Order statuses. A flat enumeration: admins may move an order from any
// status to any other, there is no transition graph.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderPending:   true,
	OrderPaid:      true,
	OrderShipped:   true,
	OrderCompleted: true,
	OrderCancelled: true,
}

// ValidOrderStatus reports whether s is one of the enumerated statuses.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// OrderItem is a frozen line snapshot. Price is the product's unit price at
// checkout time and is decoupled from later catalog price changes.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order is created only by checkout and never deleted; admins mutate the
// status, nothing else.
type Order struct {
	OrderID   string      `json:"orderId" bson:"orderid"`
	UserID    string      `json:"userId" bson:"userId"`
	Items     []OrderItem `json:"items" bson:"items"`
	Total     float64     `json:"total" bson:"total"`
	Status    string      `json:"status" bson:"status"`
	Address   string      `json:"address" bson:"address"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}
