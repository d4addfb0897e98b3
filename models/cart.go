package models

import "time"

// CartLine is one (product, quantity, price) tuple in a session cart.
// Price is captured when the line is added.
type CartLine struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartView is what cart reads return: the current lines plus a total that
// is recomputed on every read, never cached.
type CartView struct {
	SessionID string     `json:"sessionId"`
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
}
