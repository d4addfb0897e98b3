package catalog

import "errors"

// Stock validation failures shared by the cart and checkout flows. Both are
// wrapped with the offending product reference when returned.
var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// ErrProductNotFound marks a lookup that found no matching product, as
// opposed to a lookup that failed outright. FetchProduct translates the
// driver's no-documents result into this so callers can tell a deleted
// product from a database error.
var ErrProductNotFound = errors.New("product not found")
