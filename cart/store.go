package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/catalog"
	"storefront/models"
)

var errNotInCart = errors.New("item not in cart")

// ProductFetcher loads a product for stock validation. The production store
// uses catalog.FetchProduct; tests substitute a map-backed fetcher.
type ProductFetcher func(ctx context.Context, productID string) (models.Product, error)

// Store keeps one line-item list per session key, in process memory only.
// Carts do not survive a restart. The mutex guards the map itself; product
// lookups run outside it, so two concurrent mutations of the same session
// can still interleave with a last-write-wins outcome on quantity.
type Store struct {
	mu    sync.Mutex
	carts map[string][]models.CartLine
	fetch ProductFetcher
}

func NewStore(fetch ProductFetcher) *Store {
	return &Store{
		carts: make(map[string][]models.CartLine),
		fetch: fetch,
	}
}

func (s *Store) lines(sessionID string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.carts[sessionID]
	lines := make([]models.CartLine, len(stored))
	copy(lines, stored)
	return lines
}

func (s *Store) setLines(sessionID string, lines []models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = lines
}

// Total recomputes the cart total from the stored lines. It is derived on
// every read, never cached.
func Total(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// View returns the cart for a session, lazily creating an empty one. Lines
// whose product has since been deleted are silently dropped; a line whose
// lookup fails for any other reason is kept, so a transient database error
// never empties a cart.
func (s *Store) View(ctx context.Context, sessionID string) models.CartView {
	lines := s.lines(sessionID)

	kept := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if _, err := s.fetch(ctx, line.ProductID); errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) != len(lines) {
		s.setLines(sessionID, kept)
	}

	return models.CartView{
		SessionID: sessionID,
		Items:     kept,
		Total:     Total(kept),
	}
}

// Add validates the product against current stock and appends a new line
// with the price captured now. If the product is already in the cart its
// quantity is incremented without a second stock read.
func (s *Store) Add(ctx context.Context, sessionID, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	product, err := s.fetch(ctx, productID)
	if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
		return fmt.Errorf("product lookup for %s: %w", productID, err)
	}
	if err != nil || !product.IsActive {
		return fmt.Errorf("%w: %s", catalog.ErrProductUnavailable, productID)
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: %s", catalog.ErrInsufficientStock, product.Name)
	}

	lines := s.lines(sessionID)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			s.setLines(sessionID, lines)
			return nil
		}
	}

	lines = append(lines, models.CartLine{
		ProductID: productID,
		Name:      product.Name,
		Quantity:  quantity,
		Price:     product.Price,
		AddedAt:   time.Now(),
	})
	s.setLines(sessionID, lines)
	return nil
}

// Update overwrites a line's quantity after re-validating against current
// stock. Quantity 0 removes the line.
func (s *Store) Update(ctx context.Context, sessionID, productID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if quantity == 0 {
		s.Remove(sessionID, productID)
		return nil
	}

	product, err := s.fetch(ctx, productID)
	if err != nil && !errors.Is(err, catalog.ErrProductNotFound) {
		return fmt.Errorf("product lookup for %s: %w", productID, err)
	}
	if err != nil || !product.IsActive {
		return fmt.Errorf("%w: %s", catalog.ErrProductUnavailable, productID)
	}
	if quantity > product.Stock {
		return fmt.Errorf("%w: %s", catalog.ErrInsufficientStock, product.Name)
	}

	lines := s.lines(sessionID)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			s.setLines(sessionID, lines)
			return nil
		}
	}
	return errNotInCart
}

// Remove drops one line from the session cart.
func (s *Store) Remove(sessionID, productID string) {
	lines := s.lines(sessionID)
	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.setLines(sessionID, kept)
}

// Clear resets the session cart.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Lines returns a copy of the raw stored lines without product filtering.
// Checkout uses this when the request body carries no items.
func (s *Store) Lines(sessionID string) []models.CartLine {
	return s.lines(sessionID)
}
