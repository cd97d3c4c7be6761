// Package inventory is the transaction manager for sweet stock. All
// stock-affecting writes go through a Store; nothing else in the codebase
// touches sweets.quantity. A purchase either records an order together with
// its stock decrement or leaves every row untouched.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// Filter narrows ListSweets. Zero values mean "no filter"; MaxPrice and
// InStock are pointers so 0/false remain expressible. Filters compose with
// logical AND.
type Filter struct {
	Search   string
	Category string
	MaxPrice *float64
	InStock  *bool
}

type Store interface {
	ListSweets(ctx context.Context, f Filter) ([]models.Sweet, error)
	GetSweet(ctx context.Context, id int) (*models.Sweet, error)
	CreateSweet(ctx context.Context, s *models.Sweet) error
	UpdateSweet(ctx context.Context, id int, patch models.SweetPatch) error
	DeleteSweet(ctx context.Context, id int) error

	// Purchase atomically checks stock, decrements it and records the
	// order with a single item carrying the unit price snapshot.
	Purchase(ctx context.Context, sweetID, quantity, userID int) (*models.Order, error)
	// Restock increments stock; it never creates an order.
	Restock(ctx context.Context, sweetID, quantity int) error

	ListOrders(ctx context.Context, userID int) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// ValidateQuantity rejects non-positive purchase/restock quantities before
// any storage work happens.
func ValidateQuantity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer", models.ErrInvalidInput)
	}
	return nil
}

// ValidateNewSweet enforces the required sweet fields: name, category and
// non-negative price/quantity.
func ValidateNewSweet(s *models.Sweet) error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Category) == "" {
		return fmt.Errorf("%w: missing required fields: name, category", models.ErrInvalidInput)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrInvalidInput)
	}
	if s.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", models.ErrInvalidInput)
	}
	return nil
}

// ValidatePatch checks the supplied fields of a partial update.
func ValidatePatch(p models.SweetPatch) error {
	if p.Empty() {
		return fmt.Errorf("%w: no fields to update", models.ErrInvalidInput)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", models.ErrInvalidInput)
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return fmt.Errorf("%w: category must not be empty", models.ErrInvalidInput)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrInvalidInput)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", models.ErrInvalidInput)
	}
	return nil
}

// Matches reports whether a sweet passes the filter. The Postgres store
// pushes the same predicates into SQL; the in-memory store evaluates them
// here.
func (f Filter) Matches(s models.Sweet) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Description), q) {
			return false
		}
	}
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	if f.MaxPrice != nil && s.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil {
		if *f.InStock && s.Quantity <= 0 {
			return false
		}
		if !*f.InStock && s.Quantity != 0 {
			return false
		}
	}
	return true
}
