// Package checkout defines the transient inputs, the error taxonomy and
// the transactional store contract of the order-commit engine.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
)

// CartItem is one submitted cart line. It is never persisted on its own.
type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

var (
	// ErrUnauthenticated means the call carried no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmptyCart rejects a checkout with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidItem rejects a cart line with a missing product id or a
	// non-positive quantity. No silent coercion to 1.
	ErrInvalidItem = errors.New("invalid cart item")
	// ErrProductNotFound aborts the transaction when a cart line
	// references a product that does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// InsufficientStockError aborts the transaction when available stock
// cannot cover the requested quantity. It carries what the client needs
// to adjust the cart.
type InsufficientStockError struct {
	ProductName string
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available", e.ProductName, e.Available)
}

// PersistenceError wraps a storage or transaction failure. Nothing
// partial was committed, so the caller may retry the whole checkout.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Tx is the view of one open checkout transaction. Everything called on
// it either commits together or rolls back together.
type Tx interface {
	// LockProduct acquires an exclusive row lock on the product and
	// returns its current state, or ErrProductNotFound. Within one
	// transaction a second lock of the same product observes earlier
	// in-flight decrements.
	LockProduct(ctx context.Context, id int64) (*product.Product, error)
	// DecrementStock reduces the locked product's available quantity.
	DecrementStock(ctx context.Context, id, qty int64) error
	// CreateOrder inserts the order row and fills in its id.
	CreateOrder(ctx context.Context, o *order.Order) error
	// CreateLines bulk-inserts the order lines.
	CreateLines(ctx context.Context, lines []*order.Line) error
}

// Store opens checkout transactions against the relational store.
type Store interface {
	// Transact runs fn inside one transaction. A nil return commits;
	// any error (or ctx cancellation) rolls everything back before
	// Transact returns.
	Transact(ctx context.Context, fn func(tx Tx) error) error
}
