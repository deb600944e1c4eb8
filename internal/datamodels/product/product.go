package product

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product status values.
const (
	StatusOffline = 0
	StatusOnline  = 1
)

// ErrNotFound is returned when no product matches the lookup.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item. Quantity is the live available stock: only
// checkout decrements it, catalog-admin edits may set it.
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:512" json:"description"`
	CategoryID  int64           `gorm:"index" json:"category_id"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Status      int             `gorm:"index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Listing is a product row joined with its category name, the shape the
// public catalog endpoint serves.
type Listing struct {
	Product      `gorm:"embedded"`
	CategoryName string `json:"category_name"`
}

// Repository is the catalog store.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	// ListOnline returns online products joined with category names,
	// optionally filtered by category id.
	ListOnline(ctx context.Context, categoryID int64) ([]*Listing, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
