package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle states. pending may advance to paid or cancelled; both
// of those are terminal.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

var (
	// ErrNotFound is returned when an order does not exist, is not owned
	// by the caller, or no row matched a conditional status update.
	ErrNotFound = errors.New("order not found")
	// ErrStatusFinal is returned when a transition is requested out of a
	// terminal status.
	ErrStatusFinal = errors.New("order status is final")
)

// Order is a committed checkout.
type Order struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	UserID          int64           `gorm:"index;not null" json:"user_id"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          string          `gorm:"size:16;index;not null" json:"status"`
	ShippingAddress string          `gorm:"size:255" json:"shipping_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Line is one order line. Name and unit price are snapshots taken at
// checkout time; later catalog edits never touch them.
type Line struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	OrderID       int64           `gorm:"index;not null" json:"order_id"`
	ProductID     int64           `gorm:"index;not null" json:"product_id"`
	NameSnapshot  string          `gorm:"size:128;not null" json:"name"`
	PriceSnapshot decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}

// TableName keeps the ledger table name stable.
func (Line) TableName() string { return "order_lines" }

// AdminSummary is an order joined with its customer, the back-office
// listing shape.
type AdminSummary struct {
	Order         `gorm:"embedded"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// Repository is the order ledger. Order creation happens inside the
// checkout transaction, not here.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	// GetOwned returns the order only when it belongs to userID.
	GetOwned(ctx context.Context, id, userID int64) (*Order, error)
	// ListByUser returns the user's orders, optionally restricted to a
	// single status; an empty status means all of them.
	ListByUser(ctx context.Context, userID int64, status string) ([]*Order, error)
	ListLines(ctx context.Context, orderID int64) ([]*Line, error)
	ListAll(ctx context.Context) ([]*AdminSummary, error)
	// UpdateStatusIf conditionally moves an order owned by userID from
	// one status to another; userID <= 0 matches any owner. It reports
	// whether a row matched, which is what makes payment marking
	// idempotent.
	UpdateStatusIf(ctx context.Context, id, userID int64, from, to string) (bool, error)
}
