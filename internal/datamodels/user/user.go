package user

import (
	"context"
	"errors"
	"time"
)

// Roles carried on the user row. Privilege checks are data-driven via
// these values, never a hardcoded email.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// User is a storefront account.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:128;not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Password  string    `gorm:"size:255;not null" json:"-"` // salted hash
	Salt      string    `gorm:"size:64" json:"-"`
	Role      string    `gorm:"size:16;index;not null;default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account may use the back office.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Repository is the user store.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*User, error)
}
