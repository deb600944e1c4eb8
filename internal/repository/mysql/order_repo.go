package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
)

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository builds the order ledger.
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) GetOwned(ctx context.Context, id, userID int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64, status string) ([]*order.Order, error) {
	var list []*order.Order
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListLines(ctx context.Context, orderID int64) ([]*order.Line, error) {
	var lines []*order.Line
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepo) ListAll(ctx context.Context) ([]*order.AdminSummary, error) {
	var list []*order.AdminSummary
	if err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.full_name AS customer_name, users.email AS customer_email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC, orders.id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatusIf is the single conditional UPDATE behind payment marking
// and admin cancellation. Zero affected rows means nothing matched (bad
// id, wrong owner, or status already advanced) and the caller decides
// what that means.
func (r *orderRepo) UpdateStatusIf(ctx context.Context, id, userID int64, from, to string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ?", id, from)
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	res := query.Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
