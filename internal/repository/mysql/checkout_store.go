package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
)

type checkoutStore struct {
	db *gorm.DB
}

// NewCheckoutStore builds the transactional store the checkout engine
// commits through.
func NewCheckoutStore(db *gorm.DB) checkout.Store {
	return &checkoutStore{db: db}
}

func (s *checkoutStore) Transact(ctx context.Context, fn func(tx checkout.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&checkoutTx{db: gtx})
	})
}

type checkoutTx struct {
	db *gorm.DB
}

func (t *checkoutTx) LockProduct(ctx context.Context, id int64) (*product.Product, error) {
	var p product.Product
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checkout.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (t *checkoutTx) DecrementStock(ctx context.Context, id, qty int64) error {
	return t.db.WithContext(ctx).
		Model(&product.Product{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty)).Error
}

func (t *checkoutTx) CreateOrder(ctx context.Context, o *order.Order) error {
	return t.db.WithContext(ctx).Create(o).Error
}

func (t *checkoutTx) CreateLines(ctx context.Context, lines []*order.Line) error {
	return t.db.WithContext(ctx).Create(&lines).Error
}
