package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/infra/mq"
)

// OrderEventPublisher pushes post-commit order notifications. May be nil.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev mq.OrderEvent) error
}

// CheckoutService turns a submitted cart into a durable order and
// advances payment state. It is the only writer of stock decrements.
type CheckoutService struct {
	store    checkout.Store
	orders   order.Repository
	events   OrderEventPublisher
	lockWait time.Duration
}

// NewCheckoutService wires the engine. lockWait <= 0 disables the bound.
func NewCheckoutService(store checkout.Store, orders order.Repository, events OrderEventPublisher, lockWait time.Duration) *CheckoutService {
	return &CheckoutService{
		store:    store,
		orders:   orders,
		events:   events,
		lockWait: lockWait,
	}
}

// Receipt is what a successful checkout hands back.
type Receipt struct {
	OrderID int64           `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// SubmitOrder validates the cart against live inventory and atomically
// persists the stock decrements, the order and its lines, or nothing.
//
// Items are processed one at a time so that a second cart line for the
// same product observes the first line's in-flight decrement. Before the
// loop the cart is stable-sorted by product id, which gives every
// concurrent checkout the same global lock-acquisition order; duplicate
// lines keep their relative order and the total is unaffected.
func (s *CheckoutService) SubmitOrder(ctx context.Context, userID int64, items []checkout.CartItem, shippingAddress string) (*Receipt, error) {
	if userID <= 0 {
		return nil, checkout.ErrUnauthenticated
	}
	if len(items) == 0 {
		return nil, checkout.ErrEmptyCart
	}
	for i, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return nil, fmt.Errorf("item %d: %w", i, checkout.ErrInvalidItem)
		}
	}

	sorted := make([]checkout.CartItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProductID < sorted[j].ProductID
	})

	if s.lockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockWait)
		defer cancel()
	}

	var (
		o     order.Order
		lines []*order.Line
	)
	err := s.store.Transact(ctx, func(tx checkout.Tx) error {
		total := decimal.Zero
		lines = lines[:0]
		for _, it := range sorted {
			p, err := tx.LockProduct(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p.Quantity < it.Quantity {
				return &checkout.InsufficientStockError{
					ProductName: p.Name,
					Available:   p.Quantity,
				}
			}
			if err := tx.DecrementStock(ctx, p.ID, it.Quantity); err != nil {
				return err
			}
			subtotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))
			lines = append(lines, &order.Line{
				ProductID:     p.ID,
				NameSnapshot:  p.Name,
				PriceSnapshot: p.Price,
				Quantity:      it.Quantity,
				Subtotal:      subtotal,
			})
			total = total.Add(subtotal)
		}

		o = order.Order{
			UserID:          userID,
			Total:           total,
			Status:          order.StatusPending,
			ShippingAddress: shippingAddress,
		}
		if err := tx.CreateOrder(ctx, &o); err != nil {
			return err
		}
		for _, l := range lines {
			l.OrderID = o.ID
		}
		return tx.CreateLines(ctx, lines)
	})
	if err != nil {
		return nil, classifyCheckoutErr(err)
	}

	zap.L().Info("order committed",
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(lines)),
	)
	s.publish(mq.OrderEvent{
		Type:    mq.EventOrderCreated,
		OrderID: o.ID,
		UserID:  userID,
		Total:   o.Total.StringFixed(2),
	})

	return &Receipt{OrderID: o.ID, Total: o.Total}, nil
}

// MarkPaid flips a pending order owned by userID to paid. The single
// conditional update makes it idempotent: a repeat call finds no pending
// row and reports ErrNotFound while the order stays paid. Stock was
// already committed at checkout, so inventory is untouched here.
func (s *CheckoutService) MarkPaid(ctx context.Context, orderID, userID int64) error {
	if userID <= 0 {
		return checkout.ErrUnauthenticated
	}
	ok, err := s.orders.UpdateStatusIf(ctx, orderID, userID, order.StatusPending, order.StatusPaid)
	if err != nil {
		return &checkout.PersistenceError{Err: err}
	}
	if !ok {
		return order.ErrNotFound
	}

	zap.L().Info("order paid",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", userID),
	)
	s.publish(mq.OrderEvent{
		Type:    mq.EventOrderPaid,
		OrderID: orderID,
		UserID:  userID,
	})
	return nil
}

// publish is best-effort: a broker hiccup is logged, never surfaced.
func (s *CheckoutService) publish(ev mq.OrderEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.events.PublishOrderEvent(ctx, ev); err != nil {
		zap.L().Warn("order event publish failed",
			zap.String("type", ev.Type),
			zap.Int64("order_id", ev.OrderID),
			zap.Error(err),
		)
	}
}

// classifyCheckoutErr passes domain errors through and wraps anything
// else (lock timeout, connectivity, insert failure) as a retryable
// persistence error. The transaction already rolled back either way.
func classifyCheckoutErr(err error) error {
	var stockErr *checkout.InsufficientStockError
	switch {
	case errors.Is(err, checkout.ErrProductNotFound),
		errors.As(err, &stockErr):
		return err
	default:
		return &checkout.PersistenceError{Err: err}
	}
}
