package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
)

// OrderService answers read queries over the ledger and handles the
// back-office status transitions.
type OrderService struct {
	repo order.Repository
}

// NewOrderService builds the order query service.
func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// ErrBadStatusFilter rejects listing filters outside the order state
// machine.
var ErrBadStatusFilter = errors.New("unknown order status filter")

// ListByUser returns the caller's orders, newest first. A non-empty
// status narrows the list to that state, e.g. the storefront's
// "pending orders" view.
func (s *OrderService) ListByUser(ctx context.Context, userID int64, status string) ([]*order.Order, error) {
	switch status {
	case "", order.StatusPending, order.StatusPaid, order.StatusCancelled:
	default:
		return nil, ErrBadStatusFilter
	}
	return s.repo.ListByUser(ctx, userID, status)
}

// OrderDetail is an order with its lines.
type OrderDetail struct {
	Order *order.Order  `json:"order"`
	Lines []*order.Line `json:"lines"`
}

// Get returns one order with lines, or order.ErrNotFound when it does
// not exist or is not owned by userID.
func (s *OrderService) Get(ctx context.Context, orderID, userID int64) (*OrderDetail, error) {
	o, err := s.repo.GetOwned(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Lines: lines}, nil
}

// ListAll returns every order joined with its customer, for the back
// office.
func (s *OrderService) ListAll(ctx context.Context) ([]*order.AdminSummary, error) {
	return s.repo.ListAll(ctx)
}

// ListLines returns the lines of any order, for the back office.
func (s *OrderService) ListLines(ctx context.Context, orderID int64) ([]*order.Line, error) {
	return s.repo.ListLines(ctx, orderID)
}

// AdminUpdateStatus transitions an order along the state machine:
// pending may move to paid or cancelled, nothing moves out of a terminal
// status. Inventory is untouched on cancellation; stock adjustments are a
// catalog-admin action.
func (s *OrderService) AdminUpdateStatus(ctx context.Context, orderID int64, to string) error {
	if to != order.StatusPaid && to != order.StatusCancelled {
		return order.ErrStatusFinal
	}
	ok, err := s.repo.UpdateStatusIf(ctx, orderID, 0, order.StatusPending, to)
	if err != nil {
		return err
	}
	if ok {
		zap.L().Info("order status changed",
			zap.Int64("order_id", orderID),
			zap.String("status", to),
		)
		return nil
	}
	// Nothing matched: either the order is unknown or it already left
	// pending. Distinguish for the caller.
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return err
	}
	return order.ErrStatusFinal
}
