package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
)

func TestOrderService_GetEnforcesOwnership(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.add(&order.Order{ID: 1, UserID: 5, Status: order.StatusPending},
		&order.Line{ID: 1, OrderID: 1, ProductID: 2, Quantity: 1})
	svc := NewOrderService(repo)

	detail, err := svc.Get(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Order.ID)
	assert.Len(t, detail.Lines, 1)

	_, err = svc.Get(context.Background(), 1, 6)
	require.ErrorIs(t, err, order.ErrNotFound)

	_, err = svc.Get(context.Background(), 99, 5)
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderService_ListByUserNewestFirst(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.add(&order.Order{ID: 1, UserID: 5, Status: order.StatusPaid})
	repo.add(&order.Order{ID: 3, UserID: 5, Status: order.StatusPending})
	repo.add(&order.Order{ID: 2, UserID: 6, Status: order.StatusPending})
	svc := NewOrderService(repo)

	list, err := svc.ListByUser(context.Background(), 5, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
}

func TestOrderService_ListByUserStatusFilter(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.add(&order.Order{ID: 1, UserID: 5, Status: order.StatusPaid})
	repo.add(&order.Order{ID: 2, UserID: 5, Status: order.StatusPending})
	repo.add(&order.Order{ID: 3, UserID: 5, Status: order.StatusPending})
	repo.add(&order.Order{ID: 4, UserID: 6, Status: order.StatusPending})
	svc := NewOrderService(repo)

	pending, err := svc.ListByUser(context.Background(), 5, order.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(3), pending[0].ID)
	assert.Equal(t, int64(2), pending[1].ID)
	for _, o := range pending {
		assert.Equal(t, order.StatusPending, o.Status)
	}

	paid, err := svc.ListByUser(context.Background(), 5, order.StatusPaid)
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, int64(1), paid[0].ID)

	_, err = svc.ListByUser(context.Background(), 5, "shipped")
	require.ErrorIs(t, err, ErrBadStatusFilter)
}

func TestOrderService_AdminStateMachine(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.add(&order.Order{ID: 1, UserID: 5, Status: order.StatusPending})
	repo.add(&order.Order{ID: 2, UserID: 5, Status: order.StatusPaid})
	repo.add(&order.Order{ID: 3, UserID: 5, Status: order.StatusCancelled})
	svc := NewOrderService(repo)

	// pending -> cancelled is allowed.
	require.NoError(t, svc.AdminUpdateStatus(context.Background(), 1, order.StatusCancelled))
	o, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, order.StatusCancelled, o.Status)

	// Terminal statuses have no outgoing transitions.
	err := svc.AdminUpdateStatus(context.Background(), 2, order.StatusCancelled)
	require.ErrorIs(t, err, order.ErrStatusFinal)
	err = svc.AdminUpdateStatus(context.Background(), 3, order.StatusPaid)
	require.ErrorIs(t, err, order.ErrStatusFinal)

	// Unknown orders are reported as such.
	err = svc.AdminUpdateStatus(context.Background(), 99, order.StatusCancelled)
	require.ErrorIs(t, err, order.ErrNotFound)

	// pending is never a valid target.
	err = svc.AdminUpdateStatus(context.Background(), 1, order.StatusPending)
	require.ErrorIs(t, err, order.ErrStatusFinal)
}
