package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
)

var errInjectedInsert = errors.New("injected insert failure")

// fakeStore is an in-memory checkout.Store with real transaction
// semantics: mutations inside Transact become visible only on a nil
// return, otherwise the pre-transaction state is restored.
type fakeStore struct {
	mu          sync.Mutex
	products    map[int64]*product.Product
	orders      map[int64]*order.Order
	lines       map[int64][]*order.Line
	nextOrderID int64
	nextLineID  int64

	transactCalls int
	lockSeq       []int64

	failCreateLines bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[int64]*product.Product),
		orders:   make(map[int64]*order.Order),
		lines:    make(map[int64][]*order.Line),
	}
}

func (s *fakeStore) addProduct(id int64, name, price string, qty int64) {
	s.products[id] = &product.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
		Status:   product.StatusOnline,
	}
}

func (s *fakeStore) productQty(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

func (s *fakeStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *fakeStore) orderByID(id int64) (*order.Order, []*order.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id], s.lines[id]
}

func (s *fakeStore) snapshot() (map[int64]*product.Product, map[int64]*order.Order, map[int64][]*order.Line, int64, int64) {
	products := make(map[int64]*product.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	orders := make(map[int64]*order.Order, len(s.orders))
	for id, o := range s.orders {
		cp := *o
		orders[id] = &cp
	}
	lines := make(map[int64][]*order.Line, len(s.lines))
	for id, ls := range s.lines {
		cps := make([]*order.Line, len(ls))
		for i, l := range ls {
			cp := *l
			cps[i] = &cp
		}
		lines[id] = cps
	}
	return products, orders, lines, s.nextOrderID, s.nextLineID
}

func (s *fakeStore) Transact(ctx context.Context, fn func(tx checkout.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactCalls++

	products, orders, lines, nextOrder, nextLine := s.snapshot()
	err := fn(&fakeTx{store: s})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		// Full rollback.
		s.products, s.orders, s.lines = products, orders, lines
		s.nextOrderID, s.nextLineID = nextOrder, nextLine
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) LockProduct(ctx context.Context, id int64) (*product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.store.lockSeq = append(t.store.lockSeq, id)
	p, ok := t.store.products[id]
	if !ok {
		return nil, checkout.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (t *fakeTx) DecrementStock(ctx context.Context, id, qty int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.products[id].Quantity -= qty
	return nil
}

func (t *fakeTx) CreateOrder(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.nextOrderID++
	o.ID = t.store.nextOrderID
	cp := *o
	t.store.orders[o.ID] = &cp
	return nil
}

func (t *fakeTx) CreateLines(ctx context.Context, lines []*order.Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.store.failCreateLines {
		return errInjectedInsert
	}
	for _, l := range lines {
		t.store.nextLineID++
		l.ID = t.store.nextLineID
		cp := *l
		t.store.lines[l.OrderID] = append(t.store.lines[l.OrderID], &cp)
	}
	return nil
}

// fakeOrderRepo is an in-memory order.Repository for payment and query
// tests.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]*order.Order
	lines  map[int64][]*order.Line
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]*order.Order),
		lines:  make(map[int64][]*order.Line),
	}
}

func (r *fakeOrderRepo) add(o *order.Order, lines ...*order.Line) {
	r.orders[o.ID] = o
	r.lines[o.ID] = lines
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetOwned(ctx context.Context, id, userID int64) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID int64, status string) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID && (status == "" || o.Status == status) {
			cp := *o
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) ListLines(ctx context.Context, orderID int64) ([]*order.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*order.Line(nil), r.lines[orderID]...), nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]*order.AdminSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*order.AdminSummary
	for _, o := range r.orders {
		list = append(list, &order.AdminSummary{Order: *o})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *fakeOrderRepo) UpdateStatusIf(ctx context.Context, id, userID int64, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	if userID > 0 && o.UserID != userID {
		return false, nil
	}
	o.Status = to
	return true, nil
}
