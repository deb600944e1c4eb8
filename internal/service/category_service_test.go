package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
)

type fakeCategoryRepo struct {
	byID map[int64]*category.Category
}

func newFakeCategoryRepo(cats ...*category.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: make(map[int64]*category.Category)}
	for _, c := range cats {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	var list []*category.Category
	for _, c := range r.byID {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *category.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *category.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	delete(r.byID, id)
	return nil
}

func TestCategoryService_UpdateUnknownID(t *testing.T) {
	repo := newFakeCategoryRepo(&category.Category{ID: 1, Name: "Vitaminas"})
	svc := NewCategoryService(repo)

	err := svc.Update(context.Background(), &category.Category{ID: 99, Name: "Minerales"})
	require.ErrorIs(t, err, category.ErrNotFound)
	// The miss must not upsert.
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, category.ErrNotFound)

	require.NoError(t, svc.Update(context.Background(), &category.Category{ID: 1, Name: "Vitaminas y más"}))
	c, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Vitaminas y más", c.Name)
}
