package service

import (
	"context"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
)

// CategoryService is plain CRUD over catalog categories.
type CategoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) ListAll(ctx context.Context) ([]*category.Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, c *category.Category) error {
	return s.repo.Create(ctx, c)
}

// Update rewrites an existing category; unknown ids surface
// category.ErrNotFound rather than creating a row.
func (s *CategoryService) Update(ctx context.Context, c *category.Category) error {
	if _, err := s.repo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
