package service

import (
	"context"
	"strings"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
)

// ProductService serves the catalog. Stock decrements never happen here;
// that belongs to checkout.
type ProductService struct {
	repo product.Repository
}

func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOnline returns the public catalog, optionally filtered by category
// and by a case-insensitive name keyword.
func (s *ProductService) ListOnline(ctx context.Context, categoryID int64, keyword string) ([]*product.Listing, error) {
	list, err := s.repo.ListOnline(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return list, nil
	}
	kw := strings.ToLower(keyword)
	filtered := make([]*product.Listing, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListAll returns every product regardless of status, for the back
// office.
func (s *ProductService) ListAll(ctx context.Context) ([]*product.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProductService) Create(ctx context.Context, p *product.Product) error {
	return s.repo.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *product.Product) error {
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
