package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
)

const defaultCategory = "general"

// ProductInput carries the client-editable fields of a catalog entry.
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int
	ImageURL string
	IsActive bool
}

func (in *ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if in.Category == "" {
		in.Category = defaultCategory
	}
	return nil
}

// ListCatalog returns the business's products; activeOnly restricts to the
// entries visible on the register.
func (s *Service) ListCatalog(ctx context.Context, businessID int64, activeOnly bool) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, businessID, activeOnly)
}

// CreateProduct adds a catalog entry owned by the given business.
func (s *Service) CreateProduct(ctx context.Context, businessID int64, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &model.Product{
		BusinessID: businessID,
		Name:       in.Name,
		Price:      in.Price.Round(2),
		Category:   in.Category,
		Stock:      in.Stock,
		ImageURL:   in.ImageURL,
		IsActive:   in.IsActive,
	}

	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	return s.repo.GetProduct(ctx, id, businessID)
}

// UpdateProduct rewrites a catalog entry. Ownership is enforced by the store
// query, not assumed from a prior read.
func (s *Service) UpdateProduct(ctx context.Context, businessID, productID int64, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &model.Product{
		ID:         productID,
		BusinessID: businessID,
		Name:       in.Name,
		Price:      in.Price.Round(2),
		Category:   in.Category,
		Stock:      in.Stock,
		ImageURL:   in.ImageURL,
		IsActive:   in.IsActive,
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.GetProduct(ctx, productID, businessID)
}

// DeleteProduct removes a catalog entry owned by the given business.
func (s *Service) DeleteProduct(ctx context.Context, businessID, productID int64) error {
	return s.repo.DeleteProduct(ctx, productID, businessID)
}

// SetStock overwrites a product's stock level (manual inventory correction).
// Checkout never goes through this path.
func (s *Service) SetStock(ctx context.Context, businessID, productID int64, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	if err := s.repo.SetStock(ctx, productID, businessID, stock); err != nil {
		return nil, err
	}

	return s.repo.GetProduct(ctx, productID, businessID)
}
