package repository

import (
	"context"

	"storefront/internal/domain"
)

type ProductFilter struct {
	Category   string
	Search     string
	ActiveOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}
