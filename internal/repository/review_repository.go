package repository

import (
	"context"

	"storefront/internal/domain"
)

type ReviewFilter struct {
	ProductID uint64
	Approved  *bool
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
	SetApproved(ctx context.Context, id uint64, approved bool) error
	Delete(ctx context.Context, id uint64) error
}
