package repository

import (
	"context"

	"storefront/internal/domain"
)

type RedeemCodeRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.RedeemCode, error)
	CreateBatch(ctx context.Context, codes []domain.RedeemCode) error
	List(ctx context.Context) ([]domain.RedeemCode, error)
	Delete(ctx context.Context, id uint64) error
}
