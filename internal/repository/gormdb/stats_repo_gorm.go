package gormdb

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) repository.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	return n, classify(q.Count(&n).Error, "product", nil)
}

// CountOrders counts every order when status is empty.
func (r *statsRepo) CountOrders(ctx context.Context, status domain.OrderStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	return n, classify(q.Count(&n).Error, "order", nil)
}

func (r *statsRepo) CountReviews(ctx context.Context, approved bool) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Where("is_approved = ?", approved).Count(&n).Error
	return n, classify(err, "review", nil)
}

func (r *statsRepo) CountActiveRedeemCodes(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.RedeemCode{}).
		Where("is_active = ? AND used_count < max_uses", true).
		Where("expires_at IS NULL OR expires_at > ?", gorm.Expr("CURRENT_TIMESTAMP")).
		Count(&n).Error
	return n, classify(err, "redeem code", nil)
}
