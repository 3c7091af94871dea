package gormdb

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return classify(r.db.WithContext(ctx).Create(review).Error, "review", nil)
}

func (r *reviewRepo) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("reviews.*, users.name AS author_name").
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
	if filter.ProductID != 0 {
		q = q.Where("reviews.product_id = ?", filter.ProductID)
	}
	if filter.Approved != nil {
		q = q.Where("reviews.is_approved = ?", *filter.Approved)
	}

	var out []domain.Review
	if err := q.Order("reviews.created_at DESC").Find(&out).Error; err != nil {
		return nil, classify(err, "review", nil)
	}
	return out, nil
}

func (r *reviewRepo) SetApproved(ctx context.Context, id uint64, approved bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return classify(res.Error, "review", id)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "review", ID: id}
	}
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if res.Error != nil {
		return classify(res.Error, "review", id)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "review", ID: id}
	}
	return nil
}
