package gormdb

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type redeemRepo struct {
	db *gorm.DB
}

func NewRedeemCodeRepository(db *gorm.DB) repository.RedeemCodeRepository {
	return &redeemRepo{db: db}
}

func (r *redeemRepo) FindByCode(ctx context.Context, code string) (*domain.RedeemCode, error) {
	var c domain.RedeemCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, classify(err, "redeem code", code)
	}
	return &c, nil
}

func (r *redeemRepo) CreateBatch(ctx context.Context, codes []domain.RedeemCode) error {
	if len(codes) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&codes, 100).Error
	})
	return classify(err, "redeem code", nil)
}

func (r *redeemRepo) List(ctx context.Context) ([]domain.RedeemCode, error) {
	var out []domain.RedeemCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, classify(err, "redeem code", nil)
	}
	return out, nil
}

func (r *redeemRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.RedeemCode{}, id)
	if res.Error != nil {
		return classify(res.Error, "redeem code", id)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "redeem code", ID: id}
	}
	return nil
}
