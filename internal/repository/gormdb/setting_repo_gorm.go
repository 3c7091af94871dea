package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type settingRepo struct {
	db *gorm.DB
}

func NewPaymentSettingRepository(db *gorm.DB) repository.PaymentSettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) List(ctx context.Context) ([]domain.PaymentSetting, error) {
	var out []domain.PaymentSetting
	if err := r.db.WithContext(ctx).Order("method").Find(&out).Error; err != nil {
		return nil, classify(err, "payment setting", nil)
	}
	return out, nil
}

func (r *settingRepo) Upsert(ctx context.Context, setting *domain.PaymentSetting) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "method"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "details", "updated_at"}),
	}).Create(setting).Error
	return classify(err, "payment setting", setting.Method)
}
