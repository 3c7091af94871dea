package gormdb

import (
	"gorm.io/gorm"

	"storefront/internal/domain"
)

// Migrate creates or updates every table the service uses. It is idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Product{},
		&domain.RedeemCode{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Payment{},
		&domain.Review{},
		&domain.PaymentSetting{},
	)
}
