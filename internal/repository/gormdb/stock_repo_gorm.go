package gormdb

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) repository.StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) DecrementForOrder(ctx context.Context, orderID uint64) ([]uint64, error) {
	var touched []uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []domain.OrderItem
		if err := tx.Select("product_id", "quantity").Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, it := range items {
			err := tx.Model(&domain.Product{}).
				Where("id = ?", it.ProductID).
				UpdateColumn("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", it.Quantity, it.Quantity)).
				Error
			if err != nil {
				return err
			}
			touched = append(touched, it.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, "order", orderID)
	}
	return touched, nil
}
