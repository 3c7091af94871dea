package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.RedeemCodeID != nil {
			res := tx.Model(&domain.RedeemCode{}).
				Where("id = ? AND is_active = ? AND used_count < max_uses", *order.RedeemCodeID, true).
				UpdateColumn("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			// someone else took the last use between validation and now
			if res.RowsAffected == 0 {
				return &domain.ValidationError{Field: "code", Err: domain.ErrCodeExhausted}
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			return errors.New("failed to assign order ID")
		}
		return nil
	})
	return classify(err, "order", order.ID)
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	db := r.db.WithContext(ctx)

	var o domain.Order
	if err := db.First(&o, id).Error; err != nil {
		return nil, classify(err, "order", id)
	}

	items, err := r.itemsWithCodes(db, []uint64{id})
	if err != nil {
		return nil, classify(err, "order", id)
	}
	o.Items = items[id]
	return &o, nil
}

// itemsWithCodes loads the items of the given orders joined with the current
// product code of each product.
func (r *orderRepo) itemsWithCodes(db *gorm.DB, orderIDs []uint64) (map[uint64][]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := db.Model(&domain.OrderItem{}).
		Select("order_items.*, products.product_code").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", orderIDs).
		Order("order_items.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uint64][]domain.OrderItem, len(orderIDs))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, nil
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	db := r.db.WithContext(ctx)

	q := db.Model(&domain.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserID != nil && filter.Email != "" {
		q = q.Where("user_id = ? OR customer_email = ?", *filter.UserID, filter.Email)
	} else if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	} else if filter.Email != "" {
		q = q.Where("customer_email = ?", filter.Email)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var out []domain.Order
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, classify(err, "order", nil)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]uint64, 0, len(out))
	for _, o := range out {
		ids = append(ids, o.ID)
	}
	items, err := r.itemsWithCodes(db, ids)
	if err != nil {
		return nil, classify(err, "order", nil)
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *orderRepo) TransitionStatus(ctx context.Context, id uint64, decide repository.StatusDecider) (domain.OrderStatus, domain.OrderStatus, error) {
	var prev, next domain.OrderStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		prev, next, err = lockAndTransition(tx, id, decide)
		return err
	})
	return prev, next, classify(err, "order", id)
}

func (r *orderRepo) HasCompletedPurchase(ctx context.Context, userID uint64, email string, productID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.status = ?", domain.StatusCompleted).
		Where("order_items.product_id = ?", productID).
		Where("orders.user_id = ? OR orders.customer_email = ?", userID, email).
		Count(&count).Error
	if err != nil {
		return false, classify(err, "order", nil)
	}
	return count > 0, nil
}

// lockAndTransition must run inside a transaction. It locks the order row so
// two concurrent transitions see each other's result.
func lockAndTransition(tx *gorm.DB, orderID uint64, decide repository.StatusDecider) (domain.OrderStatus, domain.OrderStatus, error) {
	var o domain.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "status").
		First(&o, orderID).Error
	if err != nil {
		return "", "", err
	}

	next, err := decide(o.Status)
	if err != nil {
		return o.Status, o.Status, err
	}
	if next != o.Status {
		if err := tx.Model(&domain.Order{}).Where("id = ?", orderID).Update("status", next).Error; err != nil {
			return o.Status, o.Status, err
		}
	}
	return o.Status, next, nil
}
