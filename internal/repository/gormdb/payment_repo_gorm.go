package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Record(ctx context.Context, payment *domain.Payment, decide repository.StatusDecider) (domain.OrderStatus, domain.OrderStatus, error) {
	var prev, next domain.OrderStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		prev, next, err = lockAndTransition(tx, payment.OrderID, decide)
		if err != nil {
			return err
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return prev, prev, classify(err, "order", payment.OrderID)
	}
	return prev, next, nil
}

func (r *paymentRepo) MarkCompleted(ctx context.Context, id uint64, decide repository.StatusDecider) (*domain.Payment, domain.OrderStatus, domain.OrderStatus, error) {
	var (
		p          domain.Payment
		prev, next domain.OrderStatus
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			return classify(err, "payment", id)
		}
		if p.Status == domain.PaymentCompleted {
			return &domain.ConflictError{Message: "payment is already completed"}
		}

		var err error
		prev, next, err = lockAndTransition(tx, p.OrderID, decide)
		if err != nil {
			return classify(err, "order", p.OrderID)
		}

		p.Status = domain.PaymentCompleted
		return tx.Model(&p).Update("status", domain.PaymentCompleted).Error
	})
	if err != nil {
		return nil, prev, prev, classify(err, "payment", id)
	}
	return &p, prev, next, nil
}

func (r *paymentRepo) FindByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, classify(err, "payment", id)
	}
	return &p, nil
}

func (r *paymentRepo) List(ctx context.Context, orderID uint64) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if orderID != 0 {
		q = q.Where("order_id = ?", orderID)
	}

	var out []domain.Payment
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, classify(err, "payment", nil)
	}
	return out, nil
}
