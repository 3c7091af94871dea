package repository

import (
	"context"

	"storefront/internal/domain"
)

type OrderFilter struct {
	Status domain.OrderStatus
	UserID *uint64
	Email  string
	Limit  int
	Offset int
}

// StatusDecider picks the next order status from the current one while the
// order row is locked. Returning an error aborts the change.
type StatusDecider func(current domain.OrderStatus) (domain.OrderStatus, error)

type OrderRepository interface {
	// Create stores the order and its items in one transaction. When the order
	// carries a redeem code its usage counter is taken in the same transaction.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	TransitionStatus(ctx context.Context, id uint64, decide StatusDecider) (prev, next domain.OrderStatus, err error)
	HasCompletedPurchase(ctx context.Context, userID uint64, email string, productID uint64) (bool, error)
}

type PaymentRepository interface {
	// Record inserts the payment and moves the order in one transaction and
	// returns the order status before and after.
	Record(ctx context.Context, payment *domain.Payment, decide StatusDecider) (prev, next domain.OrderStatus, err error)
	MarkCompleted(ctx context.Context, id uint64, decide StatusDecider) (payment *domain.Payment, prev, next domain.OrderStatus, err error)
	FindByID(ctx context.Context, id uint64) (*domain.Payment, error)
	List(ctx context.Context, orderID uint64) ([]domain.Payment, error)
}

type StockRepository interface {
	// DecrementForOrder takes every item quantity of the order off product
	// stock, never below zero, and returns the products touched.
	DecrementForOrder(ctx context.Context, orderID uint64) ([]uint64, error)
}
