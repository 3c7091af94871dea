package repository

import (
	"context"

	"storefront/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type PaymentSettingRepository interface {
	List(ctx context.Context) ([]domain.PaymentSetting, error)
	Upsert(ctx context.Context, setting *domain.PaymentSetting) error
}

type StatsRepository interface {
	CountProducts(ctx context.Context, activeOnly bool) (int64, error)
	CountOrders(ctx context.Context, status domain.OrderStatus) (int64, error)
	CountReviews(ctx context.Context, approved bool) (int64, error)
	CountActiveRedeemCodes(ctx context.Context) (int64, error)
}
