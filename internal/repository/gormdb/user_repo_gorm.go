package gormdb

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return classify(r.db.WithContext(ctx).Create(user).Error, "user", user.Email)
}

func (r *userRepo) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, classify(err, "user", id)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, classify(err, "user", email)
	}
	return &u, nil
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *domain.Session) error {
	return classify(r.db.WithContext(ctx).Create(session).Error, "session", nil)
}

func (r *sessionRepo) Find(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		return nil, classify(err, "session", nil)
	}
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	return classify(r.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.Session{}).Error, "session", nil)
}
