package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const minPasswordLength = 8

type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	hashCost int
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
		logger:   logger.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required"`
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, domain.NewValidationError("email", "is not a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, nil, domain.NewValidationError("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, nil, err
	}
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, nil, &domain.ValidationError{Field: "email", Message: "is already registered", Err: err}
		}
		return nil, nil, err
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Uint64("user_id", user.ID).Msg("user registered")
	return user, session, nil
}

// Login checks the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// LoginAdmin is Login restricted to admin accounts.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if !user.IsAdmin() {
		return nil, nil, domain.ErrForbidden
	}

	session, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Uint64("user_id", user.ID).Msg("admin signed in")
	return user, session, nil
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		Token:     strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to its user. Unknown and expired
// tokens are both ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drop expired session")
		}
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the admin account on first start. An existing account
// with that email is left alone.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.logger.Warn().Msg("admin credentials not configured, skipping admin seed")
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("admin account created")
	return nil
}
