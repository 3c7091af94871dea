package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/mocks"
)

func newAuthService() (*AuthService, *mocks.MockUserRepository, *mocks.MockSessionRepository) {
	users := new(mocks.MockUserRepository)
	sessions := new(mocks.MockSessionRepository)
	s := NewAuthService(users, sessions, time.Hour, testLogger)
	s.hashCost = bcrypt.MinCost
	return s, users, sessions
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	s, users, sessions := newAuthService()

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ann@example.com" && u.Role == domain.RoleCustomer &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpass")) == nil
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 9
	})
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	user, session, err := s.Register(context.Background(), RegisterInput{
		Email:    " Ann@Example.com ",
		Name:     "Ann",
		Password: "s3cretpass",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(9), user.ID)
	assert.Equal(t, uint64(9), session.UserID)
	assert.Len(t, session.Token, 64)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	s, users, _ := newAuthService()
	users.On("Create", mock.Anything, mock.Anything).Return(&domain.ConflictError{Message: "user already exists"})

	_, _, err := s.Register(context.Background(), RegisterInput{Email: "ann@example.com", Password: "s3cretpass"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
}

func TestAuthService_RegisterShortPassword(t *testing.T) {
	s, users, _ := newAuthService()

	_, _, err := s.Register(context.Background(), RegisterInput{Email: "ann@example.com", Password: "short"})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		password string
		user     *domain.User
		admin    bool
		err      error
	}{
		{name: "valid customer", password: "s3cretpass", user: &domain.User{ID: 1, Role: domain.RoleCustomer}},
		{name: "wrong password", password: "nope", user: &domain.User{ID: 1, Role: domain.RoleCustomer}, err: domain.ErrUnauthorized},
		{name: "unknown user", password: "s3cretpass", err: domain.ErrUnauthorized},
		{name: "admin login as admin", password: "s3cretpass", user: &domain.User{ID: 2, Role: domain.RoleAdmin}, admin: true},
		{name: "admin login as customer", password: "s3cretpass", user: &domain.User{ID: 1, Role: domain.RoleCustomer}, admin: true, err: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, users, sessions := newAuthService()
			if tt.user != nil {
				tt.user.Email = "ann@example.com"
				tt.user.PasswordHash = hashed(t, "s3cretpass")
				users.On("FindByEmail", mock.Anything, "ann@example.com").Return(tt.user, nil)
			} else {
				users.On("FindByEmail", mock.Anything, "ann@example.com").Return(nil, &domain.NotFoundError{Resource: "user"})
			}
			sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Maybe()

			login := s.Login
			if tt.admin {
				login = s.LoginAdmin
			}
			user, session, err := login(context.Background(), "ANN@example.com", tt.password)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, user.ID)
			assert.NotEmpty(t, session.Token)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid session", func(t *testing.T) {
		s, users, sessions := newAuthService()
		s.now = func() time.Time { return now }
		sessions.On("Find", mock.Anything, "tok").Return(&domain.Session{Token: "tok", UserID: 3, ExpiresAt: now.Add(time.Minute)}, nil)
		users.On("FindByID", mock.Anything, uint64(3)).Return(&domain.User{ID: 3}, nil)

		user, err := s.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, uint64(3), user.ID)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		s, _, sessions := newAuthService()
		s.now = func() time.Time { return now }
		sessions.On("Find", mock.Anything, "old").Return(&domain.Session{Token: "old", UserID: 3, ExpiresAt: now}, nil)
		sessions.On("Delete", mock.Anything, "old").Return(nil).Once()

		_, err := s.Authenticate(context.Background(), "old")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		sessions.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		s, _, sessions := newAuthService()
		sessions.On("Find", mock.Anything, "ghost").Return(nil, &domain.NotFoundError{Resource: "session"})

		_, err := s.Authenticate(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("empty token", func(t *testing.T) {
		s, _, sessions := newAuthService()

		_, err := s.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		sessions.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates missing admin", func(t *testing.T) {
		s, users, _ := newAuthService()
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, &domain.NotFoundError{Resource: "user"})
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.IsAdmin() && u.Email == "admin@example.com"
		})).Return(nil).Once()

		require.NoError(t, s.EnsureAdmin(context.Background(), "Admin@Example.com", "changeme123"))
		users.AssertExpectations(t)
	})

	t.Run("leaves existing account alone", func(t *testing.T) {
		s, users, _ := newAuthService()
		users.On("FindByEmail", mock.Anything, "admin@example.com").Return(&domain.User{ID: 1, Role: domain.RoleAdmin}, nil)

		require.NoError(t, s.EnsureAdmin(context.Background(), "admin@example.com", "changeme123"))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skips without credentials", func(t *testing.T) {
		s, users, _ := newAuthService()

		require.NoError(t, s.EnsureAdmin(context.Background(), "", ""))
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
