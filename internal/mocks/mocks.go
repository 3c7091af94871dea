package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockPaymentRepository struct {
	mock.Mock
}

type MockStockRepository struct {
	mock.Mock
}

type MockProductRepository struct {
	mock.Mock
}

type MockRedeemCodeRepository struct {
	mock.Mock
}

type MockReviewRepository struct {
	mock.Mock
}

type MockUserRepository struct {
	mock.Mock
}

type MockSessionRepository struct {
	mock.Mock
}

type MockPaymentSettingRepository struct {
	mock.Mock
}

type MockStatsRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data any) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context, productIDs ...uint64) {
	m.Called(ctx, productIDs)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// TransitionStatus returns the current status configured on the mock and
// runs the decider against it, like the real repository does under its lock.
func (m *MockOrderRepository) TransitionStatus(ctx context.Context, id uint64, decide repository.StatusDecider) (domain.OrderStatus, domain.OrderStatus, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return "", "", err
	}
	current := args.Get(0).(domain.OrderStatus)
	next, err := decide(current)
	if err != nil {
		return current, current, err
	}
	return current, next, nil
}

func (m *MockOrderRepository) HasCompletedPurchase(ctx context.Context, userID uint64, email string, productID uint64) (bool, error) {
	args := m.Called(ctx, userID, email, productID)
	return args.Bool(0), args.Error(1)
}

// Record returns the current order status configured on the mock and runs
// the decider against it.
func (m *MockPaymentRepository) Record(ctx context.Context, payment *domain.Payment, decide repository.StatusDecider) (domain.OrderStatus, domain.OrderStatus, error) {
	args := m.Called(ctx, payment)
	if err := args.Error(1); err != nil {
		return "", "", err
	}
	current := args.Get(0).(domain.OrderStatus)
	next, err := decide(current)
	if err != nil {
		return current, current, err
	}
	return current, next, nil
}

func (m *MockPaymentRepository) MarkCompleted(ctx context.Context, id uint64, decide repository.StatusDecider) (*domain.Payment, domain.OrderStatus, domain.OrderStatus, error) {
	args := m.Called(ctx, id)
	if err := args.Error(2); err != nil {
		return nil, "", "", err
	}
	payment := args.Get(0).(*domain.Payment)
	current := args.Get(1).(domain.OrderStatus)
	next, err := decide(current)
	if err != nil {
		return nil, current, current, err
	}
	payment.Status = domain.PaymentCompleted
	return payment, current, next, nil
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, orderID uint64) ([]domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockStockRepository) DecrementForOrder(ctx context.Context, orderID uint64) ([]uint64, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRedeemCodeRepository) FindByCode(ctx context.Context, code string) (*domain.RedeemCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedeemCode), args.Error(1)
}

func (m *MockRedeemCodeRepository) CreateBatch(ctx context.Context, codes []domain.RedeemCode) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

func (m *MockRedeemCodeRepository) List(ctx context.Context) ([]domain.RedeemCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RedeemCode), args.Error(1)
}

func (m *MockRedeemCodeRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]domain.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) SetApproved(ctx context.Context, id uint64, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Find(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockPaymentSettingRepository) List(ctx context.Context) ([]domain.PaymentSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentSetting), args.Error(1)
}

func (m *MockPaymentSettingRepository) Upsert(ctx context.Context, setting *domain.PaymentSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockStatsRepository) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountOrders(ctx context.Context, status domain.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountReviews(ctx context.Context, approved bool) (int64, error) {
	args := m.Called(ctx, approved)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatsRepository) CountActiveRedeemCodes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ repository.OrderRepository          = (*MockOrderRepository)(nil)
	_ repository.PaymentRepository        = (*MockPaymentRepository)(nil)
	_ repository.StockRepository          = (*MockStockRepository)(nil)
	_ repository.ProductRepository        = (*MockProductRepository)(nil)
	_ repository.RedeemCodeRepository     = (*MockRedeemCodeRepository)(nil)
	_ repository.ReviewRepository         = (*MockReviewRepository)(nil)
	_ repository.UserRepository           = (*MockUserRepository)(nil)
	_ repository.SessionRepository        = (*MockSessionRepository)(nil)
	_ repository.PaymentSettingRepository = (*MockPaymentSettingRepository)(nil)
	_ repository.StatsRepository          = (*MockStatsRepository)(nil)
)
