package gormdb

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// RepositoryTestSuite runs against a real Postgres database. Set TEST_DB_DSN
// to a disposable database to enable it.
type RepositoryTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	orders   repository.OrderRepository
	payments repository.PaymentRepository
	products repository.ProductRepository
	codes    repository.RedeemCodeRepository
	reviews  repository.ReviewRepository
	settings repository.PaymentSettingRepository
	stock    repository.StockRepository
	users    repository.UserRepository
}

func (s *RepositoryTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		s.T().Skip("TEST_DB_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(s.T(), err)
	s.db = db
	s.ctx = context.Background()

	s.orders = NewOrderRepository(db)
	s.payments = NewPaymentRepository(db)
	s.products = NewProductRepository(db)
	s.codes = NewRedeemCodeRepository(db)
	s.reviews = NewReviewRepository(db)
	s.settings = NewPaymentSettingRepository(db)
	s.stock = NewStockRepository(db)
	s.users = NewUserRepository(db)
}

func (s *RepositoryTestSuite) SetupTest() {
	require.NoError(s.T(), Migrate(s.db))
	err := s.db.Exec(`TRUNCATE payments, order_items, orders, reviews, redeem_codes, products,
		sessions, users, payment_settings RESTART IDENTITY CASCADE`).Error
	require.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	if s.db == nil {
		return
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *RepositoryTestSuite) seedProduct(code string, stock int) *domain.Product {
	p := &domain.Product{
		ProductCode: code,
		Name:        "Product " + code,
		Price:       decimal.NewFromInt(100),
		Stock:       stock,
		IsActive:    true,
	}
	require.NoError(s.T(), s.products.Create(s.ctx, p))
	return p
}

func (s *RepositoryTestSuite) seedOrder(email string, status domain.OrderStatus, items ...domain.OrderItem) *domain.Order {
	o := &domain.Order{
		CustomerName:   "Jane",
		CustomerEmail:  email,
		Subtotal:       decimal.NewFromInt(100),
		DiscountAmount: decimal.Zero,
		VATAmount:      decimal.NewFromInt(7),
		Total:          decimal.NewFromInt(107),
		Status:         status,
		PaymentMethod:  domain.MethodWise,
		Items:          items,
	}
	require.NoError(s.T(), s.orders.Create(s.ctx, o))
	return o
}

func line(p *domain.Product, qty int) domain.OrderItem {
	return domain.OrderItem{ProductID: p.ID, ProductName: p.Name, Quantity: qty, Price: p.Price}
}

func (s *RepositoryTestSuite) TestOrderCreateLoadsItemsWithProductCodes() {
	a := s.seedProduct("SKU-A", 5)
	b := s.seedProduct("SKU-B", 5)
	o := s.seedOrder("jane@example.com", domain.StatusPending, line(a, 2), line(b, 1))

	got, err := s.orders.FindByID(s.ctx, o.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Items, 2)
	require.Equal(s.T(), "SKU-A", got.Items[0].ProductCode)
	require.Equal(s.T(), "SKU-B", got.Items[1].ProductCode)
	require.True(s.T(), got.Total.Equal(decimal.NewFromInt(107)))

	_, err = s.orders.FindByID(s.ctx, o.ID+100)
	require.True(s.T(), domain.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestOrderCreateTakesLastRedeemUse() {
	p := s.seedProduct("SKU-A", 5)
	code := domain.RedeemCode{Code: "ONCE", DiscountPercent: decimal.NewFromInt(10), DiscountAmount: decimal.Zero, MaxUses: 1, IsActive: true}
	require.NoError(s.T(), s.codes.CreateBatch(s.ctx, []domain.RedeemCode{code}))
	stored, err := s.codes.FindByCode(s.ctx, "ONCE")
	require.NoError(s.T(), err)

	first := &domain.Order{
		CustomerName: "A", CustomerEmail: "a@example.com", Status: domain.StatusPending,
		PaymentMethod: domain.MethodWise, RedeemCodeID: &stored.ID, RedeemCode: stored.Code,
		Items: []domain.OrderItem{line(p, 1)},
	}
	require.NoError(s.T(), s.orders.Create(s.ctx, first))

	second := &domain.Order{
		CustomerName: "B", CustomerEmail: "b@example.com", Status: domain.StatusPending,
		PaymentMethod: domain.MethodWise, RedeemCodeID: &stored.ID, RedeemCode: stored.Code,
		Items: []domain.OrderItem{line(p, 1)},
	}
	err = s.orders.Create(s.ctx, second)
	require.ErrorIs(s.T(), err, domain.ErrCodeExhausted)

	stored, err = s.codes.FindByCode(s.ctx, "ONCE")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, stored.UsedCount)

	orders, err := s.orders.List(s.ctx, repository.OrderFilter{})
	require.NoError(s.T(), err)
	require.Len(s.T(), orders, 1)
}

func (s *RepositoryTestSuite) TestTransitionStatusUsesDecider() {
	p := s.seedProduct("SKU-A", 5)
	o := s.seedOrder("jane@example.com", domain.StatusPaid, line(p, 1))

	prev, next, err := s.orders.TransitionStatus(s.ctx, o.ID, func(cur domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForPayment(cur, domain.PaymentPending)
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), domain.StatusPaid, prev)
	require.Equal(s.T(), domain.StatusPaid, next)

	_, _, err = s.orders.TransitionStatus(s.ctx, o.ID, func(cur domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForAdmin(cur, domain.StatusCancelled)
	})
	var conflict *domain.ConflictError
	require.ErrorAs(s.T(), err, &conflict)

	got, err := s.orders.FindByID(s.ctx, o.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), domain.StatusPaid, got.Status)
}

func (s *RepositoryTestSuite) TestConcurrentPaymentsSettleOnce() {
	p := s.seedProduct("SKU-A", 3)
	o := s.seedOrder("jane@example.com", domain.StatusPending, line(p, 2))

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		settled int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payment := &domain.Payment{
				OrderID: o.ID, PaymentMethod: domain.MethodWise, TransactionID: "TX",
				Amount: decimal.NewFromInt(107), Status: domain.PaymentCompleted,
			}
			prev, next, err := s.payments.Record(s.ctx, payment, func(cur domain.OrderStatus) (domain.OrderStatus, error) {
				return domain.NextStatusForPayment(cur, payment.Status)
			})
			if err != nil {
				return
			}
			if !prev.IsSettled() && next.IsSettled() {
				mu.Lock()
				settled++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(s.T(), 1, settled)

	payments, err := s.payments.List(s.ctx, o.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), payments, workers)
}

func (s *RepositoryTestSuite) TestDecrementForOrderFloorsAtZero() {
	plenty := s.seedProduct("SKU-A", 10)
	scarce := s.seedProduct("SKU-B", 1)
	o := s.seedOrder("jane@example.com", domain.StatusPaid, line(plenty, 3), line(scarce, 4))

	touched, err := s.stock.DecrementForOrder(s.ctx, o.ID)
	require.NoError(s.T(), err)
	require.ElementsMatch(s.T(), []uint64{plenty.ID, scarce.ID}, touched)

	got, err := s.products.FindByID(s.ctx, plenty.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 7, got.Stock)

	got, err = s.products.FindByID(s.ctx, scarce.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, got.Stock)
}

func (s *RepositoryTestSuite) TestMarkCompletedRejectsSecondConfirm() {
	p := s.seedProduct("SKU-A", 3)
	o := s.seedOrder("jane@example.com", domain.StatusPending, line(p, 1))
	payment := &domain.Payment{OrderID: o.ID, PaymentMethod: domain.MethodWise, TransactionID: "TX", Amount: o.Total, Status: domain.PaymentPending}
	decidePending := func(cur domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForPayment(cur, domain.PaymentPending)
	}
	_, next, err := s.payments.Record(s.ctx, payment, decidePending)
	require.NoError(s.T(), err)
	require.Equal(s.T(), domain.StatusPaymentPending, next)

	decideCompleted := func(cur domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForPayment(cur, domain.PaymentCompleted)
	}
	confirmed, prev, next, err := s.payments.MarkCompleted(s.ctx, payment.ID, decideCompleted)
	require.NoError(s.T(), err)
	require.Equal(s.T(), domain.PaymentCompleted, confirmed.Status)
	require.Equal(s.T(), domain.StatusPaymentPending, prev)
	require.Equal(s.T(), domain.StatusPaid, next)

	_, _, _, err = s.payments.MarkCompleted(s.ctx, payment.ID, decideCompleted)
	var conflict *domain.ConflictError
	require.ErrorAs(s.T(), err, &conflict)
}

func (s *RepositoryTestSuite) TestHasCompletedPurchase() {
	p := s.seedProduct("SKU-A", 3)
	other := s.seedProduct("SKU-B", 3)
	user := &domain.User{Email: "jane@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(s.T(), s.users.Create(s.ctx, user))

	s.seedOrder("jane@example.com", domain.StatusCompleted, line(p, 1))
	s.seedOrder("jane@example.com", domain.StatusPaid, line(other, 1))

	ok, err := s.orders.HasCompletedPurchase(s.ctx, user.ID, user.Email, p.ID)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	ok, err = s.orders.HasCompletedPurchase(s.ctx, user.ID, user.Email, other.ID)
	require.NoError(s.T(), err)
	require.False(s.T(), ok)

	ok, err = s.orders.HasCompletedPurchase(s.ctx, user.ID+1, "someone@example.com", p.ID)
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
}

func (s *RepositoryTestSuite) TestReviewListFiltersApproved() {
	p := s.seedProduct("SKU-A", 3)
	user := &domain.User{Email: "jane@example.com", Name: "Jane", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(s.T(), s.users.Create(s.ctx, user))

	approved := &domain.Review{ProductID: p.ID, UserID: user.ID, Rating: 5, Comment: "great"}
	hidden := &domain.Review{ProductID: p.ID, UserID: user.ID, Rating: 1, Comment: "meh"}
	require.NoError(s.T(), s.reviews.Create(s.ctx, approved))
	require.NoError(s.T(), s.reviews.Create(s.ctx, hidden))
	require.NoError(s.T(), s.reviews.SetApproved(s.ctx, approved.ID, true))

	yes := true
	got, err := s.reviews.List(s.ctx, repository.ReviewFilter{ProductID: p.ID, Approved: &yes})
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	require.Equal(s.T(), approved.ID, got[0].ID)
	require.Equal(s.T(), "Jane", got[0].AuthorName)

	err = s.reviews.SetApproved(s.ctx, hidden.ID+100, true)
	require.True(s.T(), domain.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestSettingUpsertReplacesDetails() {
	first := &domain.PaymentSetting{Method: domain.MethodWise, Enabled: true, Details: map[string]any{"account": "1"}}
	require.NoError(s.T(), s.settings.Upsert(s.ctx, first))

	second := &domain.PaymentSetting{Method: domain.MethodWise, Enabled: false, Details: map[string]any{"account": "2"}, UpdatedAt: time.Now()}
	require.NoError(s.T(), s.settings.Upsert(s.ctx, second))

	got, err := s.settings.List(s.ctx)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	require.False(s.T(), got[0].Enabled)
	require.Equal(s.T(), "2", got[0].Details["account"])
}

func (s *RepositoryTestSuite) TestMissingTableReportsSchemaError() {
	require.NoError(s.T(), s.db.Migrator().DropTable(&domain.Review{}))

	_, err := s.reviews.List(s.ctx, repository.ReviewFilter{})
	require.True(s.T(), domain.IsSchemaNotInitialized(err))
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
