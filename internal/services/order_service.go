package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/infra/events"
	"storefront/internal/repository"
)

// a client total may differ from ours by rounding, nothing more
var totalTolerance = decimal.RequireFromString("0.01")

type OrderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	redeem    *RedeemService
	stock     *StockAdjuster
	publisher events.Publisher
	vatRate   decimal.Decimal
	logger    zerolog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	redeem *RedeemService,
	stock *StockAdjuster,
	publisher events.Publisher,
	vatRate decimal.Decimal,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		redeem:    redeem,
		stock:     stock,
		publisher: publisher,
		vatRate:   vatRate,
		logger:    logger.With().Str("component", "order_service").Logger(),
	}
}

type CreateOrderInput struct {
	Customer      domain.Customer
	Items         []CartItem
	PaymentMethod domain.PaymentMethod
	RedeemCode    string
	// Total is what the client displayed at checkout, if it sent one.
	Total  *decimal.Decimal
	UserID *uint64
}

func validateCustomer(c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)

	if c.Name == "" {
		return domain.NewValidationError("customer_name", "is required")
	}
	if c.Email == "" {
		return domain.NewValidationError("customer_email", "is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return domain.NewValidationError("customer_email", "is not a valid email address")
	}
	return nil
}

// CreateOrder prices the cart from current catalog prices, applies the redeem
// code and VAT, and stores the order as pending.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := validateCustomer(&in.Customer); err != nil {
		return nil, err
	}
	if !in.PaymentMethod.Valid() {
		return nil, domain.NewValidationError("payment_method", "must be one of wise, western_union, promptpay")
	}

	items, err := snapshotItems(ctx, s.products, in.Items)
	if err != nil {
		return nil, err
	}

	var discount *domain.Discount
	if strings.TrimSpace(in.RedeemCode) != "" {
		code, err := s.redeem.Lookup(ctx, in.RedeemCode)
		if err != nil {
			return nil, err
		}
		d := code.Discount()
		discount = &d
	}

	quote, err := domain.NewQuote(domain.LinesFromItems(items), discount, s.vatRate)
	if err != nil {
		return nil, err
	}
	if in.Total != nil && in.Total.Sub(quote.Total).Abs().GreaterThan(totalTolerance) {
		return nil, domain.NewValidationError("total",
			fmt.Sprintf("does not match the computed total %s", quote.Total.StringFixed(2)))
	}

	order := &domain.Order{
		UserID:         in.UserID,
		CustomerName:   in.Customer.Name,
		CustomerEmail:  in.Customer.Email,
		CustomerPhone:  in.Customer.Phone,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.Discount,
		VATAmount:      quote.VAT,
		Total:          quote.Total,
		Status:         domain.StatusPending,
		PaymentMethod:  in.PaymentMethod,
		Items:          items,
		CreatedAt:      time.Now(),
	}
	if discount != nil {
		order.RedeemCodeID = &discount.CodeID
		order.RedeemCode = discount.Code
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info().Uint64("order_id", order.ID).Str("total", order.Total.StringFixed(2)).Msg("order created")

	publishAsync(s.publisher, s.logger, domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	})

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown order status")
	}
	return s.orders.List(ctx, filter)
}

// ListMyOrders returns orders placed while signed in as well as guest orders
// made with the same email.
func (s *OrderService) ListMyOrders(ctx context.Context, user *domain.User) ([]domain.Order, error) {
	id := user.ID
	return s.orders.List(ctx, repository.OrderFilter{UserID: &id, Email: user.Email})
}

// UpdateStatus applies a back-office status change. Moving an unsettled order
// to paid or completed takes its stock.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint64, next domain.OrderStatus) (*domain.Order, error) {
	prev, cur, err := s.orders.TransitionStatus(ctx, id, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForAdmin(current, next)
	})
	if err != nil {
		return nil, err
	}

	if !prev.IsSettled() && cur.IsSettled() {
		s.stock.AdjustForOrder(ctx, id)
	}
	if prev != cur {
		s.logger.Info().Uint64("order_id", id).Str("from", string(prev)).Str("to", string(cur)).Msg("order status changed")
		publishAsync(s.publisher, s.logger, domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
			OrderID:   id,
			From:      prev,
			To:        cur,
			ChangedAt: time.Now(),
		})
	}

	return s.orders.FindByID(ctx, id)
}
