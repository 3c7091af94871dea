package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/infra/events"
	"storefront/internal/repository"
)

// PaymentService records payment proofs and moves orders along with them.
type PaymentService struct {
	payments  repository.PaymentRepository
	orders    repository.OrderRepository
	stock     *StockAdjuster
	publisher events.Publisher
	logger    zerolog.Logger
}

func NewPaymentService(
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	stock *StockAdjuster,
	publisher events.Publisher,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		orders:    orders,
		stock:     stock,
		publisher: publisher,
		logger:    logger.With().Str("component", "payment_service").Logger(),
	}
}

type PaymentResult struct {
	Payment        *domain.Payment    `json:"payment"`
	PreviousStatus domain.OrderStatus `json:"previous_status"`
	OrderStatus    domain.OrderStatus `json:"order_status"`
}

// SubmitPayment stores a payment proof. A completed payment marks the order
// paid, anything else leaves it waiting as payment_pending. Stock is taken
// only on the transition from unsettled to settled, so repeated payments on
// one order never take it twice.
func (s *PaymentService) SubmitPayment(ctx context.Context, p *domain.Payment) (*PaymentResult, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Amount.IsZero() {
		order, err := s.orders.FindByID(ctx, p.OrderID)
		if err != nil {
			return nil, err
		}
		p.Amount = order.Total
	}

	prev, next, err := s.payments.Record(ctx, p, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForPayment(current, p.Status)
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, p, prev, next)
	return &PaymentResult{Payment: p, PreviousStatus: prev, OrderStatus: next}, nil
}

// ConfirmPayment marks a pending payment as completed after an admin matched
// it against the incoming transfer.
func (s *PaymentService) ConfirmPayment(ctx context.Context, id uint64) (*PaymentResult, error) {
	p, prev, next, err := s.payments.MarkCompleted(ctx, id, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		return domain.NextStatusForPayment(current, domain.PaymentCompleted)
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, p, prev, next)
	return &PaymentResult{Payment: p, PreviousStatus: prev, OrderStatus: next}, nil
}

func (s *PaymentService) afterTransition(ctx context.Context, p *domain.Payment, prev, next domain.OrderStatus) {
	s.logger.Info().
		Uint64("payment_id", p.ID).
		Uint64("order_id", p.OrderID).
		Str("method", string(p.PaymentMethod)).
		Str("status", string(p.Status)).
		Str("order_from", string(prev)).
		Str("order_to", string(next)).
		Msg("payment recorded")

	if !prev.IsSettled() && next.IsSettled() {
		s.stock.AdjustForOrder(ctx, p.OrderID)
	}

	publishAsync(s.publisher, s.logger, domain.EventPaymentSubmitted, domain.PaymentSubmittedEvent{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		Status:        p.Status,
		OrderStatus:   next,
		CreatedAt:     time.Now(),
	})
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint64) (*domain.Payment, error) {
	return s.payments.FindByID(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, orderID uint64) ([]domain.Payment, error) {
	return s.payments.List(ctx, orderID)
}
