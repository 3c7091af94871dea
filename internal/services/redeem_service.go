package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	maxGenerateCount = 500
	codeSuffixLength = 8
)

type RedeemService struct {
	codes    repository.RedeemCodeRepository
	products repository.ProductRepository
	vatRate  decimal.Decimal
	logger   zerolog.Logger
	now      func() time.Time
}

func NewRedeemService(
	codes repository.RedeemCodeRepository,
	products repository.ProductRepository,
	vatRate decimal.Decimal,
	logger zerolog.Logger,
) *RedeemService {
	return &RedeemService{
		codes:    codes,
		products: products,
		vatRate:  vatRate,
		logger:   logger.With().Str("component", "redeem_service").Logger(),
		now:      time.Now,
	}
}

// Lookup finds a code and checks it can still be redeemed.
func (s *RedeemService) Lookup(ctx context.Context, code string) (*domain.RedeemCode, error) {
	code = domain.NormalizeCode(code)
	if code == "" {
		return nil, domain.NewValidationError("code", "is required")
	}

	rc, err := s.codes.FindByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.ValidationError{Field: "code", Err: domain.ErrCodeNotFound}
		}
		return nil, err
	}
	if err := rc.Check(s.now()); err != nil {
		return nil, err
	}
	return rc, nil
}

type Validation struct {
	Discount domain.Discount `json:"discount"`
	Quote    domain.Quote    `json:"quote"`
}

// Validate checks a code against a cart and prices the cart with it. Nothing
// is consumed, usage is only counted when an order is placed.
func (s *RedeemService) Validate(ctx context.Context, code string, cart []CartItem) (*Validation, error) {
	rc, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	items, err := snapshotItems(ctx, s.products, cart)
	if err != nil {
		return nil, err
	}

	d := rc.Discount()
	quote, err := domain.NewQuote(domain.LinesFromItems(items), &d, s.vatRate)
	if err != nil {
		return nil, err
	}
	return &Validation{Discount: d, Quote: quote}, nil
}

type GenerateInput struct {
	Count           int             `json:"count" binding:"required"`
	Prefix          string          `json:"prefix"`
	ProductID       *uint64         `json:"product_id"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	MaxUses         int             `json:"max_uses"`
	ExpiresAt       *time.Time      `json:"expires_at"`
}

// Generate issues a batch of codes sharing the same terms.
func (s *RedeemService) Generate(ctx context.Context, in GenerateInput) ([]domain.RedeemCode, error) {
	if in.Count < 1 || in.Count > maxGenerateCount {
		return nil, domain.NewValidationError("count", "must be between 1 and 500")
	}
	if in.MaxUses == 0 {
		in.MaxUses = 1
	}
	if in.ProductID != nil {
		if _, err := s.products.FindByID(ctx, *in.ProductID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("product_id", "product does not exist")
			}
			return nil, err
		}
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return nil, domain.NewValidationError("expires_at", "must be in the future")
	}

	prefix := domain.NormalizeCode(in.Prefix)
	codes := make([]domain.RedeemCode, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		rc := domain.RedeemCode{
			Code:            prefix + randomSuffix(),
			ProductID:       in.ProductID,
			DiscountPercent: in.DiscountPercent,
			DiscountAmount:  in.DiscountAmount,
			MaxUses:         in.MaxUses,
			ExpiresAt:       in.ExpiresAt,
			IsActive:        true,
		}
		if i == 0 {
			if err := rc.ValidateTerms(); err != nil {
				return nil, err
			}
		}
		codes = append(codes, rc)
	}

	if err := s.codes.CreateBatch(ctx, codes); err != nil {
		return nil, err
	}
	s.logger.Info().Int("count", len(codes)).Str("prefix", prefix).Msg("redeem codes generated")
	return codes, nil
}

func randomSuffix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:codeSuffixLength])
}

func (s *RedeemService) List(ctx context.Context) ([]domain.RedeemCode, error) {
	return s.codes.List(ctx)
}

func (s *RedeemService) Delete(ctx context.Context, id uint64) error {
	return s.codes.Delete(ctx, id)
}
