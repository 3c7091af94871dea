package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/mocks"
)

func TestRedeemService_Validate(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	otherProduct := uint64(99)

	tests := []struct {
		name          string
		code          *domain.RedeemCode
		expectedError error
		expectedTotal string
	}{
		{
			name:          "ten percent code",
			code:          testCode("WELCOME10"),
			expectedTotal: "240.75",
		},
		{
			name:          "inactive code",
			code:          &domain.RedeemCode{Code: "WELCOME10", DiscountPercent: dec("10"), MaxUses: 1, IsActive: false},
			expectedError: domain.ErrCodeInactive,
		},
		{
			name:          "expired code",
			code:          &domain.RedeemCode{Code: "WELCOME10", DiscountPercent: dec("10"), MaxUses: 1, IsActive: true, ExpiresAt: &yesterday},
			expectedError: domain.ErrCodeExpired,
		},
		{
			name:          "used up code",
			code:          &domain.RedeemCode{Code: "WELCOME10", DiscountPercent: dec("10"), MaxUses: 2, UsedCount: 2, IsActive: true},
			expectedError: domain.ErrCodeExhausted,
		},
		{
			name:          "code for a product not in the cart",
			code:          &domain.RedeemCode{Code: "WELCOME10", DiscountPercent: dec("10"), MaxUses: 2, IsActive: true, ProductID: &otherProduct},
			expectedError: domain.ErrCodeNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := new(mocks.MockRedeemCodeRepository)
			products := new(mocks.MockProductRepository)
			codes.On("FindByCode", mock.Anything, "WELCOME10").Return(tt.code, nil)
			products.On("FindByIDs", mock.Anything, []uint64{1, 2}).Return(testProducts(), nil).Maybe()

			s := NewRedeemService(codes, products, domain.DefaultVATRate, testLogger)
			s.now = func() time.Time { return now }

			res, err := s.Validate(context.Background(), "welcome10", testCart())

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "code", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.expectedTotal).Equal(res.Quote.Total))
			assert.True(t, dec("25").Equal(res.Quote.Discount))
		})
	}
}

func TestRedeemService_ValidateUnknownCode(t *testing.T) {
	codes := new(mocks.MockRedeemCodeRepository)
	codes.On("FindByCode", mock.Anything, "GHOST").Return(nil, &domain.NotFoundError{Resource: "redeem code", ID: "GHOST"})

	s := NewRedeemService(codes, new(mocks.MockProductRepository), domain.DefaultVATRate, testLogger)
	_, err := s.Validate(context.Background(), "ghost", testCart())

	assert.ErrorIs(t, err, domain.ErrCodeNotFound)
}

func TestRedeemService_Generate(t *testing.T) {
	codes := new(mocks.MockRedeemCodeRepository)
	codes.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.RedeemCode) bool {
		return len(batch) == 20
	})).Return(nil)

	s := NewRedeemService(codes, new(mocks.MockProductRepository), domain.DefaultVATRate, testLogger)
	out, err := s.Generate(context.Background(), GenerateInput{
		Count:           20,
		Prefix:          "sale-",
		DiscountPercent: dec("15"),
	})

	require.NoError(t, err)
	require.Len(t, out, 20)

	seen := make(map[string]bool, len(out))
	for _, c := range out {
		assert.True(t, strings.HasPrefix(c.Code, "SALE-"), c.Code)
		assert.Len(t, c.Code, len("SALE-")+codeSuffixLength)
		assert.Equal(t, strings.ToUpper(c.Code), c.Code)
		assert.Equal(t, 1, c.MaxUses)
		assert.True(t, c.IsActive)
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true
	}
	codes.AssertExpectations(t)
}

func TestRedeemService_GenerateRejectsBadInput(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	missing := uint64(404)

	tests := []struct {
		name  string
		input GenerateInput
		setup func(products *mocks.MockProductRepository)
		field string
	}{
		{name: "zero codes", input: GenerateInput{Count: 0, DiscountPercent: dec("5")}, field: "count"},
		{name: "too many codes", input: GenerateInput{Count: 501, DiscountPercent: dec("5")}, field: "count"},
		{name: "no discount", input: GenerateInput{Count: 1}, field: "discount_percent"},
		{name: "already expired", input: GenerateInput{Count: 1, DiscountPercent: dec("5"), ExpiresAt: &past}, field: "expires_at"},
		{
			name:  "unknown product",
			input: GenerateInput{Count: 1, DiscountPercent: dec("5"), ProductID: &missing},
			setup: func(products *mocks.MockProductRepository) {
				products.On("FindByID", mock.Anything, missing).Return(nil, &domain.NotFoundError{Resource: "product", ID: missing})
			},
			field: "product_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := new(mocks.MockRedeemCodeRepository)
			products := new(mocks.MockProductRepository)
			if tt.setup != nil {
				tt.setup(products)
			}

			s := NewRedeemService(codes, products, domain.DefaultVATRate, testLogger)
			_, err := s.Generate(context.Background(), tt.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			codes.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		})
	}
}
