package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/mocks"
)

func TestSettingsService_ListEnabled(t *testing.T) {
	repo := new(mocks.MockPaymentSettingRepository)
	repo.On("List", mock.Anything).Return([]domain.PaymentSetting{
		{Method: domain.MethodWise, Enabled: true, Details: map[string]any{"email": "pay@example.com"}},
		{Method: domain.MethodWesternUnion, Enabled: false},
	}, nil)

	out, err := NewSettingsService(repo, testLogger).ListEnabled(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.MethodWise, out[0].Method)
}

func TestSettingsService_Upsert(t *testing.T) {
	repo := new(mocks.MockPaymentSettingRepository)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.PaymentSetting) bool {
		return s.Method == domain.MethodPromptPay && s.Enabled && s.Details["promptpay_id"] == "0812345678"
	})).Return(nil)

	s := NewSettingsService(repo, testLogger)
	st, err := s.Upsert(context.Background(), domain.MethodPromptPay, true, map[string]any{"promptpay_id": "0812345678"})
	require.NoError(t, err)
	assert.True(t, st.Enabled)

	_, err = s.Upsert(context.Background(), "paypal", true, nil)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "method", ve.Field)
}
