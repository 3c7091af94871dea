package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/mocks"
)

func TestDashboardService_Stats(t *testing.T) {
	stats := new(mocks.MockStatsRepository)
	stats.On("CountProducts", mock.Anything, false).Return(int64(12), nil)
	stats.On("CountProducts", mock.Anything, true).Return(int64(9), nil)
	stats.On("CountOrders", mock.Anything, domain.OrderStatus("")).Return(int64(30), nil)
	stats.On("CountOrders", mock.Anything, domain.StatusPending).Return(int64(4), nil)
	stats.On("CountOrders", mock.Anything, domain.StatusPaymentPending).Return(int64(6), nil)
	stats.On("CountOrders", mock.Anything, domain.StatusPaid).Return(int64(10), nil)
	stats.On("CountOrders", mock.Anything, domain.StatusCompleted).Return(int64(8), nil)
	stats.On("CountOrders", mock.Anything, domain.StatusCancelled).Return(int64(2), nil)
	stats.On("CountReviews", mock.Anything, false).Return(int64(3), nil)
	stats.On("CountActiveRedeemCodes", mock.Anything).Return(int64(7), nil)

	out, err := NewDashboardService(stats).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Products)
	assert.Equal(t, int64(9), out.ActiveProducts)
	assert.Equal(t, int64(30), out.Orders)
	assert.Equal(t, int64(10), out.OrdersByStatus[domain.StatusPaid])
	assert.Equal(t, int64(3), out.PendingReviews)
	assert.Equal(t, int64(7), out.ActiveCodes)
}

func TestDashboardService_StatsFailure(t *testing.T) {
	stats := new(mocks.MockStatsRepository)
	stats.On("CountProducts", mock.Anything, mock.Anything).Return(int64(0), nil)
	stats.On("CountOrders", mock.Anything, mock.Anything).Return(int64(0), nil)
	stats.On("CountReviews", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))
	stats.On("CountActiveRedeemCodes", mock.Anything).Return(int64(0), nil)

	_, err := NewDashboardService(stats).Stats(context.Background())
	assert.EqualError(t, err, "connection reset")
}
