package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/repository"
)

const stockAdjustTimeout = 10 * time.Second

type CacheInvalidator interface {
	Invalidate(ctx context.Context, productIDs ...uint64)
}

// StockAdjuster takes an order's quantities off product stock once the order
// is paid. It never reports failure: a broken stock update is logged and the
// payment that triggered it still stands.
type StockAdjuster struct {
	stock  repository.StockRepository
	cache  CacheInvalidator
	logger zerolog.Logger
}

func NewStockAdjuster(stock repository.StockRepository, cache CacheInvalidator, logger zerolog.Logger) *StockAdjuster {
	return &StockAdjuster{
		stock:  stock,
		cache:  cache,
		logger: logger.With().Str("component", "stock_adjuster").Logger(),
	}
}

// AdjustForOrder runs after the status change has committed, so it must not
// die with the request that triggered it.
func (a *StockAdjuster) AdjustForOrder(ctx context.Context, orderID uint64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stockAdjustTimeout)
	defer cancel()

	touched, err := a.stock.DecrementForOrder(ctx, orderID)
	if err != nil {
		a.logger.Error().Err(err).Uint64("order_id", orderID).Msg("failed to decrement stock")
		return
	}
	a.logger.Info().Uint64("order_id", orderID).Int("products", len(touched)).Msg("stock decremented")

	if a.cache != nil && len(touched) > 0 {
		a.cache.Invalidate(ctx, touched...)
	}
}
