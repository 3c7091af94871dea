package services

import (
	"context"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// DownloadService hands out product files to buyers with a completed order.
type DownloadService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   zerolog.Logger
}

func NewDownloadService(products repository.ProductRepository, orders repository.OrderRepository, logger zerolog.Logger) *DownloadService {
	return &DownloadService{
		products: products,
		orders:   orders,
		logger:   logger.With().Str("component", "download_service").Logger(),
	}
}

func (s *DownloadService) Resolve(ctx context.Context, user *domain.User, productID uint64) (string, error) {
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if product.FileURL == "" {
		return "", &domain.NotFoundError{Resource: "download", ID: productID}
	}

	if !user.IsAdmin() {
		ok, err := s.orders.HasCompletedPurchase(ctx, user.ID, user.Email, productID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrForbidden
		}
	}

	s.logger.Info().Uint64("user_id", user.ID).Uint64("product_id", productID).Msg("download granted")
	return product.FileURL, nil
}
