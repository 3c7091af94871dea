package services

import (
	"context"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   zerolog.Logger
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		logger:   logger.With().Str("component", "review_service").Logger(),
	}
}

// Submit stores a review for moderation. It stays hidden until approved.
func (s *ReviewService) Submit(ctx context.Context, r *domain.Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := s.products.FindByID(ctx, r.ProductID); err != nil {
		return err
	}

	r.IsApproved = false
	if err := s.reviews.Create(ctx, r); err != nil {
		return err
	}
	s.logger.Info().Uint64("review_id", r.ID).Uint64("product_id", r.ProductID).Int("rating", r.Rating).Msg("review submitted")
	return nil
}

func (s *ReviewService) ListPublic(ctx context.Context, productID uint64) ([]domain.Review, error) {
	approved := true
	return s.reviews.List(ctx, repository.ReviewFilter{ProductID: productID, Approved: &approved})
}

func (s *ReviewService) ListForAdmin(ctx context.Context, approved *bool) ([]domain.Review, error) {
	return s.reviews.List(ctx, repository.ReviewFilter{Approved: approved})
}

func (s *ReviewService) Approve(ctx context.Context, id uint64) error {
	return s.reviews.SetApproved(ctx, id, true)
}

func (s *ReviewService) Reject(ctx context.Context, id uint64) error {
	return s.reviews.SetApproved(ctx, id, false)
}

func (s *ReviewService) Delete(ctx context.Context, id uint64) error {
	return s.reviews.Delete(ctx, id)
}
