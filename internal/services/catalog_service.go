package services

import (
	"context"

	"github.com/rs/zerolog"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CatalogService struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

func NewCatalogService(products repository.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger.With().Str("component", "catalog_service").Logger(),
	}
}

// ListPublic returns the active products with their download location
// stripped.
func (s *CatalogService) ListPublic(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	filter.ActiveOnly = true
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Public())
	}
	return out, nil
}

func (s *CatalogService) GetPublic(ctx context.Context, id uint64) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, &domain.NotFoundError{Resource: "product", ID: id}
	}
	pub := p.Public()
	return &pub, nil
}

func (s *CatalogService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *CatalogService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Product) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info().Uint64("product_id", p.ID).Str("code", p.ProductCode).Msg("product created")
	return nil
}

func (s *CatalogService) Update(ctx context.Context, p *domain.Product) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	s.logger.Info().Uint64("product_id", p.ID).Msg("product updated")
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint64("product_id", id).Msg("product deleted")
	return nil
}
