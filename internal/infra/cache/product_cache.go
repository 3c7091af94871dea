package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	notFoundMarker  = "notfound"
	listVersionKey  = "products:list:version"
	notFoundTTL     = time.Minute
	defaultCacheTTL = 5 * time.Minute
)

// CachedProductRepository is a cache-aside decorator over a product
// repository. Single products are cached by id; listings are cached under a
// version number that every write bumps.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	redis    *redis.Client
	ttl      time.Duration
	group    singleflight.Group
	logger   zerolog.Logger
}

func NewCachedProductRepository(realRepo repository.ProductRepository, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedProductRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    rdb,
		ttl:      ttl,
		logger:   logger.With().Str("component", "product_cache").Logger(),
	}
}

func productKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, &domain.NotFoundError{Resource: "product", ID: id}
		}
		var product domain.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached product, continuing with DB")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn().Err(err).Msg("redis error, continuing with DB")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		product, err := c.realRepo.FindByID(ctx, id)
		if err != nil {
			if domain.IsNotFound(err) {
				if setErr := c.redis.Set(ctx, key, notFoundMarker, notFoundTTL).Err(); setErr != nil {
					c.logger.Warn().Err(setErr).Msg("failed to cache notfound")
				}
			}
			return nil, err
		}
		c.store(ctx, key, product)
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	product := *v.(*domain.Product)
	return &product, nil
}

func (c *CachedProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	return c.realRepo.FindByIDs(ctx, ids)
}

func (c *CachedProductRepository) listVersion(ctx context.Context) int64 {
	v, err := c.redis.Get(ctx, listVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("failed to read list version")
	}
	return v
}

func (c *CachedProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	key := fmt.Sprintf("products:list:v%d:%s:%s:%s",
		c.listVersion(ctx), filter.Category, filter.Search, strconv.FormatBool(filter.ActiveOnly))

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("redis error, continuing with DB")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		products, err := c.realRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]domain.Product(nil), v.([]domain.Product)...), nil
}

func (c *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := c.realRepo.Create(ctx, product); err != nil {
		return err
	}
	c.Invalidate(ctx)
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	err := c.realRepo.Update(ctx, product)
	c.Invalidate(ctx, product.ID)
	return err
}

func (c *CachedProductRepository) Delete(ctx context.Context, id uint64) error {
	err := c.realRepo.Delete(ctx, id)
	c.Invalidate(ctx, id)
	return err
}

// Invalidate drops the given products and every cached listing.
func (c *CachedProductRepository) Invalidate(ctx context.Context, ids ...uint64) {
	if len(ids) > 0 {
		keys := make([]string, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, productKey(id))
		}
		if err := c.redis.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to delete product cache")
		}
	}
	if err := c.redis.Incr(ctx, listVersionKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to bump list version")
	}
}

func (c *CachedProductRepository) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to marshal product")
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache product")
	}
}

var _ repository.ProductRepository = (*CachedProductRepository)(nil)
