package gormdb

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	return classify(r.db.WithContext(ctx).Create(product).Error, "product", product.ProductCode)
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, classify(err, "product", id)
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	var out []domain.Product
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, classify(err, "product", nil)
	}
	return out, nil
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(product_code) LIKE ?", like, like)
	}

	var out []domain.Product
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, classify(err, "product", nil)
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select(
		"product_code", "name", "description", "price", "category",
		"image_url", "file_url", "stock", "is_active",
	).Updates(product)
	if res.Error != nil {
		return classify(res.Error, "product", product.ID)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "product", ID: product.ID}
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return classify(res.Error, "product", id)
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "product", ID: id}
	}
	return nil
}
