package repository

import (
	"context"
	"errors"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type brandProductRepository struct {
	db *gorm.DB
}

// NewBrandProductRepository создает новый репозиторий связок бренд-товар
func NewBrandProductRepository(db *gorm.DB) BrandProductRepository {
	return &brandProductRepository{db: db}
}

// Create создает связку бренд-товар
// Дубликат пары (brand_id, product_id) -> ErrDuplicateKey
func (r *brandProductRepository) Create(ctx context.Context, brandProduct *entity.BrandProduct) error {
	result := r.db.WithContext(ctx).Create(brandProduct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create brand product: %w", result.Error)
	}
	return nil
}

// GetByID получает связку вместе с брендом и товаром
func (r *brandProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BrandProduct, error) {
	var brandProduct entity.BrandProduct
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Product").
		First(&brandProduct, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBrandProductNotFound
		}
		return nil, fmt.Errorf("failed to get brand product: %w", result.Error)
	}

	return &brandProduct, nil
}

// List возвращает связки с фильтрами по бренду и товару
func (r *brandProductRepository) List(ctx context.Context, filter *entity.BrandProductFilter) ([]entity.BrandProduct, int64, error) {
	apply := func(db *gorm.DB) *gorm.DB {
		if filter.BrandID != nil {
			db = db.Where("brand_id = ?", *filter.BrandID)
		}
		if filter.ProductID != nil {
			db = db.Where("product_id = ?", *filter.ProductID)
		}
		return db
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&entity.BrandProduct{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brand products: %w", err)
	}

	var brandProducts []entity.BrandProduct
	result := apply(r.db.WithContext(ctx).Model(&entity.BrandProduct{})).
		Preload("Brand").
		Preload("Product").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&brandProducts)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list brand products: %w", result.Error)
	}

	return brandProducts, total, nil
}
