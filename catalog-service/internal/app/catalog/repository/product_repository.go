package repository

import (
	"context"
	"errors"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create product: %w", result.Error)
	}
	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", result.Error)
	}

	return &product, nil
}

// List возвращает товары с фильтрами по имени и категории
func (r *productRepository) List(ctx context.Context, filter *entity.ProductFilter) ([]entity.Product, int64, error) {
	apply := func(db *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			db = db.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		return db
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&entity.Product{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []entity.Product
	result := apply(r.db.WithContext(ctx).Model(&entity.Product{})).
		Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", result.Error)
	}

	return products, total, nil
}

// Update обновляет описательные поля товара (identity неизменна)
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	// Select вместо map, чтобы units прошли через json-сериализатор
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).
		Select("name", "description", "category", "units").
		Updates(product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
