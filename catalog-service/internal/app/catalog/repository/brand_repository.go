package repository

import (
	"context"
	"errors"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository создает новый репозиторий брендов
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Create создает новый бренд. Нарушение уникальности имени -> ErrDuplicateKey
func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Create(brand)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create brand: %w", result.Error)
	}
	return nil
}

// GetByID получает бренд по ID
func (r *brandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	var brand entity.Brand
	result := r.db.WithContext(ctx).First(&brand, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", result.Error)
	}

	return &brand, nil
}

// List возвращает бренды с фильтрами и независимым count для пагинации
func (r *brandRepository) List(ctx context.Context, filter *entity.BrandFilter) ([]entity.Brand, int64, error) {
	apply := func(db *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			db = db.Where("brands.name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.ProductName != "" {
			// Бренды, у которых есть хотя бы один товар с подходящим именем
			db = db.Where(
				"EXISTS (SELECT 1 FROM brand_products bp JOIN products p ON p.id = bp.product_id WHERE bp.brand_id = brands.id AND p.name ILIKE ?)",
				"%"+filter.ProductName+"%",
			)
		}
		return db
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&entity.Brand{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	var brands []entity.Brand
	result := apply(r.db.WithContext(ctx).Model(&entity.Brand{})).
		Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&brands)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list brands: %w", result.Error)
	}

	return brands, total, nil
}

// Update обновляет бренд
func (r *brandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Model(brand).Where("id = ?", brand.ID).Updates(map[string]interface{}{
		"name": brand.Name,
		"logo": brand.Logo,
	})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update brand: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}
