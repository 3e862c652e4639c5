package repository

import (
	"context"
	"errors"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supermarketRepository struct {
	db *gorm.DB
}

// NewSupermarketRepository создает новый репозиторий супермаркетов
func NewSupermarketRepository(db *gorm.DB) SupermarketRepository {
	return &supermarketRepository{db: db}
}

func (r *supermarketRepository) Create(ctx context.Context, supermarket *entity.Supermarket) error {
	result := r.db.WithContext(ctx).Create(supermarket)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create supermarket: %w", result.Error)
	}
	return nil
}

// GetByID получает супермаркет вместе с информацией о сети
func (r *supermarketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supermarket, error) {
	var supermarket entity.Supermarket
	result := r.db.WithContext(ctx).Preload("Franchise").First(&supermarket, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSupermarketNotFound
		}
		return nil, fmt.Errorf("failed to get supermarket: %w", result.Error)
	}

	return &supermarket, nil
}

// List возвращает супермаркеты с фильтрами и независимым count
func (r *supermarketRepository) List(ctx context.Context, filter *entity.SupermarketFilter) ([]entity.Supermarket, int64, error) {
	apply := func(db *gorm.DB) *gorm.DB {
		if filter.Name != "" {
			db = db.Where("name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.City != "" {
			db = db.Where("city ILIKE ?", "%"+filter.City+"%")
		}
		if filter.FranchiseID != nil {
			db = db.Where("franchise_id = ?", *filter.FranchiseID)
		}
		return db
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&entity.Supermarket{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count supermarkets: %w", err)
	}

	var supermarkets []entity.Supermarket
	result := apply(r.db.WithContext(ctx).Model(&entity.Supermarket{})).
		Preload("Franchise").
		Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&supermarkets)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to list supermarkets: %w", result.Error)
	}

	return supermarkets, total, nil
}
