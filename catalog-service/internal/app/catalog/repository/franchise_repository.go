package repository

import (
	"context"
	"errors"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type franchiseRepository struct {
	db *gorm.DB
}

// NewFranchiseRepository создает новый репозиторий сетей супермаркетов
func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{db: db}
}

func (r *franchiseRepository) Create(ctx context.Context, franchise *entity.Franchise) error {
	result := r.db.WithContext(ctx).Create(franchise)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create franchise: %w", result.Error)
	}
	return nil
}

func (r *franchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Franchise, error) {
	var franchise entity.Franchise
	result := r.db.WithContext(ctx).First(&franchise, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFranchiseNotFound
		}
		return nil, fmt.Errorf("failed to get franchise: %w", result.Error)
	}

	return &franchise, nil
}

func (r *franchiseRepository) GetAll(ctx context.Context) ([]entity.Franchise, error) {
	var franchises []entity.Franchise
	result := r.db.WithContext(ctx).Order("name ASC").Find(&franchises)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list franchises: %w", result.Error)
	}

	return franchises, nil
}
