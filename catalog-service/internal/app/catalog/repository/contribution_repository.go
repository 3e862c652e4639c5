package repository

import (
	"context"
	"fmt"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository создает read-only репозиторий истории изменений
func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

// ListBySupermarketProduct возвращает историю изменений листинга, новые сверху
func (r *contributionRepository) ListBySupermarketProduct(ctx context.Context, supermarketProductID uuid.UUID) ([]entity.ProductContribution, error) {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpSelect, "product_contributions")
	defer timer.ObserveDuration()

	var contributions []entity.ProductContribution
	result := r.db.WithContext(ctx).
		Where("supermarket_product_id = ?", supermarketProductID).
		Order("created_at DESC").
		Find(&contributions)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", result.Error)
	}

	return contributions, nil
}
