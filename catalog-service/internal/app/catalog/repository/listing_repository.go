package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Колонки сортировки поиска. Ключи - единственные значения sortBy,
// которые пропускает service; всё остальное отклоняется до запроса
var listingSortColumns = map[string]string{
	"price":     "supermarket_products.price",
	"createdAt": "supermarket_products.created_at",
	"updatedAt": "supermarket_products.updated_at",
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository создает новый репозиторий листингов
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// GetByID получает листинг со связанными сущностями для отображения
func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupermarketProduct, error) {
	var listing entity.SupermarketProduct
	result := r.db.WithContext(ctx).
		Preload("Supermarket").
		Preload("BrandProduct.Brand").
		Preload("BrandProduct.Product").
		First(&listing, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", result.Error)
	}

	return &listing, nil
}

// GetWithContributions получает листинг вместе с полной историей изменений
func (r *listingRepository) GetWithContributions(ctx context.Context, id uuid.UUID) (*entity.ListingWithContributions, error) {
	listing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var contributions []entity.ProductContribution
	result := r.db.WithContext(ctx).
		Where("supermarket_product_id = ?", id).
		Order("created_at DESC").
		Find(&contributions)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get contributions: %w", result.Error)
	}

	return &entity.ListingWithContributions{
		SupermarketProduct: *listing,
		Contributions:      contributions,
	}, nil
}

// FindByUniqueKey ищет листинг по тройке (supermarket, brandProduct, unit)
// unit должен быть уже в каноническом виде
func (r *listingRepository) FindByUniqueKey(ctx context.Context, supermarketID, brandProductID uuid.UUID, unit string) (*entity.SupermarketProduct, error) {
	var listing entity.SupermarketProduct
	result := r.db.WithContext(ctx).First(
		&listing,
		"supermarket_id = ? AND brand_product_id = ? AND unit = ?",
		supermarketID, brandProductID, unit,
	)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", result.Error)
	}

	return &listing, nil
}

// Search выполняет поиск листингов по конъюнкции переданных критериев.
// Отсутствующий критерий не накладывает ограничения. Count выполняется
// отдельным запросом с тем же предикатом, поэтому total не зависит от
// page/limit. Страница за пределами данных - пустой результат, не ошибка
func (r *listingRepository) Search(ctx context.Context, filter *entity.ListingFilter) ([]entity.SupermarketProduct, int64, error) {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpSelect, "supermarket_products")
	defer timer.ObserveDuration()

	apply := func(db *gorm.DB) *gorm.DB {
		db = db.
			Joins("JOIN supermarkets ON supermarkets.id = supermarket_products.supermarket_id").
			Joins("JOIN brand_products ON brand_products.id = supermarket_products.brand_product_id").
			Joins("JOIN brands ON brands.id = brand_products.brand_id").
			Joins("JOIN products ON products.id = brand_products.product_id")

		if filter.City != "" {
			db = db.Where("supermarkets.city ILIKE ?", "%"+filter.City+"%")
		}
		if filter.SupermarketName != "" {
			db = db.Where("supermarkets.name ILIKE ?", "%"+filter.SupermarketName+"%")
		}
		if filter.ProductName != "" {
			db = db.Where("products.name ILIKE ?", "%"+filter.ProductName+"%")
		}
		if filter.BrandName != "" {
			db = db.Where("brands.name ILIKE ?", "%"+filter.BrandName+"%")
		}
		if filter.Unit != "" {
			db = db.Where("supermarket_products.unit = ?", filter.Unit)
		}
		if filter.InStock != nil {
			db = db.Where("supermarket_products.in_stock = ?", *filter.InStock)
		}
		// Границы цены включительные, отсутствующая граница не ограничивает
		if filter.MinPrice != nil {
			db = db.Where("supermarket_products.price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			db = db.Where("supermarket_products.price <= ?", *filter.MaxPrice)
		}
		return db
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Model(&entity.SupermarketProduct{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	column, ok := listingSortColumns[filter.SortBy]
	if !ok {
		column = listingSortColumns["price"]
	}
	direction := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		direction = "DESC"
	}

	var listings []entity.SupermarketProduct
	result := apply(r.db.WithContext(ctx).Model(&entity.SupermarketProduct{})).
		Preload("Supermarket").
		Preload("BrandProduct.Brand").
		Preload("BrandProduct.Product").
		Order(column + " " + direction).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&listings)

	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", result.Error)
	}

	return listings, total, nil
}

// CreateWithContribution вставляет листинг и запись аудита NEW_PRODUCT
// в одной транзакции: либо обе строки есть, либо ни одной.
// Гонка между проверкой существования в service и вставкой разрешается
// уникальным индексом: нарушение уникальности здесь - авторитетный Conflict
func (r *listingRepository) CreateWithContribution(ctx context.Context, listing *entity.SupermarketProduct, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return err
		}

		contribution := &entity.ProductContribution{
			ID:                   uuid.New(),
			SupermarketProductID: listing.ID,
			UserID:               userID,
			Type:                 entity.ContributionNewProduct,
			NewValue: entity.ContributionValue{
				Price:   &listing.Price,
				InStock: &listing.InStock,
			},
			CreatedAt: time.Now(),
		}
		return tx.Create(contribution).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create listing with contribution: %w", err)
	}

	return nil
}

// UpdatePriceWithContribution меняет цену и пишет PRICE_UPDATE со снимками
// старого и нового значения в одной транзакции. Старая цена читается
// внутри транзакции, чтобы снимок не устаревал под конкурентной записью
func (r *listingRepository) UpdatePriceWithContribution(ctx context.Context, id uuid.UUID, newPrice float64, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	var listing entity.SupermarketProduct

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&listing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		oldPrice := listing.Price
		if err := tx.Model(&entity.SupermarketProduct{}).Where("id = ?", id).Update("price", newPrice).Error; err != nil {
			return err
		}
		listing.Price = newPrice

		contribution := &entity.ProductContribution{
			ID:                   uuid.New(),
			SupermarketProductID: id,
			UserID:               userID,
			Type:                 entity.ContributionPriceUpdate,
			OldValue:             &entity.ContributionValue{Price: &oldPrice},
			NewValue:             entity.ContributionValue{Price: &newPrice},
			CreatedAt:            time.Now(),
		}
		return tx.Create(contribution).Error
	})

	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update price with contribution: %w", err)
	}

	return &listing, nil
}

// UpdateStockWithContribution меняет флаг наличия и пишет AVAILABILITY_UPDATE
// в одной транзакции, по той же схеме что и обновление цены
func (r *listingRepository) UpdateStockWithContribution(ctx context.Context, id uuid.UUID, inStock bool, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	var listing entity.SupermarketProduct

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&listing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return err
		}

		oldStock := listing.InStock
		if err := tx.Model(&entity.SupermarketProduct{}).Where("id = ?", id).Update("in_stock", inStock).Error; err != nil {
			return err
		}
		listing.InStock = inStock

		contribution := &entity.ProductContribution{
			ID:                   uuid.New(),
			SupermarketProductID: id,
			UserID:               userID,
			Type:                 entity.ContributionAvailabilityUpdate,
			OldValue:             &entity.ContributionValue{InStock: &oldStock},
			NewValue:             entity.ContributionValue{InStock: &inStock},
			CreatedAt:            time.Now(),
		}
		return tx.Create(contribution).Error
	})

	if err != nil {
		if errors.Is(err, ErrListingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update stock with contribution: %w", err)
	}

	return &listing, nil
}
