package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory категория товара в каталоге
type ProductCategory string

const (
	CategoryProduce ProductCategory = "PRODUCE"
	CategoryDairy   ProductCategory = "DAIRY"
	CategoryButcher ProductCategory = "BUTCHER"
	CategoryBakery  ProductCategory = "BAKERY"
	CategoryGrocery ProductCategory = "GROCERY"
)

// ContributionType тип записи в истории изменений листинга
type ContributionType string

const (
	ContributionNewProduct         ContributionType = "NEW_PRODUCT"
	ContributionPriceUpdate        ContributionType = "PRICE_UPDATE"
	ContributionAvailabilityUpdate ContributionType = "AVAILABILITY_UPDATE"
)

// UnbrandedBrandID - зарезервированный ID бренда "Unbranded"
// Используется для товаров без бренда (овощи, мясо и т.д.)
// Строка с этим ID создается при старте сервиса и никогда не удаляется
var UnbrandedBrandID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Brand представляет бренд товаров
type Brand struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Logo      *string   `json:"logo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product представляет товар в каталоге (без привязки к бренду)
type Product struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name               string          `json:"name" gorm:"uniqueIndex;not null"`
	Description        string          `json:"description"`
	Category           ProductCategory `json:"category"`
	Units              []string        `json:"units" gorm:"serializer:json;type:jsonb"` // Допустимые единицы измерения ("kg", "liter", ...)
	IsTypicallyBranded bool            `json:"is_typically_branded"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BrandProduct - связка бренда и товара, то что магазин выставляет на полку
// Для небрендированных товаров BrandID указывает на бренд Unbranded
type BrandProduct struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BrandID   uuid.UUID `json:"brand_id" gorm:"type:uuid;uniqueIndex:idx_brand_product;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;uniqueIndex:idx_brand_product;not null"`
	Brand     *Brand    `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Franchise представляет сеть супермаркетов
type Franchise struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Supermarket представляет конкретный магазин
type Supermarket struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	City         string     `json:"city"`
	Address      string     `json:"address"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	OpeningHours string     `json:"opening_hours"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	Website      *string    `json:"website,omitempty"`
	FranchiseID  *uuid.UUID `json:"franchise_id,omitempty" gorm:"type:uuid"`
	Franchise    *Franchise `json:"franchise,omitempty" gorm:"foreignKey:FranchiseID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SupermarketProduct - листинг: один товар одного бренда в одном магазине
// в одной фасовке. Unit всегда хранится в каноническом виде (см. util.NormalizeUnit)
// История изменений цены и наличия живет в ProductContribution, сама строка
// мутируется на месте
type SupermarketProduct struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	SupermarketID  uuid.UUID     `json:"supermarket_id" gorm:"type:uuid;uniqueIndex:idx_listing;not null"`
	BrandProductID uuid.UUID     `json:"brand_product_id" gorm:"type:uuid;uniqueIndex:idx_listing;not null"`
	Unit           string        `json:"unit" gorm:"uniqueIndex:idx_listing;not null"`
	Price          float64       `json:"price"`
	InStock        bool          `json:"in_stock"`
	CreatedBy      uuid.UUID     `json:"created_by" gorm:"type:uuid"`
	Supermarket    *Supermarket  `json:"supermarket,omitempty" gorm:"foreignKey:SupermarketID"`
	BrandProduct   *BrandProduct `json:"brand_product,omitempty" gorm:"foreignKey:BrandProductID"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ContributionValue снимок значения листинга до или после изменения
type ContributionValue struct {
	Price   *float64 `json:"price,omitempty"`
	InStock *bool    `json:"in_stock,omitempty"`
}

// ProductContribution - запись аудита об одном изменении листинга
// Append-only: никогда не обновляется и не удаляется
type ProductContribution struct {
	ID                   uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey"`
	SupermarketProductID uuid.UUID          `json:"supermarket_product_id" gorm:"type:uuid;index;not null"`
	UserID               uuid.UUID          `json:"user_id" gorm:"type:uuid;not null"`
	Type                 ContributionType   `json:"type" gorm:"not null"`
	OldValue             *ContributionValue `json:"old_value,omitempty" gorm:"serializer:json;type:jsonb"`
	NewValue             ContributionValue  `json:"new_value" gorm:"serializer:json;type:jsonb"`
	CreatedAt            time.Time          `json:"created_at"`
}

// ListingEvent событие изменения листинга для Kafka
type ListingEvent struct {
	EventType            string    `json:"event_type"` // LISTING_CREATED, PRICE_UPDATED, AVAILABILITY_UPDATED
	SupermarketProductID uuid.UUID `json:"supermarket_product_id"`
	SupermarketID        uuid.UUID `json:"supermarket_id"`
	BrandProductID       uuid.UUID `json:"brand_product_id"`
	Unit                 string    `json:"unit"`
	Price                float64   `json:"price"`
	InStock              bool      `json:"in_stock"`
	UserID               uuid.UUID `json:"user_id"`
	Timestamp            time.Time `json:"timestamp"`
}
