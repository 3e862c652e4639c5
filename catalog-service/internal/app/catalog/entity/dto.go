package entity

import (
	"time"

	"github.com/google/uuid"
)

// === REFERENCE DATA REQUESTS ===

type CreateBrandRequest struct {
	Name string  `json:"name" validate:"required,min=2,max=100"`
	Logo *string `json:"logo,omitempty" validate:"omitempty,url"`
}

type UpdateBrandRequest struct {
	Name string  `json:"name" validate:"omitempty,min=2,max=100"`
	Logo *string `json:"logo,omitempty" validate:"omitempty,url"`
}

type CreateProductRequest struct {
	Name               string          `json:"name" validate:"required,min=2,max=200"`
	Description        string          `json:"description" validate:"omitempty,max=2000"`
	Category           ProductCategory `json:"category" validate:"required,oneof=PRODUCE DAIRY BUTCHER BAKERY GROCERY"`
	Units              []string        `json:"units" validate:"required,min=1"`
	IsTypicallyBranded bool            `json:"is_typically_branded"`
}

type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Category    ProductCategory `json:"category" validate:"omitempty,oneof=PRODUCE DAIRY BUTCHER BAKERY GROCERY"`
	Units       []string        `json:"units" validate:"omitempty,min=1"`
}

type CreateFranchiseRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateSupermarketRequest struct {
	Name         string     `json:"name" validate:"required,min=2,max=200"`
	City         string     `json:"city" validate:"required,min=2,max=100"`
	Address      string     `json:"address" validate:"required,min=5,max=300"`
	Latitude     float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64    `json:"longitude" validate:"min=-180,max=180"`
	OpeningHours string     `json:"opening_hours" validate:"omitempty,max=200"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	Website      *string    `json:"website,omitempty" validate:"omitempty,url"`
	FranchiseID  *uuid.UUID `json:"franchise_id,omitempty"`
}

// CreateBrandProductRequest создает связку бренд-товар
// BrandID можно не передавать - тогда подставляется бренд Unbranded
type CreateBrandProductRequest struct {
	BrandID   *uuid.UUID `json:"brand_id,omitempty"`
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
}

// === LISTING REQUESTS ===

type CreateListingRequest struct {
	SupermarketID  uuid.UUID `json:"supermarket_id" validate:"required"`
	BrandProductID uuid.UUID `json:"brand_product_id" validate:"required"`
	Unit           string    `json:"unit" validate:"required,max=50"`
	Price          float64   `json:"price" validate:"required,gt=0"`
	InStock        *bool     `json:"in_stock,omitempty"`
}

type UpdatePriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type UpdateStockRequest struct {
	InStock *bool `json:"in_stock" validate:"required"`
}

// SearchListingsQuery параметры поиска листингов
// Все фильтры опциональны и комбинируются через AND
type SearchListingsQuery struct {
	City            string   `form:"city"`
	SupermarketName string   `form:"supermarketName"`
	ProductName     string   `form:"productName"`
	BrandName       string   `form:"brandName"`
	Unit            string   `form:"unit"`
	InStock         *bool    `form:"inStock"`
	MinPrice        *float64 `form:"minPrice"`
	MaxPrice        *float64 `form:"maxPrice"`
	SortBy          string   `form:"sortBy"`
	SortOrder       string   `form:"sortOrder"`
	Page            int      `form:"page"`
	Limit           int      `form:"limit"`
}

// ListingFilter - проверенный фильтр, который service передает в repository
// Unit уже приведен к каноническому виду, сортировка из allow-list
type ListingFilter struct {
	City            string
	SupermarketName string
	ProductName     string
	BrandName       string
	Unit            string
	InStock         *bool
	MinPrice        *float64
	MaxPrice        *float64
	SortBy          string // price | createdAt | updatedAt
	SortOrder       string // asc | desc
	Page            int
	Limit           int
}

// Фильтры списков справочных данных (все поля опциональны)

type BrandFilter struct {
	Name        string
	ProductName string
	Page        int
	Limit       int
}

type ProductFilter struct {
	Name     string
	Category ProductCategory
	Page     int
	Limit    int
}

type BrandProductFilter struct {
	BrandID   *uuid.UUID
	ProductID *uuid.UUID
	Page      int
	Limit     int
}

type SupermarketFilter struct {
	Name        string
	City        string
	FranchiseID *uuid.UUID
	Page        int
	Limit       int
}

// === RESPONSES ===

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageMeta метаданные пагинации
// Total считается отдельным count-запросом и не зависит от page/limit
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// ListingRow - строка результата поиска с денормализованными полями для отображения
type ListingRow struct {
	ID             uuid.UUID `json:"id"`
	Brand          string    `json:"brand"`
	Product        string    `json:"product"`
	Unit           string    `json:"unit"`
	Price          float64   `json:"price"`
	InStock        bool      `json:"in_stock"`
	Supermarket    string    `json:"supermarket"`
	City           string    `json:"city"`
	SupermarketID  uuid.UUID `json:"supermarket_id"`
	BrandProductID uuid.UUID `json:"brand_product_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListingSearchResponse struct {
	Data []ListingRow `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// ListingWithContributions листинг вместе с историей изменений
type ListingWithContributions struct {
	SupermarketProduct
	Contributions []ProductContribution `json:"contributions"`
}

type BrandListResponse struct {
	Brands []Brand  `json:"brands"`
	Meta   PageMeta `json:"meta"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Meta     PageMeta  `json:"meta"`
}

type BrandProductListResponse struct {
	BrandProducts []BrandProduct `json:"brand_products"`
	Meta          PageMeta       `json:"meta"`
}

type SupermarketListResponse struct {
	Supermarkets []Supermarket `json:"supermarkets"`
	Meta         PageMeta      `json:"meta"`
}

type FranchiseListResponse struct {
	Franchises []Franchise `json:"franchises"`
	Total      int         `json:"total"`
}
