package service

import (
	"context"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// CatalogServiceInterface - справочные данные (бренды, товары, связки,
// сети, супермаркеты). Тонкие pass-through операции без аудита
type CatalogServiceInterface interface {
	CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
	GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	GetAllBrands(ctx context.Context) ([]entity.Brand, error)
	ListBrands(ctx context.Context, filter *entity.BrandFilter) (*entity.BrandListResponse, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, req *entity.UpdateBrandRequest) (*entity.Brand, error)

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)

	CreateBrandProduct(ctx context.Context, req *entity.CreateBrandProductRequest) (*entity.BrandProduct, error)
	GetBrandProduct(ctx context.Context, id uuid.UUID) (*entity.BrandProduct, error)
	ListBrandProducts(ctx context.Context, filter *entity.BrandProductFilter) (*entity.BrandProductListResponse, error)

	CreateFranchise(ctx context.Context, req *entity.CreateFranchiseRequest) (*entity.Franchise, error)
	GetFranchise(ctx context.Context, id uuid.UUID) (*entity.Franchise, error)
	GetAllFranchises(ctx context.Context) ([]entity.Franchise, error)

	CreateSupermarket(ctx context.Context, req *entity.CreateSupermarketRequest) (*entity.Supermarket, error)
	GetSupermarket(ctx context.Context, id uuid.UUID) (*entity.Supermarket, error)
	ListSupermarkets(ctx context.Context, filter *entity.SupermarketFilter) (*entity.SupermarketListResponse, error)
}

// ListingServiceInterface - поисковый движок и журнал изменений листингов
type ListingServiceInterface interface {
	SearchListings(ctx context.Context, query *entity.SearchListingsQuery) (*entity.ListingSearchResponse, error)
	GetListing(ctx context.Context, id uuid.UUID) (*entity.ListingWithContributions, error)
	GetContributions(ctx context.Context, id uuid.UUID) ([]entity.ProductContribution, error)
	CreateListing(ctx context.Context, req *entity.CreateListingRequest, userID uuid.UUID) (*entity.SupermarketProduct, error)
	UpdateListingPrice(ctx context.Context, id uuid.UUID, req *entity.UpdatePriceRequest, userID uuid.UUID) (*entity.SupermarketProduct, error)
	UpdateListingStock(ctx context.Context, id uuid.UUID, req *entity.UpdateStockRequest, userID uuid.UUID) (*entity.SupermarketProduct, error)
}
