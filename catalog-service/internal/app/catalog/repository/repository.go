package repository

import (
	"context"
	"errors"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

// Ошибки уровня хранилища. Здесь граница трансляции: ошибки gorm
// (ErrRecordNotFound, ErrDuplicatedKey) наружу не выходят
var (
	ErrBrandNotFound        = errors.New("brand not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrBrandProductNotFound = errors.New("brand product not found")
	ErrFranchiseNotFound    = errors.New("franchise not found")
	ErrSupermarketNotFound  = errors.New("supermarket not found")
	ErrListingNotFound      = errors.New("supermarket product not found")
	ErrDuplicateKey         = errors.New("duplicate key")
)

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	List(ctx context.Context, filter *entity.BrandFilter) ([]entity.Brand, int64, error)
	Update(ctx context.Context, brand *entity.Brand) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, filter *entity.ProductFilter) ([]entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
}

type BrandProductRepository interface {
	Create(ctx context.Context, brandProduct *entity.BrandProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BrandProduct, error)
	List(ctx context.Context, filter *entity.BrandProductFilter) ([]entity.BrandProduct, int64, error)
}

type FranchiseRepository interface {
	Create(ctx context.Context, franchise *entity.Franchise) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Franchise, error)
	GetAll(ctx context.Context) ([]entity.Franchise, error)
}

type SupermarketRepository interface {
	Create(ctx context.Context, supermarket *entity.Supermarket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supermarket, error)
	List(ctx context.Context, filter *entity.SupermarketFilter) ([]entity.Supermarket, int64, error)
}

// ListingRepository работает с листингами (SupermarketProduct) и гарантирует,
// что каждая мутация пишется в одной транзакции с записью аудита
type ListingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupermarketProduct, error)
	GetWithContributions(ctx context.Context, id uuid.UUID) (*entity.ListingWithContributions, error)
	FindByUniqueKey(ctx context.Context, supermarketID, brandProductID uuid.UUID, unit string) (*entity.SupermarketProduct, error)
	Search(ctx context.Context, filter *entity.ListingFilter) ([]entity.SupermarketProduct, int64, error)
	CreateWithContribution(ctx context.Context, listing *entity.SupermarketProduct, userID uuid.UUID) error
	UpdatePriceWithContribution(ctx context.Context, id uuid.UUID, newPrice float64, userID uuid.UUID) (*entity.SupermarketProduct, error)
	UpdateStockWithContribution(ctx context.Context, id uuid.UUID, inStock bool, userID uuid.UUID) (*entity.SupermarketProduct, error)
}

// ContributionRepository только читает историю - записи создаются
// исключительно внутри транзакций ListingRepository
type ContributionRepository interface {
	ListBySupermarketProduct(ctx context.Context, supermarketProductID uuid.UUID) ([]entity.ProductContribution, error)
}
