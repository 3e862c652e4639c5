package mocks

import (
	"context"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBrandRepository мок для BrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockBrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *MockBrandRepository) List(ctx context.Context, filter *entity.BrandFilter) ([]entity.Brand, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Brand), args.Get(1).(int64), args.Error(2)
}

func (m *MockBrandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter *entity.ProductFilter) ([]entity.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockBrandProductRepository мок для BrandProductRepository
type MockBrandProductRepository struct {
	mock.Mock
}

func (m *MockBrandProductRepository) Create(ctx context.Context, brandProduct *entity.BrandProduct) error {
	args := m.Called(ctx, brandProduct)
	return args.Error(0)
}

func (m *MockBrandProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BrandProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BrandProduct), args.Error(1)
}

func (m *MockBrandProductRepository) List(ctx context.Context, filter *entity.BrandProductFilter) ([]entity.BrandProduct, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.BrandProduct), args.Get(1).(int64), args.Error(2)
}

// MockFranchiseRepository мок для FranchiseRepository
type MockFranchiseRepository struct {
	mock.Mock
}

func (m *MockFranchiseRepository) Create(ctx context.Context, franchise *entity.Franchise) error {
	args := m.Called(ctx, franchise)
	return args.Error(0)
}

func (m *MockFranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Franchise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Franchise), args.Error(1)
}

func (m *MockFranchiseRepository) GetAll(ctx context.Context) ([]entity.Franchise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Franchise), args.Error(1)
}

// MockSupermarketRepository мок для SupermarketRepository
type MockSupermarketRepository struct {
	mock.Mock
}

func (m *MockSupermarketRepository) Create(ctx context.Context, supermarket *entity.Supermarket) error {
	args := m.Called(ctx, supermarket)
	return args.Error(0)
}

func (m *MockSupermarketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supermarket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Supermarket), args.Error(1)
}

func (m *MockSupermarketRepository) List(ctx context.Context, filter *entity.SupermarketFilter) ([]entity.Supermarket, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Supermarket), args.Get(1).(int64), args.Error(2)
}

// MockListingRepository мок для ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupermarketProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SupermarketProduct), args.Error(1)
}

func (m *MockListingRepository) GetWithContributions(ctx context.Context, id uuid.UUID) (*entity.ListingWithContributions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ListingWithContributions), args.Error(1)
}

func (m *MockListingRepository) FindByUniqueKey(ctx context.Context, supermarketID, brandProductID uuid.UUID, unit string) (*entity.SupermarketProduct, error) {
	args := m.Called(ctx, supermarketID, brandProductID, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SupermarketProduct), args.Error(1)
}

func (m *MockListingRepository) Search(ctx context.Context, filter *entity.ListingFilter) ([]entity.SupermarketProduct, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.SupermarketProduct), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) CreateWithContribution(ctx context.Context, listing *entity.SupermarketProduct, userID uuid.UUID) error {
	args := m.Called(ctx, listing, userID)
	return args.Error(0)
}

func (m *MockListingRepository) UpdatePriceWithContribution(ctx context.Context, id uuid.UUID, newPrice float64, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	args := m.Called(ctx, id, newPrice, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SupermarketProduct), args.Error(1)
}

func (m *MockListingRepository) UpdateStockWithContribution(ctx context.Context, id uuid.UUID, inStock bool, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	args := m.Called(ctx, id, inStock, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SupermarketProduct), args.Error(1)
}

// MockContributionRepository мок для ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) ListBySupermarketProduct(ctx context.Context, supermarketProductID uuid.UUID) ([]entity.ProductContribution, error) {
	args := m.Called(ctx, supermarketProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductContribution), args.Error(1)
}

// MockBrandCache мок для util.BrandCache
type MockBrandCache struct {
	mock.Mock
}

func (m *MockBrandCache) SetBrands(ctx context.Context, brands []entity.Brand, ttl time.Duration) error {
	args := m.Called(ctx, brands, ttl)
	return args.Error(0)
}

func (m *MockBrandCache) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Brand), args.Error(1)
}

func (m *MockBrandCache) DeleteBrands(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBrandCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
