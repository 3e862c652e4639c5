package service

import (
	"context"
	"testing"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/repository"
	"valoritario/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (*CatalogService, *mocks.MockBrandRepository, *mocks.MockProductRepository, *mocks.MockBrandProductRepository, *mocks.MockSupermarketRepository, *mocks.MockBrandCache) {
	brandRepo := new(mocks.MockBrandRepository)
	productRepo := new(mocks.MockProductRepository)
	brandProductRepo := new(mocks.MockBrandProductRepository)
	franchiseRepo := new(mocks.MockFranchiseRepository)
	supermarketRepo := new(mocks.MockSupermarketRepository)
	cache := new(mocks.MockBrandCache)

	svc := NewCatalogService(brandRepo, productRepo, brandProductRepo, franchiseRepo, supermarketRepo, cache)
	return svc, brandRepo, productRepo, brandProductRepo, supermarketRepo, cache
}

func TestCreateBrand_Success(t *testing.T) {
	svc, brandRepo, _, _, _, cache := newCatalogService()

	brandRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Brand) bool {
		return b.Name == "Mavesa" && b.ID != uuid.Nil
	})).Return(nil)
	cache.On("DeleteBrands", mock.Anything).Return(nil)

	brand, err := svc.CreateBrand(context.Background(), &entity.CreateBrandRequest{Name: "Mavesa"})

	require.NoError(t, err)
	assert.Equal(t, "Mavesa", brand.Name)
	brandRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateBrand_Conflict(t *testing.T) {
	svc, brandRepo, _, _, _, cache := newCatalogService()

	brandRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.CreateBrand(context.Background(), &entity.CreateBrandRequest{Name: "Mavesa"})

	assert.ErrorIs(t, err, ErrBrandConflict)
	cache.AssertNotCalled(t, "DeleteBrands")
}

func TestGetAllBrands_CacheHit(t *testing.T) {
	svc, brandRepo, _, _, _, cache := newCatalogService()

	cached := []entity.Brand{{ID: uuid.New(), Name: "Mavesa"}}
	cache.On("GetBrands", mock.Anything).Return(cached, nil)

	brands, err := svc.GetAllBrands(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, brands)
	brandRepo.AssertNotCalled(t, "List")
}

func TestGetAllBrands_CacheMissFillsCache(t *testing.T) {
	svc, brandRepo, _, _, _, cache := newCatalogService()

	fromDB := []entity.Brand{{ID: uuid.New(), Name: "Polar"}}
	cache.On("GetBrands", mock.Anything).Return(nil, nil)
	brandRepo.On("List", mock.Anything, mock.Anything).Return(fromDB, int64(1), nil)
	cache.On("SetBrands", mock.Anything, fromDB, brandsCacheTTL).Return(nil)

	brands, err := svc.GetAllBrands(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fromDB, brands)
	cache.AssertExpectations(t)
}

func TestUpdateBrand_InvalidatesCache(t *testing.T) {
	svc, brandRepo, _, _, _, cache := newCatalogService()

	id := uuid.New()
	brandRepo.On("GetByID", mock.Anything, id).
		Return(&entity.Brand{ID: id, Name: "Old"}, nil)
	brandRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *entity.Brand) bool {
		return b.Name == "New"
	})).Return(nil)
	cache.On("DeleteBrands", mock.Anything).Return(nil)

	brand, err := svc.UpdateBrand(context.Background(), id, &entity.UpdateBrandRequest{Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", brand.Name)
	cache.AssertExpectations(t)
}

func TestListBrands_PaginationMeta(t *testing.T) {
	svc, brandRepo, _, _, _, _ := newCatalogService()

	brandRepo.On("List", mock.Anything, mock.MatchedBy(func(f *entity.BrandFilter) bool {
		return f.Page == 1 && f.Limit == 10
	})).Return([]entity.Brand{}, int64(31), nil)

	resp, err := svc.ListBrands(context.Background(), &entity.BrandFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(31), resp.Meta.Total)
	assert.Equal(t, int64(4), resp.Meta.TotalPages)
}

func TestListBrands_InvalidPagination(t *testing.T) {
	svc, brandRepo, _, _, _, _ := newCatalogService()

	_, err := svc.ListBrands(context.Background(), &entity.BrandFilter{Page: -1})

	assert.ErrorIs(t, err, ErrInvalidPagination)
	brandRepo.AssertNotCalled(t, "List")
}

func TestCreateProduct_NormalizesUnits(t *testing.T) {
	svc, _, productRepo, _, _, _ := newCatalogService()

	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
		return len(p.Units) == 2 && p.Units[0] == "1000 g" && p.Units[1] == "500 g"
	})).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &entity.CreateProductRequest{
		Name:     "Harina de maiz",
		Category: entity.CategoryGrocery,
		Units:    []string{"1 kilogram", "500 grams"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1000 g", "500 g"}, product.Units)
}

func TestCreateProduct_Conflict(t *testing.T) {
	svc, _, productRepo, _, _, _ := newCatalogService()

	productRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.CreateProduct(context.Background(), &entity.CreateProductRequest{
		Name:     "Harina de maiz",
		Category: entity.CategoryGrocery,
		Units:    []string{"1kg"},
	})

	assert.ErrorIs(t, err, ErrProductConflict)
}

func TestCreateBrandProduct_SubstitutesUnbrandedSentinel(t *testing.T) {
	svc, brandRepo, productRepo, brandProductRepo, _, _ := newCatalogService()

	productID := uuid.New()
	brandRepo.On("GetByID", mock.Anything, entity.UnbrandedBrandID).
		Return(&entity.Brand{ID: entity.UnbrandedBrandID, Name: "Unbranded"}, nil)
	productRepo.On("GetByID", mock.Anything, productID).
		Return(&entity.Product{ID: productID}, nil)
	brandProductRepo.On("Create", mock.Anything, mock.MatchedBy(func(bp *entity.BrandProduct) bool {
		return bp.BrandID == entity.UnbrandedBrandID && bp.ProductID == productID
	})).Return(nil)

	// BrandID не передан - подставляется бренд Unbranded
	bp, err := svc.CreateBrandProduct(context.Background(), &entity.CreateBrandProductRequest{ProductID: productID})

	require.NoError(t, err)
	assert.Equal(t, entity.UnbrandedBrandID, bp.BrandID)
	brandProductRepo.AssertExpectations(t)
}

func TestCreateBrandProduct_ExplicitBrand(t *testing.T) {
	svc, brandRepo, productRepo, brandProductRepo, _, _ := newCatalogService()

	brandID := uuid.New()
	productID := uuid.New()
	brandRepo.On("GetByID", mock.Anything, brandID).
		Return(&entity.Brand{ID: brandID}, nil)
	productRepo.On("GetByID", mock.Anything, productID).
		Return(&entity.Product{ID: productID}, nil)
	brandProductRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	bp, err := svc.CreateBrandProduct(context.Background(), &entity.CreateBrandProductRequest{
		BrandID:   &brandID,
		ProductID: productID,
	})

	require.NoError(t, err)
	assert.Equal(t, brandID, bp.BrandID)
}

func TestCreateBrandProduct_BrandNotFound(t *testing.T) {
	svc, brandRepo, _, brandProductRepo, _, _ := newCatalogService()

	brandID := uuid.New()
	brandRepo.On("GetByID", mock.Anything, brandID).
		Return(nil, repository.ErrBrandNotFound)

	_, err := svc.CreateBrandProduct(context.Background(), &entity.CreateBrandProductRequest{
		BrandID:   &brandID,
		ProductID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrBrandNotFound)
	brandProductRepo.AssertNotCalled(t, "Create")
}

func TestCreateBrandProduct_Conflict(t *testing.T) {
	svc, brandRepo, productRepo, brandProductRepo, _, _ := newCatalogService()

	brandID := uuid.New()
	productID := uuid.New()
	brandRepo.On("GetByID", mock.Anything, brandID).
		Return(&entity.Brand{ID: brandID}, nil)
	productRepo.On("GetByID", mock.Anything, productID).
		Return(&entity.Product{ID: productID}, nil)
	brandProductRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.CreateBrandProduct(context.Background(), &entity.CreateBrandProductRequest{
		BrandID:   &brandID,
		ProductID: productID,
	})

	assert.ErrorIs(t, err, ErrBrandProductConflict)
}

func TestCreateSupermarket_FranchiseNotFound(t *testing.T) {
	svc, _, _, _, supermarketRepo, _ := newCatalogService()
	franchiseRepo := new(mocks.MockFranchiseRepository)
	svc.franchiseRepo = franchiseRepo

	franchiseID := uuid.New()
	franchiseRepo.On("GetByID", mock.Anything, franchiseID).
		Return(nil, repository.ErrFranchiseNotFound)

	_, err := svc.CreateSupermarket(context.Background(), &entity.CreateSupermarketRequest{
		Name:        "Gama Express",
		City:        "Caracas",
		Address:     "Av. Francisco de Miranda",
		FranchiseID: &franchiseID,
	})

	assert.ErrorIs(t, err, ErrFranchiseNotFound)
	supermarketRepo.AssertNotCalled(t, "Create")
}

func TestGetSupermarket_NotFound(t *testing.T) {
	svc, _, _, _, supermarketRepo, _ := newCatalogService()

	id := uuid.New()
	supermarketRepo.On("GetByID", mock.Anything, id).
		Return(nil, repository.ErrSupermarketNotFound)

	_, err := svc.GetSupermarket(context.Background(), id)

	assert.ErrorIs(t, err, ErrSupermarketNotFound)
	assert.Contains(t, err.Error(), id.String())
}
