package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/repository"
	"valoritario/catalog-service/internal/app/catalog/util"
	"valoritario/pkg/logger"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	brandsCacheTTL = time.Hour
	// Верхняя граница для выборки всех брендов одним запросом (для кеша)
	allBrandsLimit = 1000
)

// CatalogService управляет справочными данными каталога:
// бренды, товары, связки бренд-товар, сети и супермаркеты
type CatalogService struct {
	brandRepo        repository.BrandRepository
	productRepo      repository.ProductRepository
	brandProductRepo repository.BrandProductRepository
	franchiseRepo    repository.FranchiseRepository
	supermarketRepo  repository.SupermarketRepository
	cache            util.BrandCache
}

func NewCatalogService(
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	brandProductRepo repository.BrandProductRepository,
	franchiseRepo repository.FranchiseRepository,
	supermarketRepo repository.SupermarketRepository,
	cache util.BrandCache,
) *CatalogService {
	return &CatalogService{
		brandRepo:        brandRepo,
		productRepo:      productRepo,
		brandProductRepo: brandProductRepo,
		franchiseRepo:    franchiseRepo,
		supermarketRepo:  supermarketRepo,
		cache:            cache,
	}
}

// normalizePagination подставляет дефолты и отклоняет бессмысленные значения
func normalizePagination(page, limit *int) error {
	if *page == 0 {
		*page = defaultPage
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *page < 1 || *limit < 1 {
		return ErrInvalidPagination
	}
	return nil
}

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}

// invalidateBrandCache сбрасывает кеш после записи. Ошибка кеша не
// фатальна для запроса, следующее чтение пойдет в базу по TTL
func (s *CatalogService) invalidateBrandCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteBrands(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate brands cache")
	}
}

// === BRANDS ===

func (s *CatalogService) CreateBrand(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	brand := &entity.Brand{
		ID:        uuid.New(),
		Name:      req.Name,
		Logo:      req.Logo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrBrandConflict, req.Name)
		}
		return nil, err
	}

	s.invalidateBrandCache(ctx)
	return brand, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, id)
		}
		return nil, err
	}
	return brand, nil
}

// GetAllBrands возвращает полный список брендов, сначала из кеша.
// Промах кеша прозрачно заполняет его из базы
func (s *CatalogService) GetAllBrands(ctx context.Context) ([]entity.Brand, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBrands(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read brands cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	brands, _, err := s.brandRepo.List(ctx, &entity.BrandFilter{Page: defaultPage, Limit: allBrandsLimit})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetBrands(ctx, brands, brandsCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to fill brands cache")
		}
	}

	return brands, nil
}

func (s *CatalogService) ListBrands(ctx context.Context, filter *entity.BrandFilter) (*entity.BrandListResponse, error) {
	if err := normalizePagination(&filter.Page, &filter.Limit); err != nil {
		return nil, err
	}

	brands, total, err := s.brandRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.BrandListResponse{
		Brands: brands,
		Meta: entity.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	brand, err := s.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		brand.Name = req.Name
	}
	if req.Logo != nil {
		brand.Logo = req.Logo
	}
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrBrandConflict, brand.Name)
		}
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, id)
		}
		return nil, err
	}

	s.invalidateBrandCache(ctx)
	return brand, nil
}

// === PRODUCTS ===

func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	// Единицы измерения храним в каноническом виде, чтобы сравнение
	// с unit листинга было точным
	units := make([]string, 0, len(req.Units))
	for _, u := range req.Units {
		units = append(units, util.NormalizeUnit(u))
	}

	product := &entity.Product{
		ID:                 uuid.New(),
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		Units:              units,
		IsTypicallyBranded: req.IsTypicallyBranded,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrProductConflict, req.Name)
		}
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, filter *entity.ProductFilter) (*entity.ProductListResponse, error) {
	if err := normalizePagination(&filter.Page, &filter.Limit); err != nil {
		return nil, err
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.ProductListResponse{
		Products: products,
		Meta: entity.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if len(req.Units) > 0 {
		units := make([]string, 0, len(req.Units))
		for _, u := range req.Units {
			units = append(units, util.NormalizeUnit(u))
		}
		product.Units = units
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrProductConflict, product.Name)
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, err
	}

	return product, nil
}

// === BRAND PRODUCTS ===

// CreateBrandProduct создает связку бренд-товар. Если бренд не указан,
// подставляется зарезервированный бренд Unbranded, поэтому в базе
// колонка brand_id всегда заполнена и уникальный индекс работает
func (s *CatalogService) CreateBrandProduct(ctx context.Context, req *entity.CreateBrandProductRequest) (*entity.BrandProduct, error) {
	brandID := entity.UnbrandedBrandID
	if req.BrandID != nil {
		brandID = *req.BrandID
	}

	if _, err := s.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}
	if _, err := s.GetProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	brandProduct := &entity.BrandProduct{
		ID:        uuid.New(),
		BrandID:   brandID,
		ProductID: req.ProductID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.brandProductRepo.Create(ctx, brandProduct); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrBrandProductConflict
		}
		return nil, err
	}

	return brandProduct, nil
}

func (s *CatalogService) GetBrandProduct(ctx context.Context, id uuid.UUID) (*entity.BrandProduct, error) {
	brandProduct, err := s.brandProductRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandProductNotFound, id)
		}
		return nil, err
	}
	return brandProduct, nil
}

func (s *CatalogService) ListBrandProducts(ctx context.Context, filter *entity.BrandProductFilter) (*entity.BrandProductListResponse, error) {
	if err := normalizePagination(&filter.Page, &filter.Limit); err != nil {
		return nil, err
	}

	brandProducts, total, err := s.brandProductRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.BrandProductListResponse{
		BrandProducts: brandProducts,
		Meta: entity.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

// === FRANCHISES ===

func (s *CatalogService) CreateFranchise(ctx context.Context, req *entity.CreateFranchiseRequest) (*entity.Franchise, error) {
	franchise := &entity.Franchise{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.franchiseRepo.Create(ctx, franchise); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrFranchiseConflict, req.Name)
		}
		return nil, err
	}

	return franchise, nil
}

func (s *CatalogService) GetFranchise(ctx context.Context, id uuid.UUID) (*entity.Franchise, error) {
	franchise, err := s.franchiseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFranchiseNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFranchiseNotFound, id)
		}
		return nil, err
	}
	return franchise, nil
}

func (s *CatalogService) GetAllFranchises(ctx context.Context) ([]entity.Franchise, error) {
	return s.franchiseRepo.GetAll(ctx)
}

// === SUPERMARKETS ===

func (s *CatalogService) CreateSupermarket(ctx context.Context, req *entity.CreateSupermarketRequest) (*entity.Supermarket, error) {
	if req.FranchiseID != nil {
		if _, err := s.GetFranchise(ctx, *req.FranchiseID); err != nil {
			return nil, err
		}
	}

	supermarket := &entity.Supermarket{
		ID:           uuid.New(),
		Name:         req.Name,
		City:         req.City,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OpeningHours: req.OpeningHours,
		PhoneNumber:  req.PhoneNumber,
		Website:      req.Website,
		FranchiseID:  req.FranchiseID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.supermarketRepo.Create(ctx, supermarket); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrSupermarketConflict, req.Name)
		}
		return nil, err
	}

	return supermarket, nil
}

func (s *CatalogService) GetSupermarket(ctx context.Context, id uuid.UUID) (*entity.Supermarket, error) {
	supermarket, err := s.supermarketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSupermarketNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSupermarketNotFound, id)
		}
		return nil, err
	}
	return supermarket, nil
}

func (s *CatalogService) ListSupermarkets(ctx context.Context, filter *entity.SupermarketFilter) (*entity.SupermarketListResponse, error) {
	if err := normalizePagination(&filter.Page, &filter.Limit); err != nil {
		return nil, err
	}

	supermarkets, total, err := s.supermarketRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.SupermarketListResponse{
		Supermarkets: supermarkets,
		Meta: entity.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}
