package handler

import (
	"errors"
	"net/http"
	"strconv"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler обрабатывает HTTP запросы к справочным данным каталога
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// handleServiceError транслирует ошибки бизнес-логики в HTTP статусы.
// Валидация - 400, отсутствие сущности - 404, дубликат - 409, остальное - 500
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidSortBy),
		errors.Is(err, service.ErrInvalidSortOrder),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrEmptyUnit),
		errors.Is(err, service.ErrMissingStockFlag):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrBrandProductNotFound),
		errors.Is(err, service.ErrFranchiseNotFound),
		errors.Is(err, service.ErrSupermarketNotFound),
		errors.Is(err, service.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrBrandConflict),
		errors.Is(err, service.ErrProductConflict),
		errors.Is(err, service.ErrBrandProductConflict),
		errors.Is(err, service.ErrFranchiseConflict),
		errors.Is(err, service.ErrSupermarketConflict),
		errors.Is(err, service.ErrListingConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination читает page/limit из query. Отсутствующие значения
// остаются нулевыми, дефолты подставляет service
func parsePagination(c *gin.Context) (int, int, bool) {
	var page, limit int
	var err error

	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return 0, 0, false
		}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return 0, 0, false
		}
	}
	return page, limit, true
}

// === BRANDS ===

func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req entity.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *CatalogHandler) GetBrand(c *gin.Context) {
	id, ok := parseUUIDParam(c, "brand_id")
	if !ok {
		return
	}

	brand, err := h.catalogService.GetBrand(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *CatalogHandler) GetAllBrands(c *gin.Context) {
	brands, err := h.catalogService.GetAllBrands(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands, "total": len(brands)})
}

func (h *CatalogHandler) ListBrands(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := &entity.BrandFilter{
		Name:        c.Query("name"),
		ProductName: c.Query("productName"),
		Page:        page,
		Limit:       limit,
	}

	resp, err := h.catalogService.ListBrands(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseUUIDParam(c, "brand_id")
	if !ok {
		return
	}

	var req entity.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	brand, err := h.catalogService.UpdateBrand(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

// === PRODUCTS ===

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := &entity.ProductFilter{
		Name:     c.Query("name"),
		Category: entity.ProductCategory(c.Query("category")),
		Page:     page,
		Limit:    limit,
	}

	resp, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "product_id")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// === BRAND PRODUCTS ===

func (h *CatalogHandler) CreateBrandProduct(c *gin.Context) {
	var req entity.CreateBrandProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	brandProduct, err := h.catalogService.CreateBrandProduct(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, brandProduct)
}

func (h *CatalogHandler) GetBrandProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "brand_product_id")
	if !ok {
		return
	}

	brandProduct, err := h.catalogService.GetBrandProduct(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brandProduct)
}

func (h *CatalogHandler) ListBrandProducts(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := &entity.BrandProductFilter{
		Page:  page,
		Limit: limit,
	}

	if raw := c.Query("brandId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brandId"})
			return
		}
		filter.BrandID = &id
	}
	if raw := c.Query("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
			return
		}
		filter.ProductID = &id
	}

	resp, err := h.catalogService.ListBrandProducts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// === FRANCHISES ===

func (h *CatalogHandler) CreateFranchise(c *gin.Context) {
	var req entity.CreateFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	franchise, err := h.catalogService.CreateFranchise(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, franchise)
}

func (h *CatalogHandler) GetFranchise(c *gin.Context) {
	id, ok := parseUUIDParam(c, "franchise_id")
	if !ok {
		return
	}

	franchise, err := h.catalogService.GetFranchise(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, franchise)
}

func (h *CatalogHandler) GetAllFranchises(c *gin.Context) {
	franchises, err := h.catalogService.GetAllFranchises(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.FranchiseListResponse{
		Franchises: franchises,
		Total:      len(franchises),
	})
}

// === SUPERMARKETS ===

func (h *CatalogHandler) CreateSupermarket(c *gin.Context) {
	var req entity.CreateSupermarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	supermarket, err := h.catalogService.CreateSupermarket(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, supermarket)
}

func (h *CatalogHandler) GetSupermarket(c *gin.Context) {
	id, ok := parseUUIDParam(c, "supermarket_id")
	if !ok {
		return
	}

	supermarket, err := h.catalogService.GetSupermarket(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, supermarket)
}

func (h *CatalogHandler) ListSupermarkets(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := &entity.SupermarketFilter{
		Name:  c.Query("name"),
		City:  c.Query("city"),
		Page:  page,
		Limit: limit,
	}

	if raw := c.Query("franchiseId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid franchiseId"})
			return
		}
		filter.FranchiseID = &id
	}

	resp, err := h.catalogService.ListSupermarkets(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
