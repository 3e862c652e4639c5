package handler

import (
	"net/http"
	"strconv"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ListingHandler обрабатывает HTTP запросы к листингам:
// поиск, создание, обновление цены и наличия, история изменений
type ListingHandler struct {
	listingService service.ListingServiceInterface
	validator      *validator.Validate
}

func NewListingHandler(listingService service.ListingServiceInterface) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		validator:      validator.New(),
	}
}

// SearchListings - поисковая выдача с фильтрами, сортировкой и пагинацией.
// Все параметры опциональны, фильтры комбинируются через AND
func (h *ListingHandler) SearchListings(c *gin.Context) {
	query := entity.SearchListingsQuery{
		City:            c.Query("city"),
		SupermarketName: c.Query("supermarketName"),
		ProductName:     c.Query("productName"),
		BrandName:       c.Query("brandName"),
		Unit:            c.Query("unit"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	}

	if raw := c.Query("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "inStock must be a boolean"})
			return
		}
		query.InStock = &inStock
	}
	if raw := c.Query("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be a number"})
			return
		}
		query.MinPrice = &minPrice
	}
	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
			return
		}
		query.MaxPrice = &maxPrice
	}

	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	query.Page = page
	query.Limit = limit

	resp, err := h.listingService.SearchListings(c.Request.Context(), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetListing возвращает листинг вместе с историей изменений
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetContributions возвращает историю изменений листинга, новые сверху
func (h *ListingHandler) GetContributions(c *gin.Context) {
	id, ok := parseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	contributions, err := h.listingService.GetContributions(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contributions": contributions,
		"total":         len(contributions),
	})
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) UpdatePrice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	var req entity.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	listing, err := h.listingService.UpdateListingPrice(c.Request.Context(), id, &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) UpdateStock(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, ok := parseUUIDParam(c, "listing_id")
	if !ok {
		return
	}

	var req entity.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	listing, err := h.listingService.UpdateListingStock(c.Request.Context(), id, &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}
