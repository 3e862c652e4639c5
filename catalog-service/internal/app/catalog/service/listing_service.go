package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/repository"
	"valoritario/catalog-service/internal/app/catalog/util"
	"valoritario/pkg/logger"
	"valoritario/pkg/metrics"

	"github.com/google/uuid"
)

// Типы событий для Kafka
const (
	EventListingCreated      = "LISTING_CREATED"
	EventPriceUpdated        = "PRICE_UPDATED"
	EventAvailabilityUpdated = "AVAILABILITY_UPDATED"
)

var allowedSortBy = map[string]bool{
	"price":     true,
	"createdAt": true,
	"updatedAt": true,
}

// ListingService - поиск листингов и их изменения.
// Каждая мутация листинга атомарно сопровождается записью в истории,
// за атомарность отвечает транзакционный метод репозитория
type ListingService struct {
	listingRepo      repository.ListingRepository
	contributionRepo repository.ContributionRepository
	supermarketRepo  repository.SupermarketRepository
	brandProductRepo repository.BrandProductRepository
	publisher        util.MessagePublisher
}

func NewListingService(
	listingRepo repository.ListingRepository,
	contributionRepo repository.ContributionRepository,
	supermarketRepo repository.SupermarketRepository,
	brandProductRepo repository.BrandProductRepository,
	publisher util.MessagePublisher,
) *ListingService {
	return &ListingService{
		listingRepo:      listingRepo,
		contributionRepo: contributionRepo,
		supermarketRepo:  supermarketRepo,
		brandProductRepo: brandProductRepo,
		publisher:        publisher,
	}
}

// SearchListings проверяет параметры запроса и выполняет поиск.
// Дефолты: сортировка по цене по возрастанию, первая страница по 10 строк.
// sortBy вне allow-list и sortOrder вне asc/desc отклоняются, а не
// подменяются дефолтом, чтобы опечатка в запросе не маскировалась
func (s *ListingService) SearchListings(ctx context.Context, query *entity.SearchListingsQuery) (*entity.ListingSearchResponse, error) {
	if query.SortBy == "" {
		query.SortBy = "price"
	}
	if !allowedSortBy[query.SortBy] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSortBy, query.SortBy)
	}

	if query.SortOrder == "" {
		query.SortOrder = "asc"
	}
	if query.SortOrder != "asc" && query.SortOrder != "desc" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSortOrder, query.SortOrder)
	}

	if err := normalizePagination(&query.Page, &query.Limit); err != nil {
		return nil, err
	}

	filter := &entity.ListingFilter{
		City:            query.City,
		SupermarketName: query.SupermarketName,
		ProductName:     query.ProductName,
		BrandName:       query.BrandName,
		InStock:         query.InStock,
		MinPrice:        query.MinPrice,
		MaxPrice:        query.MaxPrice,
		SortBy:          query.SortBy,
		SortOrder:       query.SortOrder,
		Page:            query.Page,
		Limit:           query.Limit,
	}
	// Фильтр по фасовке приводится к каноническому виду, так что
	// "1kg" в запросе находит листинги, созданные как "1 kilogram"
	if query.Unit != "" {
		filter.Unit = util.NormalizeUnit(query.Unit)
	}

	listings, total, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	metrics.ListingSearches.Inc()

	rows := make([]entity.ListingRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, toListingRow(&l))
	}

	return &entity.ListingSearchResponse{
		Data: rows,
		Meta: entity.PageMeta{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages(total, filter.Limit),
		},
	}, nil
}

// toListingRow разворачивает листинг с предзагруженными связями
// в плоскую строку для выдачи поиска
func toListingRow(l *entity.SupermarketProduct) entity.ListingRow {
	row := entity.ListingRow{
		ID:             l.ID,
		Unit:           l.Unit,
		Price:          l.Price,
		InStock:        l.InStock,
		SupermarketID:  l.SupermarketID,
		BrandProductID: l.BrandProductID,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if l.Supermarket != nil {
		row.Supermarket = l.Supermarket.Name
		row.City = l.Supermarket.City
	}
	if l.BrandProduct != nil {
		if l.BrandProduct.Brand != nil {
			row.Brand = l.BrandProduct.Brand.Name
		}
		if l.BrandProduct.Product != nil {
			row.Product = l.BrandProduct.Product.Name
		}
	}
	return row
}

// GetListing возвращает листинг вместе с историей изменений
func (s *ListingService) GetListing(ctx context.Context, id uuid.UUID) (*entity.ListingWithContributions, error) {
	listing, err := s.listingRepo.GetWithContributions(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		return nil, err
	}
	return listing, nil
}

// GetContributions возвращает историю изменений листинга, новые сверху
func (s *ListingService) GetContributions(ctx context.Context, id uuid.UUID) ([]entity.ProductContribution, error) {
	if _, err := s.listingRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		return nil, err
	}
	return s.contributionRepo.ListBySupermarketProduct(ctx, id)
}

// CreateListing создает листинг и запись NEW_PRODUCT в истории.
// Порядок проверок: существование супермаркета, существование связки
// бренд-товар, затем уникальность тройки (supermarket, brandProduct, unit).
// Проверка уникальности до вставки дает внятное сообщение об ошибке,
// но авторитетный ответ - уникальный индекс в транзакции вставки
func (s *ListingService) CreateListing(ctx context.Context, req *entity.CreateListingRequest, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	unit := util.NormalizeUnit(req.Unit)
	if unit == "" {
		return nil, ErrEmptyUnit
	}

	if _, err := s.supermarketRepo.GetByID(ctx, req.SupermarketID); err != nil {
		if errors.Is(err, repository.ErrSupermarketNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSupermarketNotFound, req.SupermarketID)
		}
		return nil, err
	}

	if _, err := s.brandProductRepo.GetByID(ctx, req.BrandProductID); err != nil {
		if errors.Is(err, repository.ErrBrandProductNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandProductNotFound, req.BrandProductID)
		}
		return nil, err
	}

	existing, err := s.listingRepo.FindByUniqueKey(ctx, req.SupermarketID, req.BrandProductID, unit)
	if err != nil && !errors.Is(err, repository.ErrListingNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrListingConflict
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	listing := &entity.SupermarketProduct{
		ID:             uuid.New(),
		SupermarketID:  req.SupermarketID,
		BrandProductID: req.BrandProductID,
		Unit:           unit,
		Price:          req.Price,
		InStock:        inStock,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.listingRepo.CreateWithContribution(ctx, listing, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Конкурентная вставка проскочила предварительную проверку,
			// уникальный индекс сказал свое слово
			return nil, ErrListingConflict
		}
		return nil, err
	}

	metrics.ListingsCreated.Inc()
	metrics.ContributionsRecorded.WithLabelValues(string(entity.ContributionNewProduct)).Inc()

	s.publishEvent(ctx, EventListingCreated, listing, userID)
	return listing, nil
}

// UpdateListingPrice меняет цену листинга и пишет PRICE_UPDATE в историю
func (s *ListingService) UpdateListingPrice(ctx context.Context, id uuid.UUID, req *entity.UpdatePriceRequest, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	listing, err := s.listingRepo.UpdatePriceWithContribution(ctx, id, req.Price, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		return nil, err
	}

	metrics.ContributionsRecorded.WithLabelValues(string(entity.ContributionPriceUpdate)).Inc()

	s.publishEvent(ctx, EventPriceUpdated, listing, userID)
	return listing, nil
}

// UpdateListingStock меняет наличие и пишет AVAILABILITY_UPDATE в историю
func (s *ListingService) UpdateListingStock(ctx context.Context, id uuid.UUID, req *entity.UpdateStockRequest, userID uuid.UUID) (*entity.SupermarketProduct, error) {
	if req.InStock == nil {
		return nil, ErrMissingStockFlag
	}

	listing, err := s.listingRepo.UpdateStockWithContribution(ctx, id, *req.InStock, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
		}
		return nil, err
	}

	metrics.ContributionsRecorded.WithLabelValues(string(entity.ContributionAvailabilityUpdate)).Inc()

	s.publishEvent(ctx, EventAvailabilityUpdated, listing, userID)
	return listing, nil
}

// publishEvent отправляет событие в Kafka после успешного коммита.
// Сбой брокера не откатывает уже записанные данные, только логируется
func (s *ListingService) publishEvent(ctx context.Context, eventType string, listing *entity.SupermarketProduct, userID uuid.UUID) {
	if s.publisher == nil {
		return
	}

	event := entity.ListingEvent{
		EventType:            eventType,
		SupermarketProductID: listing.ID,
		SupermarketID:        listing.SupermarketID,
		BrandProductID:       listing.BrandProductID,
		Unit:                 listing.Unit,
		Price:                listing.Price,
		InStock:              listing.InStock,
		UserID:               userID,
		Timestamp:            time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal listing event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, listing.ID.String(), data); err != nil {
		logger.Error().Err(err).
			Str("event_type", eventType).
			Str("listing_id", listing.ID.String()).
			Msg("failed to publish listing event")
	}
}
