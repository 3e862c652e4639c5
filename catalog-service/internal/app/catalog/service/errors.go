package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers.
// Таксономия: Validation / NotFound / Conflict, все остальное - Internal
var (
	// Validation - отклоняются до любого обращения к хранилищу
	ErrInvalidPagination = errors.New("page and limit must be greater than 0")
	ErrInvalidSortBy     = errors.New("sortBy must be one of: price, createdAt, updatedAt")
	ErrInvalidSortOrder  = errors.New("sortOrder must be asc or desc")
	ErrInvalidPrice      = errors.New("price must be positive")
	ErrEmptyUnit         = errors.New("unit must not be empty")
	ErrMissingStockFlag  = errors.New("in_stock is required")

	// NotFound - хендлер дополняет сообщением, какой ID не найден
	ErrBrandNotFound        = errors.New("brand not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrBrandProductNotFound = errors.New("brand product not found")
	ErrFranchiseNotFound    = errors.New("franchise not found")
	ErrSupermarketNotFound  = errors.New("supermarket not found")
	ErrListingNotFound      = errors.New("supermarket product not found")

	// Conflict - нарушение уникальности
	ErrBrandConflict        = errors.New("brand with this name already exists")
	ErrProductConflict      = errors.New("product with this name already exists")
	ErrBrandProductConflict = errors.New("brand product with this brand and product combination already exists")
	ErrFranchiseConflict    = errors.New("franchise with this name already exists")
	ErrSupermarketConflict  = errors.New("supermarket with this name and address already exists")
	ErrListingConflict      = errors.New("supermarket product with this supermarket, brand product and unit combination already exists")
)
