package util

import (
	"context"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"
)

// BrandCache интерфейс кеша справочника брендов
// Используется для dependency injection и упрощения тестирования
type BrandCache interface {
	SetBrands(ctx context.Context, brands []entity.Brand, ttl time.Duration) error
	GetBrands(ctx context.Context) ([]entity.Brand, error)
	DeleteBrands(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
