package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const brandsCacheKey = "brands:all"

// RedisClient обертка над go-redis для кеширования справочных данных
// Список брендов запрашивается на каждом экране поиска, поэтому кешируется
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// SetBrands сохраняет список брендов в кеш с заданным TTL
func (r *RedisClient) SetBrands(ctx context.Context, brands []entity.Brand, ttl time.Duration) error {
	timer := metrics.NewRedisTimer("catalog-service", metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(brands)
	if err != nil {
		return fmt.Errorf("failed to marshal brands: %w", err)
	}

	if err := r.client.Set(ctx, brandsCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError("catalog-service", metrics.RedisOpSet)
		return fmt.Errorf("failed to set brands in cache: %w", err)
	}

	return nil
}

// GetBrands возвращает бренды из кеша, nil при промахе
func (r *RedisClient) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	timer := metrics.NewRedisTimer("catalog-service", metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, brandsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("catalog-service", "brands")
			return nil, nil
		}
		metrics.RecordRedisError("catalog-service", metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get brands from cache: %w", err)
	}

	var brands []entity.Brand
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal brands: %w", err)
	}

	metrics.RecordCacheHit("catalog-service", "brands")
	return brands, nil
}

// DeleteBrands инвалидирует кеш брендов (вызывается при любой записи бренда)
func (r *RedisClient) DeleteBrands(ctx context.Context) error {
	timer := metrics.NewRedisTimer("catalog-service", metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, brandsCacheKey).Err(); err != nil {
		metrics.RecordRedisError("catalog-service", metrics.RedisOpDel)
		return fmt.Errorf("failed to delete brands from cache: %w", err)
	}

	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
