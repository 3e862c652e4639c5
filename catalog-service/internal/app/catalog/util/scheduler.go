package util

import (
	"context"

	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/pkg/logger"

	"github.com/robfig/cron/v3"
)

// BrandLister - источник полного списка брендов для прогрева кеша
type BrandLister interface {
	GetAllBrands(ctx context.Context) ([]entity.Brand, error)
}

// CacheWarmScheduler периодически прогревает кеш брендов, чтобы первый
// запрос после истечения TTL не упирался в базу
type CacheWarmScheduler struct {
	cron   *cron.Cron
	brands BrandLister
}

func NewCacheWarmScheduler(brands BrandLister) *CacheWarmScheduler {
	return &CacheWarmScheduler{
		cron:   cron.New(),
		brands: brands,
	}
}

// Start запускает прогрев по расписанию и выполняет первый прогрев сразу
func (s *CacheWarmScheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.brands.GetAllBrands(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to warm brands cache")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Cache warm scheduler started")

	if _, err := s.brands.GetAllBrands(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed initial brands cache warm")
	}

	return nil
}

func (s *CacheWarmScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cache warm scheduler stopped")
}
