package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"valoritario/catalog-service/internal/app/catalog/config"
	"valoritario/catalog-service/internal/app/catalog/entity"
	"valoritario/catalog-service/internal/app/catalog/handler"
	"valoritario/catalog-service/internal/app/catalog/repository"
	"valoritario/catalog-service/internal/app/catalog/service"
	"valoritario/catalog-service/internal/app/catalog/util"
	"valoritario/pkg/logger"
)

// Расписание прогрева кеша брендов
const cacheWarmSchedule = "@hourly"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("catalog-service", cfg.LogLevel)

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, "catalog-service", cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Кеш не критичен для работы сервиса: без Redis чтения идут в базу
	var cache util.BrandCache
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis, brand cache disabled")
	} else {
		cache = redisClient
		defer redisClient.Close()
		logger.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis")
	}

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	brandProductRepo := repository.NewBrandProductRepository(db)
	franchiseRepo := repository.NewFranchiseRepository(db)
	supermarketRepo := repository.NewSupermarketRepository(db)
	listingRepo := repository.NewListingRepository(db)
	contributionRepo := repository.NewContributionRepository(db)

	catalogService := service.NewCatalogService(
		brandRepo,
		productRepo,
		brandProductRepo,
		franchiseRepo,
		supermarketRepo,
		cache,
	)
	listingService := service.NewListingService(
		listingRepo,
		contributionRepo,
		supermarketRepo,
		brandProductRepo,
		kafkaProducer,
	)

	scheduler := util.NewCacheWarmScheduler(catalogService)
	if err := scheduler.Start(context.Background(), cacheWarmSchedule); err != nil {
		logger.Warn().Err(err).Msg("Failed to start cache warm scheduler")
	} else {
		defer scheduler.Stop()
	}

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	listingHandler := handler.NewListingHandler(listingService)
	router := handler.SetupRoutes(catalogHandler, listingHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Трансляция ошибок драйвера в gorm.ErrDuplicatedKey и прочие,
		// на этом построена обработка конфликтов уникальности в репозиториях
		TranslateError: true,
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else {
				pingErr := sqlDB.Ping()
				if pingErr != nil {
					err = pingErr
				} else {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetConnMaxIdleTime(1 * time.Minute)
					return db, nil
				}
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// migrate применяет схему и создает зарезервированный бренд Unbranded.
// Связки бренд-товар без бренда ссылаются на эту строку, поэтому она
// должна существовать до первого запроса
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Brand{},
		&entity.Product{},
		&entity.BrandProduct{},
		&entity.Franchise{},
		&entity.Supermarket{},
		&entity.SupermarketProduct{},
		&entity.ProductContribution{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	unbranded := entity.Brand{
		ID:        entity.UnbrandedBrandID,
		Name:      "Unbranded",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Where("id = ?", entity.UnbrandedBrandID).FirstOrCreate(&unbranded).Error; err != nil {
		return fmt.Errorf("bootstrap unbranded brand: %w", err)
	}

	return nil
}
