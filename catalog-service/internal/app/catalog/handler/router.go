package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"valoritario/pkg/logger"
	"valoritario/pkg/metrics"
)

// SetupRoutes собирает роутер сервиса. Чтение каталога и поиск публичные,
// все мутации требуют JWT: история изменений атрибутируется пользователю
func SetupRoutes(catalogHandler *CatalogHandler, listingHandler *ListingHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	brands := router.Group("/brands")
	{
		brands.GET("/", catalogHandler.ListBrands)
		brands.GET("/all", catalogHandler.GetAllBrands)
		brands.GET("/:brand_id", catalogHandler.GetBrand)
	}
	brandsAuth := router.Group("/brands")
	brandsAuth.Use(authMiddleware.Authenticate())
	{
		brandsAuth.POST("/", catalogHandler.CreateBrand)
		brandsAuth.PATCH("/:brand_id", catalogHandler.UpdateBrand)
	}

	products := router.Group("/products")
	{
		products.GET("/", catalogHandler.ListProducts)
		products.GET("/:product_id", catalogHandler.GetProduct)
	}
	productsAuth := router.Group("/products")
	productsAuth.Use(authMiddleware.Authenticate())
	{
		productsAuth.POST("/", catalogHandler.CreateProduct)
		productsAuth.PATCH("/:product_id", catalogHandler.UpdateProduct)
	}

	brandProducts := router.Group("/brand-products")
	{
		brandProducts.GET("/", catalogHandler.ListBrandProducts)
		brandProducts.GET("/:brand_product_id", catalogHandler.GetBrandProduct)
	}
	brandProductsAuth := router.Group("/brand-products")
	brandProductsAuth.Use(authMiddleware.Authenticate())
	{
		brandProductsAuth.POST("/", catalogHandler.CreateBrandProduct)
	}

	franchises := router.Group("/franchises")
	{
		franchises.GET("/", catalogHandler.GetAllFranchises)
		franchises.GET("/:franchise_id", catalogHandler.GetFranchise)
	}
	franchisesAuth := router.Group("/franchises")
	franchisesAuth.Use(authMiddleware.Authenticate())
	{
		franchisesAuth.POST("/", catalogHandler.CreateFranchise)
	}

	supermarkets := router.Group("/supermarkets")
	{
		supermarkets.GET("/", catalogHandler.ListSupermarkets)
		supermarkets.GET("/:supermarket_id", catalogHandler.GetSupermarket)
	}
	supermarketsAuth := router.Group("/supermarkets")
	supermarketsAuth.Use(authMiddleware.Authenticate())
	{
		supermarketsAuth.POST("/", catalogHandler.CreateSupermarket)
	}

	listings := router.Group("/listings")
	{
		listings.GET("/", listingHandler.SearchListings)
		listings.GET("/:listing_id", listingHandler.GetListing)
		listings.GET("/:listing_id/contributions", listingHandler.GetContributions)
	}
	listingsAuth := router.Group("/listings")
	listingsAuth.Use(authMiddleware.Authenticate())
	{
		listingsAuth.POST("/", listingHandler.CreateListing)
		listingsAuth.PATCH("/:listing_id/price", listingHandler.UpdatePrice)
		listingsAuth.PATCH("/:listing_id/stock", listingHandler.UpdateStock)
	}

	return router
}
