// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avdeenko/strapshop-backend/internal/config"
	"github.com/avdeenko/strapshop-backend/internal/handlers"
	"github.com/avdeenko/strapshop-backend/internal/middleware"
	"github.com/avdeenko/strapshop-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	catalogService := services.NewCatalogService(db)
	engagementService := services.NewEngagementService(db)
	favoritesService := services.NewFavoritesService(db, catalogService)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService, favoritesService, engagementService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.Identity(cfg.JWT.SecretKey))
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/meta", productHandler.GetMeta)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/view", engagementHandler.AddView)
			products.POST("/:id/like", engagementHandler.Like)
			products.DELETE("/:id/like", engagementHandler.Unlike)
			products.PUT("/:id/rating", engagementHandler.SetRating)
			products.DELETE("/:id/rating", engagementHandler.DeleteRating)
		}

		v1.GET("/favorites", favoritesHandler.GetFavorites)
	}

	return r
}
