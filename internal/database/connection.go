// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avdeenko/strapshop-backend/internal/config"
	"github.com/avdeenko/strapshop-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogLevel == "info" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig)
		if err == nil {
			db.Exec("PRAGMA journal_mode=WAL;")
			db.Exec("PRAGMA foreign_keys=ON;")
			db.Exec("PRAGMA busy_timeout=5000;")
		}
	default:
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.ProductView{},
		&models.ProductLike{},
		&models.ProductRating{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Case-insensitive slug uniqueness
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_slug_lower ON categories(lower(slug))",

		// One view per (product, owner, calendar day), per owner branch
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_views_customer_day ON product_views(product_id, customer_id, view_date) WHERE customer_id IS NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_views_visitor_day ON product_views(product_id, visitor_id, view_date) WHERE visitor_id IS NOT NULL",

		// One like per (product, owner), per owner branch
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_customer ON product_likes(product_id, customer_id) WHERE customer_id IS NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_visitor ON product_likes(product_id, visitor_id) WHERE visitor_id IS NOT NULL",

		// One rating per (product, owner), per owner branch
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_customer ON product_ratings(product_id, customer_id) WHERE customer_id IS NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_visitor ON product_ratings(product_id, visitor_id) WHERE visitor_id IS NOT NULL",

		// Catalog listing
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_like_count ON products(like_count DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_view_count ON products(view_count DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("create index failed: %s: %w", index, err)
		}
	}

	return nil
}

// SeedVocabulary creates the category vocabulary rows if missing. Normal-kind
// categories are assignable to products; the other kinds only back the
// filter/meta listing.
func SeedVocabulary(db *gorm.DB) error {
	vocab := []models.Category{
		{Name: "Ремешки для часов", Slug: "watch-straps", Kind: models.CategoryKindNormal},
		{Name: "Чехлы", Slug: "cases", Kind: models.CategoryKindNormal},
		{Name: "Браслеты", Slug: "bracelets", Kind: models.CategoryKindNormal},
		{Name: "Обложки", Slug: "covers", Kind: models.CategoryKindNormal},
		{Name: "Аксессуары", Slug: "accessories", Kind: models.CategoryKindNormal},

		{Name: "Кожа", Slug: "leather", Kind: models.CategoryKindMaterial},
		{Name: "Металл", Slug: "metal", Kind: models.CategoryKindMaterial},
		{Name: "Силикон", Slug: "silicone", Kind: models.CategoryKindMaterial},

		{Name: "Бизнес", Slug: "business", Kind: models.CategoryKindCollection},
		{Name: "Лимитированная", Slug: "limited", Kind: models.CategoryKindCollection},
		{Name: "Премиум", Slug: "premium", Kind: models.CategoryKindCollection},
		{Name: "Сезонная", Slug: "seasonal", Kind: models.CategoryKindCollection},

		{Name: "Хит", Slug: "hit", Kind: models.CategoryKindPopularity},
		{Name: "Новинка", Slug: "new", Kind: models.CategoryKindPopularity},
		{Name: "Рекомендуем", Slug: "recommended", Kind: models.CategoryKindPopularity},
	}

	for _, c := range vocab {
		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %q: %w", c.Name, err)
		}
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
			}
		}
	}

	return nil
}
