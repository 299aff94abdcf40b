// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	SKU           string         `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int            `json:"stock_quantity" gorm:"default:0"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Material      Material       `json:"material" gorm:"type:varchar(20);index"`
	Popularity    Popularity     `json:"popularity" gorm:"type:varchar(20);index"`
	Collection    Collection     `json:"collection" gorm:"type:varchar(20);index"`

	// Denormalized counters, written only by the engagement ledger.
	ViewCount int64   `json:"view_count" gorm:"not null;default:0"`
	LikeCount int64   `json:"like_count" gorm:"not null;default:0"`
	AvgRating float64 `json:"avg_rating" gorm:"type:decimal(3,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Categories []Category `json:"categories,omitempty" gorm:"many2many:product_categories"`
}
