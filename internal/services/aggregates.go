// internal/services/aggregates.go
package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

// Counter recomputation. Each helper derives the new value from the ledger
// tables alone (never from the previous counter), so redundant calls cannot
// accumulate drift, and persists it onto the product row within the caller's
// transaction.

func recalcViewCount(tx *gorm.DB, productID uint) (int64, error) {
	var n int64
	if err := tx.Model(&models.ProductView{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count views: %w", err)
	}
	if err := updateCounters(tx, productID, map[string]interface{}{"view_count": n}); err != nil {
		return 0, err
	}
	return n, nil
}

func recalcLikeCount(tx *gorm.DB, productID uint) (int64, error) {
	var n int64
	if err := tx.Model(&models.ProductLike{}).Where("product_id = ?", productID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	if err := updateCounters(tx, productID, map[string]interface{}{"like_count": n}); err != nil {
		return 0, err
	}
	return n, nil
}

func recalcAvgRating(tx *gorm.DB, productID uint) (float64, error) {
	var avg float64
	err := tx.Model(&models.ProductRating{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}

	avg = math.Round(avg*100) / 100
	if err := updateCounters(tx, productID, map[string]interface{}{"avg_rating": avg}); err != nil {
		return 0, err
	}
	return avg, nil
}

func updateCounters(tx *gorm.DB, productID uint, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Updates(values).Error; err != nil {
		return fmt.Errorf("failed to update product counters: %w", err)
	}
	return nil
}
