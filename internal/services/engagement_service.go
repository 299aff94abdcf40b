// internal/services/engagement_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

// EngagementService is the only writer of the view/like/rating ledger and of
// the denormalized counters on products. Every operation runs as a single
// transaction covering the existence check, the ledger mutation and the
// counter recompute, so readers never observe a counter that disagrees with
// the ledger rows.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// RecordView counts at most one view per (product, owner, UTC calendar day).
// A repeat view on the same day is a silent no-op. A zero owner skips
// recording entirely; the identity middleware mints a visitor token before
// any catalog route, so that only happens for callers bypassing it.
func (s *EngagementService) RecordView(ctx context.Context, productID uint, owner models.Owner, ip, userAgent string) error {
	if owner.IsZero() {
		return nil
	}
	if err := owner.Validate(); err != nil {
		return ErrInvalidOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, productID); err != nil {
			return err
		}

		day := models.ViewDateOf(time.Now())
		var count int64
		q := ownerScoped(tx.Model(&models.ProductView{}), owner).
			Where("product_id = ? AND view_date = ?", productID, day)
		if err := q.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing view: %w", err)
		}
		if count > 0 {
			return nil
		}

		view := &models.ProductView{
			ProductID:  productID,
			CustomerID: owner.CustomerID,
			VisitorID:  owner.VisitorID,
			IP:         ip,
			UserAgent:  userAgent,
			ViewDate:   day,
		}
		if err := tx.Create(view).Error; err != nil {
			if isDuplicate(err) {
				// Concurrent view from the same owner on the same day.
				return nil
			}
			return fmt.Errorf("failed to record view: %w", err)
		}

		_, err := recalcViewCount(tx, productID)
		return err
	})
}

// Like inserts a like for the owner if absent and returns the like count.
// Liking an already-liked product is idempotent.
func (s *EngagementService) Like(ctx context.Context, productID uint, owner models.Owner) (int64, error) {
	if err := owner.Validate(); err != nil {
		return 0, ErrInvalidOwner
	}

	var likeCount int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, productID); err != nil {
			return err
		}

		var count int64
		q := ownerScoped(tx.Model(&models.ProductLike{}), owner).Where("product_id = ?", productID)
		if err := q.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing like: %w", err)
		}

		if count == 0 {
			like := &models.ProductLike{
				ProductID:  productID,
				CustomerID: owner.CustomerID,
				VisitorID:  owner.VisitorID,
			}
			if err := tx.Create(like).Error; err != nil && !isDuplicate(err) {
				return fmt.Errorf("failed to create like: %w", err)
			}
		}

		n, err := recalcLikeCount(tx, productID)
		if err != nil {
			return err
		}
		likeCount = n
		return nil
	})
	return likeCount, err
}

// Unlike removes the owner's like if present and returns the like count.
// Unliking an absent like is idempotent.
func (s *EngagementService) Unlike(ctx context.Context, productID uint, owner models.Owner) (int64, error) {
	if err := owner.Validate(); err != nil {
		return 0, ErrInvalidOwner
	}

	var likeCount int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, productID); err != nil {
			return err
		}

		q := ownerScoped(tx.Where("product_id = ?", productID), owner)
		if err := q.Delete(&models.ProductLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		n, err := recalcLikeCount(tx, productID)
		if err != nil {
			return err
		}
		likeCount = n
		return nil
	})
	return likeCount, err
}

// SetRating upserts the owner's single rating (value and comment) and returns
// the recomputed product-wide average alongside the caller's rating value.
func (s *EngagementService) SetRating(ctx context.Context, productID uint, owner models.Owner, rating int, comment string) (avgRating float64, myRating int, err error) {
	if err := owner.Validate(); err != nil {
		return 0, 0, ErrInvalidOwner
	}
	if rating < 1 || rating > 5 {
		return 0, 0, ErrInvalidRating
	}

	// A create can lose the race between the existence check and the insert;
	// retry the whole transaction once before surfacing a conflict.
	for attempt := 0; attempt < 2; attempt++ {
		avgRating, err = s.setRatingTx(ctx, productID, owner, rating, comment)
		if err == nil {
			return avgRating, rating, nil
		}
		if !isDuplicate(err) {
			return 0, 0, err
		}
	}
	return 0, 0, ErrConflict
}

func (s *EngagementService) setRatingTx(ctx context.Context, productID uint, owner models.Owner, rating int, comment string) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, productID); err != nil {
			return err
		}

		var existing models.ProductRating
		q := ownerScoped(tx.Where("product_id = ?", productID), owner)
		err := q.First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"rating":     rating,
				"comment":    comment,
				"updated_at": time.Now(),
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update rating: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := &models.ProductRating{
				ProductID:  productID,
				CustomerID: owner.CustomerID,
				VisitorID:  owner.VisitorID,
				Rating:     rating,
				Comment:    comment,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		default:
			return fmt.Errorf("failed to load rating: %w", err)
		}

		a, err := recalcAvgRating(tx, productID)
		if err != nil {
			return err
		}
		avg = a
		return nil
	})
	return avg, err
}

// DeleteRating removes the owner's rating if present and returns the
// recomputed average (0.00 when no ratings remain). Idempotent.
func (s *EngagementService) DeleteRating(ctx context.Context, productID uint, owner models.Owner) (float64, error) {
	if err := owner.Validate(); err != nil {
		return 0, ErrInvalidOwner
	}

	var avg float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, productID); err != nil {
			return err
		}

		q := ownerScoped(tx.Where("product_id = ?", productID), owner)
		if err := q.Delete(&models.ProductRating{}).Error; err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}

		a, err := recalcAvgRating(tx, productID)
		if err != nil {
			return err
		}
		avg = a
		return nil
	})
	return avg, err
}

// lockProduct verifies the product exists and, on postgres, takes a row lock
// so concurrent writers for the same product serialize. SQLite allows a
// single writer at a time and does not parse FOR UPDATE, so the lock clause
// is skipped there.
func lockProduct(tx *gorm.DB, productID uint) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	if err := q.Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product: %w", err)
	}
	return nil
}

// ownerScoped narrows a query to the single identity branch the owner carries.
func ownerScoped(db *gorm.DB, owner models.Owner) *gorm.DB {
	if owner.CustomerID != nil {
		return db.Where("customer_id = ?", *owner.CustomerID)
	}
	return db.Where("visitor_id = ?", *owner.VisitorID)
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
