// internal/services/favorites_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

// FavoritesService translates a request owner into ledger reads: the liked
// product listing and the per-owner enrichment on product detail.
type FavoritesService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewFavoritesService(db *gorm.DB, catalog *CatalogService) *FavoritesService {
	return &FavoritesService{db: db, catalog: catalog}
}

// ProductDetail is a product as seen by one owner.
type ProductDetail struct {
	models.Product
	Liked    bool `json:"liked"`
	MyRating *int `json:"my_rating"`
}

// GetFavorites lists the products the owner has liked, newest like first.
func (s *FavoritesService) GetFavorites(ctx context.Context, owner models.Owner) ([]models.Product, error) {
	if err := owner.Validate(); err != nil {
		return nil, ErrInvalidOwner
	}

	var likes []models.ProductLike
	q := ownerScoped(s.db.WithContext(ctx), owner).Order("created_at DESC")
	if err := q.Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	if len(likes) == 0 {
		return []models.Product{}, nil
	}

	ids := make([]uint, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.ProductID)
	}

	var products []models.Product
	err := s.db.WithContext(ctx).Preload("Categories").Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite products: %w", err)
	}

	// Preserve like order.
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// GetProductForOwner loads a product enriched with the owner's like and
// rating state. A zero owner yields the bare product.
func (s *FavoritesService) GetProductForOwner(ctx context.Context, productID uint, owner models.Owner) (*ProductDetail, error) {
	product, err := s.catalog.FindOne(ctx, productID)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: *product}
	if owner.IsZero() {
		return detail, nil
	}
	if err := owner.Validate(); err != nil {
		return nil, ErrInvalidOwner
	}

	var likeCount int64
	q := ownerScoped(s.db.WithContext(ctx).Model(&models.ProductLike{}), owner).
		Where("product_id = ?", productID)
	if err := q.Count(&likeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}
	detail.Liked = likeCount > 0

	var rating models.ProductRating
	rq := ownerScoped(s.db.WithContext(ctx).Where("product_id = ?", productID), owner)
	if err := rq.First(&rating).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load rating: %w", err)
		}
	} else {
		detail.MyRating = &rating.Rating
	}

	return detail, nil
}
