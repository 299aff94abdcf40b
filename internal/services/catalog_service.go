// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avdeenko/strapshop-backend/internal/models"
)

const (
	SortRelevance = "relevance"

	DefaultPageLimit = 24
)

// sortOrders maps every non-relevance sort key to its ORDER BY column.
// Relevance is resolved separately because of its tie-break chain.
var sortOrders = map[string]string{
	"name_asc":    "name ASC",
	"name_desc":   "name DESC",
	"price_asc":   "price ASC",
	"price_desc":  "price DESC",
	"rating_asc":  "avg_rating ASC",
	"rating_desc": "avg_rating DESC",
	"views_desc":  "view_count DESC",
	"likes_desc":  "like_count DESC",
	"newest":      "created_at DESC",
}

type ProductFilter struct {
	Query         string
	CategorySlugs []string
	Materials     []string
	Collections   []string
	Popularity    []string
	PriceMin      *float64
	PriceMax      *float64
	Sort          string
	Page          int
	Limit         int
}

// Normalize fills defaults for unset fields.
func (f *ProductFilter) Normalize() {
	if f.Sort == "" {
		f.Sort = SortRelevance
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageLimit
	}
}

// Validate rejects malformed filters before any query executes.
func (f *ProductFilter) Validate() error {
	if f.Sort != SortRelevance {
		if _, ok := sortOrders[f.Sort]; !ok {
			return ErrInvalidSort
		}
	}
	if f.Page < 1 || f.Limit < 1 {
		return ErrInvalidPagination
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return ErrInvalidPriceRange
	}
	return nil
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
	Pages int              `json:"pages"`
}

type CatalogMeta struct {
	Categories  []models.Category `json:"categories"`
	Materials   []models.Category `json:"materials"`
	Collections []models.Category `json:"collections"`
	Popularity  []models.Category `json:"popularity"`
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// FindAll returns one page of products matching the filter together with the
// exact total across all pages. Items and total run as independent read-only
// queries sharing the same predicate.
func (s *CatalogService) FindAll(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var categoryIDs []uint
	if len(filter.CategorySlugs) > 0 {
		ids, err := s.resolveCategoryIDs(ctx, filter.CategorySlugs)
		if err != nil {
			return nil, err
		}
		categoryIDs = ids
	}

	var (
		items []models.Product
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := s.filtered(gctx, filter, categoryIDs)
		if err := query.Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		query := s.filtered(gctx, filter, categoryIDs).Preload("Categories")
		query = s.applySort(query, filter)
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
		if err := query.Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	if pages < 1 {
		pages = 1
	}

	return &ProductPage{
		Items: items,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

// filtered builds a fresh query carrying every filter predicate except
// sorting and pagination.
func (s *CatalogService) filtered(ctx context.Context, f ProductFilter, categoryIDs []uint) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if f.Query != "" {
		term := "%" + strings.ToLower(f.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	if len(f.CategorySlugs) > 0 {
		if len(categoryIDs) == 0 {
			// Requested categories resolve to nothing; match no rows.
			return query.Where("1 = 0")
		}
		sub := s.db.Table("product_categories").
			Select("product_id").
			Where("category_id IN ?", categoryIDs)
		query = query.Where("products.id IN (?)", sub)
	}

	if len(f.Materials) > 0 {
		query = query.Where("material IN ?", f.Materials)
	}
	if len(f.Collections) > 0 {
		query = query.Where("collection IN ?", f.Collections)
	}
	if len(f.Popularity) > 0 {
		query = query.Where("popularity IN ?", f.Popularity)
	}

	if f.PriceMin != nil {
		query = query.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		query = query.Where("price <= ?", *f.PriceMax)
	}

	return query
}

// applySort resolves the sort key. Relevance orders by position of the query
// substring within the lower-cased name (rows without a name match rank
// last), then like_count, view_count and recency; without a query term the
// position key is dropped.
func (s *CatalogService) applySort(query *gorm.DB, f ProductFilter) *gorm.DB {
	if f.Sort != SortRelevance {
		return query.Order(sortOrders[f.Sort])
	}

	if f.Query == "" {
		return query.Order("like_count DESC, view_count DESC, created_at DESC")
	}

	pos := "INSTR(LOWER(name), ?)"
	if s.db.Dialector.Name() == "postgres" {
		pos = "POSITION(? IN LOWER(name))"
	}
	orderSQL := fmt.Sprintf(
		"CASE WHEN %s > 0 THEN %s ELSE 2147483647 END, like_count DESC, view_count DESC, created_at DESC",
		pos, pos,
	)
	needle := strings.ToLower(f.Query)
	return query.Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                orderSQL,
			Vars:               []interface{}{needle, needle},
			WithoutParentheses: true,
		},
	})
}

// resolveCategoryIDs maps requested slugs onto normal-kind category ids.
// Slugs without a matching row fall back to the legacy display-name table so
// rows tagged only by name still match.
func (s *CatalogService) resolveCategoryIDs(ctx context.Context, slugs []string) ([]uint, error) {
	lowered := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		lowered = append(lowered, strings.ToLower(slug))
	}

	var matched []models.Category
	err := s.db.WithContext(ctx).
		Where("kind = ? AND LOWER(slug) IN ?", models.CategoryKindNormal, lowered).
		Find(&matched).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category slugs: %w", err)
	}

	ids := make([]uint, 0, len(matched))
	found := make(map[string]bool, len(matched))
	for _, c := range matched {
		ids = append(ids, c.ID)
		found[strings.ToLower(c.Slug)] = true
	}

	var labels []string
	for _, slug := range lowered {
		if found[slug] {
			continue
		}
		if label, ok := legacyCategoryLabel(slug); ok {
			labels = append(labels, label)
		}
	}
	if len(labels) > 0 {
		var legacy []models.Category
		err := s.db.WithContext(ctx).
			Where("kind = ? AND name IN ?", models.CategoryKindNormal, labels).
			Find(&legacy).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve legacy category names: %w", err)
		}
		for _, c := range legacy {
			ids = append(ids, c.ID)
		}
	}

	return ids, nil
}

// FindOne loads a single product with its categories.
func (s *CatalogService) FindOne(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Categories").First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// GetMeta lists the filter vocabulary grouped by category kind.
func (s *CatalogService) GetMeta(ctx context.Context) (*CatalogMeta, error) {
	var all []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	meta := &CatalogMeta{
		Categories:  []models.Category{},
		Materials:   []models.Category{},
		Collections: []models.Category{},
		Popularity:  []models.Category{},
	}
	for _, c := range all {
		switch c.Kind {
		case models.CategoryKindMaterial:
			meta.Materials = append(meta.Materials, c)
		case models.CategoryKindCollection:
			meta.Collections = append(meta.Collections, c)
		case models.CategoryKindPopularity:
			meta.Popularity = append(meta.Popularity, c)
		default:
			meta.Categories = append(meta.Categories, c)
		}
	}
	return meta, nil
}
