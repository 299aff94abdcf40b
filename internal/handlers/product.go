// internal/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avdeenko/strapshop-backend/internal/middleware"
	"github.com/avdeenko/strapshop-backend/internal/services"
	"github.com/avdeenko/strapshop-backend/internal/utils"
)

type ProductHandler struct {
	catalogService    *services.CatalogService
	favoritesService  *services.FavoritesService
	engagementService *services.EngagementService
}

func NewProductHandler(catalogService *services.CatalogService, favoritesService *services.FavoritesService, engagementService *services.EngagementService) *ProductHandler {
	return &ProductHandler{
		catalogService:    catalogService,
		favoritesService:  favoritesService,
		engagementService: engagementService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter, ok := parseProductFilter(c)
	if !ok {
		return
	}

	page, err := h.catalogService.FindAll(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, page)
}

// GET /products/meta
func (h *ProductHandler) GetMeta(c *gin.Context) {
	meta, err := h.catalogService.GetMeta(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, meta)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	owner := middleware.OwnerFromContext(c)
	detail, err := h.favoritesService.GetProductForOwner(c.Request.Context(), productID, owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// A detail read counts as a view; dedup makes repeats on the same day free.
	if err := h.engagementService.RecordView(c.Request.Context(), productID, owner, c.ClientIP(), c.Request.UserAgent()); err != nil {
		logrus.WithError(err).Warn("Failed to record product view")
	}

	utils.SuccessResponse(c, gin.H{"product": detail})
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return 0, false
	}
	return uint(id), true
}

func parseProductFilter(c *gin.Context) (services.ProductFilter, bool) {
	var filter services.ProductFilter

	filter.Query = c.Query("q")
	filter.Sort = c.Query("sort")

	// Either a single category or a comma-separated list.
	if category := c.Query("category"); category != "" {
		filter.CategorySlugs = append(filter.CategorySlugs, category)
	}
	if categories := c.Query("categories"); categories != "" {
		filter.CategorySlugs = append(filter.CategorySlugs, splitList(categories)...)
	}
	filter.Materials = splitList(c.Query("materials"))
	filter.Collections = splitList(c.Query("collections"))
	filter.Popularity = splitList(c.Query("popularity"))

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		priceMin, err := strconv.ParseFloat(priceMinStr, 64)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid price_min", nil)
			return filter, false
		}
		filter.PriceMin = &priceMin
	}
	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		priceMax, err := strconv.ParseFloat(priceMaxStr, 64)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid price_max", nil)
			return filter, false
		}
		filter.PriceMax = &priceMax
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid page", nil)
			return filter, false
		}
		filter.Page = page
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid limit", nil)
			return filter, false
		}
		filter.Limit = limit
	}

	return filter, true
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
