// internal/handlers/favorites.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/avdeenko/strapshop-backend/internal/middleware"
	"github.com/avdeenko/strapshop-backend/internal/services"
	"github.com/avdeenko/strapshop-backend/internal/utils"
)

type FavoritesHandler struct {
	favoritesService *services.FavoritesService
}

func NewFavoritesHandler(favoritesService *services.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	owner := middleware.OwnerFromContext(c)
	products, err := h.favoritesService.GetFavorites(c.Request.Context(), owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}
