// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/avdeenko/strapshop-backend/internal/services"
	"github.com/avdeenko/strapshop-backend/internal/utils"
)

// respondServiceError maps service sentinel errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidOwner),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidPriceRange),
		errors.Is(err, services.ErrInvalidSort),
		errors.Is(err, services.ErrInvalidPagination):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
