// internal/handlers/engagement.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/avdeenko/strapshop-backend/internal/middleware"
	"github.com/avdeenko/strapshop-backend/internal/services"
	"github.com/avdeenko/strapshop-backend/internal/utils"
)

type EngagementHandler struct {
	engagementService *services.EngagementService
}

func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

type SetRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}

// POST /products/:id/view
func (h *EngagementHandler) AddView(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	owner := middleware.OwnerFromContext(c)
	err := h.engagementService.RecordView(c.Request.Context(), productID, owner, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"recorded": true})
}

// POST /products/:id/like
func (h *EngagementHandler) Like(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	owner := middleware.OwnerFromContext(c)
	likeCount, err := h.engagementService.Like(c.Request.Context(), productID, owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"like_count": likeCount})
}

// DELETE /products/:id/like
func (h *EngagementHandler) Unlike(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	owner := middleware.OwnerFromContext(c)
	likeCount, err := h.engagementService.Unlike(c.Request.Context(), productID, owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"like_count": likeCount})
}

// PUT /products/:id/rating
func (h *EngagementHandler) SetRating(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req SetRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid input", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	owner := middleware.OwnerFromContext(c)
	avgRating, myRating, err := h.engagementService.SetRating(c.Request.Context(), productID, owner, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"avg_rating": avgRating,
		"my_rating":  myRating,
	})
}

// DELETE /products/:id/rating
func (h *EngagementHandler) DeleteRating(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	owner := middleware.OwnerFromContext(c)
	avgRating, err := h.engagementService.DeleteRating(c.Request.Context(), productID, owner)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"avg_rating": avgRating})
}
