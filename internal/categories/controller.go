package categories

import (
	"errors"
	"net/http"

	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListCategories handles GET /api/v1/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	categories, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list seat categories", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat categories retrieved successfully", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory handles POST /api/v1/admin/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	category, err := c.service.CreateCategory(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to create seat category", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Seat category created successfully", category)
}

// UpdateCategory handles PUT /api/v1/admin/categories/:id
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var req UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	category, err := c.service.UpdateCategory(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(ctx, http.StatusNotFound, "Seat category not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to update seat category", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Seat category updated successfully", category)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id
func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.service.DeleteCategory(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(ctx, http.StatusNotFound, "Seat category not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to delete seat category", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Seat category deleted successfully", nil)
}
