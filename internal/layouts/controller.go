package layouts

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

// GetLayout handles GET /api/v1/events/:id/layout
func (c *Controller) GetLayout(ctx *gin.Context) {
	layout, err := c.service.GetLayout(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLayoutNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to load seat layout", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat layout retrieved successfully", layout)
}

// SaveLayout handles PUT /api/v1/admin/events/:id/layout
func (c *Controller) SaveLayout(ctx *gin.Context) {
	var req SaveLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	layout := &SeatLayout{Venue: req.Venue, Seats: req.Seats, ImageURL: req.ImageURL}
	if err := c.service.SaveLayout(ctx.Request.Context(), ctx.Param("id"), layout); err != nil {
		if errors.Is(err, ErrInvalidLayout) {
			response.Error(ctx, http.StatusBadRequest, "Invalid seat layout", err.Error())
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to save seat layout", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat layout saved successfully", layout)
}

// ToggleSeat handles POST /api/v1/admin/events/:id/layout/seats/:seatId/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	seat, err := c.service.ToggleSeat(ctx.Request.Context(), ctx.Param("id"), ctx.Param("seatId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSeatNotFound):
			response.Error(ctx, http.StatusNotFound, "Seat not found", nil)
		case errors.Is(err, ErrSeatBooked):
			response.Error(ctx, http.StatusConflict, "Booked seats cannot be toggled", nil)
		case errors.Is(err, ErrLayoutNotFound):
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to toggle seat", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Seat toggled successfully", seat)
}

// AddRow handles POST /api/v1/admin/events/:id/layout/rows
func (c *Controller) AddRow(ctx *gin.Context) {
	var req AddRowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	layout, err := c.service.AddRow(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRowAlreadyExists):
			response.Error(ctx, http.StatusConflict, "Row already exists", nil)
		case errors.Is(err, ErrLayoutNotFound):
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to add row", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Row added successfully", layout)
}

// RemoveRow handles DELETE /api/v1/admin/events/:id/layout/rows/:row
func (c *Controller) RemoveRow(ctx *gin.Context) {
	layout, err := c.service.RemoveRow(ctx.Request.Context(), ctx.Param("id"), ctx.Param("row"))
	if err != nil {
		switch {
		case errors.Is(err, ErrRowNotFound):
			response.Error(ctx, http.StatusNotFound, "Row not found", nil)
		case errors.Is(err, ErrCannotRemoveLastRow):
			response.Error(ctx, http.StatusConflict, "Cannot remove the last remaining row", nil)
		case errors.Is(err, ErrRowHasBookedSeats):
			response.Error(ctx, http.StatusConflict, "Row has booked seats", nil)
		case errors.Is(err, ErrLayoutNotFound):
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to remove row", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Row removed successfully", layout)
}

// SetRowCategory handles POST /api/v1/admin/events/:id/layout/rows/:row/category
func (c *Controller) SetRowCategory(ctx *gin.Context) {
	var req SetRowCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	layout, err := c.service.SetRowCategory(ctx.Request.Context(), ctx.Param("id"), ctx.Param("row"), req.Category)
	if err != nil {
		switch {
		case errors.Is(err, ErrRowNotFound):
			response.Error(ctx, http.StatusNotFound, "Row not found", nil)
		case errors.Is(err, ErrLayoutNotFound):
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to set row category", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Row category updated successfully", layout)
}

// AttachImage handles POST /api/v1/admin/events/:id/layout/image
func (c *Controller) AttachImage(ctx *gin.Context) {
	var req AttachImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.service.AttachReferenceImage(ctx.Request.Context(), ctx.Param("id"), req.ImageURL); err != nil {
		if errors.Is(err, ErrLayoutNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to attach reference image", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Reference image attached successfully", nil)
}
