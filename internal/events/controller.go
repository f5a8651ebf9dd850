package events

import (
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListEvents handles GET /api/v1/events
func (c *Controller) ListEvents(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	events, total, err := c.service.ListEvents(ctx.Request.Context(), limit, offset)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list events", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Events retrieved successfully", gin.H{
		"events": events,
		"count":  len(events),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetEvent handles GET /api/v1/events/:id
func (c *Controller) GetEvent(ctx *gin.Context) {
	event, err := c.service.GetEvent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get event", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Event retrieved successfully", event)
}
