package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"stagepass/internal/layouts"
	"stagepass/internal/selection"
	"stagepass/internal/shared/middleware"
	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// StartSession handles POST /api/v1/booking-sessions
func (c *Controller) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := c.service.StartSession(ctx.Request.Context(), req.EventID, middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, layouts.ErrLayoutNotFound) {
			response.Error(ctx, http.StatusNotFound, "Event not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to start booking session", nil)
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking session started", session)
}

// GetSession handles GET /api/v1/booking-sessions/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.service.GetSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking session retrieved", session)
}

// SeatMap handles GET /api/v1/booking-sessions/:id/seats
func (c *Controller) SeatMap(ctx *gin.Context) {
	seats, err := c.service.SeatMap(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat map retrieved", gin.H{
		"seats": seats,
		"count": len(seats),
	})
}

// SelectCategory handles POST /api/v1/booking-sessions/:id/category
func (c *Controller) SelectCategory(ctx *gin.Context) {
	var req SelectCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	session, err := c.service.SelectCategory(ctx.Request.Context(), ctx.Param("id"), req.Category)
	if err != nil {
		if errors.Is(err, ErrCategoryUnavailable) {
			response.Error(ctx, http.StatusConflict, "Seat category is closed for booking", nil)
			return
		}
		c.respondSessionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Category selected", session)
}

// ToggleSeat handles POST /api/v1/booking-sessions/:id/seats/:seatId/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	session, err := c.service.ToggleSeat(ctx.Request.Context(), ctx.Param("id"), ctx.Param("seatId"))
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrCategoryMismatch):
			response.Error(ctx, http.StatusConflict, "Seat does not belong to the active category", nil)
		case errors.Is(err, selection.ErrSeatLimitExceeded):
			response.Error(ctx, http.StatusConflict, "Seat selection limit reached", nil)
		case errors.Is(err, selection.ErrCategoryClosed):
			response.Error(ctx, http.StatusConflict, "Seat category is closed for booking", nil)
		case errors.Is(err, selection.ErrUnknownSeat):
			response.Error(ctx, http.StatusNotFound, "Seat not found", nil)
		default:
			c.respondSessionError(ctx, err)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Seat selection updated", session)
}

// Back handles POST /api/v1/booking-sessions/:id/back
func (c *Controller) Back(ctx *gin.Context) {
	session, err := c.service.Back(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Stepped back", session)
}

// Totals handles GET /api/v1/booking-sessions/:id/totals
func (c *Controller) Totals(ctx *gin.Context) {
	totals, err := c.service.ComputeSessionTotals(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Totals computed", totals)
}

// ProceedToPayment handles POST /api/v1/booking-sessions/:id/proceed
func (c *Controller) ProceedToPayment(ctx *gin.Context) {
	session, totals, err := c.service.ProceedToPayment(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSeatsSelected):
			response.Error(ctx, http.StatusBadRequest, "No seats selected", nil)
		case errors.Is(err, ErrNotAuthenticated):
			response.Error(ctx, http.StatusUnauthorized, "Sign in to proceed to payment", nil)
		default:
			c.respondSessionError(ctx, err)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Proceeded to payment", gin.H{
		"session": session,
		"totals":  totals,
	})
}

// Submit handles POST /api/v1/booking-sessions/:id/submit
func (c *Controller) Submit(ctx *gin.Context) {
	booking, err := c.service.Submit(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		var unavailable *SeatsUnavailableError
		switch {
		case errors.As(err, &unavailable):
			response.Error(ctx, http.StatusConflict, "Some seats are no longer available", gin.H{
				"seats": unavailable.Seats,
			})
		case errors.Is(err, ErrNotAuthenticated):
			response.Error(ctx, http.StatusUnauthorized, "Sign in to complete the booking", nil)
		default:
			c.respondSessionError(ctx, err)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking created", booking)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to get booking", nil)
		return
	}

	// Owners and admins only.
	if booking.UserID.String() != middleware.UserID(ctx) {
		if role, _ := ctx.Get("user_role"); role != middleware.RoleAdmin {
			response.Error(ctx, http.StatusForbidden, "Insufficient permissions", nil)
			return
		}
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved", booking)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	bookings, total, err := c.service.GetUserBookings(ctx.Request.Context(), middleware.UserID(ctx), limit, offset)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list bookings", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved", gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetEventBookings handles GET /api/v1/admin/events/:id/bookings
func (c *Controller) GetEventBookings(ctx *gin.Context) {
	bookings, err := c.service.GetEventBookings(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to list event bookings", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Event bookings retrieved", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

func (c *Controller) respondSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking session not found or expired", nil)
	case errors.Is(err, ErrInvalidStep):
		response.Error(ctx, http.StatusConflict, "Operation not allowed at this step", nil)
	case errors.Is(err, layouts.ErrLayoutNotFound):
		response.Error(ctx, http.StatusNotFound, "Event not found", nil)
	default:
		response.Error(ctx, http.StatusInternalServerError, "Booking session operation failed", nil)
	}
}
