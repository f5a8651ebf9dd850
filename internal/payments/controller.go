package payments

import (
	"errors"
	"net/http"

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

func isAdmin(ctx *gin.Context) bool {
	role, _ := ctx.Get("user_role")
	return role == middleware.RoleAdmin
}

// Instructions handles GET /api/v1/payments/:bookingId/upi
func (c *Controller) Instructions(ctx *gin.Context) {
	view, err := c.service.Instructions(ctx.Request.Context(), ctx.Param("bookingId"), middleware.UserID(ctx), isAdmin(ctx))
	if err != nil {
		c.respondPaymentError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment instructions retrieved", view)
}

// QRCode handles GET /api/v1/payments/:bookingId/qr
func (c *Controller) QRCode(ctx *gin.Context) {
	png, err := c.service.QRCode(ctx.Request.Context(), ctx.Param("bookingId"), middleware.UserID(ctx), isAdmin(ctx))
	if err != nil {
		c.respondPaymentError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// SubmitUTR handles POST /api/v1/payments/:bookingId/utr
func (c *Controller) SubmitUTR(ctx *gin.Context) {
	var req SubmitUTRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "UTR must be 12 to 22 alphanumeric characters", err.Error())
		return
	}

	booking, err := c.service.SubmitUTR(ctx.Request.Context(), ctx.Param("bookingId"), middleware.UserID(ctx), isAdmin(ctx), req.UTR)
	if err != nil {
		c.respondPaymentError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "UTR submitted for verification", booking)
}

// PendingPayments handles GET /api/v1/admin/payments/pending
func (c *Controller) PendingPayments(ctx *gin.Context) {
	pending, err := c.service.PendingPayments(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list pending payments", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Pending payments retrieved", gin.H{
		"payments": pending,
		"count":    len(pending),
	})
}

// Approve handles POST /api/v1/admin/payments/:bookingId/approve
func (c *Controller) Approve(ctx *gin.Context) {
	booking, err := c.service.Approve(ctx.Request.Context(), ctx.Param("bookingId"), middleware.UserID(ctx))
	if err != nil {
		c.respondPaymentError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment approved", booking)
}

// Reject handles POST /api/v1/admin/payments/:bookingId/reject
func (c *Controller) Reject(ctx *gin.Context) {
	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := c.service.Reject(ctx.Request.Context(), ctx.Param("bookingId"), middleware.UserID(ctx), req.Reason)
	if err != nil {
		c.respondPaymentError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Payment rejected", booking)
}

func (c *Controller) respondPaymentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
	case errors.Is(err, ErrNotOwner):
		response.Error(ctx, http.StatusForbidden, "Insufficient permissions", nil)
	case errors.Is(err, ErrUTRRequired), errors.Is(err, ErrUTRFormat):
		response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrUTRMissing):
		response.Error(ctx, http.StatusConflict, "No UTR submitted for this booking", nil)
	case errors.Is(err, ErrPaymentAlreadySettled):
		response.Error(ctx, http.StatusConflict, "Payment already settled", nil)
	case errors.Is(err, ErrPaymentWindowExpired):
		response.Error(ctx, http.StatusGone, "Payment window expired", nil)
	default:
		response.Error(ctx, http.StatusInternalServerError, "Payment operation failed", nil)
	}
}
