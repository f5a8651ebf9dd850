package payments

import "github.com/gin-gonic/gin"

// SetupPaymentRoutes registers the buyer-facing payment routes. The caller
// mounts these behind JWTAuth.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.GET("/:bookingId/upi", controller.Instructions)
		payments.GET("/:bookingId/qr", controller.QRCode)
		payments.POST("/:bookingId/utr", controller.SubmitUTR)
	}
}

// SetupAdminPaymentRoutes registers the review queue. The caller mounts
// these behind auth + admin middleware.
func SetupAdminPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.GET("/pending", controller.PendingPayments)
		payments.POST("/:bookingId/approve", controller.Approve)
		payments.POST("/:bookingId/reject", controller.Reject)
	}
}
