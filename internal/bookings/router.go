package bookings

import "github.com/gin-gonic/gin"

// SetupSessionRoutes registers the booking session flow. The caller mounts
// these behind OptionalAuth so the flow starts anonymous; the proceed and
// submit handlers enforce authentication themselves.
func SetupSessionRoutes(rg *gin.RouterGroup, controller *Controller) {
	sessions := rg.Group("/booking-sessions")
	{
		sessions.POST("", controller.StartSession)
		sessions.GET("/:id", controller.GetSession)
		sessions.GET("/:id/seats", controller.SeatMap)
		sessions.GET("/:id/totals", controller.Totals)
		sessions.POST("/:id/category", controller.SelectCategory)
		sessions.POST("/:id/seats/:seatId/toggle", controller.ToggleSeat)
		sessions.POST("/:id/back", controller.Back)
		sessions.POST("/:id/proceed", controller.ProceedToPayment)
		sessions.POST("/:id/submit", controller.Submit)
	}
}

// SetupBookingRoutes registers the authenticated booking reads. The caller
// mounts these behind JWTAuth.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/bookings/:id", controller.GetBooking)
	rg.GET("/users/bookings", controller.GetUserBookings)
}

// SetupAdminBookingRoutes registers the per-event booking listing. The
// caller mounts these behind auth + admin middleware.
func SetupAdminBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/events/:id/bookings", controller.GetEventBookings)
}
