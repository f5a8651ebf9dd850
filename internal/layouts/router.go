package layouts

import "github.com/gin-gonic/gin"

// SetupLayoutRoutes registers the public layout read route under /events.
func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/events/:id/layout", controller.GetLayout)
}

// SetupAdminLayoutRoutes registers the layout editing routes. The caller is
// expected to mount these behind auth + admin middleware.
func SetupAdminLayoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	layout := rg.Group("/events/:id/layout")
	{
		layout.PUT("", controller.SaveLayout)
		layout.POST("/seats/:seatId/toggle", controller.ToggleSeat)
		layout.POST("/rows", controller.AddRow)
		layout.DELETE("/rows/:row", controller.RemoveRow)
		layout.POST("/rows/:row/category", controller.SetRowCategory)
		layout.POST("/image", controller.AttachImage)
	}
}
