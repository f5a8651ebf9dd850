package events

import "github.com/gin-gonic/gin"

// SetupEventRoutes registers the public event routes.
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	events := rg.Group("/events")
	{
		events.GET("", controller.ListEvents)
		events.GET("/:id", controller.GetEvent)
	}
}
