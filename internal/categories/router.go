package categories

import "github.com/gin-gonic/gin"

// SetupCategoryRoutes registers the public catalog route.
func SetupCategoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	categories := rg.Group("/categories")
	{
		categories.GET("", controller.ListCategories)
	}
}

// SetupAdminCategoryRoutes registers the admin catalog CRUD routes.
// The caller is expected to mount these behind auth + admin middleware.
func SetupAdminCategoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	categories := rg.Group("/categories")
	{
		categories.POST("", controller.CreateCategory)
		categories.PUT("/:id", controller.UpdateCategory)
		categories.DELETE("/:id", controller.DeleteCategory)
	}
}
