package routes

import (
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/models"
	"github.com/gin-gonic/gin"
)

// initCatalogRoutes registers categories, products and price plans.
// Every tenant user may browse; changes need the catalog permission.
func initCatalogRoutes(router *gin.RouterGroup) {
	catalog := router.Group("", middleware.AuthMiddleware())
	manage := middleware.RequirePermission(models.PermManageCatalog)

	catalog.GET("/categories", controllers.ListCategories)
	catalog.POST("/categories", manage, controllers.CreateCategory)
	catalog.PUT("/categories/:id", manage, controllers.UpdateCategory)
	catalog.DELETE("/categories/:id", manage, controllers.DeleteCategory)

	catalog.GET("/products", controllers.ListProducts)
	catalog.GET("/products/:id", controllers.GetProduct)
	catalog.POST("/products", manage, controllers.CreateProduct)
	catalog.PUT("/products/:id", manage, controllers.UpdateProduct)
	catalog.DELETE("/products/:id", manage, controllers.DeleteProduct)
	catalog.PATCH("/products/:id/restore", manage, controllers.RestoreProduct)

	catalog.POST("/products/:id/prices", manage, controllers.CreateProductPrice)
	catalog.PUT("/prices/:id", manage, controllers.UpdateProductPrice)
	catalog.PATCH("/prices/:id/status", manage, controllers.TogglePriceStatus)
	catalog.DELETE("/prices/:id", manage, controllers.DeleteProductPrice)
}
