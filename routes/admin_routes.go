package routes

import (
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all platform admin routes
func initAdminRoutes(router *gin.RouterGroup, limiter *utils.RateLimiter) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", utils.RateLimitMiddleware(limiter), controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		protected := admin.Group("", middleware.AdminAuthMiddleware())
		{
			protected.GET("/tenants", controllers.GetTenants)
			protected.PATCH("/tenants/:id/block", controllers.DeactivateTenant)
			protected.PATCH("/tenants/:id/unblock", controllers.ActivateTenant)

			protected.GET("/users", controllers.GetUsers)
			protected.PATCH("/users/:id/block", controllers.BlockUser)
			protected.PATCH("/users/:id/unblock", controllers.UnblockUser)
		}
	}
}
