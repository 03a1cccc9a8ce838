package routes

import (
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers authentication and team routes
func initUserRoutes(router *gin.RouterGroup, limiter *utils.RateLimiter) {
	limited := router.Group("", utils.RateLimitMiddleware(limiter))
	{
		limited.POST("/register", controllers.RegisterUser)
		limited.POST("/login", controllers.LoginUser)
	}

	user := router.Group("", middleware.AuthMiddleware())
	{
		user.POST("/logout", controllers.LogoutUser)
		user.GET("/me", controllers.GetMe)
	}

	team := router.Group("/team", middleware.AuthMiddleware(), middleware.RequirePermission(models.PermManageTeam))
	{
		team.GET("/users", controllers.ListMembers)
		team.POST("/users", controllers.CreateMember)
		team.PATCH("/users/:id/role", controllers.UpdateMemberRole)
	}
}
