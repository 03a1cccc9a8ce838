package routes

import (
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/models"
	"github.com/gin-gonic/gin"
)

// initCRMRoutes registers subscriptions, offers, the dashboard and reports
func initCRMRoutes(router *gin.RouterGroup) {
	crm := router.Group("", middleware.AuthMiddleware())
	can := middleware.RequirePermission

	crm.GET("/dashboard", controllers.GetDashboard)

	subs := crm.Group("/subscriptions")
	{
		subs.GET("", controllers.ListSubscriptions)
		subs.GET("/:id", controllers.GetSubscription)
		subs.POST("", can(models.PermCreateSubscriptions), controllers.CreateSubscription)
		subs.DELETE("/:id", can(models.PermManageSubscriptions), controllers.DeleteSubscription)
		subs.POST("/expire-due", can(models.PermManageSubscriptions), controllers.ExpireDueSubscriptions)

		subs.POST("/:id/approve", can(models.PermApproveSubscription), controllers.ApproveSubscription)
		subs.POST("/:id/reject", can(models.PermApproveSubscription), controllers.RejectSubscription)
		subs.POST("/:id/activate", can(models.PermManageSubscriptions), controllers.ActivateSubscription)
		subs.POST("/:id/suspend", can(models.PermManageSubscriptions), controllers.SuspendSubscription)
		subs.POST("/:id/resume", can(models.PermManageSubscriptions), controllers.ResumeSubscription)
		subs.POST("/:id/cancel", can(models.PermManageSubscriptions), controllers.CancelSubscription)
		subs.POST("/:id/expire", can(models.PermManageSubscriptions), controllers.ExpireSubscription)
	}

	offers := crm.Group("/offers", can(models.PermManageOffers))
	{
		offers.GET("", controllers.ListOffers)
		offers.GET("/:id", controllers.GetOffer)
		offers.POST("", controllers.CreateOffer)
		offers.PUT("/:id", controllers.UpdateOffer)
		offers.DELETE("/:id", controllers.DeleteOffer)
		offers.POST("/:id/accept", controllers.AcceptOffer)
		offers.POST("/:id/reject", controllers.RejectOffer)
		offers.POST("/:id/expire", controllers.ExpireOffer)
		offers.POST("/:id/convert", controllers.ConvertOffer)
	}

	reports := crm.Group("/reports", can(models.PermViewReports))
	{
		reports.GET("/subscriptions/excel", controllers.DownloadSubscriptionReportExcel)
		reports.GET("/subscriptions/pdf", controllers.DownloadSubscriptionReportPDF)
	}
}
