package routes

import (
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/middleware"
	"github.com/Govind-619/BillSphere/models"
	"github.com/gin-gonic/gin"
)

// initFinanceRoutes registers wallets, ledgers, top-ups and split bills
func initFinanceRoutes(router *gin.RouterGroup) {
	finance := router.Group("", middleware.AuthMiddleware())

	finance.GET("/wallets", controllers.ListWallets)
	finance.POST("/wallets", middleware.RequirePermission(models.PermManageWallets), controllers.CreateWallet)

	userWallets := finance.Group("/user-wallets")
	{
		userWallets.GET("", controllers.ListUserWallets)
		userWallets.POST("", controllers.AttachWallet)
		userWallets.GET("/:id", controllers.GetUserWallet)
		userWallets.DELETE("/:id", controllers.DetachWallet)
		userWallets.POST("/:id/recalculate", controllers.RecalculateWalletBalance)
		userWallets.GET("/:id/transactions", controllers.ListTransactions)
		userWallets.POST("/:id/transactions", controllers.CreateTransaction)
		userWallets.POST("/:id/topup", controllers.InitiateWalletTopup)
	}
	finance.DELETE("/transactions/:id", controllers.DeleteTransaction)
	finance.POST("/wallet-topups/verify", controllers.VerifyWalletTopup)

	bills := finance.Group("/split-bills")
	{
		bills.GET("", controllers.ListSplitBills)
		bills.POST("", controllers.CreateSplitBill)
		bills.GET("/:id", controllers.GetSplitBill)
		bills.DELETE("/:id", controllers.DeleteSplitBill)
		bills.PATCH("/:id/participants/:participant_id/pay", controllers.MarkParticipantPaid)
	}
}
