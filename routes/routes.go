package routes

import (
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Requests per minute and client IP allowed on login and registration
const authRateLimit = 20

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.AppMetrics.MetricsMiddleware())

	// Session store only carries the OAuth state
	store := cookie.NewStore([]byte(config.AppConfig.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 10,
		Path:     "/",
		Secure:   config.AppConfig.IsProduction(),
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("billsphere", store))

	router.GET("/metrics", utils.AppMetrics.Handler())
	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, "OK", gin.H{"app": utils.AppName, "version": utils.APIVersion})
	})

	authLimiter := utils.NewRateLimiter(authRateLimit, time.Minute)

	api := router.Group("/v1")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/google/login", controllers.GoogleLogin)
			auth.GET("/google/callback", controllers.GoogleCallback)
		}

		initUserRoutes(api, authLimiter)
		initAdminRoutes(api, authLimiter)
		initCatalogRoutes(api)
		initCRMRoutes(api)
		initFinanceRoutes(api)
	}

	return router
}
