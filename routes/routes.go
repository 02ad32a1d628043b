package routes

import (
	"venuepos-backend/config"
	"venuepos-backend/controllers"
	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())
	r.Use(config.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", config.MetricsHandler())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	allStaff := []string{models.RoleServer, models.RoleBartender, models.RoleManager, models.RoleAdmin}
	management := []string{models.RoleManager, models.RoleAdmin}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", utils.RequireRoles(allStaff...), controllers.CreateOrder)
			orders.GET("", utils.RequireRoles(management...), controllers.GetOrders)
		}

		// Visit routes
		visits := api.Group("/visits", utils.RequireRoles(allStaff...))
		{
			visits.GET("/active", controllers.GetActiveVisits)
			visits.GET("/:id", controllers.GetVisit)
			visits.POST("/:id/close", controllers.CloseVisit)
		}

		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", utils.RequireRoles(allStaff...), controllers.CreateClient)
			clients.GET("", utils.RequireRoles(allStaff...), controllers.GetClients)
			clients.GET("/:id", utils.RequireRoles(allStaff...), controllers.GetClient)
			clients.PUT("/:id", utils.RequireRoles(management...), controllers.UpdateClient)
			clients.DELETE("/:id", utils.RequireRoles(management...), controllers.DeactivateClient)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", utils.RequireRoles(management...), controllers.CreateProduct)
			products.GET("", utils.RequireRoles(allStaff...), controllers.GetProducts)
			products.GET("/:id", utils.RequireRoles(allStaff...), controllers.GetProduct)
			products.PUT("/:id", utils.RequireRoles(management...), controllers.UpdateProduct)
			products.DELETE("/:id", utils.RequireRoles(management...), controllers.DeleteProduct)
		}

		// Seating area routes
		areas := api.Group("/seating-areas")
		{
			areas.POST("", utils.RequireRoles(management...), controllers.CreateSeatingArea)
			areas.GET("", utils.RequireRoles(allStaff...), controllers.GetSeatingAreas)
			areas.GET("/:id", utils.RequireRoles(allStaff...), controllers.GetSeatingArea)
			areas.PUT("/:id", utils.RequireRoles(management...), controllers.UpdateSeatingArea)
			areas.DELETE("/:id", utils.RequireRoles(management...), controllers.DeleteSeatingArea)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", utils.RequireRoles(management...), controllers.CreateInventoryItem)
			inventory.GET("", utils.RequireRoles(allStaff...), controllers.GetInventoryItems)
			inventory.GET("/:id/level", utils.RequireRoles(allStaff...), controllers.GetStockLevel)
			inventory.GET("/:id/ledger", utils.RequireRoles(management...), controllers.GetStockLedger)
			inventory.POST("/:id/adjust", utils.RequireRoles(management...), controllers.AdjustStock)
		}

		// Commission routes
		commissions := api.Group("/commissions", utils.RequireRoles(management...))
		{
			commissions.GET("", controllers.GetCommissions)
			commissions.POST("/payout", utils.RequireRoles(models.RoleAdmin), controllers.PayoutCommissions)
		}

		// Staff routes
		staff := api.Group("/staff", utils.RequireRoles(models.RoleAdmin))
		{
			staff.GET("", controllers.GetStaff)
			staff.POST("", controllers.AddStaff)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}

		// Dashboard routes
		api.GET("/dashboard", utils.RequireRoles(management...), controllers.GetDashboardOverview)

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", utils.RequireRoles(management...), reportController.GetReportAnalytics)
	}

	return r
}
