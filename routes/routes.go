package routes

import (
	"fusiongear-backend/config"
	"fusiongear-backend/controllers"
	"fusiongear-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(h *controllers.Handler, allowOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		allowed[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin]
		},
	}))

	r.Use(config.PerformanceLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRequired := utils.AuthMiddleware(h.Tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		auth.Use(authRequired)
		auth.GET("/me", h.Me)
	}

	api := r.Group("/api")
	api.Use(authRequired)
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", h.CreateCustomer)
			customers.GET("", h.GetCustomers)
			customers.GET("/:id", h.GetCustomer)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)
		}

		// Billing routes
		bill := api.Group("/billing")
		{
			bill.GET("/prices", h.GetPrices)
			bill.POST("/calculate", h.CalculateBill)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", h.CreateInvoice)
			invoices.GET("", h.GetInvoices)
			invoices.GET("/pending", h.GetPendingInvoices)
			invoices.GET("/:id", h.GetInvoice)
			invoices.PUT("/:id/service-record", h.UpdateServiceRecord)
			invoices.PATCH("/:id/status", h.UpdateInvoiceStatus)
			invoices.GET("/:id/receipt", h.GetReceipt)
			invoices.GET("/:id/document", h.GetDocument)
			invoices.POST("/:id/print", h.PrintInvoice)
			invoices.POST("/:id/share", h.ShareInvoice)
		}

		api.GET("/history/:bikeNumber", h.GetServiceHistory)

		// Dashboard routes
		api.GET("/dashboard", h.GetDashboardOverview)
	}

	return r
}
