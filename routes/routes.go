package routes

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mercury-backend/config"
	"mercury-backend/controllers"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// SetupRouter wires the HTTP API. reminders may be nil when SMS reminders are
// not configured.
func SetupRouter(cfg *config.Config, ledger *controllers.LedgerController, reminders *controllers.ReminderController, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(config.PerformanceLogger(logger))

	r.GET("/health", ledger.Health)

	api := r.Group("/api")
	{
		data := api.Group("/data")
		{
			data.GET("", ledger.GetData)
			data.POST("", ledger.ReplaceData)
			data.DELETE("", ledger.ClearData)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", ledger.CreateCustomer)
			customers.GET("/:id", ledger.GetCustomer)
			customers.GET("/:id/balance", ledger.GetCustomerBalance)
			customers.DELETE("/:id", ledger.DeleteCustomer)
		}

		// Work routes
		works := api.Group("/works")
		{
			works.POST("", ledger.CreateWork)
			works.PUT("/:id", ledger.UpdateWork)
			works.DELETE("/:id", ledger.DeleteWork)
		}

		api.POST("/payments", ledger.CreatePayment)

		// Dashboard and report routes
		api.GET("/summary", ledger.GetSummary)
		api.GET("/view", ledger.GetView)
		api.GET("/export/:kind", ledger.Export)

		if reminders != nil {
			api.GET("/reminders/due", reminders.GetDue)
			api.POST("/reminders/run", reminders.Run)
		}
	}

	return r
}
