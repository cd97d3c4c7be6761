package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/handlers"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/middleware"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/users"
)

// RegisterRoutes wires the API surface onto the engine. Stores are injected
// so the same routes run against Postgres in production and the in-memory
// stores in tests.
func RegisterRoutes(r *gin.Engine, inv inventory.Store, usr users.Store) {
	auth := handlers.NewAuthHandler(usr)
	sweets := handlers.NewSweetHandler(inv)
	orders := handlers.NewOrderHandler(inv)
	employees := handlers.NewEmployeeHandler(usr)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", middleware.LoginRateLimit(), auth.Login)
		authGroup.GET("/me", middleware.AuthRequired(), auth.Me)
	}

	sweetGroup := api.Group("/sweets")
	{
		// Catalog reads are public.
		sweetGroup.GET("", sweets.GetAll)
		sweetGroup.GET("/search", sweets.Search)
		sweetGroup.GET("/:id", sweets.GetByID)

		sweetGroup.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), sweets.Create)
		sweetGroup.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), sweets.Update)
		sweetGroup.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), sweets.Delete)

		sweetGroup.POST("/:id/purchase", middleware.AuthRequired(), sweets.Purchase)
		sweetGroup.POST("/:id/restock", middleware.AuthRequired(), middleware.RequireAdmin(), sweets.Restock)
		sweetGroup.POST("/:id/image", middleware.AuthRequired(), middleware.RequireAdmin(), sweets.UploadImage)
	}

	orderGroup := api.Group("/orders", middleware.AuthRequired())
	{
		orderGroup.GET("", orders.List)
		orderGroup.GET("/:id", orders.Get)
		orderGroup.GET("/:id/qr", orders.QR)
	}

	employeeGroup := api.Group("/employees", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		employeeGroup.GET("", employees.List)
		employeeGroup.GET("/:id", employees.Get)
		employeeGroup.POST("", employees.Create)
		employeeGroup.PUT("/:id", employees.Update)
		employeeGroup.DELETE("/:id", employees.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
