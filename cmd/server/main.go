package main

import (
	"os"
	"strings"
	"time"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/handlers"
	"storeflex-lite/internal/logging"
	"storeflex-lite/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := logging.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found")
	}

	database.Connect()
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:5173"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)
	r.Static("/uploads", "./uploads")

	// --- FEATURE FLAG: Registration ---
	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", handlers.Register)
		log.Warn("Registration route is OPEN. Disable this in production!")
	} else {
		log.Info("Registration route is safely disabled")
	}

	// --- PROTECTED ROUTES ---
	// Everything below runs under a tenant: the JWT middleware rejects
	// requests without one, so there is no unscoped data access.
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Catalog
		api.GET("/products", handlers.GetProducts)
		api.POST("/products", handlers.AddProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)
		api.GET("/products/scan/:barcode", handlers.ScanProduct)
		api.POST("/products/:id/loss", handlers.RecordStockLoss)
		api.POST("/upload", handlers.UploadImage)

		// Parties
		api.GET("/customers", handlers.GetCustomers)
		api.POST("/customers", handlers.AddCustomer)
		api.PUT("/customers/:id", handlers.UpdateCustomer)
		api.DELETE("/customers/:id", handlers.DeleteCustomer)
		api.GET("/suppliers", handlers.GetSuppliers)
		api.POST("/suppliers", handlers.AddSupplier)
		api.PUT("/suppliers/:id", handlers.UpdateSupplier)
		api.DELETE("/suppliers/:id", handlers.DeleteSupplier)

		// Transactions
		api.POST("/checkout", handlers.ProcessSale)
		api.GET("/sales", handlers.GetSales)
		api.DELETE("/sales/:id", handlers.DeleteSale)
		api.POST("/purchases", handlers.ProcessPurchase)
		api.GET("/purchases", handlers.GetPurchases)
		api.POST("/purchases/returns", handlers.ProcessPurchaseReturn)
		api.GET("/purchases/returns", handlers.GetPurchaseReturns)

		// Moneyflow
		api.GET("/moneyflow", handlers.GetMoneyflow)
		api.POST("/moneyflow/settle", handlers.SettlePayment)

		// Staged orders
		api.POST("/orders/sales", handlers.CreateSalesOrder)
		api.GET("/orders/sales", handlers.GetSalesOrders)
		api.POST("/orders/sales/:id/process", handlers.ProcessSalesOrder)
		api.POST("/orders/purchases", handlers.CreatePurchaseOrder)
		api.GET("/orders/purchases", handlers.GetPurchaseOrders)
		api.POST("/orders/purchases/:id/process", handlers.ProcessPurchaseOrder)

		// Expenses
		api.POST("/expenses", handlers.AddExpense)
		api.GET("/expenses", handlers.GetExpenses)
		api.DELETE("/expenses/:id", handlers.DeleteExpense)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/ask", handlers.AskAI)
			admin.POST("/ai/price-suggestion", handlers.SuggestPrice)
			admin.GET("/reports", handlers.GetDashboardReport)
			admin.GET("/reports/valuation", handlers.GetStockValuation)
			admin.GET("/reports/export", handlers.ExportWorkbook)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("🚀 Server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}
