package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/bizdesk/backend/internal/application/billing"
	catalogapp "github.com/bizdesk/backend/internal/application/catalog"
	identityapp "github.com/bizdesk/backend/internal/application/identity"
	partnerapp "github.com/bizdesk/backend/internal/application/partner"
	salesapp "github.com/bizdesk/backend/internal/application/sales"
	"github.com/bizdesk/backend/internal/infrastructure/auth"
	"github.com/bizdesk/backend/internal/infrastructure/config"
	"github.com/bizdesk/backend/internal/infrastructure/logger"
	"github.com/bizdesk/backend/internal/infrastructure/persistence"
	"github.com/bizdesk/backend/internal/infrastructure/security"
	"github.com/bizdesk/backend/internal/interfaces/http/handler"
	"github.com/bizdesk/backend/internal/interfaces/http/middleware"
	"github.com/bizdesk/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			BizDesk Backend API
//	@version		1.0
//	@description	Business management backend: partners, catalog, sales orders, invoicing

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	hasher, err := security.NewPasswordHasher(
		cfg.Security.SaltLength,
		cfg.Security.HashIterations,
		cfg.Security.HashKeyLength,
	)
	if err != nil {
		log.Fatal("Failed to configure password hasher", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo, orderRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	productService := catalogapp.NewProductService(productRepo, supplierRepo, log)
	orderService := salesapp.NewOrderService(orderRepo, customerRepo, productRepo, invoiceRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, orderRepo, log)
	authService := identityapp.NewAuthService(userRepo, hasher, jwtService, log)
	userService := identityapp.NewUserService(userRepo, hasher, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// User management is restricted to administrators
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(middleware.RequireRole("ADMIN"))
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.DELETE("/:id", userHandler.Delete)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)

	// Partner routes
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/code/:code", customerHandler.GetByCode)
	customerRoutes.GET("/:id", customerHandler.Get)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)
	customerRoutes.POST("/:id/activate", customerHandler.Activate)
	customerRoutes.POST("/:id/deactivate", customerHandler.Deactivate)
	customerRoutes.GET("/:id/orders", orderHandler.ListByCustomer)

	supplierRoutes := router.NewDomainGroup("suppliers", "/suppliers")
	supplierRoutes.POST("", supplierHandler.Create)
	supplierRoutes.GET("", supplierHandler.List)
	supplierRoutes.GET("/code/:code", supplierHandler.GetByCode)
	supplierRoutes.GET("/:id", supplierHandler.Get)
	supplierRoutes.PUT("/:id", supplierHandler.Update)
	supplierRoutes.DELETE("/:id", supplierHandler.Delete)
	supplierRoutes.POST("/:id/activate", supplierHandler.Activate)
	supplierRoutes.POST("/:id/deactivate", supplierHandler.Deactivate)
	supplierRoutes.GET("/:id/products", productHandler.ListBySupplier)

	// Catalog routes
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/code/:code", productHandler.GetByCode)
	productRoutes.GET("/:id", productHandler.Get)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Delete)
	productRoutes.PUT("/:id/price", productHandler.UpdatePrice)
	productRoutes.POST("/:id/stock", productHandler.AdjustStock)

	// Sales routes
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/number/:number", orderHandler.GetByNumber)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.DELETE("/:id", orderHandler.Delete)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.PUT("/:id/items/:itemId/quantity", orderHandler.UpdateItemQuantity)
	orderRoutes.PUT("/:id/items/:itemId/price", orderHandler.UpdateItemPrice)
	orderRoutes.DELETE("/:id/items/:itemId", orderHandler.RemoveItem)
	orderRoutes.POST("/:id/process", orderHandler.Process)
	orderRoutes.POST("/:id/ship", orderHandler.Ship)
	orderRoutes.POST("/:id/deliver", orderHandler.Deliver)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/invoices", invoiceHandler.ListByOrder)

	// Billing routes
	invoiceRoutes := router.NewDomainGroup("invoices", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/overdue", invoiceHandler.ListOverdue)
	invoiceRoutes.GET("/number/:number", invoiceHandler.GetByNumber)
	invoiceRoutes.GET("/:id", invoiceHandler.Get)
	invoiceRoutes.DELETE("/:id", invoiceHandler.Delete)
	invoiceRoutes.POST("/:id/issue", invoiceHandler.Issue)
	invoiceRoutes.POST("/:id/cancel", invoiceHandler.Cancel)
	invoiceRoutes.POST("/:id/payments", invoiceHandler.AddPayment)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(customerRoutes).
		Register(supplierRoutes).
		Register(productRoutes).
		Register(orderRoutes).
		Register(invoiceRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports service liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
