package router

import (
	"time"

	"github.com/doughoff/ksys/internal/config"
	"github.com/doughoff/ksys/internal/handler"
	"github.com/doughoff/ksys/internal/infra"
	"github.com/doughoff/ksys/internal/middleware"
	"github.com/doughoff/ksys/internal/repository"
	"github.com/doughoff/ksys/internal/service"
	"github.com/doughoff/ksys/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, printerCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	stockEntryRepo := repository.NewStockEntryRepository(db)
	logRepo := repository.NewLogRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	entitySvc := service.NewEntityService(entityRepo, creditRepo)
	productSvc := service.NewProductService(productRepo)
	saleSvc := service.NewSaleService(saleRepo, entityRepo, productRepo, creditRepo, logRepo, dispatcher)
	paymentSvc := service.NewPaymentService(paymentRepo, creditRepo, logRepo)
	stockEntrySvc := service.NewStockEntryService(stockEntryRepo, productRepo, logRepo)
	summarySvc := service.NewSummaryService(saleRepo, paymentRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usersH := handler.NewUsersHandler(authSvc)
	entitiesH := handler.NewEntitiesHandler(entitySvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	stockEntriesH := handler.NewStockEntriesHandler(stockEntrySvc)
	logsH := handler.NewLogsHandler(logRepo)
	summaryH := handler.NewSummaryHandler(summarySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, printerCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), usersH.Login)
		auth.POST("/refresh", usersH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("admin", "seller")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		// Customers — sellers register walk-ins and check credit standing
		v1.POST("/entities", anyRole, entitiesH.Create)
		v1.GET("/entities", anyRole, entitiesH.List)
		v1.GET("/entities/:id", anyRole, entitiesH.GetByID)
		v1.GET("/entities/:id/credits", anyRole, entitiesH.ListCredits)
		v1.PUT("/entities/:id", adminOnly, entitiesH.Update)

		// Catalog — reads at the register, writes admin only
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.GetByID)
		v1.GET("/products/barcode/:barcode", anyRole, productsH.GetByBarcode)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
		}

		// Sales
		v1.POST("/sales", anyRole, salesH.Create)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.GetByID)
		v1.POST("/sales/accrue-interest", adminOnly, salesH.AccrueInterest)

		// Payments
		v1.POST("/payments", anyRole, paymentsH.Create)
		v1.GET("/payments", anyRole, paymentsH.List)
		v1.GET("/payments/:id", anyRole, paymentsH.GetByID)
		v1.DELETE("/payments/:id", adminOnly, paymentsH.Cancel)

		// Inventory receipts
		entries := v1.Group("/stock-entries", adminOnly)
		{
			entries.POST("", stockEntriesH.Create)
			entries.GET("", stockEntriesH.List)
			entries.GET("/:id", stockEntriesH.GetByID)
			entries.DELETE("/:id", stockEntriesH.Delete)
		}

		// Audit trail and end-of-day summary
		v1.GET("/logs", adminOnly, logsH.List)
		v1.GET("/summary/daily", anyRole, summaryH.Daily)

		// User management
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivar", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
