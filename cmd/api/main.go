package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/pkozlowski/bookstore/docs"
	appcustomer "github.com/pkozlowski/bookstore/internal/application/customer"
	appinventory "github.com/pkozlowski/bookstore/internal/application/inventory"
	appreport "github.com/pkozlowski/bookstore/internal/application/report"
	appstaff "github.com/pkozlowski/bookstore/internal/application/staff"
	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/staff"
	"github.com/pkozlowski/bookstore/internal/infrastructure/config"
	"github.com/pkozlowski/bookstore/internal/infrastructure/persistence/mysql"
	"github.com/pkozlowski/bookstore/internal/infrastructure/persistence/redis"
	"github.com/pkozlowski/bookstore/internal/interface/csvio"
	"github.com/pkozlowski/bookstore/internal/interface/http/handler"
	"github.com/pkozlowski/bookstore/internal/interface/http/middleware"
	"github.com/pkozlowski/bookstore/pkg/jwt"
	"github.com/pkozlowski/bookstore/pkg/metrics"
	"github.com/pkozlowski/bookstore/pkg/mq"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// @title           Bookstore API
// @version         1.0
// @description     Inventory, customer registry and purchase ledger for a small bookstore.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// 1. Configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}
	log.Printf("config loaded: port=%d mode=%s db=%s:%d/%s",
		cfg.Server.Port, cfg.Server.Mode, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	metrics.InitMetrics()

	// 2. MySQL.
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("connecting to mysql failed: %v", err)
	}

	// 3. Redis. Optional: without it the API runs with no session blacklist
	// and no report cache, it does not refuse to start.
	var (
		sessionStore *redis.SessionStore
		reportCache  *redis.ReportCache
	)
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Printf("redis unavailable, sessions and report cache disabled: %v", err)
	} else {
		sessionStore = redis.NewSessionStore(redisClient)
		reportCache = redis.NewReportCache(redisClient, cfg.Report.CacheTTL)
	}

	// 4. Message broker. Optional as well; events are best-effort.
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Printf("rabbitmq unavailable, events disabled: %v", err)
			publisher = nil
		}
	}

	// 5. Dependency wiring, bottom up:
	// Repository <- Service <- UseCase <- Handler.
	bookRepo := mysql.NewBookRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	purchaseRepo := mysql.NewPurchaseRepository(db)
	reportRepo := mysql.NewReportRepository(db)
	staffRepo := mysql.NewStaffRepository(db)
	txManager := mysql.NewTxManager(db)

	bookService := book.NewService(bookRepo)
	customerService := customer.NewService(customerRepo)
	staffService := staff.NewService(staffRepo)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// Typed nil pointers must not reach the interface fields; the use cases
	// treat a nil interface as "feature off".
	var inventoryEvents appinventory.EventPublisher
	var customerEvents appcustomer.EventPublisher
	if publisher != nil {
		inventoryEvents = publisher
		customerEvents = publisher
	}
	var staffSessions appstaff.SessionStore
	var cache appreport.Cache
	if sessionStore != nil {
		staffSessions = sessionStore
	}
	if reportCache != nil {
		cache = reportCache
	}

	addBook := appinventory.NewAddBookUseCase(bookService, inventoryEvents)
	removeBook := appinventory.NewRemoveBookUseCase(bookService)
	adjustStock := appinventory.NewAdjustStockUseCase(bookRepo, txManager)
	buyBook := appinventory.NewBuyBookUseCase(bookRepo, customerRepo, purchaseRepo, txManager, inventoryEvents)

	registerCustomer := appcustomer.NewRegisterUseCase(customerService)
	removeCustomer := appcustomer.NewRemoveUseCase(customerRepo, purchaseRepo, txManager, customerEvents)
	findCustomer := appcustomer.NewFindUseCase(customerService, purchaseRepo)

	queries := appreport.NewQueries(reportRepo, bookRepo, customerRepo, purchaseRepo, cache)

	registerStaff := appstaff.NewRegisterUseCase(staffService)
	login := appstaff.NewLoginUseCase(staffService, jwtManager, staffSessions, cfg.JWT.RefreshTokenExpire)
	logout := appstaff.NewLogoutUseCase(staffSessions, cfg.JWT.AccessTokenExpire)
	refresh := appstaff.NewRefreshUseCase(jwtManager)

	bookCSV := csvio.NewBookCSV(addBook, bookService)
	customerCSV := csvio.NewCustomerCSV(registerCustomer, customerService)

	bookHandler := handler.NewBookHandler(addBook, removeBook, adjustStock, bookService, queries)
	purchaseHandler := handler.NewPurchaseHandler(buyBook, queries)
	customerHandler := handler.NewCustomerHandler(registerCustomer, removeCustomer, findCustomer, customerService)
	reportHandler := handler.NewReportHandler(queries)
	staffHandler := handler.NewStaffHandler(registerStaff, login, logout, refresh)
	csvHandler := handler.NewCSVHandler(bookCSV, customerCSV)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. HTTP engine and routes.
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, bookHandler, purchaseHandler, customerHandler, reportHandler, staffHandler, csvHandler, authMiddleware)

	// 7. Serve, and drain on SIGINT/SIGTERM.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	if publisher != nil {
		publisher.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("bye")
}

func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	purchaseHandler *handler.PurchaseHandler,
	customerHandler *handler.CustomerHandler,
	reportHandler *handler.ReportHandler,
	staffHandler *handler.StaffHandler,
	csvHandler *handler.CSVHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// Staff accounts. Register/login/refresh are the way in, so they
		// stay public; logout needs the token it revokes.
		staffGroup := v1.Group("/staff")
		{
			staffGroup.POST("/register", staffHandler.Register)
			staffGroup.POST("/login", staffHandler.Login)
			staffGroup.POST("/refresh", staffHandler.Refresh)
			staffGroup.POST("/logout", authMiddleware.RequireAuth(), staffHandler.Logout)
		}

		// Catalog. Browsing is public, changing it is not.
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:ref", bookHandler.GetBook)
			books.POST("", authMiddleware.RequireAuth(), bookHandler.AddBook)
			books.DELETE("/:ref", authMiddleware.RequireAuth(), bookHandler.RemoveBook)
			books.PATCH("/:ref/stock", authMiddleware.RequireAuth(), bookHandler.AdjustStock)
		}

		// Customer registry. Personal data, staff only.
		customers := v1.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		{
			customers.POST("", customerHandler.Register)
			customers.GET("", customerHandler.List)
			customers.GET("/:ref", customerHandler.Find)
			customers.DELETE("/:ref", customerHandler.Remove)
			customers.GET("/:ref/purchases", purchaseHandler.PurchaseHistory)
		}

		// Sales.
		purchases := v1.Group("/purchases")
		purchases.Use(authMiddleware.RequireAuth())
		{
			purchases.POST("", purchaseHandler.BuyBook)
		}

		// Reports. Catalog-shaped reports are public; money and customer
		// demographics are not.
		reports := v1.Group("/reports")
		{
			reports.GET("/overview", reportHandler.Overview)
			reports.GET("/popular", reportHandler.PopularBooks)
			reports.GET("/newest", reportHandler.NewestBooks)
			reports.GET("/low-stock", reportHandler.LowStock)
			reports.GET("/revenue", authMiddleware.RequireAuth(), reportHandler.Revenue)
			reports.GET("/countries", authMiddleware.RequireAuth(), reportHandler.CustomersByCountry)
		}

		// Bulk import/export.
		csvGroup := v1.Group("/csv")
		csvGroup.Use(authMiddleware.RequireAuth())
		{
			csvGroup.POST("/books", csvHandler.ImportBooks)
			csvGroup.GET("/books", csvHandler.ExportBooks)
			csvGroup.POST("/customers", csvHandler.ImportCustomers)
			csvGroup.GET("/customers", csvHandler.ExportCustomers)
		}
	}
}
