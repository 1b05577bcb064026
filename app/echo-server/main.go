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

	"mySalesDesk/app/echo-server/router"
	"mySalesDesk/business/report"
	userService "mySalesDesk/business/user"
	"mySalesDesk/internal/middleware"
	"mySalesDesk/internal/repository/csvfile"
	psqlRepo "mySalesDesk/internal/repository/postgres"
	redisRepo "mySalesDesk/internal/repository/redis"
	"mySalesDesk/internal/rest"
	"mySalesDesk/pkg/config"
	"mySalesDesk/pkg/database"
	redisdb "mySalesDesk/pkg/database/redis"
	"mySalesDesk/pkg/logger"
	"mySalesDesk/pkg/metrics"
	"mySalesDesk/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SalesDesk", "version", cfg.App.Version)

	metrics.Init()
	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)

	var salesRepo report.SalesDataRepository
	if cfg.Report.DataSource == "csv" {
		csvRepo, err := csvfile.NewSalesDataRepository(cfg.Report.CSVPath)
		if err != nil {
			logger.Fatal("Failed to load sales data csv", "error", err)
		}
		logger.Info("Sales data loaded from csv", "path", cfg.Report.CSVPath)
		salesRepo = csvRepo
	} else {
		salesRepo = psqlRepo.NewSalesDataRepository(db)
	}

	// Report cache is optional: without Redis every report recomputes
	var cache report.ReportCache
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, report cache disabled", "error", err)
	} else {
		cache = redisRepo.NewReportCacheRepository(redisClient)
		logger.Info("Report cache connected")
	}

	// Init service
	usrService := userService.NewUserService(userRepo, validate)
	reportService := report.NewReportService(
		salesRepo,
		cache,
		time.Duration(cfg.Report.CacheTTLSeconds)*time.Second,
		cfg.App.AppShareLinkKey,
		time.Duration(cfg.Report.ShareLinkTTLMinutes)*time.Minute,
	)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	reportHandler := rest.NewReportHandler(reportService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupReportRoutes(api, reportHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis close error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
