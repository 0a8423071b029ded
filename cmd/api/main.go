package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"cashflow/internal/config"
	"cashflow/internal/database"
	"cashflow/internal/events"
	"cashflow/internal/events/amqpbridge"
	"cashflow/internal/handlers"
	"cashflow/internal/logger"
	"cashflow/internal/metrics"
	"cashflow/internal/middleware"
	"cashflow/internal/models"
	"cashflow/internal/services"
	"cashflow/internal/store/gormstore"
	"cashflow/internal/validator"

	_ "cashflow/internal/docs" // Import swagger docs
)

// @title           Cashflow API
// @version         1.0
// @description     Cashflow tracks income and expenses, expands recurring transactions into dated series and keeps series consistent when they are edited.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// Change notifications stay in-process unless a broker is configured
	broadcaster := events.NewBroadcaster()
	var notifier events.Notifier = broadcaster
	if appConfig.AMQPURL != "" {
		bridge, err := amqpbridge.New(appConfig.AMQPURL, appConfig.AMQPExchange, broadcaster)
		if err != nil {
			return fmt.Errorf("failed to connect change bridge: %w", err)
		}
		defer func() {
			if err := bridge.Close(); err != nil {
				log.Warnw("failed to close change bridge", "error", err)
			}
		}()
		notifier = bridge
		g.Go(func() error { return bridge.Run(ctx) })
		log.Infow("publishing changes to broker", "exchange", appConfig.AMQPExchange, "origin", bridge.Origin())
	}

	// Initialize stores and services
	db := dbManager.DB()
	transactionStore := gormstore.New[models.Transaction](db, models.CollectionTransactions, notifier, broadcaster)
	typeStore := gormstore.New[models.TransactionType](db, models.CollectionTransactionTypes, notifier, broadcaster)

	transactionService := services.NewTransactionService(transactionStore, typeStore)
	typeService := services.NewTransactionTypeService(typeStore, transactionStore)
	reconciliationService := services.NewReconciliationService(transactionStore, typeStore,
		services.ReconciliationOptions{LegacyMatch: appConfig.ReconcileLegacyMatch})
	summaryService := services.NewSummaryService(transactionStore)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %w", err)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(appConfig.CORSAllowedOrigins))
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check and metrics endpoints
	router.GET("/api/health", handlers.NewHealthHandler(sqlDB).Health)
	router.GET("/metrics", middleware.APIKeyMiddleware(appConfig.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	// API v1 group, all routes protected
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())
	handlers.RegisterRoutes(v1, handlers.Handlers{
		Transactions:     handlers.NewTransactionHandler(transactionService, reconciliationService),
		TransactionTypes: handlers.NewTransactionTypeHandler(typeService),
		Summary:          handlers.NewSummaryHandler(summaryService),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		log.Infof("Starting cashflow server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
