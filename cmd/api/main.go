package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/khushi747/greencart-logistics/internal/api/handlers"
	"github.com/khushi747/greencart-logistics/internal/application"
	"github.com/khushi747/greencart-logistics/internal/domain"
	mongoRepo "github.com/khushi747/greencart-logistics/internal/infrastructure/mongodb"
	"github.com/khushi747/greencart-logistics/pkg/auth"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/metrics"
	"github.com/khushi747/greencart-logistics/pkg/middleware"
	"github.com/khushi747/greencart-logistics/pkg/mongodb"
	"github.com/khushi747/greencart-logistics/pkg/tracing"
)

const serviceName = "logistics-api"

func main() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), signalCh); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, signalCh <-chan os.Signal) error {
	_ = godotenv.Load()

	// Setup enhanced logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting logistics API")

	// Load configuration
	config := loadConfig()

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	// Initialize MongoDB with instrumentation
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	instrumentedMongo := mongodb.NewInstrumentedClient(mongoClient, m, logger)
	defer instrumentedMongo.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer behind a circuit breaker
	producer := kafka.NewCircuitBreakerProducer(kafka.NewProducer(config.Kafka), m, logger)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := events.NewFactory(events.SourceLogisticsAPI)

	// Initialize JWT token manager
	tokens, err := auth.NewTokenManager(config.Auth)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize token manager")
		return err
	}

	// Initialize repositories
	driverRepo := mongoRepo.NewDriverRepository(instrumentedMongo)
	routeRepo := mongoRepo.NewRouteRepository(instrumentedMongo)
	orderRepo := mongoRepo.NewOrderRepository(instrumentedMongo)
	userRepo := mongoRepo.NewUserRepository(instrumentedMongo)
	simulationRepo := mongoRepo.NewSimulationRepository(instrumentedMongo)

	// Initialize application services
	policy := domain.DefaultDeliveryPolicy()
	simulator := domain.NewSimulator(policy)

	authService := application.NewAuthService(userRepo, tokens, producer, eventFactory, logger)
	driverService := application.NewDriverService(driverRepo, producer, eventFactory, m, logger)
	routeService := application.NewRouteService(routeRepo, producer, eventFactory, m, logger)
	orderService := application.NewOrderService(orderRepo, routeRepo, producer, eventFactory, m, logger)
	simulationService := application.NewSimulationService(simulator, orderRepo, routeRepo, driverRepo, simulationRepo, producer, eventFactory, m, logger)
	dashboardService := application.NewDashboardService(orderRepo, routeRepo, policy, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	driverHandler := handlers.NewDriverHandler(driverService, logger)
	routeHandler := handlers.NewRouteHandler(routeService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)
	simulationHandler := handlers.NewSimulationHandler(simulationService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)

	// Setup Gin router with middleware
	router := gin.New()

	// Apply standard middleware
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	// Add metrics middleware
	router.Use(middleware.MetricsMiddleware(m))

	// Add tracing middleware
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	// Handle 404 and 405 errors
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return instrumentedMongo.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Drivers
		drivers := v1.Group("/drivers", middleware.RequireAuth(tokens))
		{
			drivers.POST("", driverHandler.Create)
			drivers.GET("", driverHandler.List)
			drivers.GET("/:driverId", driverHandler.Get)
			drivers.PUT("/:driverId", driverHandler.Update)
			drivers.DELETE("/:driverId", driverHandler.Delete)
		}

		// Routes
		routes := v1.Group("/routes", middleware.RequireAuth(tokens))
		{
			routes.POST("", routeHandler.Create)
			routes.GET("", routeHandler.List)
			routes.GET("/:routeId", routeHandler.Get)
			routes.PUT("/:routeId", routeHandler.Update)
			routes.DELETE("/:routeId", routeHandler.Delete)
		}

		// Orders
		orders := v1.Group("/orders", middleware.RequireAuth(tokens))
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:orderId", orderHandler.Get)
			orders.PUT("/:orderId", orderHandler.Update)
			orders.DELETE("/:orderId", orderHandler.Delete)
		}

		// Simulation. Running is open to anonymous callers; history is
		// scoped to the authenticated user.
		simulation := v1.Group("/simulation")
		{
			simulation.POST("/run", middleware.OptionalAuth(tokens), simulationHandler.Run)
			simulation.GET("/history", middleware.RequireAuth(tokens), simulationHandler.History)
			simulation.GET("/stats", middleware.RequireAuth(tokens), simulationHandler.Stats)
			simulation.GET("/:simulationId", middleware.RequireAuth(tokens), simulationHandler.Get)
			simulation.DELETE("/:simulationId", middleware.RequireAuth(tokens), simulationHandler.Delete)
		}

		// Dashboard
		v1.GET("/dashboard", middleware.RequireAuth(tokens), dashboardHandler.Get)
	}

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	// Wait for interrupt signal
	<-signalCh
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
	Auth       *auth.Config
}

func loadConfig() *Config {
	authConfig := auth.DefaultConfig(serviceName)
	authConfig.Secret = getEnv("JWT_SECRET", "")

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":5000"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "greencart"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     serviceName,
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
		Auth: authConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
