package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	calendarapp "github.com/eyedist/backend/internal/application/calendar"
	catalogapp "github.com/eyedist/backend/internal/application/catalog"
	"github.com/eyedist/backend/internal/application/dashboard"
	financeapp "github.com/eyedist/backend/internal/application/finance"
	geographyapp "github.com/eyedist/backend/internal/application/geography"
	identityapp "github.com/eyedist/backend/internal/application/identity"
	partnerapp "github.com/eyedist/backend/internal/application/partner"
	tradeapp "github.com/eyedist/backend/internal/application/trade"
	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/infrastructure/auth"
	"github.com/eyedist/backend/internal/infrastructure/cache"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/eyedist/backend/internal/infrastructure/event"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/infrastructure/migration"
	"github.com/eyedist/backend/internal/infrastructure/persistence"
	"github.com/eyedist/backend/internal/infrastructure/printing"
	"github.com/eyedist/backend/internal/infrastructure/search"
	"github.com/eyedist/backend/internal/infrastructure/storage"
	"github.com/eyedist/backend/internal/infrastructure/telemetry"
	"github.com/eyedist/backend/internal/interfaces/http/handler"
	"github.com/eyedist/backend/internal/interfaces/http/middleware"
	"github.com/eyedist/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/eyedist/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Eyewear Distribution API
//	@version		1.0
//	@description	Backend for a B2B eyewear distribution business: catalogue, parties, orders, expenses and field events.

//	@contact.name	API Support
//	@contact.email	support@eyedist.example.com

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The OTLP log bridge needs a logger of its own before the real one exists
	bootLog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, logProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting eyewear distribution backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	defer shutdownTelemetry(log, tracerProvider, meterProvider, logProvider, profiler)

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh, cfg.Database.LogFullSQL)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, cfg.Database, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := migrateSchema(ctx, db, cfg.Database, log); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	// Redis is optional; the geography cache and token blacklist fall back
	// to process memory
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var (
		blacklist   auth.TokenBlacklist
		regionCache cache.RegionCache
		requestKeys cache.RequestKeyStore
	)
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		regionCache = cache.NewRegionCache(redisClient, cfg.Redis.CacheTTL, log)
		requestKeys = cache.NewRequestKeyStore(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		regionCache = cache.NewRegionCache(nil, cfg.Redis.CacheTTL, log)
		memKeys := cache.NewInMemoryRequestKeyStore()
		defer func() { _ = memKeys.Close() }()
		requestKeys = memKeys
	}

	// Uploads
	objectStore, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	uploader := storage.NewUploader(objectStore, cfg.Storage.MaxUploadSize, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	distributorRepo := persistence.NewGormDistributorRepository(db.DB)
	salesmanRepo := persistence.NewGormSalesmanRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)

	productIndex := newProductIndex(ctx, cfg.Search, db, log)

	var invoices tradeapp.InvoiceRenderer
	if cfg.Printing.Enabled {
		renderer, err := printing.NewChromedpRenderer(cfg.Printing, log)
		if err != nil {
			log.Fatal("Failed to start PDF renderer", zap.Error(err))
		}
		defer func() { _ = renderer.Close() }()
		invoices = printing.NewInvoicePrinter(renderer, cfg.App.CompanyName)
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	refreshTTL := cfg.JWT.RefreshTokenExpiration
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, refreshTTL, log)
	userService := identityapp.NewUserService(userRepo, blacklist, refreshTTL)
	regionService := geographyapp.NewRegionService(regionRepo, regionCache)
	locations := geography.NewResolver(regionRepo)
	attributeService := catalogapp.NewAttributeService(attributeRepo)
	productService := catalogapp.NewProductService(productRepo, attributeRepo, productIndex, uploader)
	partyService := partnerapp.NewPartyService(partyRepo, distributorRepo, salesmanRepo, locations)
	distributorService := partnerapp.NewDistributorService(distributorRepo, locations)
	salesmanService := partnerapp.NewSalesmanService(salesmanRepo, userRepo, locations)
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, partyRepo, distributorRepo, salesmanRepo, invoices)
	expenseService := financeapp.NewExpenseService(expenseRepo, uploader)
	eventService := calendarapp.NewEventService(eventRepo, regionRepo)
	dashboardService := dashboard.NewService(partyRepo, distributorRepo, salesmanRepo, orderRepo, expenseRepo, eventRepo)

	// Domain events: audit trail, business metrics, optional Kafka fan-out
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditHandler(auditRepo))
	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("eyedist"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	eventBus.Subscribe(businessMetrics)
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := event.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal("Failed to create Kafka publisher", zap.Error(err))
		}
		defer func() { _ = kafkaPublisher.Close() }()
		eventBus.Subscribe(kafkaPublisher)
		log.Info("Publishing domain events to Kafka", zap.String("topic", cfg.Kafka.Topic))
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() { _ = eventBus.Stop(context.Background()) }()

	userService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	partyService.SetEventPublisher(eventBus)
	distributorService.SetEventPublisher(eventBus)
	salesmanService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	expenseService.SetEventPublisher(eventBus)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.HTTPMetrics(meterProvider))
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDKey, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	checks := map[string]handler.HealthCheck{"database": db.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler(version, checks)
	engine.GET("/health", healthHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(authService)
	jwtConfig.Logger = log
	swaggerAuth := middleware.JWTAuth(middleware.JWTConfig{Validator: authService, Logger: log})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	if cfg.Storage.Driver == "local" {
		engine.Static(cfg.Storage.PublicPrefix, cfg.Storage.LocalDir)
	}

	regionHandlers := make([]*handler.RegionHandler, 0, len(geography.Levels))
	for _, level := range geography.Levels {
		regionHandlers = append(regionHandlers, handler.NewRegionHandler(regionService, level))
	}

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(middleware.JWTAuth(jwtConfig), middleware.DataScope()),
	).Register(router.DomainGroups(router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Users:        handler.NewUserHandler(userService),
		Regions:      regionHandlers,
		Attributes:   handler.NewAttributeHandler(attributeService),
		Products:     handler.NewProductHandler(productService),
		Parties:      handler.NewPartyHandler(partyService),
		Distributors: handler.NewDistributorHandler(distributorService),
		Salesmen:     handler.NewSalesmanHandler(salesmanService),
		Orders:       handler.NewOrderHandler(orderService),
		Expenses:     handler.NewExpenseHandler(expenseService),
		Events:       handler.NewEventHandler(eventService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Idempotency:  middleware.Idempotency(requestKeys, 24*time.Hour),
	})...).Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

// migrateSchema runs the versioned SQL migrations on PostgreSQL and GORM
// AutoMigrate on the other drivers
func migrateSchema(ctx context.Context, db *persistence.Database, cfg config.DatabaseConfig, log *zap.Logger) error {
	if db.Driver != "postgres" {
		return db.AutoMigrate(ctx)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, cfg.MigrationsPath, log)
	if err != nil {
		return err
	}
	// closing the migrator would close the shared *sql.DB
	return m.Up()
}

// newProductIndex prefers Elasticsearch and falls back to SQL text search
// when it is disabled or unreachable
func newProductIndex(ctx context.Context, cfg config.SearchConfig, db *persistence.Database, log *zap.Logger) catalog.ProductIndex {
	if !cfg.Enabled {
		return search.NewSQLProductIndex(db.DB)
	}
	client, err := search.NewClient(cfg, log)
	if err != nil {
		log.Warn("Elasticsearch unavailable, using SQL product search", zap.Error(err))
		return search.NewSQLProductIndex(db.DB)
	}
	index := search.NewElasticProductIndex(client, cfg.Index, log)
	if err := index.EnsureIndex(ctx); err != nil {
		log.Warn("Failed to create product index, using SQL product search", zap.Error(err))
		return search.NewSQLProductIndex(db.DB)
	}
	log.Info("Product search backed by Elasticsearch", zap.String("index", cfg.Index))
	return index
}

func shutdownTelemetry(log *zap.Logger, tp *telemetry.TracerProvider, mp *telemetry.MeterProvider, lp *telemetry.LoggerProvider, p *telemetry.Profiler) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := tp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter", zap.Error(err))
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down log exporter", zap.Error(err))
	}
	if err := p.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
}
