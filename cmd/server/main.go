package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/gkt/backend/internal/application/audit"
	billingapp "github.com/gkt/backend/internal/application/billing"
	crmapp "github.com/gkt/backend/internal/application/crm"
	deliveryapp "github.com/gkt/backend/internal/application/delivery"
	eventapp "github.com/gkt/backend/internal/application/event"
	governanceapp "github.com/gkt/backend/internal/application/governance"
	procurementapp "github.com/gkt/backend/internal/application/procurement"
	taxapp "github.com/gkt/backend/internal/application/tax"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/auth"
	billinginfra "github.com/gkt/backend/internal/infrastructure/billing"
	"github.com/gkt/backend/internal/infrastructure/cache"
	"github.com/gkt/backend/internal/infrastructure/config"
	"github.com/gkt/backend/internal/infrastructure/event"
	"github.com/gkt/backend/internal/infrastructure/logger"
	"github.com/gkt/backend/internal/infrastructure/persistence"
	"github.com/gkt/backend/internal/infrastructure/scheduler"
	"github.com/gkt/backend/internal/infrastructure/telemetry"
	"github.com/gkt/backend/internal/interfaces/http/handler"
	"github.com/gkt/backend/internal/interfaces/http/middleware"
	"github.com/gkt/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			GKT Lifecycle API
//	@version		1.0
//	@description	Commercial lifecycle backend for training and consulting engagements: opportunities, deals, programs, procurement, billing and governance.

//	@contact.name	API Support
//	@contact.url	https://github.com/gkt/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting GKT Lifecycle Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize telemetry providers. With telemetry disabled these are
	// no-ops, so the wiring below stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.PyroscopeEndpoint,
		ApplicationName:   cfg.App.Name,
		ProfileCPU:        true,
		ProfileInuseSpace: true,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.ProfilingEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Initialize database connection with zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	db.DB.Logger = logger.NewGormLogger(log, gormLogLevel)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database query tracing (otelgorm) when enabled
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Business metrics with periodic receivable aging collection
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:              meterProvider.Meter("gkt.business"),
		Logger:             log,
		ReceivableProvider: telemetry.NewGormReceivableMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Initialize repositories
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	payableRepo := persistence.NewGormPayableRepository(db.DB)
	taxDeductionRepo := persistence.NewGormTaxDeductionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	governanceRepo := persistence.NewGormGovernanceRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Initialize event serializer and register all event types
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)

	// Create outbox publisher for transactional event saving and inject it
	// into the repositories whose events drive the cascade
	outboxPublisher := event.NewOutboxPublisher(eventSerializer)
	dealRepo.SetOutboxEventSaver(outboxPublisher)
	invoiceRepo.SetOutboxEventSaver(outboxPublisher)

	// Initialize application services
	opportunityService := crmapp.NewOpportunityService(opportunityRepo, dealRepo, log)
	dealService := crmapp.NewDealService(dealRepo, log)
	programService := deliveryapp.NewProgramService(programRepo, log)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, log)
	payableService := procurementapp.NewPayableService(payableRepo, log)
	taxService := taxapp.NewTaxService(taxDeductionRepo, payableRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, programRepo, billinginfra.NewRandomComplianceReferenceGenerator(), log)
	receivableService := billingapp.NewReceivableService(receivableRepo, log)
	governanceService := governanceapp.NewGovernanceService(governanceRepo, log)
	auditService := auditapp.NewAuditService(auditRepo, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Identity is deliberately thin: statically configured users, JWT
	// tokens and a Redis-backed blacklist for logout
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store for cascade handlers: events reach handlers both
	// inline and via the outbox processor, so handlers must dedupe
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idemStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	subscribe := func(h shared.EventHandler) {
		eventBus.Subscribe(event.NewIdempotentHandler(h, idemStore, log))
	}

	// Register cascade handlers for cross-context integration
	// Opportunity converted -> opportunity closes as converted
	subscribe(crmapp.NewOpportunityConvertedHandler(opportunityRepo, log))
	// Deal created/updated/approved -> governance risk evaluation
	subscribe(governanceapp.NewDealRiskHandler(governanceRepo, dealRepo, log))
	// Deal approved -> draft purchase order for vendor-delivered work
	subscribe(procurementapp.NewDealApprovedHandler(purchaseOrderRepo, log))
	// Payable created -> withholding computation and deduction record
	subscribe(taxapp.NewPayableCreatedHandler(taxDeductionRepo, payableRepo, log))
	// Client sign-off -> program becomes invoice eligible
	subscribe(deliveryapp.NewClientSignOffHandler(programRepo, log))
	// Invoice created -> receivable opens
	subscribe(billingapp.NewInvoiceCreatedHandler(invoiceRepo, receivableRepo, log))
	// Invoice created -> duplicate scan and fraud alerting
	subscribe(governanceapp.NewDuplicateInvoiceHandler(invoiceRepo, governanceRepo, log))
	// Every domain event -> append-only audit trail
	subscribe(auditapp.NewEventAuditHandler(auditRepo, log))

	log.Info("Cascade event handlers registered")

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbox processor republishes events persisted alongside aggregate
	// writes, guaranteeing cascade delivery across restarts
	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		if cfg.Event.BatchSize > 0 {
			processorConfig.BatchSize = cfg.Event.BatchSize
		}
		if cfg.Event.PollInterval > 0 {
			processorConfig.PollInterval = cfg.Event.PollInterval
		}
		processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		if cfg.Event.CleanupRetention > 0 {
			processorConfig.CleanupRetention = cfg.Event.CleanupRetention
		}
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", processorConfig.BatchSize),
			zap.Duration("poll_interval", processorConfig.PollInterval),
		)
	}

	// Inject event bus into services that publish events
	opportunityService.SetEventPublisher(eventBus)
	dealService.SetEventPublisher(eventBus)
	programService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	payableService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	receivableService.SetEventPublisher(eventBus)

	// Receivable aging refresh scheduler (if enabled)
	if cfg.Aging.RefreshEnabled {
		agingScheduler := scheduler.NewAgingRefreshScheduler(receivableService, log, scheduler.AgingRefreshSchedulerConfig{
			Enabled:  cfg.Aging.RefreshEnabled,
			Interval: cfg.Aging.RefreshInterval,
		})
		if err := agingScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start aging refresh scheduler", zap.Error(err))
		}
		defer func() {
			if err := agingScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping aging refresh scheduler", zap.Error(err))
			}
		}()
		log.Info("Aging refresh scheduler started",
			zap.Duration("interval", cfg.Aging.RefreshInterval),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(jwtService, blacklist, cfg.Auth)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService)
	dealHandler := handler.NewDealHandler(dealService)
	programHandler := handler.NewProgramHandler(programService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	payableHandler := handler.NewPayableHandler(payableService)
	taxDeductionHandler := handler.NewTaxDeductionHandler(taxService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	receivableHandler := handler.NewReceivableHandler(receivableService)
	governanceHandler := handler.NewGovernanceHandler(governanceService)
	auditHandler := handler.NewAuditHandler(auditService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing/metrics/profiling - Observability (no-op when disabled)
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("gkt.http"), cfg.Telemetry.Enabled))
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Role gates per route group. The domain state machines enforce the
	// precise capability matrix; these gates reject obviously wrong roles
	// before the aggregate is even loaded. Admin passes every gate.
	salesOnly := middleware.RequireRole(shared.RoleSales)
	deliveryOnly := middleware.RequireRole(shared.RoleDelivery)
	financeOnly := middleware.RequireRole(shared.RoleFinance)
	directorOnly := middleware.RequireRole(shared.RoleDirector)
	financeOrDirector := middleware.RequireRole(shared.RoleFinance, shared.RoleDirector)

	// Authentication (login/refresh are JWT skip paths)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)

	// Opportunities (pre-sales pipeline)
	opportunityRoutes := router.NewDomainGroup("opportunity", "/opportunities")
	opportunityRoutes.POST("", salesOnly, opportunityHandler.Create)
	opportunityRoutes.GET("", opportunityHandler.List)
	opportunityRoutes.GET("/:id", opportunityHandler.Get)
	opportunityRoutes.PUT("/:id/costs", salesOnly, opportunityHandler.UpdateCosts)
	opportunityRoutes.POST("/:id/qualify", salesOnly, opportunityHandler.Qualify)
	opportunityRoutes.POST("/:id/send-to-delivery", salesOnly, opportunityHandler.SendToDelivery)
	opportunityRoutes.POST("/:id/lost", salesOnly, opportunityHandler.MarkLost)
	opportunityRoutes.POST("/:id/convert", salesOnly, opportunityHandler.Convert)

	// Deals (committed engagements and the approval gate)
	dealRoutes := router.NewDomainGroup("deal", "/deals")
	dealRoutes.POST("", salesOnly, dealHandler.Create)
	dealRoutes.GET("", dealHandler.List)
	dealRoutes.GET("/:id", dealHandler.Get)
	dealRoutes.PUT("/:id/commercials", salesOnly, dealHandler.UpdateCommercials)
	dealRoutes.POST("/:id/approve", financeOrDirector, dealHandler.Approve)
	dealRoutes.POST("/:id/reject", financeOrDirector, dealHandler.Reject)
	dealRoutes.GET("/:id/governance", financeOrDirector, governanceHandler.GetByDeal)

	// Programs (delivery execution)
	programRoutes := router.NewDomainGroup("program", "/programs")
	programRoutes.POST("", deliveryOnly, programHandler.Create)
	programRoutes.GET("", programHandler.List)
	programRoutes.GET("/:id", programHandler.Get)
	programRoutes.PUT("/:id/costs", deliveryOnly, programHandler.UpdateCosts)
	programRoutes.POST("/:id/start", deliveryOnly, programHandler.Start)
	programRoutes.POST("/:id/delivered", deliveryOnly, programHandler.MarkDelivered)
	programRoutes.POST("/:id/trainer-signoff", deliveryOnly, programHandler.TrainerSignOff)
	programRoutes.POST("/:id/client-signoff", middleware.RequireRole(shared.RoleDelivery, shared.RoleSales), programHandler.ClientSignOff)

	// Purchase orders (vendor procurement)
	purchaseOrderRoutes := router.NewDomainGroup("purchase-order", "/purchase-orders")
	purchaseOrderRoutes.POST("", middleware.RequireRole(shared.RoleDelivery, shared.RoleFinance), purchaseOrderHandler.Create)
	purchaseOrderRoutes.GET("", purchaseOrderHandler.List)
	purchaseOrderRoutes.GET("/:id", purchaseOrderHandler.Get)
	purchaseOrderRoutes.PUT("/:id/vendor", deliveryOnly, purchaseOrderHandler.AssignVendor)
	purchaseOrderRoutes.PUT("/:id/costs", deliveryOnly, purchaseOrderHandler.UpdateCosts)
	purchaseOrderRoutes.POST("/:id/approve", financeOnly, purchaseOrderHandler.Approve)
	purchaseOrderRoutes.POST("/:id/issue", financeOnly, purchaseOrderHandler.Issue)
	purchaseOrderRoutes.POST("/:id/complete", financeOnly, purchaseOrderHandler.Complete)
	purchaseOrderRoutes.POST("/:id/cancel", financeOnly, purchaseOrderHandler.Cancel)

	// Payables and withholding
	payableRoutes := router.NewDomainGroup("payable", "/payables")
	payableRoutes.POST("", financeOnly, payableHandler.Create)
	payableRoutes.GET("", payableHandler.List)
	payableRoutes.GET("/:id", payableHandler.Get)
	payableRoutes.POST("/:id/hold", financeOrDirector, payableHandler.Hold)
	payableRoutes.POST("/:id/release", financeOrDirector, payableHandler.Release)
	payableRoutes.POST("/:id/payments", financeOnly, payableHandler.RecordPayment)
	payableRoutes.POST("/:id/cancel", financeOnly, payableHandler.Cancel)
	payableRoutes.GET("/:id/tax-deduction", taxDeductionHandler.GetByPayable)
	payableRoutes.POST("/:id/tax-deduction/override", directorOnly, taxDeductionHandler.ApplyDirectorOverride)

	// Invoices
	invoiceRoutes := router.NewDomainGroup("invoice", "/invoices")
	invoiceRoutes.POST("", financeOnly, invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.Get)
	invoiceRoutes.POST("/:id/generate", financeOnly, invoiceHandler.Generate)
	invoiceRoutes.POST("/:id/sent", financeOnly, invoiceHandler.MarkSent)
	invoiceRoutes.POST("/:id/paid", financeOnly, invoiceHandler.MarkPaid)
	invoiceRoutes.POST("/:id/cancel", financeOnly, invoiceHandler.Cancel)

	// Receivables and aging
	receivableRoutes := router.NewDomainGroup("receivable", "/receivables")
	receivableRoutes.GET("", receivableHandler.List)
	receivableRoutes.GET("/:id", receivableHandler.Get)
	receivableRoutes.POST("/:id/payments", financeOnly, receivableHandler.ApplyPayment)
	receivableRoutes.POST("/:id/refresh-aging", financeOnly, receivableHandler.RefreshAging)
	receivableRoutes.POST("/refresh-aging", financeOnly, receivableHandler.RefreshAllAging)

	// Governance (risk flags and fraud alerts)
	governanceRoutes := router.NewDomainGroup("governance", "/governance")
	governanceRoutes.GET("/flagged", financeOrDirector, governanceHandler.ListFlagged)

	// Audit trail (read-only)
	auditRoutes := router.NewDomainGroup("audit", "/audit")
	auditRoutes.Use(financeOrDirector)
	auditRoutes.GET("/entities/:entityType/:entityId", auditHandler.GetEntityTrail)
	auditRoutes.GET("/actors/:actorId", auditHandler.GetActorTrail)
	auditRoutes.GET("/system-events", auditHandler.ListSystemEvents)

	// System endpoints: ping/info are public, outbox administration is not
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	adminOnly := middleware.RequireRole(shared.RoleAdmin)
	opsGuard := middleware.OpsProtection(middleware.OpsConfig{
		Enabled:    cfg.HTTP.OpsEnabled,
		AllowedIPs: cfg.HTTP.OpsIPAllowlist,
	}, nil)
	systemRoutes.GET("/outbox/dead", opsGuard, adminOnly, outboxHandler.GetDeadLetterEntries)
	systemRoutes.GET("/outbox/stats", opsGuard, adminOnly, outboxHandler.GetStats)
	systemRoutes.GET("/outbox/:id", opsGuard, adminOnly, outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", opsGuard, adminOnly, outboxHandler.RetryDeadEntry)
	systemRoutes.POST("/outbox/dead/retry-all", opsGuard, adminOnly, outboxHandler.RetryAllDeadEntries)

	// Register all domain groups
	r.Register(authRoutes).
		Register(opportunityRoutes).
		Register(dealRoutes).
		Register(programRoutes).
		Register(purchaseOrderRoutes).
		Register(payableRoutes).
		Register(invoiceRoutes).
		Register(receivableRoutes).
		Register(governanceRoutes).
		Register(auditRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
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
