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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-minutes/docs"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/scheduler"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/storage"
	entityUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/entity"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
	pkgai "github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
	pkglogger "github.com/johnquangdev/meeting-minutes/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"
)

// @title           Meeting Minutes API
// @version         1.0
// @description     Meeting minutes with entity resolution, classification and merge suggestions

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Request-ID"},
	}))
	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: cfg.Server.RequestTimeout,
		}))
	}

	log.Println("🔧 Initializing dependencies...")

	// Database
	log.Printf("📦 Connecting to %s database...", cfg.Database.Driver)
	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate && cfg.Database.Driver != "sqlite" {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrateModels(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else if _, err := database.Migrate(db, cfg.Database.Driver); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("⚙️  Initializing repositories...")
	store := repository.NewStore(db)
	if err := database.Seed(context.Background(), store); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Category cache
	var backing cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		backing = cache.NewRedisStore(redisClient, "meeting-minutes:entity-type:", cfg.Redis.CacheTTL)
	} else {
		log.Println("📦 Redis disabled, using in-process category cache")
		backing = cache.NewMemoryStore(cfg.Redis.CacheTTL, 2*cfg.Redis.CacheTTL)
	}
	categories := cache.NewCategoryCache(store.EntityTypes(), backing, logger)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Resolver
	log.Println("🧩 Initializing entity resolver...")
	var settings *config.ResolverSettings
	if cfg.Resolver.ConfigFile != "" {
		settings, err = config.LoadResolverFile(cfg.Resolver.ConfigFile)
		if err != nil {
			log.Fatalf("Failed to load resolver config: %v", err)
		}
	}
	resolverCfg := resolver.ConfigFromSettings(cfg.Resolver, settings)
	if err := resolverCfg.Validate(); err != nil {
		log.Fatalf("Invalid resolver config: %v", err)
	}
	res := resolver.NewService(store, resolverCfg, categories, logger, m)

	// Generator
	log.Printf("🤖 Initializing %s generator...", cfg.AI.Provider)
	var gen pkgai.Generator
	switch cfg.AI.Provider {
	case "anthropic":
		client, err := pkgai.NewAnthropicClient(cfg.AI)
		if err != nil {
			log.Fatalf("Failed to initialize Anthropic client: %v", err)
		}
		gen = client
	default:
		gen = pkgai.NewGroqClient(cfg.AI)
	}

	// Transcript archive. Interfaces stay nil when storage is disabled.
	var archiver meetingUsecase.TranscriptArchiver
	var transcripts handler.TranscriptStore
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		archiver = minioClient
		transcripts = minioClient
	} else {
		log.Println("⚠️  Object storage disabled, transcripts are kept in the database only")
	}

	// Use cases
	entityService := entityUsecase.NewEntityService(store, res, categories, logger)
	meetingService := meetingUsecase.NewMeetingService(store, gen, res, archiver, logger, m, meetingUsecase.Options{
		MaxRetries: cfg.AI.MaxRetries,
		Timeout:    cfg.AI.Timeout,
	})

	// Merge scanner
	log.Println("⏰ Initializing merge scanner...")
	scanner, err := scheduler.NewMergeScanner(res, cfg.Scheduler.MergeScanCron, logger, m)
	if err != nil {
		log.Fatalf("Failed to initialize merge scanner: %v", err)
	}
	scanner.Start()

	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	// Handlers
	handlers := handler.Handlers{
		Entity:      handler.NewEntityHandler(entityService, logger),
		EntityType:  handler.NewEntityTypeHandler(entityService, logger),
		Resolver:    handler.NewResolverHandler(res, scanner, logger),
		Meeting:     handler.NewMeetingHandler(meetingService, logger),
		MeetingType: handler.NewMeetingTypeHandler(meetingService, logger),
	}
	if transcripts != nil {
		handlers.Archive = handler.NewTranscriptArchive(transcripts, meetingService, logger)
	}
	if cfg.Webhook.Secret != "" {
		handlers.Webhook = handler.NewWebhookHandler(meetingService, cfg.Webhook.Secret, logger)
	} else {
		log.Println("⚠️  WEBHOOK_SECRET not set, transcript webhook disabled")
	}

	healthy := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jwtManager, reg, healthy, handlers)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if err := scanner.Stop(); err != nil {
		logger.Warn("⚠️ Merge scanner did not stop cleanly", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
