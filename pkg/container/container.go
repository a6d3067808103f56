package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"commission-backend/internal/config"
	infraCache "commission-backend/internal/infrastructure/cache"
	"commission-backend/internal/infrastructure/database"
	"commission-backend/internal/infrastructure/realtime"
	"commission-backend/internal/infrastructure/telegram"
	"commission-backend/pkg/cache"
	"commission-backend/pkg/jwt"

	commissionHandler "commission-backend/internal/domains/commission/handler"
	commissionRepo "commission-backend/internal/domains/commission/repository"
	commissionService "commission-backend/internal/domains/commission/service"
	contactHandler "commission-backend/internal/domains/contact/handler"
	contactRepo "commission-backend/internal/domains/contact/repository"
	contactService "commission-backend/internal/domains/contact/service"
	faqHandler "commission-backend/internal/domains/faq/handler"
	faqRepo "commission-backend/internal/domains/faq/repository"
	faqService "commission-backend/internal/domains/faq/service"
	galleryHandler "commission-backend/internal/domains/gallery/handler"
	galleryRepo "commission-backend/internal/domains/gallery/repository"
	galleryService "commission-backend/internal/domains/gallery/service"
	notificationHandler "commission-backend/internal/domains/notification/handler"
	notificationRepo "commission-backend/internal/domains/notification/repository"
	notificationService "commission-backend/internal/domains/notification/service"
	reportHandler "commission-backend/internal/domains/report/handler"
	reportRepo "commission-backend/internal/domains/report/repository"
	reportService "commission-backend/internal/domains/report/service"
	settingsHandler "commission-backend/internal/domains/settings/handler"
	settingsRepo "commission-backend/internal/domains/settings/repository"
	settingsService "commission-backend/internal/domains/settings/service"
	userHandler "commission-backend/internal/domains/user/handler"
	userRepo "commission-backend/internal/domains/user/repository"
	userService "commission-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton shared across the app lifetime.
type Container struct {
	// Infrastructure
	Config         *config.Config
	DB             *database.PostgresDB
	Redis          *infraCache.RedisClient
	Cache          cache.Cache
	Broadcaster    realtime.Broadcaster
	AsynqClient    *asynq.Client
	JWTManager     *jwt.Manager
	TelegramClient *telegram.Client

	// Repositories
	CommissionRepo   commissionRepo.CommissionRepository
	SettingsRepo     settingsRepo.SettingsRepository
	NotificationRepo notificationRepo.NotificationRepository
	UserRepo         userRepo.UserRepository
	GalleryRepo      galleryRepo.GalleryRepository
	FaqRepo          faqRepo.FaqRepository
	ContactRepo      contactRepo.ContactRepository
	ReportRepo       reportRepo.ReportRepository

	// Services
	SettingsService     settingsService.SettingsService
	NotificationService notificationService.NotificationService
	CommissionService   commissionService.CommissionService
	UserService         userService.UserService
	GalleryService      galleryService.GalleryService
	FaqService          faqService.FaqService
	ContactService      contactService.ContactService
	ReportService       reportService.ReportService

	// Handlers
	CommissionHandler   *commissionHandler.CommissionHandler
	SettingsHandler     *settingsHandler.SettingsHandler
	NotificationHandler *notificationHandler.NotificationHandler
	UserHandler         *userHandler.UserHandler
	GalleryHandler      *galleryHandler.GalleryHandler
	FaqHandler          *faqHandler.FaqHandler
	ContactHandler      *contactHandler.ContactHandler
	ReportHandler       *reportHandler.ReportHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph in layer order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(context.Background()); err != nil {
		// Redis failure is non-critical at boot, cache and realtime
		// operations degrade to warnings
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}

	c.Cache = infraCache.NewCache(c.Redis)
	c.Broadcaster = realtime.NewRedisBroadcaster(c.Redis.Client)

	// ========================================
	// STEP 4: INITIALIZE SHARED CLIENTS
	// ========================================
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	c.TelegramClient = telegram.NewClient(&cfg.Telegram)

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CommissionRepo = commissionRepo.NewCommissionRepository(pool)
	c.SettingsRepo = settingsRepo.NewSettingsRepository(pool)
	c.NotificationRepo = notificationRepo.NewNotificationRepository(pool)
	c.UserRepo = userRepo.NewUserRepository(pool)
	c.GalleryRepo = galleryRepo.NewGalleryRepository(pool)
	c.FaqRepo = faqRepo.NewFaqRepository(pool)
	c.ContactRepo = contactRepo.NewContactRepository(pool)
	c.ReportRepo = reportRepo.NewReportRepository(pool)
}

func (c *Container) initServices() {
	// Settings first: it feeds phase resolution and telegram templates
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo, c.Cache)

	c.NotificationService = notificationService.NewNotificationService(
		c.NotificationRepo,
		c.SettingsService, // template store
		c.AsynqClient,
	)

	c.CommissionService = commissionService.NewCommissionService(
		c.CommissionRepo,
		c.SettingsService,     // phase catalog
		c.NotificationService, // notifier
		c.Broadcaster,
	)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.GalleryService = galleryService.NewGalleryService(c.GalleryRepo)
	c.FaqService = faqService.NewFaqService(c.FaqRepo)

	c.ContactService = contactService.NewContactService(
		c.ContactRepo,
		c.NotificationService,
		c.Broadcaster,
	)

	c.ReportService = reportService.NewReportService(c.ReportRepo)
}

func (c *Container) initHandlers() {
	c.CommissionHandler = commissionHandler.NewCommissionHandler(c.CommissionService)
	c.SettingsHandler = settingsHandler.NewSettingsHandler(c.SettingsService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.NotificationService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.GalleryHandler = galleryHandler.NewGalleryHandler(c.GalleryService)
	c.FaqHandler = faqHandler.NewFaqHandler(c.FaqService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases container resources during graceful shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		} else {
			log.Println("✅ Asynq client closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis client: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}
}
