package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"concierge_backend/internal/auth"
	"concierge_backend/internal/config"
	"concierge_backend/internal/handlers"
	"concierge_backend/internal/locks"
	"concierge_backend/internal/logger"
	"concierge_backend/internal/middleware"
	"concierge_backend/internal/models"
	"concierge_backend/internal/payment"
	"concierge_backend/internal/repositories"
	"concierge_backend/internal/routes"
	"concierge_backend/internal/services"
	"concierge_backend/internal/storage"
	"concierge_backend/internal/validator"
	"concierge_backend/internal/workers"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole application: config, database, services, worker and
// HTTP server, then blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	apperrors.Debug = cfg.Server.Env == "development"

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	router, worker, err := buildApplication(cfg, db)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go worker.Start(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// SetupRouter assembles a fully wired gin engine for the given handle.
// Tests use it directly with a transaction-backed db.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	router, _, err := buildApplication(cfg, db)
	return router, err
}

func buildApplication(cfg *config.Config, db *gorm.DB) (*gin.Engine, *workers.SubscriptionWorker, error) {
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTLDays)
	stripeService := payment.NewStripeService(
		cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret,
		cfg.Stripe.PremiumPrice, cfg.Stripe.AppURL)

	svcs := initializeServices(cfg, jwtService, stripeService, store)

	if err := seedSpecialties(db, svcs.specialtyRepo); err != nil {
		return nil, nil, fmt.Errorf("seed specialties: %w", err)
	}

	appHandlers := initializeHandlers(svcs)
	router := initializeGinRouter(cfg, db, appHandlers, jwtService)
	worker := workers.NewSubscriptionWorker(db, svcs.Subscription)

	return router, worker, nil
}

// appServices groups the service layer for wiring.
type appServices struct {
	Auth         services.AuthService
	User         services.UserService
	Concierge    services.ConciergeService
	Specialty    services.SpecialtyService
	Listing      services.ListingService
	Marketplace  services.MarketplaceService
	Request      services.RequestService
	Message      services.MessageService
	Review       services.ReviewService
	Subscription services.SubscriptionService
	Dashboard    services.DashboardService

	specialtyRepo repositories.SpecialtyRepository
	stripe        *payment.StripeService
}

func initializeServices(
	cfg *config.Config,
	jwtService *auth.JWTService,
	stripeService *payment.StripeService,
	store storage.Storage,
) *appServices {
	userRepo := repositories.NewUserRepository()
	specialtyRepo := repositories.NewSpecialtyRepository()
	listingRepo := repositories.NewListingRepository()
	marketplaceRepo := repositories.NewMarketplaceRepository()
	requestRepo := repositories.NewRequestRepository()
	messageRepo := repositories.NewMessageRepository()
	reviewRepo := repositories.NewReviewRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()

	ratingLocks := locks.NewKeyedMutex()
	listingLocks := locks.NewKeyedMutex()

	return &appServices{
		Auth:      services.NewAuthService(userRepo, jwtService),
		User:      services.NewUserService(userRepo, specialtyRepo, store, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
		Concierge: services.NewConciergeService(userRepo, reviewRepo, specialtyRepo),
		Specialty: services.NewSpecialtyService(specialtyRepo),
		Listing:   services.NewListingService(listingRepo),
		Marketplace: services.NewMarketplaceService(
			marketplaceRepo, userRepo, listingLocks),
		Request:      services.NewRequestService(requestRepo, userRepo),
		Message:      services.NewMessageService(messageRepo, userRepo),
		Review:       services.NewReviewService(reviewRepo, userRepo, ratingLocks),
		Subscription: services.NewSubscriptionService(subscriptionRepo, userRepo, stripeService),
		Dashboard: services.NewDashboardService(
			requestRepo, listingRepo, messageRepo, subscriptionRepo),

		specialtyRepo: specialtyRepo,
		stripe:        stripeService,
	}
}

func initializeHandlers(svcs *appServices) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, svcs.Auth),
		User:         handlers.NewUserHandler(base, svcs.User),
		Concierge:    handlers.NewConciergeHandler(base, svcs.Concierge),
		Specialty:    handlers.NewSpecialtyHandler(base, svcs.Specialty),
		Listing:      handlers.NewListingHandler(base, svcs.Listing),
		Marketplace:  handlers.NewMarketplaceHandler(base, svcs.Marketplace),
		Request:      handlers.NewRequestHandler(base, svcs.Request),
		Message:      handlers.NewMessageHandler(base, svcs.Message),
		Review:       handlers.NewReviewHandler(base, svcs.Review),
		Subscription: handlers.NewSubscriptionHandler(base, svcs.Subscription),
		Webhook:      handlers.NewWebhookHandler(base, svcs.Subscription, svcs.stripe),
		Dashboard:    handlers.NewDashboardHandler(base, svcs.Dashboard),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, h *handlers.AppHandlers, jwtService *auth.JWTService) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	// Locally stored uploads are served straight off disk.
	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/api/files", cfg.Storage.BasePath)
	}

	routes.Register(router, h, jwtService)
	return router
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.Database.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the schema. Tests run it against their own
// database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.PremiumFeatures{},
		&models.Specialty{},
		&models.Listing{},
		&models.Product{},
		&models.Service{},
		&models.Request{},
		&models.Message{},
		&models.Review{},
		&models.Subscription{},
	)
}
