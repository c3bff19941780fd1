package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace_backend/database"
	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/config"
	"marketplace_backend/internal/email"
	"marketplace_backend/internal/handlers"
	"marketplace_backend/internal/imageprocessor"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/metrics"
	"marketplace_backend/internal/middleware"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/routes"
	"marketplace_backend/internal/services"
	"marketplace_backend/internal/storage"
	"marketplace_backend/internal/validator"
	"marketplace_backend/internal/workers"
	"marketplace_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Options replaces external collaborators. Nil fields are built from config.
type Options struct {
	EmailProvider email.Provider
	StatsProvider services.StatsProvider
	Storage       storage.Storage
	Broker        ws.Broker
	Metrics       *metrics.Metrics
}

// App is a fully wired instance. Background work runs until the context given
// to New is cancelled.
type App struct {
	Router        *gin.Engine
	Services      *services.ServiceContainer
	Tokens        *auth.TokenManager
	WSManager     *ws.WebSocketManager
	Notifications *workers.NotificationWorker
	Campaigns     *workers.CampaignWorker
	Metrics       *metrics.Metrics

	broker        ws.Broker
	emailProvider email.Provider
}

func New(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) (*App, error) {
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	provider := opts.EmailProvider
	if provider == nil {
		p, err := email.NewProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("email provider: %w", err)
		}
		provider = p
	}

	store := opts.Storage
	if store == nil {
		s, err := storage.NewStorage(storage.ConfigFrom(cfg))
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		store = s
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	broker := opts.Broker
	if broker == nil {
		b, err := ws.NewBroker(cfg)
		if err != nil {
			return nil, fmt.Errorf("relay broker: %w", err)
		}
		broker = b
	}

	stats := opts.StatsProvider
	if stats == nil {
		stats = services.NewMockStatsProvider(cfg.Instagram.AccessToken)
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}

	notifications := workers.NewNotificationWorker(provider, cfg.Notifications.Workers, cfg.Notifications.QueueSize, m)
	notifications.Start(ctx)

	wsManager := ws.NewWebSocketManager(broker, m)
	if err := wsManager.Run(ctx); err != nil {
		return nil, fmt.Errorf("relay subscribe: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	container := initializeServices(cfg, tokens, templates, notifications, store, stats, wsManager, m)

	campaignRepo := repositories.NewCampaignRepository()
	campaignWorker := workers.NewCampaignWorker(db, campaignRepo, cfg.Workers.CampaignCloseInterval, m)
	campaignWorker.Start(ctx)

	appHandlers := initializeHandlers(container)
	wsHandler := ws.NewWebSocketHandler(wsManager, container.ChatService, db, cfg.Server.AllowedOrigins)

	router := initializeGinRouter(cfg, db, m)
	routeOpts := routes.Options{Metrics: m.Handler()}
	if cfg.Storage.Type == "local" {
		routeOpts.FilesURL = cfg.Storage.BaseURL
		routeOpts.FilesDir = cfg.Storage.BasePath
	}
	routes.RegisterRoutes(router, appHandlers, wsHandler, middleware.AuthMiddleware(tokens), routeOpts)

	return &App{
		Router:        router,
		Services:      container,
		Tokens:        tokens,
		WSManager:     wsManager,
		Notifications: notifications,
		Campaigns:     campaignWorker,
		Metrics:       m,
		broker:        broker,
		emailProvider: provider,
	}, nil
}

// Close waits for queued notifications, then releases the broker and the
// email provider. Call it after cancelling the context given to New.
func (a *App) Close() error {
	a.Notifications.Wait()
	return errors.Join(a.broker.Close(), a.emailProvider.Close())
}

func initializeServices(
	cfg *config.Config,
	tokens *auth.TokenManager,
	templates email.TemplateRenderer,
	queue services.NotificationQueue,
	store storage.Storage,
	stats services.StatsProvider,
	publisher services.MessagePublisher,
	m *metrics.Metrics,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	brandRepo := repositories.NewBrandRepository()
	influencerRepo := repositories.NewInfluencerRepository()
	campaignRepo := repositories.NewCampaignRepository()
	proposalRepo := repositories.NewProposalRepository()
	chatRepo := repositories.NewChatRepository()

	limits := services.UploadLimitsFrom(cfg)
	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)

	notificationService := services.NewNotificationService(templates, queue, cfg.Server.ClientURL)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, tokens, notificationService),
		BrandService:        services.NewBrandService(brandRepo, userRepo, store, processor, limits),
		InfluencerService:   services.NewInfluencerService(influencerRepo, userRepo, stats),
		CampaignService:     services.NewCampaignService(campaignRepo, brandRepo, m),
		ProposalService:     services.NewProposalService(proposalRepo, campaignRepo, userRepo, notificationService, store, limits, m),
		ChatService:         services.NewChatService(chatRepo, userRepo, publisher),
		NotificationService: notificationService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService),
		BrandHandler:      handlers.NewBrandHandler(baseHandler, container.BrandService),
		InfluencerHandler: handlers.NewInfluencerHandler(baseHandler, container.InfluencerService),
		CampaignHandler:   handlers.NewCampaignHandler(baseHandler, container.CampaignService),
		ProposalHandler:   handlers.NewProposalHandler(baseHandler, container.ProposalService),
		ChatHandler:       handlers.NewChatHandler(baseHandler, container.ChatService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// Run connects to the database, prepares it, and serves until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}
	if err := database.SeedFirstAdmin(db, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		return fmt.Errorf("failed to seed first admin user: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	application, err := New(appCtx, cfg, db, Options{})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			cancel()
			_ = application.Close()
			return fmt.Errorf("server startup error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	shutdownErr := server.Shutdown(shutdownCtx)
	cancel()
	closeErr := application.Close()
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown: %w", shutdownErr)
	}
	if closeErr != nil {
		logger.Warn("Error releasing resources", "error", closeErr)
	}
	logger.Info("Server stopped")
	return nil
}
