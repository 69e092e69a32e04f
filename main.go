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
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vapvarun/wc-subscription-protection/audit"
	"github.com/vapvarun/wc-subscription-protection/commerce"
	"github.com/vapvarun/wc-subscription-protection/config"
	"github.com/vapvarun/wc-subscription-protection/controller"
	"github.com/vapvarun/wc-subscription-protection/db"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/render"
	"github.com/vapvarun/wc-subscription-protection/router"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Neo4j and Redis are required; connect to both at once.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return db.InitNeo4j(gctx) })
	g.Go(func() error { return db.InitRedis(gctx) })
	if err := g.Wait(); err != nil {
		logger.Fatal("Failed to initialize datastores", zap.Error(err))
	}
	defer db.CloseNeo4j()
	defer db.CloseRedis()

	notificationService := util.NewNotificationService()
	commerceStore, status := openCommerce(ctx, cfg.Commerce, notificationService)
	defer db.CloseCommerceDB()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	settings := service.Settings{
		DefaultMessage: cfg.Protection.DefaultMessage,
		ContentTypes:   cfg.Protection.ContentTypes,
		ShortcodeTags:  cfg.Protection.ShortcodeTags,
		BlockName:      cfg.Protection.BlockName,
		Links: render.Links{
			LoginURL:      cfg.Site.LoginURL,
			ShopURL:       cfg.Commerce.ShopURL,
			NewProductURL: cfg.Site.NewProductURL,
			ToggleAction:  "/api/v1/widgets/toggle",
		},
	}

	services, err := service.InitializeServices(
		db.Neo4jDriver,
		commerceStore,
		status,
		settings,
		auditService,
		util.NewNonceService(config.GetDuration("redis.nonceTTL")),
		util.NewValidationUtil(),
		util.NewCacheService(),
		notificationService,
		eventBus,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	controllers := controller.InitializeControllers(services)

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("auth.jwtSecret is empty; bearer tokens will be rejected")
	}

	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(
		controllers,
		[]byte(cfg.Auth.JWTSecret),
		cfg.Auth.SessionCookie,
		cfg.RateLimit.Requests,
		config.GetDuration("ratelimit.window"),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.Bool("commerceAvailable", status.CommerceAvailable))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	cancel()
	eventBus.Wait()
	logger.Info("Server exiting")
}

// openCommerce connects to the commerce extension's store. When it cannot be
// opened or its tables are missing, protection fails open and admins are told.
func openCommerce(ctx context.Context, cc config.CommerceConfiguration, notifier *util.NotificationService) (service.CommerceStore, util.DependencyStatus) {
	err := db.InitCommerceDB(ctx, cc.DSN)
	if err == nil {
		err = commerce.Detect(ctx, db.CommerceDB)
	}
	if err != nil {
		logger.Warn("Commerce extension not detected; protection disabled", zap.Error(err))
		if nerr := notifier.NotifyAdmins(ctx, util.MissingDependencyMessage); nerr != nil {
			logger.Error("Failed to notify admins", zap.Error(nerr))
		}
		return commerce.UnavailableStore{}, util.DependencyStatus{CommerceAvailable: false}
	}

	return commerce.NewSQLStore(db.CommerceDB, cc.ProductBaseURL), util.DependencyStatus{CommerceAvailable: true}
}
