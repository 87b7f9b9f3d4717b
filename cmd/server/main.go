package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appchannel "github.com/commerce/backend/internal/application/channel"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/commerce/backend/internal/infrastructure/event"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/infrastructure/persistence"
	"github.com/commerce/backend/internal/interfaces/http/handler"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	serializer := event.NewSerializer()
	scope := persistence.NewGormTransactionScope(db.DB, serializer)
	productRepo := persistence.NewGormProductRepository(db.DB)
	outboxRepo := persistence.NewGormOutboxRepository(db.DB)

	bus := event.NewInMemoryEventBus(log)
	if err := bus.Start(context.Background()); err != nil {
		return err
	}
	defer bus.Stop(context.Background())

	var processor *event.OutboxProcessor
	if cfg.Event.ProcessorEnabled {
		processor = event.NewOutboxProcessor(outboxRepo, bus, serializer, cfg.Event, log)
		processor.Start(context.Background())
		defer processor.Stop()
	}

	channelService := appchannel.NewSalesChannelService(scope, productRepo, log)

	// Every store gets a default channel on boot
	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := channelService.CreateDefault(bootstrapCtx); err != nil {
		return fmt.Errorf("failed to ensure default sales channel: %w", err)
	}
	log.Info("Default sales channel ensured")

	router := setupRouter(cfg, log, db, channelService)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}

func setupRouter(
	cfg *config.Config,
	log *zap.Logger,
	db *persistence.Database,
	channelService *appchannel.SalesChannelService,
) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidations(); err != nil {
		log.Warn("Failed to register custom validations", zap.Error(err))
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))

	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)
	channelHandler := handler.NewSalesChannelHandler(channelService)

	router.GET("/health", systemHandler.Health)

	router.POST("/sales-channels", channelHandler.Create)
	router.GET("/sales-channels", channelHandler.List)
	router.GET("/sales-channels/:id", channelHandler.Retrieve)
	router.PUT("/sales-channels/:id", channelHandler.Update)
	router.DELETE("/sales-channels/:id", channelHandler.Delete)
	router.POST("/sales-channels/:id/products/batch", channelHandler.AddProducts)

	return router
}
