package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/config"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/database"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/handler"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/repository"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/router"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/service"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/storage"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/token"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting e-commerce API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	tokens := token.NewManager(cfg.JWT)

	// Product images go to S3 when configured; uploads are rejected
	// otherwise.
	var images storage.ImageStore
	if cfg.S3.Enabled {
		images, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 image store, image uploads disabled")
		}
	} else {
		logger.Info().Msg("image uploads disabled (S3 not configured)")
	}

	// Services
	authService := service.NewAuthService(userRepo, tokens, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, logger)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Product:  handler.NewProductHandler(productService, images, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}

	engine := router.New(handlers, tokens, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server stopped")
	}

	return nil
}
