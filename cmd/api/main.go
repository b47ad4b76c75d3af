package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flower-storefront/internal/cache"
	"flower-storefront/internal/client"
	"flower-storefront/internal/config"
	"flower-storefront/internal/repository"
	"flower-storefront/internal/server"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger("storefront", &cfg.Log, os.Stdout)

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		logger.Fatalf("init database: %v", err)
	}

	rdb, err := client.InitRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Warnf("redis unavailable, catalog cache disabled: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	storeClient := client.NewStoreClient(&cfg.Backend)

	credentialRepo := repository.NewCredentialRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	cartStore := store.NewCartStore()
	orderStore := store.NewOrderStore()
	messageStore := store.NewMessageStore(cfg.Messages.TTL)
	catalog := cache.NewCatalogCache(rdb, cfg.Redis.TTL, logger)

	authService := service.NewAuthService(storeClient, credentialRepo, logger)

	srv := server.NewServer(server.Services{
		Cart:      service.NewCartService(storeClient, cartStore, logger),
		Checkout:  service.NewCheckoutService(storeClient, cartStore, receiptRepo, logger),
		Orders:    service.NewOrderService(storeClient, authService, orderStore, logger),
		Products:  service.NewProductService(storeClient, authService, catalog, logger),
		Auth:      authService,
		CartStore: cartStore,
		Messages:  messageStore,
	}, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Infof("Starting HTTP server on %s (%s)", serverAddr, cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}
}
