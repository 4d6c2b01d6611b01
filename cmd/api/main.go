package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crypto-dashboard-service/internal/cache"
	"crypto-dashboard-service/internal/client/coingecko"
	"crypto-dashboard-service/internal/config"
	"crypto-dashboard-service/internal/handler"
	"crypto-dashboard-service/internal/logger"
	"crypto-dashboard-service/internal/metrics"
	"crypto-dashboard-service/internal/middleware"
	"crypto-dashboard-service/internal/model"
	"crypto-dashboard-service/internal/prefs"
	"crypto-dashboard-service/internal/ratelimit"
	"crypto-dashboard-service/internal/server"
	"crypto-dashboard-service/internal/service"
	"crypto-dashboard-service/internal/timerange"
	"crypto-dashboard-service/internal/ws"
)

// @title           Crypto Dashboard Service API
// @version         1.0
// @description     Backend for the cryptocurrency price dashboard: summary, chart and table payloads over cached market data.
// @BasePath        /
func main() {
	log.Println("Starting Crypto Dashboard Service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Restrict the dashboard to the configured coin set
	if err := model.InitializeSupportedCoins(cfg.App.SupportedCoins); err != nil {
		log.Fatalf("Failed to initialize supported coins: %v", err)
	}

	// Configure structured logging
	logger.SetLogLevel(cfg.App.LogLevel)
	structuredLogger := logger.GetLogger()

	ctx := logger.WithRequestID(context.Background())

	structuredLogger.WithField("coins", cfg.App.SupportedCoins).Info("Initializing service components")

	// Upstream market data client
	client := coingecko.NewClientWithConfig(cfg.CoinGecko)

	// Startup connectivity probe; the service still starts on failure and
	// surfaces fetch errors per request.
	if err := client.Ping(ctx); err != nil {
		structuredLogger.WithField("error", err.Error()).Warn("Upstream connectivity probe failed")
	} else {
		structuredLogger.Info("Upstream market data API reachable")
	}

	// Result cache
	seriesCache, err := cache.NewCacheFromConfig(cfg.Cache.Backend, cache.Config{
		TTL:           cfg.Cache.TTL,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	})
	if err != nil {
		structuredLogger.WithField("error", err.Error()).Fatal("Failed to create cache")
	}
	defer seriesCache.Close()

	structuredLogger.WithField("backend", cfg.Cache.Backend).Info("Cache initialized successfully")
	metrics.SetServiceInfo("1.0.0", cfg.Cache.Backend)

	// Theme preference store
	themeStore, err := prefs.NewStoreFromConfig(cfg.App.PrefsBackend, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		structuredLogger.WithField("error", err.Error()).Fatal("Failed to create preferences store")
	}
	defer themeStore.Close()

	// Live-update hub for websocket subscribers
	hub := ws.NewHub()
	defer hub.Close()

	// Dashboard service and HTTP surface
	dashboardService := service.NewDashboardService(client, seriesCache, hub, nil)
	resolver := timerange.NewResolver(nil)

	dashboardHandler := handler.NewDashboardHandler(handler.Options{
		Service:     dashboardService,
		Resolver:    resolver,
		Themes:      themeStore,
		WSHandler:   hub.ServeWS,
		DefaultCoin: cfg.App.DefaultCoin,
		DefaultDays: cfg.App.DefaultRangeDays,
	})

	rateLimiter := ratelimit.NewMiddleware(cfg.RateLimit)

	httpHandler := handler.BuildHandler(
		dashboardHandler,
		rateLimiter.Handler,
		middleware.LoggingMiddleware,
		middleware.MetricsMiddleware,
	)

	srv := server.New(httpHandler, cfg.Server.Port)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.WithField("error", err.Error()).Fatal("Failed to start server")
		}
	}()

	// Pre-warm the cache with the default dashboard view
	warmupQuery, err := resolver.Preset(cfg.App.DefaultCoin, cfg.App.DefaultRangeDays)
	if err == nil {
		if _, err := dashboardService.UpdateDashboard(ctx, warmupQuery); err != nil {
			structuredLogger.WithField("error", err.Error()).Warn("Failed to pre-warm dashboard")
		} else {
			structuredLogger.Info("Dashboard pre-warmed successfully")
		}
	}

	structuredLogger.WithFields(map[string]interface{}{
		"port":          cfg.Server.Port,
		"default_coin":  cfg.App.DefaultCoin,
		"default_days":  cfg.App.DefaultRangeDays,
		"cache_backend": cfg.Cache.Backend,
	}).Info("Crypto Dashboard Service is running")

	log.Printf("Crypto Dashboard Service is running on http://localhost:%s", cfg.Server.Port)
	log.Printf("Dashboard endpoint available at: http://localhost:%s/api/v1/dashboard", cfg.Server.Port)
	log.Printf("Metrics available at: http://localhost:%s/metrics", cfg.Server.Port)
	log.Printf("API docs available at: http://localhost:%s/swagger/", cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		structuredLogger.WithField("error", err.Error()).Fatal("Server forced to shutdown")
	}

	structuredLogger.Info("Server shutdown completed")
}
