package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rohit6800/UniStay/internal/assistant"
	"github.com/Rohit6800/UniStay/internal/cache"
	"github.com/Rohit6800/UniStay/internal/config"
	"github.com/Rohit6800/UniStay/internal/database"
	"github.com/Rohit6800/UniStay/internal/handlers"
	"github.com/Rohit6800/UniStay/internal/metrics"
	"github.com/Rohit6800/UniStay/internal/router"
	"github.com/Rohit6800/UniStay/internal/service"
	"github.com/Rohit6800/UniStay/internal/session"
	"github.com/Rohit6800/UniStay/internal/websocket"
	"github.com/Rohit6800/UniStay/internal/workflows"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := database.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("connected to database")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Sessions and the listing cache live in Redis when it is configured
	var (
		redisClient *redis.Client
		store       session.Store = session.NewMemoryStore()
		listings    service.ListingCache
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewClient(ctx, cache.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient)
		listings = cache.NewListings(redisClient, cfg.Redis.ListingsTTL)
		slog.Info("connected to redis", "addr", cfg.Redis.Addr)
	} else {
		slog.Warn("REDIS_ADDR not set, sessions are kept in memory and listings are not cached")
	}

	var gen assistant.Generator
	if cfg.Gemini.APIKey != "" {
		g, err := assistant.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		gen = g
	} else {
		slog.Warn("GEMINI_API_KEY not set, assistant answers with fallbacks")
	}
	advisor := assistant.New(gen, func(kind string, outcome assistant.Outcome) {
		m.AssistantRequests.WithLabelValues(kind, string(outcome)).Inc()
	})

	hub := websocket.NewHub()
	go hub.Run(ctx)
	notifiers := []service.Notifier{hub}

	if cfg.Temporal.HostPort != "" {
		temporalClient, err := client.Dial(client.Options{
			HostPort: cfg.Temporal.HostPort,
			Logger:   slog.Default(),
		})
		if err != nil {
			slog.Error("failed to create temporal client", "error", err)
			os.Exit(1)
		}
		defer temporalClient.Close()
		notifiers = append(notifiers, workflows.NewStarter(temporalClient, cfg.Temporal.TaskQueue))
		slog.Info("connected to temporal", "host", cfg.Temporal.HostPort)
	}

	marketplace := service.NewMarketplaceService(service.Deps{
		Store:     database.NewRepository(pool),
		Cache:     listings,
		Sessions:  session.NewManager(store, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Assistant: advisor,
		Notifiers: notifiers,
		Metrics:   m,
	})

	h := handlers.NewHandler(marketplace, hub)
	r := router.SetupRouter(h, router.Options{
		Auth:           marketplace,
		Redis:          redisClient,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server stopped")
}
