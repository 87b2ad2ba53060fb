package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodcourt/shopfront/internal/api/handlers"
	"github.com/foodcourt/shopfront/internal/api/middleware"
	"github.com/foodcourt/shopfront/internal/backend"
	"github.com/foodcourt/shopfront/internal/config"
	"github.com/foodcourt/shopfront/internal/health"
	"github.com/foodcourt/shopfront/internal/metrics"
	service "github.com/foodcourt/shopfront/internal/services"
	"github.com/foodcourt/shopfront/internal/store"
	"github.com/foodcourt/shopfront/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Session store: Redis when configured, in-memory otherwise
	var sessionStore store.Store

	if cfg.Redis.Addr != "" {
		redisClient, err := store.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", "error", err.Error())
			os.Exit(1)
		}

		sessionStore = store.NewRedisStore(redisClient, cfg.Session.TTL)
		slog.Info("✅ Using redis session store", slog.String("addr", cfg.Redis.Addr))
	} else {
		sessionStore = store.NewMemoryStore(cfg.Session.TTL)
		slog.Info("✅ Using in-memory session store")
	}

	defer func() {
		if err := sessionStore.Close(); err != nil {
			slog.Error("⚠️ Error closing session store", slog.String("error", err.Error()))
		}
	}()

	backendClient := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	sessionService := service.NewSessionService(sessionStore, backendClient)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	voucherLimiter := middleware.RateLimit(cfg.RateConfig.VoucherRPS, cfg.RateConfig.VoucherBurst)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/sessions", sessionHandler.CreateSession())
	routerMux.HandleFunc("GET /api/v1/sessions/{id}", sessionHandler.GetSession())
	routerMux.HandleFunc("PUT /api/v1/sessions/{id}/tenant", sessionHandler.SelectTenant())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/cart/items", sessionHandler.AddItem())
	routerMux.HandleFunc("DELETE /api/v1/sessions/{id}/cart/items/{productID}", sessionHandler.RemoveItem())
	routerMux.Handle("POST /api/v1/sessions/{id}/vouchers", voucherLimiter(sessionHandler.ApplyVoucher()))
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/checkout", sessionHandler.Checkout())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "shopfront")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr), slog.String("env", cfg.Env))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
