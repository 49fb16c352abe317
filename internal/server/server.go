// Package server boots the HTTP API: config, logging sinks, the database
// manager, storage disks, middleware, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apachemart/app/routes"
	"apachemart/config"
	"apachemart/pkg/database"
	"apachemart/pkg/logger"
	"apachemart/pkg/metrics"
	"apachemart/pkg/middleware"
	"apachemart/pkg/reqid"
	"apachemart/pkg/router"
	"apachemart/pkg/storage"
)

// NewRouter builds the full middleware chain and API routes around mgr.
// Split from Start so tests can drive the handler with httptest.
func NewRouter(mgr *database.Manager) *router.Router {
	r := router.New()

	// Global middleware stack (outermost to innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS              — set CORS headers
	//  6. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus /metrics endpoint: no auth, no rate limit.
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if mgr.IsOnline() {
			w.Write([]byte(`{"status":"ok","database":"online"}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded","database":"offline"}`))
	})

	routes.RegisterAPI(r, mgr)
	return r
}

// Start runs the API server until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup()
	defer logger.Shutdown()

	storage.Connect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := database.NewManager()
	if err := mgr.Initialize(ctx); err != nil {
		return err
	}
	defer mgr.Close()
	syncOnlineGauge(ctx, mgr, time.Second)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           NewRouter(mgr).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// syncOnlineGauge mirrors the manager's online flag into Prometheus every
// interval until ctx is cancelled.
func syncOnlineGauge(ctx context.Context, mgr *database.Manager, interval time.Duration) {
	set := func() {
		if mgr.IsOnline() {
			metrics.DatabaseOnline.Set(1)
		} else {
			metrics.DatabaseOnline.Set(0)
		}
	}
	set()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				set()
			}
		}
	}()
}
