package studyservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/claralima1/Planner/internal/api"
	"github.com/claralima1/Planner/internal/config"
	"github.com/claralima1/Planner/internal/factory"
	"github.com/claralima1/Planner/internal/health"
	"github.com/claralima1/Planner/internal/logger"
	"github.com/claralima1/Planner/internal/services"
	"github.com/claralima1/Planner/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Run starts the study service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("study-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	zerolog.SetGlobalLevel(cfg.Level())

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Study service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	ln, err := net.Listen("tcp", cfg.GetHTTPAddr())
	if err != nil {
		log.Error().Stack().Err(err).Msg("listen failed")
		return err
	}
	return Serve(ctx, cfg, log, ln)
}

// Serve runs the service on ln until ctx is cancelled or the server fails.
// ln is closed on return.
func Serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, ln net.Listener) error {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		_ = ln.Close()
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer closeStore(st, log)

	// Start health checkers and block startup until the store reports healthy
	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	if err := health.WaitUntilHealthy(ctx, svcHealth, cfg.StartupTimeout()); err != nil {
		_ = ln.Close()
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	router := api.NewRouter(services.NewStudyService(st, log), svcHealth.IsHealthy, log)
	server := newHTTPServer(ctx, router)
	errCh := serveHTTP(server, ln, log)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// startHealthCheckers starts the store checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	interval := cfg.HealthInterval()
	if interval <= 0 {
		interval = 30 * time.Second
	}

	storeChecker := store.NewStoreHealthChecker(st, log, cfg.HealthProbeTimeout())
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, startupPoll(interval))
	return svcHealth
}

// startupPoll lets the aggregator notice the first store probe quickly
// instead of waiting a full interval.
func startupPoll(interval time.Duration) time.Duration {
	if interval > time.Second {
		return time.Second
	}
	return interval
}

func newHTTPServer(ctx context.Context, handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, ln net.Listener, log zerolog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("HTTP server starting")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
		}
	}()
	return errCh
}

func closeStore(st store.Store, log zerolog.Logger) {
	if c, ok := st.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("store close failed")
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
