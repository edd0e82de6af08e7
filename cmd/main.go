package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/okian/scoresheet/internal/adapters/http/api"
	"github.com/okian/scoresheet/internal/adapters/http/site"
	"github.com/okian/scoresheet/internal/adapters/http/swagger"
	app "github.com/okian/scoresheet/internal/app"
	"github.com/okian/scoresheet/internal/config"
	"github.com/okian/scoresheet/internal/domain/contrast"
	"github.com/okian/scoresheet/internal/report/scoresheet"
	"github.com/okian/scoresheet/pkg/logger"
	"github.com/okian/scoresheet/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeoutSlack     = 5 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// defaults -> optional file -> env
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, log)
	if err != nil {
		log.Error(ctx, "invalid service configuration", logger.Error(err))
		return
	}
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.RenderTimeout() + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newService builds the report service from cfg.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	version, err := scoresheet.ParseVersion(cfg.TemplateVersion)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, crerr.Wrapf(err, "timezone %q", cfg.Timezone)
	}
	neutral, err := contrast.ParseHex(cfg.NeutralGuestColor)
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log),
		app.WithTemplateVersion(version),
		app.WithLocation(loc),
		app.WithArchiveWorkers(cfg.ArchiveWorkers),
		app.WithMaxMatches(cfg.MaxMatchesPerDivision),
		app.WithNeutralGuestColor(neutral),
	), nil
}

// newHandler registers the landing page, docs and report routes and wraps
// them with the request id and timeout middleware.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	server := api.NewServer(svc, svc,
		api.WithMaxRequestBytes(cfg.MaxRequestBytes),
		api.WithRenderTimeout(cfg.RenderTimeout()),
		api.WithLogger(log),
	)
	server.Register(ctx, mux)
	return server.Handler(mux)
}

// startSystemMetricsUpdater samples runtime gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SampleSystem()
		}
	}
}
