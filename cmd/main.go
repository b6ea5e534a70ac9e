package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/okian/sisu/internal/adapters/http/api"
	"github.com/okian/sisu/internal/adapters/http/site"
	"github.com/okian/sisu/internal/adapters/http/swagger"
	app "github.com/okian/sisu/internal/app"
	"github.com/okian/sisu/internal/config"
	"github.com/okian/sisu/internal/domain/dataset"
	"github.com/okian/sisu/pkg/logger"
	"github.com/okian/sisu/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

const rowBucketCount = 12

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't configured yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg); err != nil {
		log.Error(ctx, "dashboard failed", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run loads the dataset, serves HTTP until ctx is cancelled and shuts down.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	start := time.Now()
	ds, err := loadDataset(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		log.Info(ctx, "shutdown requested during dataset load")
		return nil
	}
	if err != nil {
		return err
	}
	initMetrics(cfg, ds.Len())
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Microseconds()) / 1000)

	svc, err := newService(cfg, ds)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	start := time.Now()
	ds, err := dataset.Load(ctx, cfg.DatasetPath,
		dataset.WithDelimiter(cfg.DelimiterRune()),
		dataset.WithDecimalSeparator(cfg.DecimalRune()),
		dataset.WithEncoding(cfg.Encoding),
		dataset.WithColumns(dataset.Columns{
			Course:      cfg.ColumnCourse,
			State:       cfg.ColumnState,
			Institution: cfg.ColumnInstitution,
			Seats:       cfg.ColumnSeats,
			Score:       cfg.ColumnScore,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", cfg.DatasetPath, err)
	}
	stats := ds.Stats()
	logger.Get().Info(ctx, "dataset loaded",
		logger.String("path", cfg.DatasetPath),
		logger.Int("rows", stats.Rows),
		logger.Int("invalid_scores", stats.InvalidScores),
		logger.Int("invalid_seats", stats.InvalidSeats),
		logger.Duration("elapsed", time.Since(start)))
	return ds, nil
}

// initMetrics rebuilds the metrics registry for this dataset.
func initMetrics(cfg *config.Config, rows int) {
	opts := []metrics.Option{
		metrics.WithEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(cfg.MetricsRefresh()),
		metrics.WithConstLabels(map[string]string{"dataset": filepath.Base(cfg.DatasetPath)}),
	}
	if rows > 1 {
		buckets := append([]float64{0}, prometheus.ExponentialBucketsRange(1, float64(rows), rowBucketCount)...)
		opts = append(opts, metrics.WithRowBuckets(buckets))
	}
	metrics.Init(opts...)
}

func newService(cfg *config.Config, ds *dataset.Dataset) (*app.Service, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %w", config.ErrInvalidConfig, cfg.Locale, err)
	}
	return app.New(ds,
		app.WithLogger(logger.Named("service")),
		app.WithCountLabel(cfg.CountLabel),
		app.WithLocale(tag),
		app.WithDecimalSeparator(cfg.DecimalRune()),
		app.WithChartSize(cfg.ChartWidth, cfg.ChartHeight),
		app.WithSearchLimit(cfg.SearchLimit),
	), nil
}

func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}
