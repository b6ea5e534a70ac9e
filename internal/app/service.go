// Package service provides the dashboard service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/sisu/internal/domain/aggregate"
	"github.com/okian/sisu/internal/domain/dataset"
	"github.com/okian/sisu/internal/domain/facets"
	"github.com/okian/sisu/internal/domain/filter"
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
	"github.com/okian/sisu/internal/domain/types"
	"github.com/okian/sisu/pkg/logger"
	"github.com/okian/sisu/pkg/metrics"
	"golang.org/x/text/language"
)

// Service owns the immutable dataset and its facet index and runs the
// filter, aggregate and present pipeline for each selection.
type Service struct {
	mu sync.RWMutex

	// Read-only after New
	ds     *dataset.Dataset
	facets facets.Set
	index  *facets.Index

	// Configuration
	present     present.Options
	searchLimit int

	// Counters
	updates      atomic.Int64
	emptyUpdates atomic.Int64

	// State
	started bool
	stopCh  chan struct{}
	done    chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCountLabel sets the prefix of the count label.
func WithCountLabel(label string) Option {
	return func(s *Service) {
		if label != "" {
			s.present.CountLabel = label
		}
	}
}

// WithLocale sets the locale used to group digits of counts.
func WithLocale(tag language.Tag) Option {
	return func(s *Service) {
		s.present.Locale = tag
	}
}

// WithDecimalSeparator sets the decimal mark of scores in hover text.
func WithDecimalSeparator(r rune) Option {
	return func(s *Service) {
		if r != 0 {
			s.present.DecimalSeparator = r
		}
	}
}

// WithChartSize sets the default rendered chart size in pixels.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.present.Width = width
			s.present.Height = height
		}
	}
}

// WithSearchLimit caps facet prefix search results.
func WithSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// New extracts facets from ds, builds the search index and returns a
// Service ready for Start.
func New(ds *dataset.Dataset, opts ...Option) *Service {
	s := &Service{
		ds:          ds,
		present:     present.DefaultOptions(),
		searchLimit: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.facets = facets.Extract(ds)
	s.index = facets.NewIndex(s.facets)
	return s
}

// Start publishes dataset gauges and begins refreshing system metrics.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	stats := s.ds.Stats()
	metrics.UpdateDatasetRows(stats.Rows)
	metrics.UpdateInvalidCells("score", stats.InvalidScores)
	metrics.UpdateInvalidCells("seats", stats.InvalidSeats)
	for _, f := range model.Facets() {
		metrics.UpdateFacetCardinality(string(f), s.facets.Len(f))
	}

	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	go refreshSystemMetrics(metrics.RefreshInterval(), s.stopCh, s.done)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rows", stats.Rows),
		logger.Int("courses", len(s.facets.Courses)),
		logger.Int("states", len(s.facets.States)),
		logger.Int("institutions", len(s.facets.Institutions)),
	)
	return nil
}

// Stop ends the metrics loop. The service keeps answering reads.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	close(s.stopCh)
	<-s.done

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped",
		logger.Int64("updates", s.updates.Load()),
	)
}

func refreshSystemMetrics(every time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var lastPauseTotal uint64
	var lastNumGC uint32
	sample := func() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		metrics.UpdateSystemMemoryUsage(ms.HeapAlloc)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		if n := ms.NumGC - lastNumGC; n > 0 {
			avg := float64(ms.PauseTotalNs-lastPauseTotal) / float64(n) / float64(time.Millisecond)
			metrics.RecordSystemGCPauseTime(avg)
		}
		lastPauseTotal, lastNumGC = ms.PauseTotalNs, ms.NumGC
	}

	sample()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			sample()
		}
	}
}

// Update runs filter, aggregate and present for one selection. It is the
// single function the page calls whenever a dropdown changes.
func (s *Service) Update(ctx context.Context, sel model.Selection) (present.Update, error) {
	if err := ctx.Err(); err != nil {
		return present.Update{}, err
	}
	start := time.Now()
	view, u := s.compute(sel)

	elapsed := time.Since(start)
	s.updates.Add(1)
	metrics.RecordUpdate(float64(elapsed.Microseconds()) / 1000)
	metrics.RecordMatchedRows(view.Len())
	for _, f := range model.Facets() {
		metrics.RecordSelectionSize(string(f), len(sel.Get(f)))
	}
	if view.Empty() {
		s.emptyUpdates.Add(1)
		metrics.RecordEmptyResult(string(view.Reason()))
	}

	s.logger.Debug(ctx, "update",
		logger.Strings("course", sel.Course),
		logger.Strings("state", sel.State),
		logger.Strings("institution", sel.Institution),
		logger.Int("rows", view.Len()),
		logger.Duration("elapsed", elapsed),
	)
	return u, nil
}

func (s *Service) compute(sel model.Selection) (filter.View, present.Update) {
	view := filter.Apply(s.ds, sel)
	return view, present.Build(aggregate.Compute(view), s.present)
}

// Facets returns the dropdown values of every facet.
func (s *Service) Facets(_ context.Context) facets.Set {
	return s.facets
}

// Search returns facet values starting with prefix, ignoring case and
// accents. limit is clamped to the configured maximum.
func (s *Service) Search(_ context.Context, f model.Facet, prefix string, limit int) ([]string, error) {
	if limit <= 0 || limit > s.searchLimit {
		limit = s.searchLimit
	}
	values, err := s.index.Search(f, prefix, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordFacetSearch(string(f))
	return values, nil
}

// RenderChart computes the charts for sel and writes one of them to w. It
// does not count as an update.
func (s *Service) RenderChart(ctx context.Context, sel model.Selection, id present.ChartID, format present.Format, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, u := s.compute(sel)
	c, ok := u.Chart(id)
	if !ok {
		return fmt.Errorf("%w: %q", present.ErrUnknownChart, id)
	}
	if err := present.Render(w, c, format, s.present); err != nil {
		if !errors.Is(err, present.ErrEmptyChart) {
			metrics.RecordChartError(string(id))
		}
		return err
	}
	metrics.RecordChartRender(string(id), string(format))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	ds := s.ds.Stats()
	return types.Stats{
		Started:       started,
		Rows:          ds.Rows,
		InvalidScores: ds.InvalidScores,
		InvalidSeats:  ds.InvalidSeats,
		Courses:       len(s.facets.Courses),
		States:        len(s.facets.States),
		Institutions:  len(s.facets.Institutions),
		Updates:       s.updates.Load(),
		EmptyUpdates:  s.emptyUpdates.Load(),
		CountLabel:    s.present.CountLabel,
		Locale:        s.present.Locale.String(),
	}
}
