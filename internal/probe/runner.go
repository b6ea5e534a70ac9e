package probe

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run executes a probe against cfg.BaseURL and writes the summary to out.
// Request failures and invariant violations are reported in the Summary;
// the error is reserved for setup failures and cancellation.
func Run(ctx context.Context, cfg Config, out io.Writer) (*Summary, error) {
	log := logger.Named("probe")
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	sum := &Summary{
		RunID:     uuid.NewString(),
		Seed:      cfg.Seed,
		Requests:  cfg.Requests,
		StartTime: time.Now(),
	}
	log.Info(ctx, "starting probe",
		logger.String("run_id", sum.RunID),
		logger.String("url", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Any("seed", cfg.Seed))

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	stats, err := client.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	opts, err := client.Facets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch facets: %w", err)
	}

	gen := NewGenerator(cfg.Seed, opts)
	selections := make([]model.Selection, cfg.Requests)
	for i := range selections {
		selections[i] = gen.Next()
	}

	var mu sync.Mutex
	record := func(resp Response, vs []Violation, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			sum.Failed++
			log.Warn(ctx, "update failed", logger.Error(err))
			return
		}
		sum.Succeeded++
		if resp.TotalCount == 0 {
			sum.Empty++
		}
		sum.Violations = append(sum.Violations, vs...)
		if cfg.Verbose {
			for _, v := range vs {
				log.Warn(ctx, "invariant violated",
					logger.String("rule", string(v.Rule)),
					logger.String("detail", v.Detail))
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, sel := range selections {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			resp, err := client.Update(gctx, sel)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				record(resp, nil, err)
				return nil
			}
			vs := Verify(sel, resp, stats.CountLabel)
			if i%queryFormEvery == 0 {
				got, err := client.Query(gctx, sel)
				switch {
				case err != nil:
					vs = append(vs, Violation{Rule: RuleQueryForm, Selection: sel, Detail: err.Error()})
				case got.TotalCount != resp.TotalCount:
					vs = append(vs, Violation{Rule: RuleQueryForm, Selection: sel,
						Detail: fmt.Sprintf("GET total %d, POST total %d", got.TotalCount, resp.TotalCount)})
				}
			}
			record(resp, vs, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probe interrupted: %w", err)
	}

	sum.Duration = time.Since(sum.StartTime)
	log.Info(ctx, "probe finished",
		logger.String("run_id", sum.RunID),
		logger.Int("succeeded", sum.Succeeded),
		logger.Int("failed", sum.Failed),
		logger.Int("violations", len(sum.Violations)),
		logger.Duration("duration", sum.Duration))

	if out != nil {
		WriteSummary(out, sum)
	}
	return sum, nil
}

// Show runs one update for sel and prints its series.
func Show(ctx context.Context, cfg Config, sel model.Selection, out io.Writer) error {
	client := NewClient(cfg.BaseURL, cfg.Timeout)
	resp, err := client.Update(ctx, sel)
	if err != nil {
		return err
	}
	WriteUpdate(out, resp)
	return nil
}
