// Package worker runs the pipeline over inventory batches.
package worker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opensource-finance/hurricane-autopop/internal/chance"
	"github.com/opensource-finance/hurricane-autopop/internal/domain"
)

// Populator auto-populates one record. *pipeline.Pipeline implements it.
type Populator interface {
	AutoPopulate(ctx context.Context, raw domain.RawRecord, c chance.Chance) (*domain.Assessment, error)
}

// Record is one inventory entry of a batch.
type Record struct {
	// Index is the position in the inventory. It selects the random stream,
	// so results do not depend on scheduling.
	Index  int
	Source string
	Raw    domain.RawRecord
}

// Result is the outcome of one record. Exactly one of Assessment and Err
// is set.
type Result struct {
	Index      int                `json:"index"`
	Source     string             `json:"source,omitempty"`
	Assessment *domain.Assessment `json:"assessment,omitempty"`
	Err        error              `json:"-"`
}

// Sink receives results as they complete. An error from a sink aborts the
// batch. Sinks are called from one goroutine at a time.
type Sink func(ctx context.Context, res Result) error

// Config holds runner configuration.
type Config struct {
	// Workers bounds the number of records in flight.
	Workers int
	// Seed roots every per-record random stream.
	Seed uint64
}

// Runner processes batches with a bounded pool.
type Runner struct {
	populator Populator
	cfg       Config
	logger    *zap.Logger
}

// NewRunner creates a runner. A nil logger selects the global logger.
func NewRunner(p Populator, cfg Config, logger *zap.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Runner{populator: p, cfg: cfg, logger: logger.Named("worker")}
}

// Stats summarizes a finished batch.
type Stats struct {
	RunID      string         `json:"runId"`
	Records    int            `json:"records"`
	Succeeded  int64          `json:"succeeded"`
	Failed     int64          `json:"failed"`
	Classes    map[string]int `json:"classes"`
	DurationMs int64          `json:"durationMs"`
}

// Run processes records and passes each result to sink. A failing record
// never stops the batch; only cancellation of ctx or a sink error does.
func (r *Runner) Run(ctx context.Context, records []Record, sink Sink) (*Stats, error) {
	start := time.Now()
	stats := &Stats{
		RunID:   uuid.New().String(),
		Records: len(records),
		Classes: make(map[string]int),
	}
	log := r.logger.With(zap.String("run_id", stats.RunID))

	log.Info("processing batch",
		zap.Int("records", len(records)),
		zap.Int("workers", r.cfg.Workers),
		zap.Uint64("seed", r.cfg.Seed),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	var (
		succeeded, failed atomic.Int64
		mu                sync.Mutex
	)

	for _, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := Result{Index: rec.Index, Source: rec.Source}
			c := chance.NewSeeded(r.cfg.Seed, uint64(rec.Index))
			res.Assessment, res.Err = r.populator.AutoPopulate(gctx, rec.Raw, c)

			if res.Err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				log.Warn("record failed",
					zap.Int("index", rec.Index),
					zap.String("source", rec.Source),
					zap.Error(res.Err),
				)
			} else {
				succeeded.Add(1)
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Assessment != nil {
				stats.Classes[res.Assessment.Class.String()]++
			}
			if sink == nil {
				return nil
			}
			return sink(gctx, res)
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats.Succeeded = succeeded.Load()
	stats.Failed = failed.Load()
	stats.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		return stats, eris.Wrap(err, "batch processing")
	}

	log.Info("batch complete",
		zap.Int64("succeeded", stats.Succeeded),
		zap.Int64("failed", stats.Failed),
		zap.Int64("duration_ms", stats.DurationMs),
	)
	return stats, nil
}

// Collect returns a sink that keeps every result in inventory order, and a
// function returning them once the batch is done.
func Collect() (Sink, func() []Result) {
	var (
		mu      sync.Mutex
		results []Result
	)
	sink := func(_ context.Context, res Result) error {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
		return nil
	}
	done := func() []Result {
		mu.Lock()
		defer mu.Unlock()
		out := make([]Result, len(results))
		copy(out, results)
		sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
		return out
	}
	return sink, done
}
