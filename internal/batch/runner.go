package batch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
	"github.com/rohmanhakim/site-word-scanner/internal/storage"
	"golang.org/x/sync/errgroup"
)

/*
Responsibilities

- Run one independent domain scan per seed
- Bound the number of scans running at the same time
- Persist every successful scan through the storage sink
- Report outcomes in seed order, whatever the completion order

Scans share nothing: each seed gets its own executor, so frontier and
visited state never leak between domains. A failed scan or a failed write
is reported in its Outcome and never stops the other scans.
*/

// ScanExecutor runs a single domain scan. scheduler.Scheduler satisfies it.
type ScanExecutor interface {
	ExecuteScan(ctx context.Context, seed string, keyword string) result.ScanResult
}

// ExecutorFactory builds a fresh executor for one seed.
type ExecutorFactory func(seed string) ScanExecutor

type Outcome struct {
	Seed   string
	Result result.ScanResult
	// Skipped is set when the batch was cancelled before this scan started.
	Skipped bool
	// Written is nil when nothing was persisted.
	Written  *storage.WriteResult
	WriteErr error
}

type Runner struct {
	newExecutor  ExecutorFactory
	sink         storage.Sink
	outputDir    string
	outputFormat config.OutputFormat
	parallel     int
	logger       *slog.Logger
}

func NewRunner(
	cfg config.Config,
	newExecutor ExecutorFactory,
	sink storage.Sink,
	logger *slog.Logger,
) Runner {
	if logger == nil {
		logger = slog.Default()
	}
	parallel := cfg.ParallelScans()
	if parallel < 1 {
		parallel = config.DefaultParallelScans
	}
	return Runner{
		newExecutor:  newExecutor,
		sink:         sink,
		outputDir:    cfg.OutputDir(),
		outputFormat: cfg.OutputFormat(),
		parallel:     parallel,
		logger:       logger,
	}
}

// Run scans every seed with at most parallel scans in flight and returns one
// Outcome per seed, in input order. Cancelling ctx stops new scans from
// starting; running scans stop between pages and are still written. The
// returned error is the context error when the batch was cancelled.
func (r *Runner) Run(ctx context.Context, seeds []string, keyword string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(seeds))
	var started atomic.Int64
	batchStart := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(r.parallel)

	for i, seed := range seeds {
		i, seed := i, seed
		outcomes[i].Seed = seed
		if ctx.Err() != nil {
			outcomes[i].Skipped = true
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				outcomes[i].Skipped = true
				return nil
			}
			remaining := len(seeds) - int(started.Add(1))
			r.logger.Info("start domain scan", "seed", seed, "remaining", remaining)

			outcomes[i] = r.scanOne(ctx, seed, keyword)
			return nil
		})
	}
	// Scans never return an error, failures live in the outcomes.
	_ = g.Wait()

	r.logger.Info("batch finished",
		"seeds", len(seeds),
		"started", started.Load(),
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)
	return outcomes, ctx.Err()
}

func (r *Runner) scanOne(ctx context.Context, seed string, keyword string) Outcome {
	executor := r.newExecutor(seed)
	scan := executor.ExecuteScan(ctx, seed, keyword)
	outcome := Outcome{Seed: seed, Result: scan}

	if !scan.Success {
		r.logger.Warn("domain scan failed", "seed", seed, "error", scan.Error)
		return outcome
	}

	written, err := r.sink.Write(r.outputDir, scan, r.outputFormat)
	if err != nil {
		outcome.WriteErr = err
		return outcome
	}
	outcome.Written = &written
	return outcome
}
