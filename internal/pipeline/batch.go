package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clarifycoder/internal/record"
)

// BatchResult bundles everything a batch run produced.
type BatchResult struct {
	Outcomes []Outcome
	Records  []MetricsRecord
	Metrics  Metrics
}

// Batch runs many prompts through one pipeline and aggregates the results.
// With Workers > 1 prompts run concurrently; the sandbox stages scratch
// files in per-evaluation directories so parallel runs do not collide.
type Batch struct {
	pipeline *Pipeline
	recorder record.Recorder
	logger   *zap.Logger
	workers  int
	seed     int64
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithWorkers sets the number of concurrent prompt runners.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithBatchRecorder sets where the aggregate record is written.
func WithBatchRecorder(r record.Recorder) BatchOption {
	return func(b *Batch) { b.recorder = r }
}

// WithBatchLogger sets the structured logger.
func WithBatchLogger(l *zap.Logger) BatchOption {
	return func(b *Batch) { b.logger = l }
}

// WithSeed tags the aggregate record with the sampling seed used to pick
// the prompts.
func WithSeed(seed int64) BatchOption {
	return func(b *Batch) { b.seed = seed }
}

// NewBatch creates a batch driver over an assembled pipeline.
func NewBatch(p *Pipeline, opts ...BatchOption) *Batch {
	b := &Batch{
		pipeline: p,
		recorder: record.Nop{},
		logger:   zap.NewNop(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run processes every prompt and returns the aggregate. Individual prompt
// failures become their verdicts; only infrastructure errors abort the
// batch. Prompts that pause for answers are excluded from the metrics.
func (b *Batch) Run(ctx context.Context, prompts []string) (BatchResult, error) {
	outcomes := make([]Outcome, len(prompts))

	if b.workers <= 1 {
		for i, prompt := range prompts {
			out, err := b.pipeline.RunPrompt(ctx, prompt, nil)
			if err != nil {
				return BatchResult{}, fmt.Errorf("prompt %d: %w", i, err)
			}
			outcomes[i] = out
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.workers)
		for i, prompt := range prompts {
			i, prompt := i, prompt
			g.Go(func() error {
				out, err := b.pipeline.RunPrompt(gctx, prompt, nil)
				if err != nil {
					return fmt.Errorf("prompt %d: %w", i, err)
				}
				outcomes[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return BatchResult{}, err
		}
	}

	var records []MetricsRecord
	for _, out := range outcomes {
		if out.State != StateDone {
			b.logger.Warn("prompt paused for answers, excluded from metrics",
				zap.String("prompt", out.Prompt))
			continue
		}
		records = append(records, MetricsRecord{
			Ambiguous:       out.Clarification.Ambiguous(),
			Status:          out.Verdict.Status,
			RepairAttempted: out.RepairAttempted,
		})
	}

	metrics := Aggregate(records)
	if err := b.recorder.Batch(record.BatchRecord{
		Total:     metrics.Total,
		Metrics:   metrics.Named(),
		Breakdown: metrics.Breakdown,
		Seed:      b.seed,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		b.logger.Warn("aggregate record write failed", zap.Error(err))
	}

	b.logger.Info("batch finished",
		zap.Int("prompts", len(prompts)),
		zap.Int("scored", metrics.Total),
		zap.Float64("coverage", metrics.Coverage))

	return BatchResult{Outcomes: outcomes, Records: records, Metrics: metrics}, nil
}
