package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/registry"
	"github.com/wildfunctions/fourfours/pkg/search"
	"github.com/wildfunctions/fourfours/pkg/strategy"
)

var tracer = otel.Tracer("fourfours.engine")

// Engine runs the exhaustive search for one configuration.
type Engine struct {
	cfg      Config
	catalog  catalog.Catalog
	strategy strategy.Strategy
	logger   *slog.Logger
	progress io.Writer
	metrics  *metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithProgress sets where accepted updates are written as they happen.
func WithProgress(w io.Writer) Option {
	return func(e *Engine) { e.progress = w }
}

// WithRegisterer registers the engine's metrics on reg. Without it the
// metrics go to a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.metrics = newMetrics(reg) }
}

// New creates a new engine from the given config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := catalog.Get(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	s, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		catalog:  c,
		strategy: s,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = newMetrics(prometheus.NewRegistry())
	}
	return e, nil
}

// Run explores the configured search space and returns the final report.
// A canceled context stops the run between prefixes and returns the partial
// report together with the context error.
func (e *Engine) Run(ctx context.Context) (FinalReport, error) {
	ctx, span := tracer.Start(ctx, "engine.Run",
		trace.WithAttributes(
			attribute.String("fourfours.catalog", e.cfg.Catalog),
			attribute.String("fourfours.strategy", e.cfg.Strategy),
			attribute.Int("fourfours.max_depth", e.cfg.MaxDepth),
			attribute.Int("fourfours.target_min", e.cfg.TargetMin),
			attribute.Int("fourfours.target_max", e.cfg.TargetMax),
		),
	)
	defer span.End()

	runID := uuid.NewString()
	labels := prometheus.Labels{"catalog": e.cfg.Catalog, "strategy": e.cfg.Strategy}
	accepted := e.metrics.accepted.With(labels)
	solved := e.metrics.solved.With(labels)

	// Runs under the registry lock, so progress lines are already serialized.
	observer := func(u registry.Update) {
		accepted.Inc()
		solved.Set(float64(u.Found))
		if e.progress != nil && !e.cfg.Quiet {
			WriteProgress(e.progress, u)
		}
	}

	reg, err := registry.New(e.cfg.TargetMin, e.cfg.TargetMax, registry.WithObserver(observer))
	if err != nil {
		return FinalReport{}, fmt.Errorf("create registry: %w", err)
	}

	e.logger.Info("search started",
		slog.String("run_id", runID),
		slog.String("catalog", e.cfg.Catalog),
		slog.String("strategy", e.cfg.Strategy),
		slog.Int("target_min", e.cfg.TargetMin),
		slog.Int("target_max", e.cfg.TargetMax),
		slog.Int("max_depth", e.cfg.MaxDepth),
		slog.Float64("max_magnitude", e.cfg.MaxMagnitude),
		slog.Int("workers", e.cfg.Workers),
	)

	start := time.Now()
	stats, runErr := e.strategy.Explore(ctx, e.catalog, reg, strategy.Options{
		Search: search.Options{
			MaxDepth:     e.cfg.MaxDepth,
			MaxMagnitude: e.cfg.MaxMagnitude,
		},
		Workers: e.cfg.Workers,
	})
	elapsed := time.Since(start)

	offered, acceptedCount := reg.Counts()
	e.metrics.nodes.With(labels).Add(float64(stats.Nodes))
	e.metrics.completed.With(labels).Add(float64(stats.Completed))
	e.metrics.offered.With(labels).Add(float64(offered))
	e.metrics.duration.With(labels).Observe(elapsed.Seconds())

	report := e.buildReport(runID, reg, stats, acceptedCount, elapsed)

	span.SetAttributes(
		attribute.Int("fourfours.found", report.Found),
		attribute.Int64("fourfours.nodes", stats.Nodes),
	)

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		e.logger.Warn("search interrupted",
			slog.String("run_id", runID),
			slog.Int("found", report.Found),
			slog.String("error", runErr.Error()),
		)
		return report, fmt.Errorf("explore: %w", runErr)
	}

	e.logger.Info("search finished",
		slog.String("run_id", runID),
		slog.Int("found", report.Found),
		slog.Int("total", report.Total),
		slog.Int64("nodes", stats.Nodes),
		slog.Int64("completed", stats.Completed),
		slog.Int64("offered", offered),
		slog.Int64("accepted", acceptedCount),
		slog.Duration("elapsed", elapsed),
	)
	return report, nil
}

func (e *Engine) buildReport(runID string, reg *registry.Registry, stats search.Stats, accepted int64, elapsed time.Duration) FinalReport {
	results := make([]TargetResult, 0, reg.Total())
	for t := e.cfg.TargetMin; t <= e.cfg.TargetMax; t++ {
		slot, ok := reg.Get(t)
		if !ok {
			results = append(results, TargetResult{Target: t})
			continue
		}
		results = append(results, TargetResult{
			Target:     t,
			Found:      true,
			Expression: slot.Expression,
			LaTeX:      slot.Tree.LaTeX(),
			Path:       slot.Path,
			Value:      slot.Value,
		})
	}
	return FinalReport{
		RunID:     runID,
		Config:    e.cfg,
		Found:     reg.Found(),
		Total:     reg.Total(),
		Results:   results,
		Stats:     stats,
		Accepted:  accepted,
		ElapsedMS: elapsed.Milliseconds(),
	}
}
