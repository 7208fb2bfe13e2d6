package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-cohort/internal/domain"
	"github.com/ahrav/go-cohort/internal/ports"
)

// RunReport is the outcome of one grouper run, suitable for downstream
// reporting and visualization. The partition is owned exclusively by the
// caller once the run returns.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID uuid.UUID `json:"run_id"`

	// Strategy is the strategy type that produced the partition.
	Strategy string `json:"strategy"`

	// Partition is the complete, invariant-satisfying result.
	Partition *domain.Partition `json:"-"`

	// Score is the total weighted score of the partition.
	Score float64 `json:"score"`

	// GroupScores holds each group's score in partition group order.
	GroupScores []float64 `json:"group_scores"`

	// Duration is the wall-clock time of the grouper run itself,
	// excluding final report scoring.
	Duration time.Duration `json:"duration"`
}

// Engine is the single entry point external callers use to run a
// grouping strategy over a roster. It resolves strategies through a
// registry and reports run outcomes to a metrics collector.
//
// An Engine is safe for concurrent use; each run owns its own partition
// and random stream.
type Engine struct {
	registry ports.GrouperRegistry
	metrics  ports.MetricsCollector
	tracer   trace.Tracer
}

// NewEngine creates an engine backed by the given registry.
// A nil metrics collector disables monitoring without branching at call
// sites.
func NewEngine(registry ports.GrouperRegistry, metrics ports.MetricsCollector) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &Engine{
		registry: registry,
		metrics:  metrics,
		tracer:   otel.Tracer("cohort-engine"),
	}, nil
}

// Run executes the configured strategy over the roster and returns a
// scored report. The config's Parameters are handed to the strategy's
// factory; the annealing schedule lives there, and the other strategies
// need none.
//
// Errors from construction, grouping, or scoring propagate to the
// caller; no partial partition is ever reported. Retrying (for example,
// re-running annealing with a different seed) is the caller's choice.
func (e *Engine) Run(
	ctx context.Context,
	cfg *RunConfig,
	roster *domain.Roster,
	survey *domain.Survey,
) (*RunReport, error) {
	runID := uuid.New()
	ctx, span := e.tracer.Start(ctx, "Engine.Run",
		trace.WithAttributes(
			attribute.String("run.id", runID.String()),
			attribute.String("run.strategy", cfg.Strategy),
			attribute.Int("run.target_group_size", cfg.TargetGroupSize),
			attribute.Int("roster.size", roster.Len()),
		),
	)
	defer span.End()

	labels := map[string]string{"strategy": cfg.Strategy}

	grouper, err := e.registry.Create(cfg.Strategy, cfg.Strategy, cfg.Parameters)
	if err != nil {
		span.RecordError(err)
		e.recordOutcome(labels, "config_error")
		return nil, err
	}

	start := time.Now()
	partition, err := grouper.Group(ctx, roster, survey, cfg.TargetGroupSize)
	elapsed := time.Since(start)
	e.metrics.RecordLatency("grouper_run", elapsed, labels)
	if err != nil {
		span.RecordError(err)
		e.recordOutcome(labels, "error")
		return nil, fmt.Errorf("strategy %s: %w", cfg.Strategy, err)
	}

	groupScores, err := survey.GroupScores(ctx, partition)
	if err != nil {
		span.RecordError(err)
		e.recordOutcome(labels, "scoring_error")
		return nil, fmt.Errorf("score partition: %w", err)
	}
	total := 0.0
	for _, s := range groupScores {
		total += s
	}

	e.recordOutcome(labels, "success")
	e.metrics.RecordGauge("grouper_partition_score", total, labels)
	e.metrics.RecordGauge("grouper_roster_size", float64(roster.Len()), labels)
	span.SetAttributes(
		attribute.Float64("run.score", total),
		attribute.Int("run.groups", partition.Len()),
	)

	return &RunReport{
		RunID:       runID,
		Strategy:    cfg.Strategy,
		Partition:   partition,
		Score:       total,
		GroupScores: groupScores,
		Duration:    elapsed,
	}, nil
}

func (e *Engine) recordOutcome(labels map[string]string, status string) {
	counterLabels := map[string]string{"strategy": labels["strategy"], "status": status}
	e.metrics.RecordCounter("grouper_runs_total", 1, counterLabels)
}
