package groupers

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-cohort/internal/domain"
	"github.com/ahrav/go-cohort/internal/ports"
)

var _ ports.Grouper = (*GreedyGrouper)(nil)

// GreedyGrouper assigns students one at a time, in ascending ID order,
// each to the open group where they raise the weighted score the most.
// A group that reaches its capacity is closed to further insertion.
//
// Capacities are balanced up front across k = ceil(n/target) groups, so
// when the roster does not divide evenly the smallest groups are exactly
// one below the target rather than collecting the whole remainder in the
// last group.
//
// The strategy is deterministic for the default tie-break and performs
// O(n² · k) pairwise score evaluations in its naive form, which is
// acceptable at classroom scale.
type GreedyGrouper struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config GreedyConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// GreedyConfig controls tie-breaking during greedy placement.
type GreedyConfig struct {
	// TieBreaker defines how to choose among open groups offering the
	// same marginal gain.
	// "first": lowest group index (deterministic, the default)
	// "random": uniform choice from the seeded stream (replayable)
	TieBreaker TieBreaker `yaml:"tie_breaker" json:"tie_breaker" validate:"required,oneof=first random"`

	// Seed initializes the random stream consumed by the "random"
	// tie-breaker. Ignored by "first".
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultGreedyConfig returns the deterministic default configuration.
func DefaultGreedyConfig() GreedyConfig {
	return GreedyConfig{TieBreaker: TieFirst}
}

// NewGreedyGrouper creates a greedy strategy with validated configuration.
// Returns ErrEmptyGrouperName if name is empty, or a configuration
// validation error if constraints are violated.
func NewGreedyGrouper(name string, config GreedyConfig) (*GreedyGrouper, error) {
	if name == "" {
		return nil, ErrEmptyGrouperName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &GreedyGrouper{
		name:   name,
		config: config,
		tracer: otel.Tracer("greedy-grouper"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (gg *GreedyGrouper) Name() string { return gg.name }

// Validate reports whether the strategy is ready to run.
func (gg *GreedyGrouper) Validate() error {
	if err := validate.Struct(gg.config); err != nil {
		return fmt.Errorf("greedy config invalid: %w", err)
	}
	return nil
}

// Group partitions the roster by repeated marginal-gain placement.
//
// Returns domain.ErrInsufficientRoster for an empty roster or a
// non-positive target size. Scoring errors from the survey propagate
// unchanged; no partial partition is ever returned.
func (gg *GreedyGrouper) Group(
	ctx context.Context,
	roster *domain.Roster,
	survey *domain.Survey,
	targetSize int,
) (*domain.Partition, error) {
	_, span := gg.tracer.Start(ctx, "GreedyGrouper.Group",
		trace.WithAttributes(
			attribute.String("grouper.strategy", "greedy"),
			attribute.String("grouper.id", gg.name),
			attribute.String("config.tie_breaker", string(gg.config.TieBreaker)),
			attribute.Int("roster.size", roster.Len()),
			attribute.Int("group.target_size", targetSize),
		),
	)
	defer span.End()

	if roster.Len() == 0 {
		err := fmt.Errorf("%w: empty roster", domain.ErrInsufficientRoster)
		span.RecordError(err)
		return nil, err
	}
	if targetSize <= 0 {
		err := fmt.Errorf("%w: target size %d", domain.ErrInsufficientRoster, targetSize)
		span.RecordError(err)
		return nil, err
	}

	capacities := groupCapacities(roster.Len(), targetSize)
	members := make([][]*domain.Student, len(capacities))
	currentScores := make([]float64, len(capacities))

	var rng *rand.Rand
	if gg.config.TieBreaker == TieRandom {
		rng = rand.New(rand.NewSource(gg.config.Seed))
	}

	// Iteration order over students is ascending ID, fixed by the roster,
	// so identical inputs always replay the same placement sequence.
	for _, student := range roster.Students() {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}

		bestGain := math.Inf(-1)
		var tied []int
		var tiedScores []float64
		for gi := range members {
			if len(members[gi]) >= capacities[gi] {
				continue
			}
			candidate := append(append([]*domain.Student{}, members[gi]...), student)
			score, err := survey.ScoreGroup(candidate)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			gain := score - currentScores[gi]
			switch {
			case gain > bestGain:
				bestGain = gain
				tied = append(tied[:0], gi)
				tiedScores = append(tiedScores[:0], score)
			case gain == bestGain:
				tied = append(tied, gi)
				tiedScores = append(tiedScores, score)
			}
		}

		// tied is populated in ascending group index order, so the first
		// entry is the lowest-index open group.
		pick := 0
		if gg.config.TieBreaker == TieRandom && len(tied) > 1 {
			pick = rng.Intn(len(tied))
		}
		choice := tied[pick]
		members[choice] = append(members[choice], student)
		currentScores[choice] = tiedScores[pick]
	}

	groups := make([]*domain.Group, len(members))
	for i, m := range members {
		groups[i] = domain.NewGroup(m...)
	}
	partition := domain.NewPartition(groups...)
	if err := partition.Validate(roster); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("partition.groups", partition.Len()))
	return partition, nil
}

// CreateGreedyGrouper builds a GreedyGrouper from flexible configuration,
// overlaying provided values on the deterministic defaults.
// Used by the strategy registry for yaml-driven construction.
func CreateGreedyGrouper(name string, config map[string]any) (*GreedyGrouper, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	// Start with defaults, then overlay user config.
	cfg := DefaultGreedyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewGreedyGrouper(name, cfg)
}
