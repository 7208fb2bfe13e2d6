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

var _ ports.Grouper = (*AnnealingGrouper)(nil)

// Seeder identifiers for the annealing start partition.
const (
	// SeedAlphabetical starts the search from the baseline partition.
	SeedAlphabetical = "alphabetical"

	// SeedGreedy starts the search from the greedy partition, trading a
	// more expensive warm-up for a better initial score.
	SeedGreedy = "greedy"
)

// AnnealingGrouper searches for a high-scoring partition by simulated
// annealing. Starting from a configurable seed partition, it repeatedly
// swaps two students between two randomly chosen groups, accepting every
// improving swap and accepting score-decreasing swaps with probability
// exp(delta/temperature). The temperature decays multiplicatively each
// iteration, so uphill-in-cost moves become increasingly unlikely as the
// run progresses.
//
// The swap move preserves group sizes by construction, so the partition
// invariant holds throughout the search. Only the two touched groups are
// rescored per move.
//
// The run returns the best partition observed, not the final state: late
// accepted downhill moves may regress the working partition below the
// best snapshot.
//
// All randomness comes from a stream seeded by the configuration, so a
// run is fully reproducible given identical inputs. The acceptance chain
// is inherently sequential; the search itself is single-threaded.
type AnnealingGrouper struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated annealing schedule.
	config AnnealingConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// AnnealingConfig is the schedule and seeding surface of the annealing
// search. All temperature parameters are interpreted on the same scale
// as partition scores, so the initial temperature should be set relative
// to the typical score magnitude of the survey in use.
type AnnealingConfig struct {
	// InitialTemperature is the starting temperature. Must be positive.
	InitialTemperature float64 `yaml:"initial_temperature" json:"initial_temperature" validate:"required,gt=0"`

	// CoolingRate is the multiplicative decay applied to the
	// temperature each iteration. Must lie strictly inside (0,1).
	CoolingRate float64 `yaml:"cooling_rate" json:"cooling_rate" validate:"required,gt=0,lt=1"`

	// MinTemperature stops the search once the temperature falls below
	// it. Must be positive.
	MinTemperature float64 `yaml:"min_temperature" json:"min_temperature" validate:"required,gt=0"`

	// MaxIterations bounds the number of moves regardless of
	// temperature. Must be at least 1.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations" validate:"required,min=1"`

	// Seed initializes the random stream driving group selection, swap
	// selection, and acceptance. Two runs with the same inputs and seed
	// produce identical partitions.
	Seed int64 `yaml:"seed" json:"seed"`

	// Seeder selects the strategy that produces the start partition:
	// "alphabetical" (default) or "greedy".
	Seeder string `yaml:"seeder" json:"seeder" validate:"required,oneof=alphabetical greedy"`
}

// DefaultAnnealingConfig returns a schedule suited to surveys whose
// pairwise scores stay within [0,1]: a generous initial temperature,
// slow cooling, and an iteration cap that dominates termination.
func DefaultAnnealingConfig() AnnealingConfig {
	return AnnealingConfig{
		InitialTemperature: 1.0,
		CoolingRate:        0.995,
		MinTemperature:     1e-4,
		MaxIterations:      10000,
		Seeder:             SeedAlphabetical,
	}
}

// NewAnnealingGrouper creates an annealing strategy with a validated
// schedule. Returns ErrEmptyGrouperName if name is empty, or
// domain.ErrInvalidSchedule if the schedule violates its constraints.
func NewAnnealingGrouper(name string, config AnnealingConfig) (*AnnealingGrouper, error) {
	if name == "" {
		return nil, ErrEmptyGrouperName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchedule, err)
	}
	return &AnnealingGrouper{
		name:   name,
		config: config,
		tracer: otel.Tracer("annealing-grouper"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (sa *AnnealingGrouper) Name() string { return sa.name }

// Validate reports whether the schedule is well formed.
func (sa *AnnealingGrouper) Validate() error {
	if err := validate.Struct(sa.config); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSchedule, err)
	}
	return nil
}

// Group runs the annealing search and returns the best partition seen.
//
// Returns domain.ErrInsufficientRoster for an empty roster or a
// non-positive target size. The context is checked at loop boundaries;
// on expiry the error propagates and no partial result is returned.
func (sa *AnnealingGrouper) Group(
	ctx context.Context,
	roster *domain.Roster,
	survey *domain.Survey,
	targetSize int,
) (*domain.Partition, error) {
	ctx, span := sa.tracer.Start(ctx, "AnnealingGrouper.Group",
		trace.WithAttributes(
			attribute.String("grouper.strategy", "simulated_annealing"),
			attribute.String("grouper.id", sa.name),
			attribute.String("config.seeder", sa.config.Seeder),
			attribute.Float64("config.initial_temperature", sa.config.InitialTemperature),
			attribute.Float64("config.cooling_rate", sa.config.CoolingRate),
			attribute.Int("config.max_iterations", sa.config.MaxIterations),
			attribute.Int64("config.seed", sa.config.Seed),
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

	seed, err := sa.seedPartition(ctx, roster, survey, targetSize)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Working state: one member slice per group, plus that group's
	// cached score so each move only rescores the two touched groups.
	seedGroups := seed.Groups()
	members := make([][]*domain.Student, len(seedGroups))
	scores := make([]float64, len(seedGroups))
	current := 0.0
	for i, g := range seedGroups {
		members[i] = g.Members()
		score, err := survey.ScoreGroup(members[i])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		scores[i] = score
		current += score
	}

	best := seed.Clone()
	bestScore := current
	span.SetAttributes(attribute.Float64("search.seed_score", bestScore))

	// With fewer than two groups the swap move is undefined and the seed
	// is already optimal for this move set.
	if len(members) < 2 {
		return best, nil
	}

	rng := rand.New(rand.NewSource(sa.config.Seed))
	temperature := sa.config.InitialTemperature
	iterations := 0
	accepted := 0

	for ; iterations < sa.config.MaxIterations && temperature >= sa.config.MinTemperature; iterations++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}

		gi := rng.Intn(len(members))
		gj := rng.Intn(len(members) - 1)
		if gj >= gi {
			gj++
		}
		si := rng.Intn(len(members[gi]))
		sj := rng.Intn(len(members[gj]))

		members[gi][si], members[gj][sj] = members[gj][sj], members[gi][si]

		newI, err := survey.ScoreGroup(members[gi])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		newJ, err := survey.ScoreGroup(members[gj])
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		delta := (newI + newJ) - (scores[gi] + scores[gj])

		// A zero delta is accepted unconditionally so the chain keeps
		// moving across score plateaus.
		if delta >= 0 || rng.Float64() < math.Exp(delta/temperature) {
			current += delta
			scores[gi], scores[gj] = newI, newJ
			accepted++
			if current > bestScore {
				bestScore = current
				best = snapshot(members)
			}
		} else {
			members[gi][si], members[gj][sj] = members[gj][sj], members[gi][si]
		}

		temperature *= sa.config.CoolingRate
	}

	if err := best.Validate(roster); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("search.iterations", iterations),
		attribute.Int("search.accepted_moves", accepted),
		attribute.Float64("search.best_score", bestScore),
		attribute.Float64("search.final_temperature", temperature),
	)
	return best, nil
}

// seedPartition produces the start partition using the configured seeder.
// The greedy seeder inherits this strategy's seed for its tie-breaking
// stream so the whole run stays replayable from one seed value.
func (sa *AnnealingGrouper) seedPartition(
	ctx context.Context,
	roster *domain.Roster,
	survey *domain.Survey,
	targetSize int,
) (*domain.Partition, error) {
	switch sa.config.Seeder {
	case SeedGreedy:
		cfg := DefaultGreedyConfig()
		cfg.Seed = sa.config.Seed
		seeder, err := NewGreedyGrouper(sa.name+"-seed", cfg)
		if err != nil {
			return nil, err
		}
		return seeder.Group(ctx, roster, survey, targetSize)
	default:
		seeder, err := NewAlphabeticalGrouper(sa.name + "-seed")
		if err != nil {
			return nil, err
		}
		return seeder.Group(ctx, roster, survey, targetSize)
	}
}

// snapshot deep-copies the working member slices into a partition.
func snapshot(members [][]*domain.Student) *domain.Partition {
	groups := make([]*domain.Group, len(members))
	for i, m := range members {
		groups[i] = domain.NewGroup(m...)
	}
	return domain.NewPartition(groups...)
}

// CreateAnnealingGrouper builds an AnnealingGrouper from flexible
// configuration, overlaying provided values on the defaults.
// Used by the strategy registry for yaml-driven construction.
func CreateAnnealingGrouper(name string, config map[string]any) (*AnnealingGrouper, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	// Start with defaults, then overlay user config.
	cfg := DefaultAnnealingConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewAnnealingGrouper(name, cfg)
}
