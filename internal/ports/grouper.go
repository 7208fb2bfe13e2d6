// Package ports defines the interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the engine testable.
package ports

import (
	"context"

	"github.com/ahrav/go-cohort/internal/domain"
)

// Grouper is a strategy for partitioning a roster into groups of a
// target size. Implementations range from a deterministic baseline to
// stochastic global search, but all share the same contract: given a
// roster, a scoring survey, and a target size, produce a partition that
// covers the roster exactly once.
//
// Groupers must be safe for concurrent invocations; each run owns its
// own partition and, where applicable, its own random-number stream.
type Grouper interface {
	// Name returns a unique identifier for this strategy instance.
	// The name is used for logging, metrics labels, and registry lookup.
	Name() string

	// Group partitions the roster into groups of the target size
	// (plus or minus one when the roster does not divide evenly).
	//
	// The survey supplies all scoring; strategies that do not consult
	// scores (the alphabetical baseline) accept it for interface
	// uniformity and ignore it.
	//
	// The context bounds long-running searches; implementations check
	// it at loop boundaries and return its error on expiry.
	//
	// A failing call returns no partial partition: the result is either
	// a complete, invariant-satisfying partition or an error.
	Group(ctx context.Context, roster *domain.Roster, survey *domain.Survey, targetSize int) (*domain.Partition, error)

	// Validate checks that the strategy is properly configured and
	// ready to run. It is called by the registry before first use.
	Validate() error
}

// GrouperFactory creates grouper instances from flexible configuration.
// The config map holds strategy-specific parameters (an annealing
// schedule, a tie-break policy) decoded from yaml.
type GrouperFactory func(name string, config map[string]any) (Grouper, error)

// GrouperRegistry manages the available grouping strategies.
type GrouperRegistry interface {
	// Register adds a factory for the given strategy type.
	// Registering a duplicate type returns an error.
	Register(strategyType string, factory GrouperFactory) error

	// Create instantiates a grouper of the given strategy type.
	Create(strategyType, name string, config map[string]any) (Grouper, error)

	// Types returns the registered strategy types in sorted order.
	Types() []string
}
