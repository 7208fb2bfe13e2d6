// Package groupers provides the grouping strategies of the engine:
// a deterministic alphabetical baseline, a greedy local-improvement
// strategy, and a simulated-annealing global search.
// Every strategy implements the ports.Grouper interface.
package groupers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// TieBreaker represents the strategy for choosing among groups that
// offer the same marginal gain during greedy placement.
type TieBreaker string

// Supported tie-breaking strategies.
const (
	// TieFirst selects the open group with the lowest index.
	// This provides deterministic behavior for reproducible results.
	TieFirst TieBreaker = "first"

	// TieRandom selects uniformly among tied groups using the
	// strategy's seeded random stream, so runs remain replayable.
	TieRandom TieBreaker = "random"
)

// Common errors returned by grouping strategies.
var (
	// ErrEmptyGrouperName is returned when a strategy is created with an
	// empty name.
	ErrEmptyGrouperName = errors.New("grouper name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// groupCapacities splits n students across k = ceil(n/target) groups as
// evenly as possible: every capacity is floor(n/k) or floor(n/k)+1.
// Capacities differ from each other by at most one, so a remainder is
// spread across groups instead of piling up in the last one.
func groupCapacities(n, target int) []int {
	k := (n + target - 1) / target
	base := n / k
	extra := n % k
	capacities := make([]int, k)
	for i := range capacities {
		capacities[i] = base
		if i < extra {
			capacities[i]++
		}
	}
	return capacities
}
