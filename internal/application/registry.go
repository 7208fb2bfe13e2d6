// Package application wires the grouping engine together: it loads and
// validates rosters, surveys, and run configurations, resolves grouping
// strategies through a registry, and exposes the single Run entry point
// used by external callers.
package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ahrav/go-cohort/infrastructure/groupers"
	"github.com/ahrav/go-cohort/internal/ports"
)

// Strategy type identifiers accepted by the registry and run configs.
const (
	StrategyAlphabetical = "alphabetical"
	StrategyGreedy       = "greedy"
	StrategyAnnealing    = "simulated_annealing"
)

// Verify interface compliance at compile time.
var _ ports.GrouperRegistry = (*DefaultGrouperRegistry)(nil)

// DefaultGrouperRegistry implements the GrouperRegistry interface,
// providing a factory for grouping strategies based on type and flexible
// configuration. It supports dynamic registration of additional
// strategies beyond the built-in three.
type DefaultGrouperRegistry struct {
	// factories maps strategy type strings to their factory functions.
	factories map[string]ports.GrouperFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultGrouperRegistry creates a registry with the standard
// strategies pre-registered: alphabetical, greedy, and
// simulated_annealing.
func NewDefaultGrouperRegistry() *DefaultGrouperRegistry {
	r := &DefaultGrouperRegistry{factories: make(map[string]ports.GrouperFactory)}
	r.registerBuiltinFactories()
	return r
}

// registerBuiltinFactories registers the strategies shipped with the engine.
func (r *DefaultGrouperRegistry) registerBuiltinFactories() {
	r.factories[StrategyAlphabetical] = func(name string, _ map[string]any) (ports.Grouper, error) {
		return groupers.NewAlphabeticalGrouper(name)
	}
	r.factories[StrategyGreedy] = func(name string, config map[string]any) (ports.Grouper, error) {
		return groupers.CreateGreedyGrouper(name, config)
	}
	r.factories[StrategyAnnealing] = func(name string, config map[string]any) (ports.Grouper, error) {
		return groupers.CreateAnnealingGrouper(name, config)
	}
}

// Register adds a factory for the given strategy type.
// Returns an error if the type is already registered.
func (r *DefaultGrouperRegistry) Register(strategyType string, factory ports.GrouperFactory) error {
	if strategyType == "" {
		return fmt.Errorf("strategy type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for strategy %q cannot be nil", strategyType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[strategyType]; exists {
		return fmt.Errorf("strategy type %q already registered", strategyType)
	}
	r.factories[strategyType] = factory
	return nil
}

// Create instantiates a grouper of the given strategy type and validates
// it before handing it to the caller.
func (r *DefaultGrouperRegistry) Create(strategyType, name string, config map[string]any) (ports.Grouper, error) {
	r.mu.RLock()
	factory, exists := r.factories[strategyType]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown strategy type %q", strategyType)
	}

	grouper, err := factory(name, config)
	if err != nil {
		return nil, fmt.Errorf("create strategy %q: %w", strategyType, err)
	}
	if err := grouper.Validate(); err != nil {
		return nil, fmt.Errorf("strategy %q failed validation: %w", strategyType, err)
	}
	return grouper, nil
}

// Types returns the registered strategy types in sorted order.
func (r *DefaultGrouperRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
