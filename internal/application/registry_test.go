package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-cohort/internal/domain"
	"github.com/ahrav/go-cohort/internal/ports"
)

// stubGrouper is a minimal grouper for registry tests.
type stubGrouper struct{ name string }

func (s *stubGrouper) Name() string { return s.name }
func (s *stubGrouper) Group(context.Context, *domain.Roster, *domain.Survey, int) (*domain.Partition, error) {
	return domain.NewPartition(), nil
}
func (s *stubGrouper) Validate() error { return nil }

func TestDefaultGrouperRegistry(t *testing.T) {
	t.Run("ships the builtin strategies", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		assert.Equal(t, []string{
			StrategyAlphabetical,
			StrategyGreedy,
			StrategyAnnealing,
		}, registry.Types())
	})

	t.Run("creates each builtin strategy", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		for _, strategy := range registry.Types() {
			g, err := registry.Create(strategy, strategy, nil)
			require.NoError(t, err, "strategy %s", strategy)
			assert.Equal(t, strategy, g.Name())
		}
	})

	t.Run("unknown strategy type", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		_, err := registry.Create("oracle", "oracle", nil)
		assert.ErrorContains(t, err, "unknown strategy type")
	})

	t.Run("invalid parameters surface at creation", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		_, err := registry.Create(StrategyAnnealing, "annealing", map[string]any{
			"cooling_rate": 3.0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
	})

	t.Run("registers a custom strategy", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		err := registry.Register("stub", func(name string, _ map[string]any) (ports.Grouper, error) {
			return &stubGrouper{name: name}, nil
		})
		require.NoError(t, err)

		g, err := registry.Create("stub", "my-stub", nil)
		require.NoError(t, err)
		assert.Equal(t, "my-stub", g.Name())
		assert.Contains(t, registry.Types(), "stub")
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		err := registry.Register(StrategyGreedy, func(name string, _ map[string]any) (ports.Grouper, error) {
			return &stubGrouper{name: name}, nil
		})
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("rejects empty type and nil factory", func(t *testing.T) {
		registry := NewDefaultGrouperRegistry()
		assert.Error(t, registry.Register("", func(name string, _ map[string]any) (ports.Grouper, error) {
			return &stubGrouper{name: name}, nil
		}))
		assert.Error(t, registry.Register("stub", nil))
	})
}
