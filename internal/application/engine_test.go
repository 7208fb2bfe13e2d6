package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-cohort/internal/application"
	"github.com/ahrav/go-cohort/internal/domain"
	"github.com/ahrav/go-cohort/internal/testutils"
)

// spyMetrics records every metric call for assertion.
type spyMetrics struct {
	mu        sync.Mutex
	latencies map[string]time.Duration
	counters  map[string]float64
	gauges    map[string]float64
	statuses  []string
}

func newSpyMetrics() *spyMetrics {
	return &spyMetrics{
		latencies: make(map[string]time.Duration),
		counters:  make(map[string]float64),
		gauges:    make(map[string]float64),
	}
}

func (m *spyMetrics) RecordLatency(op string, d time.Duration, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies[op] = d
}

func (m *spyMetrics) RecordCounter(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += value
	if status, ok := labels["status"]; ok {
		m.statuses = append(m.statuses, status)
	}
}

func (m *spyMetrics) RecordGauge(name string, value float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects nil registry", func(t *testing.T) {
		_, err := application.NewEngine(nil, nil)
		assert.Error(t, err)
	})

	t.Run("nil metrics collector is allowed", func(t *testing.T) {
		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), nil)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})
}

func TestEngineRun(t *testing.T) {
	survey, err := testutils.SampleSurvey()
	require.NoError(t, err)
	roster, err := testutils.GenerateRoster(20, 7)
	require.NoError(t, err)

	t.Run("runs every builtin strategy", func(t *testing.T) {
		configs := []*application.RunConfig{
			{Strategy: application.StrategyAlphabetical, TargetGroupSize: 4},
			{Strategy: application.StrategyGreedy, TargetGroupSize: 4},
			{
				Strategy:        application.StrategyAnnealing,
				TargetGroupSize: 4,
				Parameters:      map[string]any{"max_iterations": 300, "seed": 5},
			},
		}

		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), nil)
		require.NoError(t, err)

		for _, cfg := range configs {
			t.Run(cfg.Strategy, func(t *testing.T) {
				report, err := engine.Run(context.Background(), cfg, roster, survey)
				require.NoError(t, err)

				assert.NotEqual(t, uuid.Nil, report.RunID)
				assert.Equal(t, cfg.Strategy, report.Strategy)
				assert.NoError(t, report.Partition.Validate(roster),
					"every student must appear in exactly one group")

				total := 0.0
				for _, s := range report.GroupScores {
					total += s
				}
				assert.InDelta(t, report.Score, total, 1e-9)
				assert.Len(t, report.GroupScores, report.Partition.Len())
			})
		}
	})

	t.Run("records run metrics", func(t *testing.T) {
		metrics := newSpyMetrics()
		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), metrics)
		require.NoError(t, err)

		cfg := &application.RunConfig{Strategy: application.StrategyGreedy, TargetGroupSize: 4}
		report, err := engine.Run(context.Background(), cfg, roster, survey)
		require.NoError(t, err)

		assert.Contains(t, metrics.latencies, "grouper_run")
		assert.Equal(t, []string{"success"}, metrics.statuses)
		assert.InDelta(t, report.Score, metrics.gauges["grouper_partition_score"], 1e-9)
		assert.Equal(t, float64(roster.Len()), metrics.gauges["grouper_roster_size"])
	})

	t.Run("reports strategy construction failures", func(t *testing.T) {
		metrics := newSpyMetrics()
		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), metrics)
		require.NoError(t, err)

		cfg := &application.RunConfig{
			Strategy:        application.StrategyAnnealing,
			TargetGroupSize: 4,
			Parameters:      map[string]any{"cooling_rate": 5.0},
		}
		_, err = engine.Run(context.Background(), cfg, roster, survey)
		assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
		assert.Equal(t, []string{"config_error"}, metrics.statuses)
	})

	t.Run("reports grouping failures", func(t *testing.T) {
		metrics := newSpyMetrics()
		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), metrics)
		require.NoError(t, err)

		empty, err := domain.NewRoster(nil)
		require.NoError(t, err)
		cfg := &application.RunConfig{Strategy: application.StrategyGreedy, TargetGroupSize: 4}
		_, err = engine.Run(context.Background(), cfg, empty, survey)
		assert.ErrorIs(t, err, domain.ErrInsufficientRoster)
		assert.Equal(t, []string{"error"}, metrics.statuses)
	})

	t.Run("annealing replays identically from one seed", func(t *testing.T) {
		engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), nil)
		require.NoError(t, err)

		cfg := &application.RunConfig{
			Strategy:        application.StrategyAnnealing,
			TargetGroupSize: 4,
			Parameters:      map[string]any{"max_iterations": 300, "seed": 42},
		}
		first, err := engine.Run(context.Background(), cfg, roster, survey)
		require.NoError(t, err)
		second, err := engine.Run(context.Background(), cfg, roster, survey)
		require.NoError(t, err)

		assert.Equal(t, first.Partition.Key(), second.Partition.Key())
		assert.InDelta(t, first.Score, second.Score, 1e-9)
		assert.NotEqual(t, first.RunID, second.RunID)
	})
}
