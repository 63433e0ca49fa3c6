package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Budget.WallClock)
	assert.InDelta(t, 0.10, cfg.Budget.GapTolerance, 1e-9)

	assert.Equal(t, 10, cfg.Tabu.Tenure)
	assert.Equal(t, 20, cfg.Tabu.SampleMoves)

	assert.Equal(t, 300, cfg.Evolution.PopulationSize)
	assert.Equal(t, 100, cfg.Evolution.Generations)
	assert.InDelta(t, 0.7, cfg.Evolution.CrossoverProb, 1e-9)
	assert.InDelta(t, 0.05, cfg.Evolution.MutationGeneP, 1e-9)
	assert.Equal(t, 3, cfg.Evolution.TournamentSize)

	assert.Equal(t, 50, cfg.LocalSearch.MaxAttempts)
	assert.Equal(t, 1000, cfg.LocalSearch.MaxIterations)
	assert.InDelta(t, 0.1, cfg.LocalSearch.RandomJumpP, 1e-9)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoadRespectsEnvOverride(t *testing.T) {
	t.Setenv("TIMETABLE_TABU_TENURE", "42")
	t.Setenv("TIMETABLE_METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Tabu.Tenure)
	assert.True(t, cfg.Metrics.Enabled)
}
