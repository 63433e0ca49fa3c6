// Package config loads runtime tuning knobs from TIMETABLE_*-prefixed
// environment variables (and an optional timetable.yaml), using viper the
// way the rest of the example pack's services do.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the solver harness reads at startup.
type Config struct {
	Budget      BudgetConfig
	Tabu        TabuConfig
	Evolution   EvolutionConfig
	LocalSearch LocalSearchConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// BudgetConfig is the wall-clock cap and relative gap tolerance every
// time-bounded adapter must honor.
type BudgetConfig struct {
	WallClock    time.Duration
	GapTolerance float64
}

// TabuConfig tunes the tabu-search adapter.
type TabuConfig struct {
	Tenure      int
	SampleMoves int
}

// EvolutionConfig tunes the evolutionary adapter.
type EvolutionConfig struct {
	PopulationSize  int
	Generations     int
	CrossoverProb   float64
	MutationGeneP   float64
	TournamentSize  int
}

// LocalSearchConfig tunes the local-search adapter.
type LocalSearchConfig struct {
	MaxAttempts   int
	MaxIterations int
	RandomJumpP   float64
}

// LogConfig controls zap logger construction.
type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig controls the Prometheus HTTP exposition endpoint.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// Load reads configuration from TIMETABLE_*-prefixed environment variables
// and, if present, a timetable.yaml in the working directory. Missing
// config file is not an error; every field has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("timetable")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TIMETABLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Budget: BudgetConfig{
			WallClock:    v.GetDuration("budget.wall_clock"),
			GapTolerance: v.GetFloat64("budget.gap_tolerance"),
		},
		Tabu: TabuConfig{
			Tenure:      v.GetInt("tabu.tenure"),
			SampleMoves: v.GetInt("tabu.sample_moves"),
		},
		Evolution: EvolutionConfig{
			PopulationSize: v.GetInt("evolution.population_size"),
			Generations:    v.GetInt("evolution.generations"),
			CrossoverProb:  v.GetFloat64("evolution.crossover_prob"),
			MutationGeneP:  v.GetFloat64("evolution.mutation_gene_p"),
			TournamentSize: v.GetInt("evolution.tournament_size"),
		},
		LocalSearch: LocalSearchConfig{
			MaxAttempts:   v.GetInt("local_search.max_attempts"),
			MaxIterations: v.GetInt("local_search.max_iterations"),
			RandomJumpP:   v.GetFloat64("local_search.random_jump_p"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Addr:    v.GetString("metrics.addr"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("budget.wall_clock", "30s")
	v.SetDefault("budget.gap_tolerance", 0.10)

	v.SetDefault("tabu.tenure", 10)
	v.SetDefault("tabu.sample_moves", 20)

	v.SetDefault("evolution.population_size", 300)
	v.SetDefault("evolution.generations", 100)
	v.SetDefault("evolution.crossover_prob", 0.7)
	v.SetDefault("evolution.mutation_gene_p", 0.05)
	v.SetDefault("evolution.tournament_size", 3)

	v.SetDefault("local_search.max_attempts", 50)
	v.SetDefault("local_search.max_iterations", 1000)
	v.SetDefault("local_search.random_jump_p", 0.1)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
}
