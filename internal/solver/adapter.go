// Package solver hosts the adapter family that turns a domain.Problem and an
// active-constraint list into a domain.SolveOutcome. Every adapter shares the
// propagation core in internal/csp; what differs between adapters is the
// variable ordering, the domain-restriction strategy, and (for the
// metaheuristic adapters) the search loop itself.
package solver

import (
	"context"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/constraints"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Adapter is the common contract every solver backend implements.
type Adapter interface {
	Name() string
	Solve(ctx context.Context, p *domain.Problem, activeConstraints []string, budget Budget) domain.SolveOutcome
}

// Budget carries the wall-clock cap and relative gap tolerance a run must
// respect, per the specification's common adapter contract.
type Budget struct {
	WallClock    time.Duration
	GapTolerance float64
}

// DefaultBudget matches the specification's default 30s wall-clock cap and
// 10% relative gap tolerance.
func DefaultBudget() Budget {
	return Budget{WallClock: 30 * time.Second, GapTolerance: 0.10}
}

// TabuTuning parameterises the tabu-search adapter.
type TabuTuning struct {
	Tenure      int
	SampleMoves int
}

// EvolutionTuning parameterises the evolutionary adapter.
type EvolutionTuning struct {
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	MutationGeneP  float64
	TournamentSize int
}

// LocalSearchTuning parameterises the local-search adapter.
type LocalSearchTuning struct {
	MaxAttempts   int
	MaxIterations int
	RandomJumpP   float64
}

// Tuning aggregates every metaheuristic adapter's configurable parameters.
// internal/config resolves these from timetable.yaml/TIMETABLE_* env vars;
// Configure installs them into the adapter registry at startup.
type Tuning struct {
	Tabu        TabuTuning
	Evolution   EvolutionTuning
	LocalSearch LocalSearchTuning
}

// DefaultTuning matches the specification's documented default parameters
// (tenure 10, population 300, etc.), used when Configure is never called.
func DefaultTuning() Tuning {
	return Tuning{
		Tabu: TabuTuning{
			Tenure:      tabuTenure,
			SampleMoves: tabuSampleMoves,
		},
		Evolution: EvolutionTuning{
			PopulationSize: evoPopulationSize,
			Generations:    evoGenerations,
			CrossoverProb:  evoCrossoverProb,
			MutationGeneP:  evoMutationGeneP,
			TournamentSize: evoTournamentSize,
		},
		LocalSearch: LocalSearchTuning{
			MaxAttempts:   localSearchMaxAttempts,
			MaxIterations: localSearchMaxIterations,
			RandomJumpP:   localSearchRandomJumpP,
		},
	}
}

func resolveConstraints(names []string) ([]constraints.Constraint, error) {
	if len(names) == 0 {
		names = constraints.DefaultActiveSet()
	}
	if err := constraints.Validate(names); err != nil {
		return nil, err
	}
	return constraints.Resolve(names), nil
}

func toAssignment(p *domain.Problem, slot, room []int) domain.Assignment {
	a := make(domain.Assignment, len(p.Exams))
	for i, ex := range p.Exams {
		a[ex.ID] = domain.Placement{Slot: slot[i], Room: room[i]}
	}
	return a
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
