package solver

import (
	"sync"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

var registryNames = []string{"z3", "ortools", "gurobi", "cbc", "deap", "tabu", "local", "scip"}

var registryMu sync.RWMutex
var registry = buildRegistry(DefaultTuning())

// buildRegistry constructs the solver-name -> adapter table, keyed by the
// short names the specification's external interface uses, tuning the three
// metaheuristic adapters from t.
func buildRegistry(t Tuning) map[string]Adapter {
	return map[string]Adapter{
		"z3":      smtAdapter{},
		"ortools": cpsatAdapter{},
		"gurobi":  mipAdapter{name: "gurobi"},
		"cbc":     mipAdapter{name: "cbc"},
		"scip":    mipAdapter{name: "scip"},
		"local": localSearchAdapter{
			MaxAttempts:   t.LocalSearch.MaxAttempts,
			MaxIterations: t.LocalSearch.MaxIterations,
			RandomJumpP:   t.LocalSearch.RandomJumpP,
		},
		"tabu": tabuAdapter{
			Tenure:      t.Tabu.Tenure,
			SampleMoves: t.Tabu.SampleMoves,
		},
		"deap": evolutionaryAdapter{
			PopulationSize: t.Evolution.PopulationSize,
			Generations:    t.Evolution.Generations,
			CrossoverProb:  t.Evolution.CrossoverProb,
			MutationGeneP:  t.Evolution.MutationGeneP,
			TournamentSize: t.Evolution.TournamentSize,
		},
	}
}

// Configure rebuilds the registry's metaheuristic adapters from tuning,
// resolved by internal/config at startup. Call once before Get/Solve are
// used concurrently; Names/Get are safe to call at any time.
func Configure(tuning Tuning) {
	next := buildRegistry(tuning)
	registryMu.Lock()
	registry = next
	registryMu.Unlock()
}

// Names lists every registered solver name, in a fixed, spec-documented
// order.
func Names() []string {
	out := make([]string, len(registryNames))
	copy(out, registryNames)
	return out
}

// Get resolves a solver name to its adapter, or reports UnknownSolver.
func Get(name string) (Adapter, error) {
	registryMu.RLock()
	a, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, &domain.UnknownSolver{Name: name}
	}
	return a, nil
}
