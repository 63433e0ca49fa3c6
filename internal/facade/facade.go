// Package facade is the language-neutral invocation surface described by the
// specification's External Interfaces section: load a problem, list what's
// registered, solve, evaluate, and compare, wired on top of internal/ingest,
// internal/constraints, internal/solver, internal/evaluator and
// internal/comparator.
package facade

import (
	"context"

	"go.uber.org/zap"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/comparator"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/constraints"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/evaluator"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/ingest"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/metrics"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/solver"
)

// ConstraintInfo is the list_constraints() external-interface record.
type ConstraintInfo struct {
	Name          string
	DefaultActive bool
}

// LoadProblem parses an instance file into a domain.Problem.
func LoadProblem(path string, log *zap.Logger) (*domain.Problem, error) {
	return ingest.Load(path, log)
}

// ListSolvers returns every registered solver name.
func ListSolvers() []string {
	return solver.Names()
}

// ListConstraints returns every catalog entry's name and default-active
// flag.
func ListConstraints() []ConstraintInfo {
	names := constraints.Names()
	out := make([]ConstraintInfo, 0, len(names))
	for _, n := range names {
		c := constraints.MustGet(n)
		out = append(out, ConstraintInfo{Name: n, DefaultActive: c.DefaultActive()})
	}
	return out
}

// Solve runs problem through the named solver, resolving an empty
// activeConstraints to the catalog's default active set. It records the
// outcome into reg (nil-safe, a no-op when metrics are disabled) and emits
// one zap.Info line via log (nil-safe) before returning.
func Solve(ctx context.Context, problem *domain.Problem, solverName string, activeConstraints []string, budget solver.Budget, log *zap.Logger, reg *metrics.Registry) (domain.SolveOutcome, error) {
	a, err := solver.Get(solverName)
	if err != nil {
		return domain.SolveOutcome{}, err
	}
	if err := constraints.Validate(resolveNames(activeConstraints)); err != nil {
		return domain.SolveOutcome{}, err
	}

	outcome := a.Solve(ctx, problem, activeConstraints, budget)

	reg.ObserveSolve(solverName, outcome.Label(), float64(outcome.ElapsedMS())/1000)
	if log != nil {
		log.Info("solved",
			zap.String("solver", solverName),
			zap.String("outcome", outcome.Label()),
			zap.Int64("elapsed_ms", outcome.ElapsedMS()),
		)
	}

	return outcome, nil
}

// Evaluate scores assignment against problem under activeConstraints.
func Evaluate(problem *domain.Problem, assignment domain.Assignment, activeConstraints []string) ([]domain.MetricScore, error) {
	report, err := evaluator.Evaluate(problem, assignment, activeConstraints)
	if err != nil {
		return nil, err
	}
	return report.Metrics, nil
}

// Compare runs problem through solverA and solverB and returns the
// comparison report.
func Compare(ctx context.Context, log *zap.Logger, reg *metrics.Registry, problem *domain.Problem, solverA, solverB string, activeConstraints []string, budget solver.Budget) (domain.ComparisonReport, error) {
	return comparator.Compare(ctx, log, reg, problem, solverA, solverB, activeConstraints, budget)
}

func resolveNames(names []string) []string {
	if len(names) == 0 {
		return constraints.DefaultActiveSet()
	}
	return names
}

// DefaultActiveConstraints is the specification's default active-constraint
// set: single_assignment, room_conflicts, room_capacity, student_spacing,
// max_exams_per_slot.
func DefaultActiveConstraints() []string {
	return constraints.DefaultActiveSet()
}
