// Package comparator runs a Problem through two named solver adapters and
// produces a domain.ComparisonReport scoring the two resulting timetables
// against each other, per the specification's §4.5 comparator semantics.
package comparator

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/evaluator"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/metrics"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/solver"
)

// tieThreshold is the absolute score difference below which two sides are
// considered tied, both per-metric and overall.
const tieThreshold = 1.0

// Compare runs solverA and solverB on p with activeConstraints, scores both
// sides, and returns the comparison report. The two solves run concurrently
// since every adapter owns its own model and p is read-only, per the
// specification's concurrency model. Both outcomes are recorded into reg
// (nil-safe) once they're known, before any winner determination.
func Compare(ctx context.Context, log *zap.Logger, reg *metrics.Registry, p *domain.Problem, solverA, solverB string, activeConstraints []string, budget solver.Budget) (domain.ComparisonReport, error) {
	adapterA, err := solver.Get(solverA)
	if err != nil {
		return domain.ComparisonReport{}, err
	}
	adapterB, err := solver.Get(solverB)
	if err != nil {
		return domain.ComparisonReport{}, err
	}

	var outcomeA, outcomeB domain.SolveOutcome
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcomeA = adapterA.Solve(ctx, p, activeConstraints, budget)
	}()
	go func() {
		defer wg.Done()
		outcomeB = adapterB.Solve(ctx, p, activeConstraints, budget)
	}()
	wg.Wait()

	report := domain.ComparisonReport{
		RunID:       uuid.NewString(),
		ProblemName: p.Name,
		SolverA:     solverA,
		SolverB:     solverB,
		OutcomeA:    outcomeA,
		OutcomeB:    outcomeB,
	}

	reg.ObserveSolve(solverA, outcomeA.Label(), float64(outcomeA.ElapsedMS())/1000)
	reg.ObserveSolve(solverB, outcomeB.Label(), float64(outcomeB.ElapsedMS())/1000)

	if log != nil {
		log.Info("compared solvers",
			zap.String("run_id", report.RunID),
			zap.String("solver_a", solverA),
			zap.String("solver_b", solverB),
			zap.String("outcome_a", outcomeA.String()),
			zap.String("outcome_b", outcomeB.String()),
		)
	}

	if outcomeA.IsUnsat() && outcomeB.IsUnsat() {
		report.BothUnsat = true
		report.Winner = domain.WinnerTie
		report.Summary = "both solvers returned Unsat"
		return report, nil
	}
	if outcomeA.IsUnsat() {
		report.Winner = domain.WinnerB
		report.Summary = solverA + " returned Unsat; " + solverB + " wins trivially"
		if repB, err := evaluator.Evaluate(p, outcomeB.Assignment(), activeConstraints); err == nil {
			report.Metrics = sentinelMetrics(nil, repB.Metrics)
			report.FinalB = repB.Score
		}
		return report, nil
	}
	if outcomeB.IsUnsat() {
		report.Winner = domain.WinnerA
		report.Summary = solverB + " returned Unsat; " + solverA + " wins trivially"
		if repA, err := evaluator.Evaluate(p, outcomeA.Assignment(), activeConstraints); err == nil {
			report.Metrics = sentinelMetrics(repA.Metrics, nil)
			report.FinalA = repA.Score
		}
		return report, nil
	}
	if outcomeA.IsError() || outcomeB.IsError() {
		report.Winner = domain.WinnerTie
		report.Summary = "at least one solver returned an error"
		return report, nil
	}

	repA, err := evaluator.Evaluate(p, outcomeA.Assignment(), activeConstraints)
	if err != nil {
		return domain.ComparisonReport{}, err
	}
	repB, err := evaluator.Evaluate(p, outcomeB.Assignment(), activeConstraints)
	if err != nil {
		return domain.ComparisonReport{}, err
	}

	report.Metrics = mergeMetrics(repA.Metrics, repB.Metrics)

	timeScoreA := evaluator.TimeScore(outcomeA.ElapsedMS(), outcomeB.ElapsedMS())
	timeScoreB := evaluator.TimeScore(outcomeB.ElapsedMS(), outcomeA.ElapsedMS())
	report.FinalA = evaluator.Final(repA.Score, timeScoreA)
	report.FinalB = evaluator.Final(repB.Score, timeScoreB)

	switch {
	case math.Abs(report.FinalA-report.FinalB) < tieThreshold:
		report.Winner = domain.WinnerTie
	case report.FinalA > report.FinalB:
		report.Winner = domain.WinnerA
	default:
		report.Winner = domain.WinnerB
	}
	report.Summary = summarize(report)

	return report, nil
}

// sentinelMetrics builds the per-metric comparison for a partial-
// infeasibility run: whichever side is nil (the Unsat side) gets NaN in its
// score slot, per the specification's "sentinel N/A" instruction.
func sentinelMetrics(a, b []domain.MetricScore) []domain.MetricComparison {
	if a == nil {
		out := make([]domain.MetricComparison, len(b))
		for i, mb := range b {
			out[i] = domain.MetricComparison{Constraint: mb.Constraint, ScoreA: math.NaN(), ScoreB: mb.Value, Winner: domain.WinnerB}
		}
		return out
	}
	out := make([]domain.MetricComparison, len(a))
	for i, ma := range a {
		out[i] = domain.MetricComparison{Constraint: ma.Constraint, ScoreA: ma.Value, ScoreB: math.NaN(), Winner: domain.WinnerA}
	}
	return out
}

func mergeMetrics(a, b []domain.MetricScore) []domain.MetricComparison {
	byName := map[string]float64{}
	for _, m := range b {
		byName[m.Constraint] = m.Value
	}
	merged := make([]domain.MetricComparison, 0, len(a))
	for _, ma := range a {
		mb := byName[ma.Constraint]
		winner := domain.WinnerTie
		switch {
		case math.Abs(ma.Value-mb) < tieThreshold:
			winner = domain.WinnerTie
		case ma.Value > mb:
			winner = domain.WinnerA
		default:
			winner = domain.WinnerB
		}
		merged = append(merged, domain.MetricComparison{
			Constraint: ma.Constraint,
			ScoreA:     ma.Value,
			ScoreB:     mb,
			Winner:     winner,
		})
	}
	return merged
}

func summarize(r domain.ComparisonReport) string {
	switch r.Winner {
	case domain.WinnerTie:
		return "comparison tied within threshold"
	case domain.WinnerA:
		return r.SolverA + " wins on final score"
	default:
		return r.SolverB + " wins on final score"
	}
}
