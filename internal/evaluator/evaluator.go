// Package evaluator computes per-constraint metric scores and an aggregate
// quality score for a candidate assignment, per the specification's §4.4
// weighted-mean formula.
package evaluator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/constraints"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Report is the evaluator's full output: one MetricScore per active
// constraint plus the constraint-weighted aggregate S (before the time
// blend the comparator applies).
type Report struct {
	Metrics []domain.MetricScore
	Score   float64 // weighted mean over active constraints, 0-100
}

// Evaluate scores assignment a against problem p using every constraint in
// activeConstraints, returning one MetricScore per constraint plus the
// weighted aggregate. An empty activeConstraints list falls back to the
// catalog's default active set. Returns *domain.InvalidAssignment if a does
// not fit p's bounds.
func Evaluate(p *domain.Problem, a domain.Assignment, activeConstraints []string) (Report, error) {
	if !a.InBounds(p) {
		return Report{}, &domain.InvalidAssignment{Reason: "assignment references an out-of-range slot or room"}
	}

	names := activeConstraints
	if len(names) == 0 {
		names = constraints.DefaultActiveSet()
	}
	if err := constraints.Validate(names); err != nil {
		return Report{}, err
	}
	cset := constraints.Resolve(names)

	metrics := make([]domain.MetricScore, 0, len(cset))
	values := make([]float64, 0, len(cset))
	weights := make([]float64, 0, len(cset))

	for _, c := range cset {
		m := c.Evaluate(p, a)
		metrics = append(metrics, m)
		values = append(values, m.Value)
		weights = append(weights, weightOf(c))
	}

	score := weightedMean(values, weights)
	return Report{Metrics: metrics, Score: score}, nil
}

// weightOf returns a constraint's default weight, or an equal share of 1.0
// when it implements no constraints.DefaultWeight (should not happen for
// any catalog entry, but keeps the mean well-defined regardless).
func weightOf(c constraints.Constraint) float64 {
	if w, ok := c.(constraints.DefaultWeight); ok {
		return w.DefaultWeight()
	}
	return 1.0
}

// weightedMean computes gonum's weighted Mean after renormalising weights
// to sum to 1 across the active set, per the specification's "normalised to
// sum=1 across the active constraints" instruction.
func weightedMean(values, weights []float64) float64 {
	if len(values) == 0 {
		return 100
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return stat.Mean(values, nil)
	}
	norm := make([]float64, len(weights))
	for i, w := range weights {
		norm[i] = w / total
	}
	return stat.Mean(values, norm)
}

// TimeScore computes the specification's time-performance term:
// 100*(1 - t_self/max(t_self, t_other)), symmetric around 0 when both sides
// take the same time.
func TimeScore(selfMS, otherMS int64) float64 {
	maxMS := selfMS
	if otherMS > maxMS {
		maxMS = otherMS
	}
	if maxMS == 0 {
		return 100
	}
	return 100 * (1 - float64(selfMS)/float64(maxMS))
}

// Final blends the constraint-weighted score S with the time term per the
// specification's Final = 0.85*S + 0.15*TimeScore.
func Final(s, timeScore float64) float64 {
	return 0.85*s + 0.15*timeScore
}
