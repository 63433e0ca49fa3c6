package solver

import (
	"context"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// mipAdapter models the problem with an indicator x[e,r,t] conceptually
// linked to slot[e]/room[e] by the big-M constant M = T+1 (the engine never
// materialises the indicator directly; csp.Model's domain restriction plays
// the same linking role) and minimises the span of used slots by trying
// increasingly wide slot windows, narrowest first. gurobi, cbc and scip
// share this adapter — the specification groups them as one MIP family and
// none of the three has a pure-Go binding in this dependency lineage, so a
// single implementation serves all three registry names.
type mipAdapter struct {
	name string
}

func (a mipAdapter) Name() string { return a.name }

func (a mipAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	start := time.Now()
	cset, err := resolveConstraints(active)
	if err != nil {
		return domain.ErrorOutcome(elapsedMS(start), err.Error())
	}

	m := csp.NewModel(p.NumExams(), p.NumSlots(), p.NumRooms())
	for _, c := range cset {
		c.EncodeCSP(m, p)
	}

	deadline := start.Add(budget.WallClock)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	res := m.SolveMinimizingSpan(ctx, p.NumSlots(), csp.StaticOrder, deadline)
	if !res.Found {
		return domain.UnsatOutcome(elapsedMS(start))
	}
	a2 := toAssignment(p, res.Slot, res.Room)
	if res.DeadlineHit {
		return domain.SatWithBudget(a2, elapsedMS(start))
	}
	return domain.Sat(a2, elapsedMS(start))
}
