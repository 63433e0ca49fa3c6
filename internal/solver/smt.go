package solver

import (
	"context"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// smtAdapter models slot[e] and room[e] as plain bounded integers and
// asserts every active constraint's encoder against them, branching in
// static exam order — the least-pruning but always-correct encoding.
type smtAdapter struct{}

func (smtAdapter) Name() string { return "z3" }

func (smtAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	return runCSPAdapter(ctx, p, active, budget, csp.StaticOrder)
}

func runCSPAdapter(ctx context.Context, p *domain.Problem, active []string, budget Budget, order csp.VariableOrder) domain.SolveOutcome {
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

	res := m.Solve(ctx, order, deadline)
	if !res.Found {
		return domain.UnsatOutcome(elapsedMS(start))
	}
	a := toAssignment(p, res.Slot, res.Room)
	if res.DeadlineHit {
		return domain.SatWithBudget(a, elapsedMS(start))
	}
	return domain.Sat(a, elapsedMS(start))
}
