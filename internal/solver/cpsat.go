package solver

import (
	"context"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// cpsatAdapter shares the smtAdapter's declarative encoding but branches in
// most-constrained-variable order, approximating the forward-checking a
// reified-boolean CP-SAT model would give for free.
type cpsatAdapter struct{}

func (cpsatAdapter) Name() string { return "ortools" }

func (cpsatAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	return runCSPAdapter(ctx, p, active, budget, csp.MostConstrainedOrder)
}
