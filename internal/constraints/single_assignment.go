package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// singleAssignment requires every exam to occupy exactly one (slot, room)
// pair. The CSP engine enforces this structurally — every exam owns exactly
// one slot variable and one room variable, each bounded to a valid range —
// so encoding it is a no-op; it exists in the catalog purely so it can be
// evaluated and reported alongside the other constraints.
type singleAssignment struct{}

func (singleAssignment) Name() string          { return "single_assignment" }
func (singleAssignment) DefaultActive() bool   { return true }
func (singleAssignment) DefaultWeight() float64 { return 0.15 }

func (singleAssignment) EncodeCSP(m *csp.Model, p *domain.Problem) {
	// Range-boundedness is already guaranteed by csp.NewModel; nothing to post.
}

func (singleAssignment) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	if p.NumExams() == 0 {
		return domain.MetricScore{Constraint: "single_assignment", Value: 100}
	}
	present := 0
	for _, ex := range p.Exams {
		if _, ok := a[ex.ID]; ok {
			present++
		}
	}
	score := 100 * float64(present) / float64(p.NumExams())
	return domain.MetricScore{Constraint: "single_assignment", Value: clamp(score)}
}
