package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// morningSessions requires exams flagged MorningRequired to sit in the first
// half of the ordered slots. Exams without the flag are untouched.
type morningSessions struct{}

func (morningSessions) Name() string           { return "morning_sessions" }
func (morningSessions) DefaultActive() bool    { return false }
func (morningSessions) DefaultWeight() float64 { return 0.05 }

func (morningSessions) EncodeCSP(m *csp.Model, p *domain.Problem) {
	morningCount := p.MorningSlotCount()
	for i, ex := range p.Exams {
		if !ex.MorningRequired {
			continue
		}
		i := i
		m.Post(csp.Propagator{
			Name:  "morning_sessions",
			Scope: []int{i},
			Check: func(slot, room []int) bool {
				return slot[i] < morningCount
			},
		})
	}
}

func (morningSessions) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	morningCount := p.MorningSlotCount()
	total, n := 0.0, 0
	for _, ex := range p.Exams {
		if !ex.MorningRequired {
			continue
		}
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		n++
		if pl.Slot < morningCount {
			total += 100
		}
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "morning_sessions", Value: 100}
	}
	return domain.MetricScore{Constraint: "morning_sessions", Value: clamp(total / float64(n))}
}
