package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// longExamMinutes is the duration threshold above which an exam is followed
// by an empty slot.
const longExamMinutes = 120

// breakPeriod keeps the slot right after a long exam free of any other exam,
// in every room, giving sitters and invigilators a break.
type breakPeriod struct{}

func (breakPeriod) Name() string           { return "break_period" }
func (breakPeriod) DefaultActive() bool    { return false }
func (breakPeriod) DefaultWeight() float64 { return 0.10 }

func (breakPeriod) EncodeCSP(m *csp.Model, p *domain.Problem) {
	for i, longExam := range p.Exams {
		if !longExam.HasDuration() || longExam.DurationMinutes <= longExamMinutes {
			continue
		}
		i := i
		for j := range p.Exams {
			if j == i {
				continue
			}
			j := j
			m.Post(csp.Propagator{
				Name:  "break_period",
				Scope: []int{i, j},
				Check: func(slot, room []int) bool {
					return slot[j] != slot[i]+1
				},
			})
		}
	}
}

func (breakPeriod) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	total, n := 0.0, 0
	for _, longExam := range p.Exams {
		if !longExam.HasDuration() || longExam.DurationMinutes <= longExamMinutes {
			continue
		}
		pl, ok := a[longExam.ID]
		if !ok {
			continue
		}
		n++
		violated := false
		for _, other := range p.Exams {
			if other.ID == longExam.ID {
				continue
			}
			op, ok := a[other.ID]
			if !ok {
				continue
			}
			if op.Slot == pl.Slot+1 {
				violated = true
				break
			}
		}
		if violated {
			total += 0
		} else {
			total += 100
		}
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "break_period", Value: 100}
	}
	return domain.MetricScore{Constraint: "break_period", Value: clamp(total / float64(n))}
}
