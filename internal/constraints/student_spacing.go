package constraints

import (
	"sort"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/conflict"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// studentSpacing forbids any student from having two exams in the same slot
// or in adjacent slots (gap <= 1).
type studentSpacing struct{}

func (studentSpacing) Name() string           { return "student_spacing" }
func (studentSpacing) DefaultActive() bool    { return true }
func (studentSpacing) DefaultWeight() float64 { return 0.10 }

func (studentSpacing) EncodeCSP(m *csp.Model, p *domain.Problem) {
	g := conflict.Build(p)
	g.StudentPairs(func(e1, e2, shared int) {
		if shared == 0 {
			return
		}
		m.Post(csp.Propagator{
			Name:  "student_spacing",
			Scope: []int{e1, e2},
			Check: func(slot, room []int) bool {
				gap := slot[e1] - slot[e2]
				if gap < 0 {
					gap = -gap
				}
				return gap >= 2
			},
		})
	})
}

func (studentSpacing) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	studentSlots := map[int][]int{}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		for s := range ex.Students {
			studentSlots[s] = append(studentSlots[s], pl.Slot)
		}
	}

	total, n := 0.0, 0
	for _, slots := range studentSlots {
		if len(slots) < 2 {
			continue
		}
		sort.Ints(slots)
		for i := 1; i < len(slots); i++ {
			g := slots[i] - slots[i-1]
			var score float64
			switch {
			case g == 0:
				score = 0
			case g == 1:
				score = 50
			default:
				score = 100
			}
			total += score
			n++
		}
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "student_spacing", Value: 100}
	}
	return domain.MetricScore{Constraint: "student_spacing", Value: clamp(total / float64(n))}
}
