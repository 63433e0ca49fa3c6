package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/conflict"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// departmentGrouping keeps same-department exams that land in the same slot
// physically close, so a department's invigilators and students aren't
// scattered across the building.
type departmentGrouping struct{}

func (departmentGrouping) Name() string           { return "department_grouping" }
func (departmentGrouping) DefaultActive() bool    { return false }
func (departmentGrouping) DefaultWeight() float64 { return 0.10 }

const departmentRoomDistanceLimit = 2

func (departmentGrouping) EncodeCSP(m *csp.Model, p *domain.Problem) {
	g := conflict.Build(p)
	g.DeptPairs(func(e1, e2 int) {
		m.Post(csp.Propagator{
			Name:  "department_grouping",
			Scope: []int{e1, e2},
			Check: func(slot, room []int) bool {
				if slot[e1] != slot[e2] {
					return true
				}
				d := room[e1] - room[e2]
				if d < 0 {
					d = -d
				}
				return d <= departmentRoomDistanceLimit
			},
		})
	})
}

func (departmentGrouping) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	g := conflict.Build(p)
	total, n := 0.0, 0
	g.DeptPairs(func(e1, e2 int) {
		pa, oka := a[e1]
		pb, okb := a[e2]
		if !oka || !okb || pa.Slot != pb.Slot {
			return
		}
		d := pa.Room - pb.Room
		if d < 0 {
			d = -d
		}
		total += clamp(100 - 25*float64(d))
		n++
	})
	if n == 0 {
		return domain.MetricScore{Constraint: "department_grouping", Value: 100}
	}
	return domain.MetricScore{Constraint: "department_grouping", Value: clamp(total / float64(n))}
}
