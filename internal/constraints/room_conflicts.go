package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// roomConflicts forbids two distinct exams from sharing a (slot, room) cell.
type roomConflicts struct{}

func (roomConflicts) Name() string           { return "room_conflicts" }
func (roomConflicts) DefaultActive() bool    { return true }
func (roomConflicts) DefaultWeight() float64 { return 0.15 }

func (roomConflicts) EncodeCSP(m *csp.Model, p *domain.Problem) {
	for e1 := 0; e1 < m.NumExams; e1++ {
		for e2 := e1 + 1; e2 < m.NumExams; e2++ {
			e1, e2 := e1, e2
			m.Post(csp.Propagator{
				Name:  "room_conflicts",
				Scope: []int{e1, e2},
				Check: func(slot, room []int) bool {
					return !(slot[e1] == slot[e2] && room[e1] == room[e2])
				},
			})
		}
	}
}

func (roomConflicts) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	type cell struct{ slot, room int }
	counts := map[cell]int{}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		counts[cell{pl.Slot, pl.Room}]++
	}
	if len(counts) == 0 {
		return domain.MetricScore{Constraint: "room_conflicts", Value: 100}
	}
	sum := 0.0
	for _, n := range counts {
		sum += clamp(100 - 50*float64(n-1))
	}
	return domain.MetricScore{Constraint: "room_conflicts", Value: clamp(sum / float64(len(counts)))}
}
