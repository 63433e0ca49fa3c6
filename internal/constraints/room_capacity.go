package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// roomCapacity requires the students sitting in a room at a given slot not
// to exceed that room's capacity. A zero-capacity room is still bound by the
// hard encoding below — it may never hold any student — but is excluded from
// the soft metric, where a 0/0 utilisation ratio is meaningless.
type roomCapacity struct{}

func (roomCapacity) Name() string           { return "room_capacity" }
func (roomCapacity) DefaultActive() bool    { return true }
func (roomCapacity) DefaultWeight() float64 { return 0.10 }

func (roomCapacity) EncodeCSP(m *csp.Model, p *domain.Problem) {
	m.Post(csp.Propagator{
		Name: "room_capacity",
		// Scope nil: depends on every exam sharing a (slot,room), which is
		// only known once the whole assignment is bound.
		Check: func(slot, room []int) bool {
			type cell struct{ slot, room int }
			sums := map[cell]int{}
			for i, ex := range p.Exams {
				sums[cell{slot[i], room[i]}] += len(ex.Students)
			}
			for c, students := range sums {
				if c.room < 0 || c.room >= len(p.Rooms) {
					continue
				}
				cap := p.Rooms[c.room].Capacity
				if students > cap {
					return false
				}
			}
			return true
		},
	})
}

func (roomCapacity) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	type cell struct{ slot, room int }
	sums := map[cell]int{}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		sums[cell{pl.Slot, pl.Room}] += len(ex.Students)
	}

	total, n := 0.0, 0
	for c, students := range sums {
		if c.room < 0 || c.room >= len(p.Rooms) {
			continue
		}
		cap := p.Rooms[c.room].Capacity
		if cap == 0 {
			continue
		}
		u := 100 * float64(students) / float64(cap)
		var score float64
		if u <= 100 {
			score = u
		} else {
			score = clamp(100 - 2*(u-100))
		}
		total += score
		n++
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "room_capacity", Value: 100}
	}
	return domain.MetricScore{Constraint: "room_capacity", Value: clamp(total / float64(n))}
}
