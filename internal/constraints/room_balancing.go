package constraints

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// roomBalancing spreads exams evenly across rooms so no single room is used
// far more than the average, excluding zero-capacity rooms from the count.
type roomBalancing struct{}

func (roomBalancing) Name() string           { return "room_balancing" }
func (roomBalancing) DefaultActive() bool    { return false }
func (roomBalancing) DefaultWeight() float64 { return 0.10 }

func usableRoomIDs(p *domain.Problem) []int {
	var ids []int
	for _, r := range p.Rooms {
		if r.Capacity > 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (roomBalancing) EncodeCSP(m *csp.Model, p *domain.Problem) {
	usable := usableRoomIDs(p)
	if len(usable) == 0 {
		return
	}
	limit := int(math.Ceil(float64(m.NumExams)/float64(len(usable)))) + 1
	m.Post(csp.Propagator{
		Name: "room_balancing",
		Check: func(slot, room []int) bool {
			counts := map[int]int{}
			for _, r := range room {
				counts[r]++
			}
			for _, rid := range usable {
				if counts[rid] > limit {
					return false
				}
			}
			return true
		},
	})
}

func (roomBalancing) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	usable := usableRoomIDs(p)
	if len(usable) == 0 {
		return domain.MetricScore{Constraint: "room_balancing", Value: 100}
	}

	usage := make([]float64, len(usable))
	idx := map[int]int{}
	for i, r := range usable {
		idx[r] = i
	}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		if i, ok := idx[pl.Room]; ok {
			usage[i]++
		}
	}

	mean := stat.Mean(usage, nil)
	maxDeviation := 0.0
	for _, u := range usage {
		d := math.Abs(u - mean)
		if d > maxDeviation {
			maxDeviation = d
		}
	}

	score := clamp(100 - 15*maxDeviation)
	return domain.MetricScore{Constraint: "room_balancing", Value: score}
}
