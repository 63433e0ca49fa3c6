package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

const maxExamsPerSlotLimit = 3

// maxExamsPerSlot caps the number of exams scheduled in any one slot,
// independent of room.
type maxExamsPerSlot struct{}

func (maxExamsPerSlot) Name() string           { return "max_exams_per_slot" }
func (maxExamsPerSlot) DefaultActive() bool    { return true }
func (maxExamsPerSlot) DefaultWeight() float64 { return 0.10 }

func (maxExamsPerSlot) EncodeCSP(m *csp.Model, p *domain.Problem) {
	m.Post(csp.Propagator{
		Name: "max_exams_per_slot",
		Check: func(slot, room []int) bool {
			counts := map[int]int{}
			for _, s := range slot {
				counts[s]++
				if counts[s] > maxExamsPerSlotLimit {
					return false
				}
			}
			return true
		},
	})
}

func (maxExamsPerSlot) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	counts := map[int]int{}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		counts[pl.Slot]++
	}
	if len(counts) == 0 {
		return domain.MetricScore{Constraint: "max_exams_per_slot", Value: 100}
	}
	total := 0.0
	for _, n := range counts {
		if n <= maxExamsPerSlotLimit {
			total += 100
		} else {
			total += clamp(100 - 25*float64(n-maxExamsPerSlotLimit))
		}
	}
	return domain.MetricScore{Constraint: "max_exams_per_slot", Value: clamp(total / float64(len(counts)))}
}
