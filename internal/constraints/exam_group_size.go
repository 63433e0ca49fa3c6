package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// examGroupSize encourages similarly-sized exams (student counts within 20%
// of each other) to sit in adjacent slots, which tends to keep invigilation
// and seating-plan effort proportional across a day.
type examGroupSize struct{}

func (examGroupSize) Name() string           { return "exam_group_size" }
func (examGroupSize) DefaultActive() bool    { return false }
func (examGroupSize) DefaultWeight() float64 { return 0.05 }

func similarSized(a, b domain.Exam) bool {
	na, nb := float64(len(a.Students)), float64(len(b.Students))
	larger := na
	if nb > larger {
		larger = nb
	}
	if larger == 0 {
		return false
	}
	diff := na - nb
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.2*larger
}

func (examGroupSize) EncodeCSP(m *csp.Model, p *domain.Problem) {
	for i := 0; i < len(p.Exams); i++ {
		for j := i + 1; j < len(p.Exams); j++ {
			if !similarSized(p.Exams[i], p.Exams[j]) {
				continue
			}
			i, j := i, j
			m.Post(csp.Propagator{
				Name:  "exam_group_size",
				Scope: []int{i, j},
				Check: func(slot, room []int) bool {
					gap := slot[i] - slot[j]
					if gap < 0 {
						gap = -gap
					}
					return gap == 1
				},
			})
		}
	}
}

func (examGroupSize) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	total, n := 0.0, 0
	for i := 0; i < len(p.Exams); i++ {
		for j := i + 1; j < len(p.Exams); j++ {
			if !similarSized(p.Exams[i], p.Exams[j]) {
				continue
			}
			pa, oka := a[p.Exams[i].ID]
			pb, okb := a[p.Exams[j].ID]
			if !oka || !okb {
				continue
			}
			k := pa.Slot - pb.Slot
			if k < 0 {
				k = -k
			}
			var score float64
			switch {
			case k == 1:
				score = 100
			case k == 0:
				score = 50
			default:
				score = clamp(100 - 20*float64(k-1))
			}
			total += score
			n++
		}
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "exam_group_size", Value: 100}
	}
	return domain.MetricScore{Constraint: "exam_group_size", Value: clamp(total / float64(n))}
}
