package constraints

import (
	"sort"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// invigilatorBreak keeps a canonical invigilator's successive duties apart by
// at least one free slot, the same spirit as studentSpacing but evaluated
// over an invigilator's derived duty roster rather than a student's exams.
type invigilatorBreak struct{}

func (invigilatorBreak) Name() string           { return "invigilator_break" }
func (invigilatorBreak) DefaultActive() bool    { return false }
func (invigilatorBreak) DefaultWeight() float64 { return 0.10 }

func (invigilatorBreak) EncodeCSP(m *csp.Model, p *domain.Problem) {
	if len(p.Invigilators) == 0 {
		return
	}
	for i := 0; i < len(p.Exams); i++ {
		for j := i + 1; j < len(p.Exams); j++ {
			i, j := i, j
			m.Post(csp.Propagator{
				Name:  "invigilator_break",
				Scope: []int{i, j},
				Check: func(slot, room []int) bool {
					pi := domain.Placement{Slot: slot[i], Room: room[i]}
					pj := domain.Placement{Slot: slot[j], Room: room[j]}
					invigI, okI := canonicalInvigilator(p, pi)
					invigJ, okJ := canonicalInvigilator(p, pj)
					if !okI || !okJ || invigI.ID != invigJ.ID {
						return true
					}
					gap := pi.Slot - pj.Slot
					if gap < 0 {
						gap = -gap
					}
					return gap != 1
				},
			})
		}
	}
}

func (invigilatorBreak) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	if len(p.Invigilators) == 0 {
		return domain.MetricScore{Constraint: "invigilator_break", Value: 100}
	}

	dutySlots := map[int][]int{}
	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		invig, ok := canonicalInvigilator(p, pl)
		if !ok {
			continue
		}
		dutySlots[invig.ID] = append(dutySlots[invig.ID], pl.Slot)
	}

	total, n := 0.0, 0
	for _, slots := range dutySlots {
		if len(slots) < 2 {
			continue
		}
		sort.Ints(slots)
		for k := 1; k < len(slots); k++ {
			gap := slots[k] - slots[k-1]
			if gap <= 1 {
				total += 0
			} else {
				total += 100
			}
			n++
		}
	}
	if n == 0 {
		return domain.MetricScore{Constraint: "invigilator_break", Value: 100}
	}
	return domain.MetricScore{Constraint: "invigilator_break", Value: clamp(total / float64(n))}
}
