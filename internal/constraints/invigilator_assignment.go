package constraints

import (
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// invigilatorAssignment assigns a canonical invigilator to each exam (see
// canonicalInvigilator) and enforces the per-day load cap, unavailable
// slots, and no-concurrent-assignment rule.
type invigilatorAssignment struct{}

func (invigilatorAssignment) Name() string           { return "invigilator_assignment" }
func (invigilatorAssignment) DefaultActive() bool    { return false }
func (invigilatorAssignment) DefaultWeight() float64 { return 0.10 }

func (invigilatorAssignment) EncodeCSP(m *csp.Model, p *domain.Problem) {
	if len(p.Invigilators) == 0 {
		return
	}
	m.Post(csp.Propagator{
		Name: "invigilator_assignment",
		Check: func(slot, room []int) bool {
			perInvigSlots := map[int]map[int]bool{}
			perInvigCount := map[int]int{}
			for i := range p.Exams {
				pl := domain.Placement{Slot: slot[i], Room: room[i]}
				invig, ok := canonicalInvigilator(p, pl)
				if !ok {
					continue
				}
				if _, unavailable := invig.UnavailableSlots[pl.Slot]; unavailable {
					return false
				}
				if perInvigSlots[invig.ID] == nil {
					perInvigSlots[invig.ID] = map[int]bool{}
				}
				if perInvigSlots[invig.ID][pl.Slot] {
					return false // concurrent assignment
				}
				perInvigSlots[invig.ID][pl.Slot] = true
				perInvigCount[invig.ID]++

				maxPerDay := invig.MaxExamsPerDay
				if maxPerDay == 0 {
					maxPerDay = domain.DefaultMaxExamsPerDay
				}
				if perInvigCount[invig.ID] > maxPerDay {
					return false
				}
			}
			return true
		},
	})
}

func (invigilatorAssignment) Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore {
	if len(p.Invigilators) == 0 {
		return domain.MetricScore{Constraint: "invigilator_assignment", Value: 100}
	}

	examScoreTotal, examScoreN := 0.0, 0
	perInvigSlots := map[int][]int{}
	perInvigCount := map[int]int{}

	for _, ex := range p.Exams {
		pl, ok := a[ex.ID]
		if !ok {
			continue
		}
		invig, ok := canonicalInvigilator(p, pl)
		if !ok {
			continue
		}
		examScoreN++
		perInvigCount[invig.ID]++

		if _, unavailable := invig.UnavailableSlots[pl.Slot]; unavailable {
			continue // contributes 0 to examScoreTotal
		}

		consecutive := false
		for _, s := range perInvigSlots[invig.ID] {
			d := s - pl.Slot
			if d == 1 || d == -1 {
				consecutive = true
				break
			}
		}
		if consecutive {
			examScoreTotal += 50
		} else {
			examScoreTotal += 100
		}
		perInvigSlots[invig.ID] = append(perInvigSlots[invig.ID], pl.Slot)
	}

	overloadTotal, overloadN := 0.0, 0
	for _, invig := range p.Invigilators {
		maxPerDay := invig.MaxExamsPerDay
		if maxPerDay == 0 {
			maxPerDay = domain.DefaultMaxExamsPerDay
		}
		overflow := perInvigCount[invig.ID] - maxPerDay
		if overflow < 0 {
			overflow = 0
		}
		overloadTotal += clamp(100 - 25*float64(overflow))
		overloadN++
	}

	if examScoreN == 0 {
		return domain.MetricScore{Constraint: "invigilator_assignment", Value: 100}
	}

	examAvg := examScoreTotal / float64(examScoreN)
	overloadAvg := 100.0
	if overloadN > 0 {
		overloadAvg = overloadTotal / float64(overloadN)
	}
	// Equal blend of the two sub-scores; the specification names both
	// components ("overload penalty" and the per-exam availability/
	// consecutive-slot penalties) without a literal combination formula.
	return domain.MetricScore{Constraint: "invigilator_assignment", Value: clamp((examAvg + overloadAvg) / 2)}
}
