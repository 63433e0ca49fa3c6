package constraints

import "github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"

// canonicalInvigilator returns the invigilator synthesised for exam e under
// placement pl, per the specification's design note: Assignment stays
// exam-only, so invigilator constraints derive a deterministic "room mod |I|"
// mapping for evaluation. Backends that introduce a dedicated invigilator
// variable may ignore this helper entirely.
func canonicalInvigilator(p *domain.Problem, pl domain.Placement) (domain.Invigilator, bool) {
	if len(p.Invigilators) == 0 {
		return domain.Invigilator{}, false
	}
	idx := pl.Room % len(p.Invigilators)
	return p.Invigilators[idx], true
}
