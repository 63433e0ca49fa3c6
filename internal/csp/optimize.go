package csp

import (
	"context"
	"time"
)

// SolveMinimizingSpan searches for increasingly narrow windows of slots
// [lo, lo+w] and returns the first feasible assignment found whose slot
// usage fits within the narrowest window tried, approximating the
// min(max_t - min_t) objective from the MIP-style adapter without requiring
// a true ILP solver. Candidate windows are tried in increasing width order
// so the first success is span-optimal or better, mirroring a branch-and-
// bound incumbent search with the objective as the branching axis.
func (m *Model) SolveMinimizingSpan(ctx context.Context, numSlots int, order VariableOrder, deadline time.Time) Result {
	type savedDomain struct {
		slot []Domain
	}
	save := func() savedDomain {
		s := make([]Domain, len(m.SlotVars))
		for i, v := range m.SlotVars {
			s[i] = v.Domain()
		}
		return savedDomain{slot: s}
	}
	restore := func(s savedDomain) {
		for i, v := range m.SlotVars {
			v.SetDomain(s.slot[i])
		}
	}

	best := Result{}
	orig := save()

	for width := 0; width < numSlots; width++ {
		for lo := 0; lo+width < numSlots; lo++ {
			restore(orig)
			m.RestrictSlotDomain(numSlots, lo, lo+width)

			res := m.Solve(ctx, order, deadline)
			if res.Found {
				restore(orig)
				return res
			}
			if res.DeadlineHit {
				restore(orig)
				return best
			}
		}
	}

	restore(orig)
	return best
}
