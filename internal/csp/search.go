package csp

import (
	"context"
	"time"
)

// VariableOrder selects the next unbound exam to branch on, given which
// exams are already bound. Returns -1 if none remain.
type VariableOrder func(m *Model, bound []bool) int

// StaticOrder branches on exams in ascending ID order — the plain
// bounded-integer style used by the "SMT" adapter.
func StaticOrder(m *Model, bound []bool) int {
	for e := 0; e < m.NumExams; e++ {
		if !bound[e] {
			return e
		}
	}
	return -1
}

// MostConstrainedOrder branches on the exam with the smallest combined
// slot×room domain size — a fail-first heuristic approximating the
// reified-boolean forward-checking style used by the "CP-SAT" adapter.
func MostConstrainedOrder(m *Model, bound []bool) int {
	best, bestSize := -1, -1
	for e := 0; e < m.NumExams; e++ {
		if bound[e] {
			continue
		}
		size := m.SlotVars[e].Domain().Count() * m.RoomVars[e].Domain().Count()
		if best == -1 || size < bestSize {
			best, bestSize = e, size
		}
	}
	return best
}

// Result is the outcome of a bounded search.
type Result struct {
	Slot        []int // indexed by exam ID; valid only if Found
	Room        []int
	Found       bool
	NodesWalked int
	DeadlineHit bool
}

// Solve performs chronological backtracking search for any assignment
// satisfying every posted propagator, respecting a wall-clock deadline.
// order selects which adapter-flavoured branching strategy to use.
func (m *Model) Solve(ctx context.Context, order VariableOrder, deadline time.Time) Result {
	m.compileScopes()
	slot := make([]int, m.NumExams)
	room := make([]int, m.NumExams)
	bound := make([]bool, m.NumExams)

	res := Result{}
	deadlineHit := false

	var backtrack func() bool
	backtrack = func() bool {
		res.NodesWalked++
		if res.NodesWalked%512 == 0 {
			select {
			case <-ctx.Done():
				deadlineHit = true
				return false
			default:
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				deadlineHit = true
				return false
			}
		}

		e := order(m, bound)
		if e == -1 {
			return m.checkAll(slot, room)
		}

		slotDom := m.SlotVars[e].Domain().Slice()
		roomDom := m.RoomVars[e].Domain().Slice()
		for _, s := range slotDom {
			for _, r := range roomDom {
				slot[e], room[e] = s, r
				bound[e] = true

				if m.checkScoped(e, slot, room, bound) {
					if backtrack() {
						return true
					}
				}

				bound[e] = false
				if deadlineHit {
					return false
				}
			}
		}
		return false
	}

	found := backtrack()
	res.Found = found
	res.DeadlineHit = deadlineHit
	if found {
		res.Slot = append([]int(nil), slot...)
		res.Room = append([]int(nil), room...)
	}
	return res
}

// checkScoped runs every propagator whose scope completes at exam e (i.e.
// every exam in its Scope is now bound).
func (m *Model) checkScoped(e int, slot, room []int, bound []bool) bool {
	for _, idx := range m.scopeByExam[e] {
		p := m.Propagators[idx]
		ready := true
		for _, se := range p.Scope {
			if !bound[se] {
				ready = false
				break
			}
		}
		if ready && !p.Check(slot, room) {
			return false
		}
	}
	return true
}

// checkAll runs every unscoped propagator against the complete assignment.
func (m *Model) checkAll(slot, room []int) bool {
	for _, idx := range m.unscopedProps {
		if !m.Propagators[idx].Check(slot, room) {
			return false
		}
	}
	return true
}
