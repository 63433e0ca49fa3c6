package csp

import "fmt"

// Propagator is one constraint's declarative encoding against the shared
// engine. Rather than full arc-consistency propagation, each propagator
// names the exam indices it needs bound before it can be evaluated (Scope)
// and a Check run once every exam in Scope has a slot and a room. An empty
// Scope means "needs every exam bound", i.e. the constraint is only checked
// at a complete leaf — the correct but least-pruning encoding, used by
// whole-assignment constraints such as room_capacity. Pairwise constraints
// instead scope themselves to the two exams involved, so Check fires as soon
// as both are assigned. Each constraint chooses its own scope; every adapter
// posts the same propagators.
type Propagator struct {
	Name  string
	Scope []int // exam indices; nil/empty means "all exams"
	Check func(slot, room []int) bool
}

// Model is a constraint satisfaction problem over exam-indexed slot and room
// variables: conceptually slot[e] ∈ [0,T) and room[e] ∈ [0,R) for every exam
// e, per the specification's common adapter contract.
type Model struct {
	NumExams      int
	SlotVars      []*Variable
	RoomVars      []*Variable
	Propagators   []Propagator
	scopeByExam   [][]int // propagator indices scoped to each exam (for forward checking)
	unscopedProps []int   // propagator indices with empty scope
}

// NewModel creates a model with slot[e] ∈ [0,numSlots) and room[e] ∈
// [0,numRooms) for each of numExams exams.
func NewModel(numExams, numSlots, numRooms int) *Model {
	m := &Model{NumExams: numExams}
	m.SlotVars = make([]*Variable, numExams)
	m.RoomVars = make([]*Variable, numExams)
	for e := 0; e < numExams; e++ {
		m.SlotVars[e] = NewVariable(e, fmt.Sprintf("slot_%d", e), FullDomain(numSlots))
		m.RoomVars[e] = NewVariable(e, fmt.Sprintf("room_%d", e), FullDomain(numRooms))
	}
	return m
}

// Post adds a propagator to the model.
func (m *Model) Post(p Propagator) {
	m.Propagators = append(m.Propagators, p)
}

// RestrictSlotDomain intersects every exam's slot domain with [lo, hi]
// inclusive.
// Used by the MIP-style adapter's span-minimising branch and bound.
func (m *Model) RestrictSlotDomain(numSlots, lo, hi int) {
	for _, v := range m.SlotVars {
		d := v.Domain()
		for val := 0; val < numSlots; val++ {
			if val < lo || val > hi {
				if d.Has(val) {
					d = d.Without(val)
				}
			}
		}
		v.SetDomain(d)
	}
}

// Violations counts how many posted propagators reject a complete
// candidate assignment. Metaheuristic adapters (local search, tabu,
// evolutionary) use this as their fitness function in place of a native
// solver's objective: zero violations is a feasible solution.
func (m *Model) Violations(slot, room []int) int {
	n := 0
	for _, p := range m.Propagators {
		if !p.Check(slot, room) {
			n++
		}
	}
	return n
}

// compileScopes groups propagator indices by the highest-index exam in
// their Scope, so the search can fire a check exactly once all of that
// propagator's exams are bound. Unscoped propagators run only at a complete
// leaf.
func (m *Model) compileScopes() {
	m.scopeByExam = make([][]int, m.NumExams)
	m.unscopedProps = nil
	for i, p := range m.Propagators {
		if len(p.Scope) == 0 {
			m.unscopedProps = append(m.unscopedProps, i)
			continue
		}
		last := 0
		for _, e := range p.Scope {
			if e > last {
				last = e
			}
		}
		m.scopeByExam[last] = append(m.scopeByExam[last], i)
	}
}
