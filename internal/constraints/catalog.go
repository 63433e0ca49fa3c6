// Package constraints is the process-wide catalog of scheduling constraints.
// Every entry supplies a CSP encoding (shared by every solver adapter via
// internal/csp) and a pure evaluation function used for scoring arbitrary
// candidate assignments. The registry is built once at package init and is
// read-only thereafter, per the specification's "Globals" design note.
package constraints

import (
	"sort"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Constraint is one catalog entry: a stable name, a default-activation flag,
// a CSP encoder applied during solving, and a pure evaluator used for
// scoring. Encoding and evaluation are deliberately separate views of the
// same rule — one hard, one soft — per the specification.
type Constraint interface {
	Name() string
	DefaultActive() bool
	EncodeCSP(m *csp.Model, p *domain.Problem)
	Evaluate(p *domain.Problem, a domain.Assignment) domain.MetricScore
}

// DefaultWeight is this constraint's share of the evaluator's weighted mean
// when active (see internal/evaluator). Two catalog entries —
// max_exams_per_slot and invigilator_assignment — have no weight in the
// specification's §4.4 table despite the former being in the default active
// set; both are assigned 0.10 here, the same weight as the table's other
// secondary constraints. See DESIGN.md for the full rationale.
type DefaultWeight interface {
	DefaultWeight() float64
}

var registry = map[string]Constraint{}
var order []string

func register(c Constraint) {
	if _, exists := registry[c.Name()]; exists {
		panic("constraints: duplicate registration for " + c.Name())
	}
	registry[c.Name()] = c
	order = append(order, c.Name())
}

func init() {
	register(singleAssignment{})
	register(roomConflicts{})
	register(roomCapacity{})
	register(studentSpacing{})
	register(maxExamsPerSlot{})
	register(morningSessions{})
	register(examGroupSize{})
	register(departmentGrouping{})
	register(roomBalancing{})
	register(invigilatorAssignment{})
	register(breakPeriod{})
	register(invigilatorBreak{})
}

// Get returns the named constraint, or ok=false if the catalog has no such
// entry.
func Get(name string) (Constraint, bool) {
	c, ok := registry[name]
	return c, ok
}

// MustGet returns the named constraint or panics; only safe for names the
// caller has already validated against the catalog (e.g. the compiled-in
// default set).
func MustGet(name string) Constraint {
	c, ok := registry[name]
	if !ok {
		panic("constraints: unknown constraint " + name)
	}
	return c
}

// Names returns every registered constraint name in a stable, registration
// order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// DefaultActiveSet returns the names active by default, sorted for
// deterministic output.
func DefaultActiveSet() []string {
	var out []string
	for _, name := range order {
		if registry[name].DefaultActive() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks that every name in names is present in the catalog,
// returning *domain.UnknownConstraint for the first one that is not.
func Validate(names []string) error {
	for _, n := range names {
		if _, ok := registry[n]; !ok {
			return &domain.UnknownConstraint{Name: n}
		}
	}
	return nil
}

// Resolve returns the catalog entries for names, in the order given. The
// caller must have already validated names.
func Resolve(names []string) []Constraint {
	out := make([]Constraint, 0, len(names))
	for _, n := range names {
		out = append(out, registry[n])
	}
	return out
}

// clamp keeps a score within the [0, 100] range every evaluator must return.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
