package csp

// Variable is a finite-domain decision variable. Exam-timetabling models use
// two per exam: its slot variable and its room variable.
type Variable struct {
	ID     int
	Name   string
	domain Domain
}

// NewVariable creates a variable with the given initial domain.
func NewVariable(id int, name string, domain Domain) *Variable {
	return &Variable{ID: id, Name: name, domain: domain}
}

// Domain returns the variable's current domain.
func (v *Variable) Domain() Domain { return v.domain }

// SetDomain replaces the variable's domain (used during search and undo).
func (v *Variable) SetDomain(d Domain) { v.domain = d }

// IsBound reports whether the variable's domain has collapsed to one value.
func (v *Variable) IsBound() bool { return v.domain.IsSingleton() }

// Value returns the bound value; undefined if not IsBound.
func (v *Variable) Value() int { return v.domain.SingletonValue() }
