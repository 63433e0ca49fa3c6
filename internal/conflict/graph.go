// Package conflict builds a graph view of a scheduling problem: exams sharing
// students become weighted edges, and exams sharing a department become a
// second edge set. The student_spacing encoder and the department_grouping
// encoder and evaluator consume this view instead of running raw O(E^2)
// loops inline.
package conflict

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/core"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Graph is the conflict view of a Problem. Student edges carry the number of
// students two exams share as their weight; department edges are unweighted
// (weight 1) and only connect exams that declare the same department tag.
type Graph struct {
	Student *core.Graph
	Dept    *core.Graph
}

func examVertex(id int) string { return strconv.Itoa(id) }

// Build materialises the conflict graph for p. It is O(E^2) in the worst
// case (every exam pair is inspected once) and is meant to be built once per
// Evaluate/solve call and reused, per the spec's pairwise work bound.
func Build(p *domain.Problem) *Graph {
	student := core.NewGraph(core.WithWeighted())
	dept := core.NewGraph()

	for _, ex := range p.Exams {
		_ = student.AddVertex(examVertex(ex.ID))
		_ = dept.AddVertex(examVertex(ex.ID))
	}

	for i := 0; i < len(p.Exams); i++ {
		for j := i + 1; j < len(p.Exams); j++ {
			a, b := p.Exams[i], p.Exams[j]
			if shared := sharedStudents(a, b); shared > 0 {
				_, _ = student.AddEdge(examVertex(a.ID), examVertex(b.ID), int64(shared))
			}
			if a.HasDepartment() && b.HasDepartment() && a.Department == b.Department {
				_, _ = dept.AddEdge(examVertex(a.ID), examVertex(b.ID), 1)
			}
		}
	}

	return &Graph{Student: student, Dept: dept}
}

func sharedStudents(a, b domain.Exam) int {
	small, large := a.Students, b.Students
	if len(b.Students) < len(a.Students) {
		small, large = b.Students, a.Students
	}
	n := 0
	for s := range small {
		if _, ok := large[s]; ok {
			n++
		}
	}
	return n
}

// StudentPairs yields every exam pair sharing at least one student, together
// with the number of students shared, by walking the edges of the student
// graph once.
func (g *Graph) StudentPairs(visit func(examA, examB, shared int)) {
	for _, e := range g.Student.Edges() {
		a, b := mustAtoi(e.From), mustAtoi(e.To)
		visit(a, b, int(e.Weight))
	}
}

// DeptPairs yields every same-department exam pair by walking the edges of
// the department graph once.
func (g *Graph) DeptPairs(visit func(examA, examB int)) {
	for _, e := range g.Dept.Edges() {
		visit(mustAtoi(e.From), mustAtoi(e.To))
	}
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("conflict: non-integer vertex id %q", s))
	}
	return n
}
