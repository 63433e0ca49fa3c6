package comparator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/solver"
)

func tinySatProblem() *domain.Problem {
	return &domain.Problem{
		Name:  "sat0",
		Rooms: []domain.Room{{ID: 0, Capacity: 2}, {ID: 1, Capacity: 2}},
		Slots: []domain.TimeSlot{{ID: 0}, {ID: 1}},
		Exams: []domain.Exam{
			{ID: 0, Students: map[int]struct{}{0: {}, 1: {}}},
			{ID: 1, Students: map[int]struct{}{2: {}}},
		},
		TotalStudents: 3,
	}
}

func defaultActive() []string {
	return []string{"single_assignment", "room_conflicts", "room_capacity", "student_spacing", "max_exams_per_slot"}
}

// S6: two adapters sharing the same deterministic CSP engine and variable
// domain produce the same assignment on this tiny instance, so every
// per-metric winner, and the aggregate winner, must be Tie.
func TestS6SameAssignmentTies(t *testing.T) {
	p := tinySatProblem()
	budget := solver.Budget{WallClock: 5 * time.Second, GapTolerance: 0.10}

	report, err := Compare(context.Background(), nil, nil, p, "z3", "ortools", defaultActive(), budget)
	require.NoError(t, err)

	require.True(t, report.OutcomeA.IsSat())
	require.True(t, report.OutcomeB.IsSat())
	assert.Equal(t, domain.WinnerTie, report.Winner)
	for _, m := range report.Metrics {
		assert.Equal(t, domain.WinnerTie, m.Winner, "constraint %s expected Tie", m.Constraint)
	}
}

func TestCompareBothUnsat(t *testing.T) {
	p := &domain.Problem{
		Name:  "unsat0",
		Rooms: []domain.Room{{ID: 0, Capacity: 1}},
		Slots: []domain.TimeSlot{{ID: 0}},
		Exams: []domain.Exam{{ID: 0, Students: map[int]struct{}{0: {}, 1: {}}}},
	}
	budget := solver.Budget{WallClock: 2 * time.Second, GapTolerance: 0.10}

	report, err := Compare(context.Background(), nil, nil, p, "z3", "ortools", defaultActive(), budget)
	require.NoError(t, err)
	assert.True(t, report.BothUnsat)
	assert.Equal(t, domain.WinnerTie, report.Winner)
}

func TestCompareUnknownSolver(t *testing.T) {
	p := tinySatProblem()
	budget := solver.Budget{WallClock: time.Second, GapTolerance: 0.10}

	_, err := Compare(context.Background(), nil, nil, p, "not-a-solver", "ortools", defaultActive(), budget)
	require.Error(t, err)
}
