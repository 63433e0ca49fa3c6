package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

func students(ids ...int) map[int]struct{} {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func testBudget() Budget {
	return Budget{WallClock: 5 * time.Second, GapTolerance: 0.10}
}

// S1: sat0 - 2 exams (e0={s0,s1}, e1={s2}), 2 slots, 2 rooms capacity 2.
func sat0Problem() *domain.Problem {
	return &domain.Problem{
		Name: "sat0",
		Rooms: []domain.Room{
			{ID: 0, Capacity: 2},
			{ID: 1, Capacity: 2},
		},
		Slots: []domain.TimeSlot{{ID: 0}, {ID: 1}},
		Exams: []domain.Exam{
			{ID: 0, Students: students(0, 1)},
			{ID: 1, Students: students(2)},
		},
		TotalStudents: 3,
	}
}

// S2: unsat0 - 1 slot, 1 room capacity 1, 1 exam with students {s0, s1}.
func unsat0Problem() *domain.Problem {
	return &domain.Problem{
		Name:          "unsat0",
		Rooms:         []domain.Room{{ID: 0, Capacity: 1}},
		Slots:         []domain.TimeSlot{{ID: 0}},
		Exams:         []domain.Exam{{ID: 0, Students: students(0, 1)}},
		TotalStudents: 2,
	}
}

// S3: consecutive conflict - 2 slots, 2 rooms, e0={s0}, e1={s0}.
func consecutiveConflictProblem() *domain.Problem {
	return &domain.Problem{
		Name: "consecutive_conflict",
		Rooms: []domain.Room{
			{ID: 0, Capacity: 5},
			{ID: 1, Capacity: 5},
		},
		Slots: []domain.TimeSlot{{ID: 0}, {ID: 1}},
		Exams: []domain.Exam{
			{ID: 0, Students: students(0)},
			{ID: 1, Students: students(0)},
		},
		TotalStudents: 1,
	}
}

// S4: three-exam cap - 4 exams disjoint students, 1 slot, 4 rooms,
// max_exams_per_slot=3 in the default active set.
func threeExamCapProblem() *domain.Problem {
	rooms := make([]domain.Room, 4)
	for i := range rooms {
		rooms[i] = domain.Room{ID: i, Capacity: 5}
	}
	exams := make([]domain.Exam, 4)
	for i := range exams {
		exams[i] = domain.Exam{ID: i, Students: students(i)}
	}
	return &domain.Problem{
		Name:          "three_exam_cap",
		Rooms:         rooms,
		Slots:         []domain.TimeSlot{{ID: 0}},
		Exams:         exams,
		TotalStudents: 4,
	}
}

func defaultActive() []string {
	return []string{"single_assignment", "room_conflicts", "room_capacity", "student_spacing", "max_exams_per_slot"}
}

func TestS1SatZ3(t *testing.T) {
	a, err := Get("z3")
	require.NoError(t, err)
	outcome := a.Solve(context.Background(), sat0Problem(), defaultActive(), testBudget())
	require.True(t, outcome.IsSat(), outcome.String())
	assignment := outcome.Assignment()
	require.Len(t, assignment, 2)
	for _, pl := range assignment {
		assert.GreaterOrEqual(t, pl.Slot, 0)
		assert.Less(t, pl.Slot, 2)
		assert.GreaterOrEqual(t, pl.Room, 0)
		assert.Less(t, pl.Room, 2)
	}
}

func TestS2UnsatEveryBackend(t *testing.T) {
	p := unsat0Problem()
	for _, name := range Names() {
		a, err := Get(name)
		require.NoError(t, err)
		outcome := a.Solve(context.Background(), p, defaultActive(), testBudget())
		assert.True(t, outcome.IsUnsat(), "%s: expected Unsat, got %s", name, outcome.String())
	}
}

func TestS3ConsecutiveConflictUnsat(t *testing.T) {
	a, err := Get("z3")
	require.NoError(t, err)
	outcome := a.Solve(context.Background(), consecutiveConflictProblem(), defaultActive(), testBudget())
	assert.True(t, outcome.IsUnsat(), outcome.String())
}

func TestS4ThreeExamCapUnsat(t *testing.T) {
	a, err := Get("z3")
	require.NoError(t, err)
	outcome := a.Solve(context.Background(), threeExamCapProblem(), defaultActive(), testBudget())
	assert.True(t, outcome.IsUnsat(), outcome.String())
}

func TestUnknownSolverName(t *testing.T) {
	_, err := Get("not-a-solver")
	require.Error(t, err)
	var unk *domain.UnknownSolver
	require.ErrorAs(t, err, &unk)
}
