package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// S5: deterministic scoring - 1 exam, 8 students, 2 slots, 2 rooms capacity
// 10 each, exam placed in room 0 at slot 0.
func TestS5DeterministicScoring(t *testing.T) {
	students := make(map[int]struct{}, 8)
	for i := 0; i < 8; i++ {
		students[i] = struct{}{}
	}
	p := &domain.Problem{
		Name:          "deterministic_scoring",
		Rooms:         []domain.Room{{ID: 0, Capacity: 10}, {ID: 1, Capacity: 10}},
		Slots:         []domain.TimeSlot{{ID: 0}, {ID: 1}},
		Exams:         []domain.Exam{{ID: 0, Students: students}},
		TotalStudents: 8,
	}
	a := domain.Assignment{0: {Slot: 0, Room: 0}}

	report, err := Evaluate(p, a, []string{
		"single_assignment", "room_conflicts", "room_capacity", "student_spacing", "max_exams_per_slot",
	})
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, m := range report.Metrics {
		byName[m.Constraint] = m.Value
	}

	assert.InDelta(t, 80.0, byName["room_capacity"], 0.001)
	assert.InDelta(t, 100.0, byName["room_conflicts"], 0.001)
	assert.InDelta(t, 100.0, byName["single_assignment"], 0.001)
	assert.InDelta(t, 100.0, byName["student_spacing"], 0.001)
	assert.InDelta(t, 100.0, byName["max_exams_per_slot"], 0.001)
}

func TestEvaluateRejectsOutOfBoundsAssignment(t *testing.T) {
	p := &domain.Problem{
		Name:  "tiny",
		Rooms: []domain.Room{{ID: 0, Capacity: 1}},
		Slots: []domain.TimeSlot{{ID: 0}},
		Exams: []domain.Exam{{ID: 0, Students: map[int]struct{}{0: {}}}},
	}
	a := domain.Assignment{0: {Slot: 0, Room: 5}}

	_, err := Evaluate(p, a, nil)
	require.Error(t, err)
	var invalid *domain.InvalidAssignment
	require.ErrorAs(t, err, &invalid)
}
