package csp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveFindsDistinctRooms(t *testing.T) {
	m := NewModel(2, 1, 2) // 2 exams, 1 slot, 2 rooms
	m.Post(Propagator{
		Name:  "distinct_rooms",
		Scope: []int{0, 1},
		Check: func(slot, room []int) bool { return room[0] != room[1] },
	})

	res := m.Solve(context.Background(), StaticOrder, time.Time{})
	require.True(t, res.Found)
	assert.NotEqual(t, res.Room[0], res.Room[1])
}

func TestSolveUnsatWhenNoRoomsFit(t *testing.T) {
	m := NewModel(2, 1, 1) // both exams forced into the single room
	m.Post(Propagator{
		Name:  "distinct_rooms",
		Scope: []int{0, 1},
		Check: func(slot, room []int) bool { return room[0] != room[1] },
	})

	res := m.Solve(context.Background(), MostConstrainedOrder, time.Time{})
	assert.False(t, res.Found)
}

func TestSolveMinimizingSpanPrefersNarrowWindow(t *testing.T) {
	m := NewModel(2, 4, 1) // 2 exams, 4 slots, 1 room each must differ in slot
	m.Post(Propagator{
		Name:  "distinct_slots",
		Scope: []int{0, 1},
		Check: func(slot, room []int) bool { return slot[0] != slot[1] },
	})

	res := m.SolveMinimizingSpan(context.Background(), 4, StaticOrder, time.Time{})
	require.True(t, res.Found)
	span := abs(res.Slot[0] - res.Slot[1])
	assert.Equal(t, 1, span)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
