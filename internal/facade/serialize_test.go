package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

func TestSerializeAssignmentAscendingOrder(t *testing.T) {
	a := domain.Assignment{
		2: {Slot: 0, Room: 1},
		0: {Slot: 1, Room: 0},
		1: {Slot: 0, Room: 0},
	}
	want := "Exam 0: Room 0, Time slot 1\n" +
		"Exam 1: Room 0, Time slot 0\n" +
		"Exam 2: Room 1, Time slot 0\n"
	assert.Equal(t, want, SerializeAssignment(a))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	a := domain.Assignment{
		0: {Slot: 3, Room: 2},
		1: {Slot: 0, Room: 0},
		5: {Slot: 7, Room: 4},
	}
	text := SerializeAssignment(a)
	got := ParseAssignment(text)
	assert.Equal(t, a, got)
}

func TestParseAssignmentSkipsMalformedLines(t *testing.T) {
	text := "Exam 0: Room 1, Time slot 2\n" +
		"garbage line\n" +
		"\n" +
		"Exam 1: Room 3, Time slot 4\n"
	got := ParseAssignment(text)
	assert.Equal(t, domain.Assignment{
		0: {Slot: 2, Room: 1},
		1: {Slot: 4, Room: 3},
	}, got)
}
