package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

const sat0 = `Number of students: 3
Number of exams: 2
Number of slots: 2
Number of rooms: 2
Room 0 capacity: 2
Room 1 capacity: 2
0 0
0 1
1 2
`

func TestParseSat0(t *testing.T) {
	p, err := parse("sat0", strings.NewReader(sat0), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumExams())
	assert.Equal(t, 2, p.NumSlots())
	assert.Equal(t, 2, p.NumRooms())
	assert.Equal(t, 3, p.TotalStudents)
	assert.Len(t, p.Exams[0].Students, 2)
	assert.Len(t, p.Exams[1].Students, 1)
}

func TestParseTotalStudentsWidenedByMaxID(t *testing.T) {
	instance := `Number of students: 1
Number of exams: 1
Number of slots: 1
Number of rooms: 1
Room 0 capacity: 5
0 7
`
	p, err := parse("widened", strings.NewReader(instance), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, p.TotalStudents) // invariant 1: total_students >= 1 + max student id
}

func TestParseMissingHeader(t *testing.T) {
	instance := `Number of students: 1
Number of exams: 1
`
	_, err := parse("bad", strings.NewReader(instance), nil)
	require.Error(t, err)
	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad", pe.File)
}

func TestParseMalformedEnrollmentLine(t *testing.T) {
	instance := `Number of students: 1
Number of exams: 1
Number of slots: 1
Number of rooms: 1
Room 0 capacity: 5
not-a-number here
`
	_, err := parse("bad2", strings.NewReader(instance), nil)
	require.Error(t, err)
	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 6, pe.Line)
}

func TestParseExamWithNoStudents(t *testing.T) {
	instance := `Number of students: 1
Number of exams: 2
Number of slots: 1
Number of rooms: 1
Room 0 capacity: 5
0 0
`
	_, err := parse("bad3", strings.NewReader(instance), nil)
	require.Error(t, err)
}

func TestParseWhitespaceTolerance(t *testing.T) {
	instance := "Number of students:   2\nNumber of exams: 1\nNumber of slots: 1\nNumber of rooms: 1\nRoom 0 capacity:   4\n   0    0  \n  0   1\n"
	p, err := parse("ws", strings.NewReader(instance), nil)
	require.NoError(t, err)
	assert.Len(t, p.Exams[0].Students, 2)
}
