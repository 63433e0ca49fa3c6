// Package ingest parses the line-oriented exam-timetabling instance format
// described in the specification into a domain.Problem value.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

var headerRe = regexp.MustCompile(`^\s*([A-Za-z0-9 _\-]+?)\s*:\s*(\d+)\s*$`)
var enrollmentRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s*$`)

// Load reads the instance file at path and returns a validated Problem, or a
// *domain.ParseError describing the first malformed line encountered.
func Load(path string, log *zap.Logger) (*domain.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening instance file: %w", err)
	}
	defer f.Close()

	p, err := parse(filepathBase(path), f, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func filepathBase(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

type lineReader struct {
	scanner *bufio.Scanner
	lineNo  int
	file    string
}

func newLineReader(file string, r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r), file: file}
}

// next returns the next line, skipping none (blank lines are returned as-is
// so headers and enrollment parsing can decide what to do with them).
func (lr *lineReader) next() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}
	lr.lineNo++
	return lr.scanner.Text(), true
}

func (lr *lineReader) fail(reason string) error {
	return &domain.ParseError{File: lr.file, Line: lr.lineNo, Reason: reason}
}

// readHeader consumes the next non-blank line and requires it to match
// "<name>:\s*(\d+)" for the given expected name (case-insensitive, spacing
// tolerant). Returns the parsed integer.
func readHeader(lr *lineReader, expectedName string) (int, error) {
	line, ok := lr.next()
	for ok && strings.TrimSpace(line) == "" {
		line, ok = lr.next()
	}
	if !ok {
		return 0, lr.fail(fmt.Sprintf("expected header %q, reached end of file", expectedName))
	}
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return 0, lr.fail(fmt.Sprintf("malformed header, expected %q: %q", expectedName, line))
	}
	if !strings.EqualFold(strings.TrimSpace(m[1]), expectedName) {
		return 0, lr.fail(fmt.Sprintf("expected header %q, found %q", expectedName, m[1]))
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, lr.fail(fmt.Sprintf("malformed integer in header %q: %v", expectedName, err))
	}
	return n, nil
}

func parse(file string, r io.Reader, log *zap.Logger) (*domain.Problem, error) {
	lr := newLineReader(file, r)

	numStudents, err := readHeader(lr, "Number of students")
	if err != nil {
		return nil, err
	}
	numExams, err := readHeader(lr, "Number of exams")
	if err != nil {
		return nil, err
	}
	numSlots, err := readHeader(lr, "Number of slots")
	if err != nil {
		return nil, err
	}
	numRooms, err := readHeader(lr, "Number of rooms")
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Debug("parsed instance header",
			zap.String("file", file),
			zap.Int("students", numStudents),
			zap.Int("exams", numExams),
			zap.Int("slots", numSlots),
			zap.Int("rooms", numRooms),
		)
	}

	rooms := make([]domain.Room, numRooms)
	for r := 0; r < numRooms; r++ {
		cap, err := readHeader(lr, fmt.Sprintf("Room %d capacity", r))
		if err != nil {
			return nil, err
		}
		rooms[r] = domain.Room{ID: r, Capacity: cap}
	}

	slots := make([]domain.TimeSlot, numSlots)
	for t := range slots {
		slots[t] = domain.TimeSlot{ID: t}
	}

	exams := make([]domain.Exam, numExams)
	for e := range exams {
		exams[e] = domain.Exam{ID: e, Students: make(map[int]struct{})}
	}

	maxStudentSeen := -1
	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := enrollmentRe.FindStringSubmatch(line)
		if m == nil {
			return nil, lr.fail(fmt.Sprintf("malformed enrollment line: %q", line))
		}
		examID, _ := strconv.Atoi(m[1])
		studentID, _ := strconv.Atoi(m[2])
		if examID < 0 || examID >= numExams {
			return nil, lr.fail(fmt.Sprintf("enrollment references out-of-range exam %d", examID))
		}
		exams[examID].Students[studentID] = struct{}{}
		if studentID > maxStudentSeen {
			maxStudentSeen = studentID
		}
	}

	for _, ex := range exams {
		if len(ex.Students) == 0 {
			return nil, &domain.ParseError{File: file, Line: lr.lineNo, Reason: fmt.Sprintf("exam %d has no enrolled students", ex.ID)}
		}
	}

	totalStudents := numStudents
	if maxStudentSeen+1 > totalStudents {
		totalStudents = maxStudentSeen + 1
	}

	p := &domain.Problem{
		Name:          file,
		Rooms:         rooms,
		Slots:         slots,
		Exams:         exams,
		TotalStudents: totalStudents,
	}

	return p, nil
}
