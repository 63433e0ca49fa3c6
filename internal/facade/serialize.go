package facade

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

var recordRe = regexp.MustCompile(`^Exam (\d+): Room (\d+), Time slot (\d+)$`)

// SerializeAssignment renders a to the specification's canonical text form,
// one record per line in ascending exam-ID order, as "Exam <e>: Room <r>,
// Time slot <t>".
func SerializeAssignment(a domain.Assignment) string {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	for _, id := range ids {
		pl := a[id]
		fmt.Fprintf(&b, "Exam %d: Room %d, Time slot %d\n", id, pl.Room, pl.Slot)
	}
	return b.String()
}

// ParseAssignment parses the canonical text form back into an Assignment.
// Malformed lines are skipped, mirroring the tolerant line-based parsing
// used by the instance ingester.
func ParseAssignment(text string) domain.Assignment {
	a := domain.Assignment{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := recordRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		examID, _ := strconv.Atoi(m[1])
		room, _ := strconv.Atoi(m[2])
		slot, _ := strconv.Atoi(m[3])
		a[examID] = domain.Placement{Slot: slot, Room: room}
	}
	return a
}
