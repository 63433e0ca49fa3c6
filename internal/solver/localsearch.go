package solver

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Default parameters, used when localSearchAdapter is constructed as a
// zero-value localSearchAdapter{}.
const (
	localSearchMaxAttempts   = 50
	localSearchMaxIterations = 1000
	localSearchRandomJumpP   = 0.1
)

// localSearchAdapter builds a greedy initial assignment (exams ordered by
// descending student count, each placed in the (room, slot) with the fewest
// violations against what's already placed), then hill-climbs over
// single-exam room/slot moves, taking a random neighbour when no move
// improves. Max attempts 50, max iterations 1000 and random-jump
// probability 0.1 are the specification's defaults.
type localSearchAdapter struct {
	MaxAttempts   int
	MaxIterations int
	RandomJumpP   float64
}

func (localSearchAdapter) Name() string { return "local" }

func (a localSearchAdapter) maxAttempts() int {
	if a.MaxAttempts > 0 {
		return a.MaxAttempts
	}
	return localSearchMaxAttempts
}

func (a localSearchAdapter) maxIterations() int {
	if a.MaxIterations > 0 {
		return a.MaxIterations
	}
	return localSearchMaxIterations
}

func (a localSearchAdapter) randomJumpP() float64 {
	if a.RandomJumpP > 0 {
		return a.RandomJumpP
	}
	return localSearchRandomJumpP
}

func (a localSearchAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	start := time.Now()
	cset, err := resolveConstraints(active)
	if err != nil {
		return domain.ErrorOutcome(elapsedMS(start), err.Error())
	}

	m := csp.NewModel(p.NumExams(), p.NumSlots(), p.NumRooms())
	for _, c := range cset {
		c.EncodeCSP(m, p)
	}

	maxAttempts := a.maxAttempts()
	maxIterations := a.maxIterations()
	randomJumpP := a.randomJumpP()

	deadline := start.Add(budget.WallClock)
	rng := rand.New(rand.NewSource(1))

	bestSlot, bestRoom, bestViolations := greedyInitialSolution(p, m)
	if bestViolations == 0 {
		return domain.Sat(toAssignment(p, bestSlot, bestRoom), elapsedMS(start))
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, true)
		default:
		}
		if time.Now().After(deadline) {
			return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, true)
		}

		curSlot, curRoom, curViolations := greedyInitialSolution(p, m)
		if curViolations == 0 {
			return domain.Sat(toAssignment(p, curSlot, curRoom), elapsedMS(start))
		}

		for iter := 0; iter < maxIterations; iter++ {
			if time.Now().After(deadline) {
				return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, true)
			}

			nbSlot, nbRoom, nbViolations, found := bestNeighbour(p, m, curSlot, curRoom, curViolations)
			if !found || nbViolations >= curViolations {
				if rng.Float64() < randomJumpP {
					curSlot, curRoom, curViolations = randomNeighbour(p, m, curSlot, curRoom, rng)
					continue
				}
				break
			}

			curSlot, curRoom, curViolations = nbSlot, nbRoom, nbViolations
			if curViolations < bestViolations {
				bestSlot, bestRoom, bestViolations = curSlot, curRoom, curViolations
			}
			if curViolations == 0 {
				return domain.Sat(toAssignment(p, curSlot, curRoom), elapsedMS(start))
			}
		}
	}

	return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, false)
}

func finishLocalSearch(p *domain.Problem, slot, room []int, violations int, start time.Time, budgetHit bool) domain.SolveOutcome {
	if violations > 0 {
		return domain.UnsatOutcome(elapsedMS(start))
	}
	a := toAssignment(p, slot, room)
	if budgetHit {
		return domain.SatWithBudget(a, elapsedMS(start))
	}
	return domain.Sat(a, elapsedMS(start))
}

// greedyInitialSolution places exams in descending student-count order,
// choosing for each the (slot, room) that minimises violations against the
// exams already placed.
func greedyInitialSolution(p *domain.Problem, m *csp.Model) ([]int, []int, int) {
	n := p.NumExams()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return len(p.Exams[order[i]].Students) > len(p.Exams[order[j]].Students)
	})

	slot := make([]int, n)
	room := make([]int, n)
	placed := make([]bool, n)

	for _, e := range order {
		bestSlot, bestRoom, bestV := 0, 0, -1
		for s := 0; s < p.NumSlots(); s++ {
			for r := 0; r < p.NumRooms(); r++ {
				slot[e], room[e] = s, r
				v := partialViolations(m, slot, room, placed, e)
				if bestV == -1 || v < bestV {
					bestV, bestSlot, bestRoom = v, s, r
				}
			}
		}
		slot[e], room[e] = bestSlot, bestRoom
		placed[e] = true
	}

	return slot, room, m.Violations(slot, room)
}

// partialViolations counts violations among propagators whose scope is
// already fully decided (every scoped exam placed, or e itself if e is in
// scope), approximating incremental conflict counting during construction.
func partialViolations(m *csp.Model, slot, room []int, placed []bool, e int) int {
	n := 0
	for _, prop := range m.Propagators {
		if len(prop.Scope) == 0 {
			continue // only checked once every exam is placed
		}
		ready := true
		for _, se := range prop.Scope {
			if se != e && !placed[se] {
				ready = false
				break
			}
		}
		if ready && !prop.Check(slot, room) {
			n++
		}
	}
	return n
}

func bestNeighbour(p *domain.Problem, m *csp.Model, slot, room []int, curViolations int) ([]int, []int, int, bool) {
	n := len(slot)
	bestSlot, bestRoom, bestV, found := slot, room, curViolations, false

	for e := 0; e < n; e++ {
		origSlot, origRoom := slot[e], room[e]

		for r := 0; r < p.NumRooms(); r++ {
			if r == origRoom {
				continue
			}
			room[e] = r
			v := m.Violations(slot, room)
			if v < bestV {
				bestV = v
				bestSlot = append([]int(nil), slot...)
				bestRoom = append([]int(nil), room...)
				found = true
			}
		}
		room[e] = origRoom

		for s := 0; s < p.NumSlots(); s++ {
			if s == origSlot {
				continue
			}
			slot[e] = s
			v := m.Violations(slot, room)
			if v < bestV {
				bestV = v
				bestSlot = append([]int(nil), slot...)
				bestRoom = append([]int(nil), room...)
				found = true
			}
		}
		slot[e] = origSlot
	}

	return bestSlot, bestRoom, bestV, found
}

func randomNeighbour(p *domain.Problem, m *csp.Model, slot, room []int, rng *rand.Rand) ([]int, []int, int) {
	n := len(slot)
	newSlot := append([]int(nil), slot...)
	newRoom := append([]int(nil), room...)
	e := rng.Intn(n)
	if rng.Float64() < 0.5 {
		newRoom[e] = rng.Intn(p.NumRooms())
	} else {
		newSlot[e] = rng.Intn(p.NumSlots())
	}
	return newSlot, newRoom, m.Violations(newSlot, newRoom)
}
