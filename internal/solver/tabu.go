package solver

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// tabuMaxIterations has no corresponding config.TabuConfig field — the
// specification's tunables table only exposes tenure and sample-move count
// for this adapter, so the iteration cap stays a fixed constant.
const tabuMaxIterations = 2000

// tabuTenure and tabuSampleMoves are the specification's default values,
// used when tabuAdapter is constructed as a zero-value tabuAdapter{}.
const (
	tabuTenure      = 10
	tabuSampleMoves = 20
)

// tabuAdapter keeps a short-term memory of recently visited assignment
// hashes and samples a fixed number of single-variable moves per iteration,
// accepting the best non-tabu move unless a tabu move would strictly
// improve on the best solution seen so far (aspiration). Tenure and
// sample-move count default to the specification's values (10 and 20) when
// the adapter is constructed as a zero-value tabuAdapter{}.
type tabuAdapter struct {
	Tenure      int
	SampleMoves int
}

func (tabuAdapter) Name() string { return "tabu" }

func (a tabuAdapter) tenure() int {
	if a.Tenure > 0 {
		return a.Tenure
	}
	return tabuTenure
}

func (a tabuAdapter) sampleMoves() int {
	if a.SampleMoves > 0 {
		return a.SampleMoves
	}
	return tabuSampleMoves
}

func (a tabuAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	start := time.Now()
	cset, err := resolveConstraints(active)
	if err != nil {
		return domain.ErrorOutcome(elapsedMS(start), err.Error())
	}

	m := csp.NewModel(p.NumExams(), p.NumSlots(), p.NumRooms())
	for _, c := range cset {
		c.EncodeCSP(m, p)
	}

	tenure := a.tenure()
	sampleMoves := a.sampleMoves()

	deadline := start.Add(budget.WallClock)
	rng := rand.New(rand.NewSource(1))

	curSlot, curRoom, curViolations := greedyInitialSolution(p, m)
	bestSlot := append([]int(nil), curSlot...)
	bestRoom := append([]int(nil), curRoom...)
	bestViolations := curViolations

	type tabuEntry struct {
		expiresAt int
	}
	tabuList := map[string]tabuEntry{}

	for iter := 0; bestViolations > 0 && iter < tabuMaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, true)
		default:
		}
		if time.Now().After(deadline) {
			return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, true)
		}

		type candidate struct {
			slot, room []int
			violations int
			key        string
		}
		var best *candidate

		for i := 0; i < sampleMoves; i++ {
			e := rng.Intn(p.NumExams())
			trialSlot := append([]int(nil), curSlot...)
			trialRoom := append([]int(nil), curRoom...)
			if rng.Float64() < 0.5 {
				trialRoom[e] = rng.Intn(p.NumRooms())
			} else {
				trialSlot[e] = rng.Intn(p.NumSlots())
			}
			v := m.Violations(trialSlot, trialRoom)
			key := assignmentHash(trialSlot, trialRoom)

			_, isTabu := tabuList[key]
			aspirated := v < bestViolations
			if isTabu && !aspirated {
				continue
			}
			if best == nil || v < best.violations {
				best = &candidate{slot: trialSlot, room: trialRoom, violations: v, key: key}
			}
		}

		if best == nil {
			continue
		}

		curSlot, curRoom, curViolations = best.slot, best.room, best.violations
		tabuList[best.key] = tabuEntry{expiresAt: iter + tenure}
		for k, v := range tabuList {
			if v.expiresAt <= iter {
				delete(tabuList, k)
			}
		}

		if curViolations < bestViolations {
			bestSlot = append([]int(nil), curSlot...)
			bestRoom = append([]int(nil), curRoom...)
			bestViolations = curViolations
		}
	}

	return finishLocalSearch(p, bestSlot, bestRoom, bestViolations, start, false)
}

func assignmentHash(slot, room []int) string {
	var b strings.Builder
	for i := range slot {
		b.WriteString(strconv.Itoa(slot[i]))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(room[i]))
		b.WriteByte(';')
	}
	return b.String()
}
