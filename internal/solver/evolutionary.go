package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/csp"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
)

// Default parameters, used when evolutionaryAdapter is constructed as a
// zero-value evolutionaryAdapter{}.
const (
	evoPopulationSize = 300
	evoGenerations    = 100
	evoCrossoverProb  = 0.7
	evoMutationGeneP  = 0.05
	evoTournamentSize = 3
)

// evolutionaryAdapter encodes a chromosome as (room, slot) interleaved per
// exam, evolving a population over generations with two-point crossover,
// per-gene mutation and tournament selection — the same operator set as a
// DEAP eaSimple run. Population 300, generations 100, crossover 0.7,
// mutation 0.05 and tournament size 3 are the specification's defaults.
type evolutionaryAdapter struct {
	PopulationSize int
	Generations    int
	CrossoverProb  float64
	MutationGeneP  float64
	TournamentSize int
}

func (evolutionaryAdapter) Name() string { return "deap" }

type chromosome []int // interleaved room,slot per exam

func (a evolutionaryAdapter) populationSize() int {
	if a.PopulationSize > 0 {
		return a.PopulationSize
	}
	return evoPopulationSize
}

func (a evolutionaryAdapter) generations() int {
	if a.Generations > 0 {
		return a.Generations
	}
	return evoGenerations
}

func (a evolutionaryAdapter) crossoverProb() float64 {
	if a.CrossoverProb > 0 {
		return a.CrossoverProb
	}
	return evoCrossoverProb
}

func (a evolutionaryAdapter) mutationGeneP() float64 {
	if a.MutationGeneP > 0 {
		return a.MutationGeneP
	}
	return evoMutationGeneP
}

func (a evolutionaryAdapter) tournamentSize() int {
	if a.TournamentSize > 0 {
		return a.TournamentSize
	}
	return evoTournamentSize
}

func (a evolutionaryAdapter) Solve(ctx context.Context, p *domain.Problem, active []string, budget Budget) domain.SolveOutcome {
	start := time.Now()
	cset, err := resolveConstraints(active)
	if err != nil {
		return domain.ErrorOutcome(elapsedMS(start), err.Error())
	}

	m := csp.NewModel(p.NumExams(), p.NumSlots(), p.NumRooms())
	for _, c := range cset {
		c.EncodeCSP(m, p)
	}

	populationSize := a.populationSize()
	generations := a.generations()
	crossoverProb := a.crossoverProb()
	mutationGeneP := a.mutationGeneP()
	tournamentSize := a.tournamentSize()

	deadline := start.Add(budget.WallClock)
	rng := rand.New(rand.NewSource(1))
	n := p.NumExams()
	numRooms, numSlots := p.NumRooms(), p.NumSlots()

	fitness := func(c chromosome) int {
		slot := make([]int, n)
		room := make([]int, n)
		for i := 0; i < n; i++ {
			room[i] = c[2*i]
			slot[i] = c[2*i+1]
		}
		return m.Violations(slot, room)
	}

	randomChromosome := func() chromosome {
		c := make(chromosome, 2*n)
		for i := 0; i < n; i++ {
			c[2*i] = rng.Intn(numRooms)
			c[2*i+1] = rng.Intn(numSlots)
		}
		return c
	}

	pop := make([]chromosome, populationSize)
	fit := make([]int, populationSize)
	for i := range pop {
		pop[i] = randomChromosome()
		fit[i] = fitness(pop[i])
	}

	bestIdx := bestFitnessIndex(fit)
	bestChromosome := append(chromosome(nil), pop[bestIdx]...)
	bestFit := fit[bestIdx]

	tournament := func() chromosome {
		bestI := rng.Intn(populationSize)
		for k := 1; k < tournamentSize; k++ {
			j := rng.Intn(populationSize)
			if fit[j] < fit[bestI] {
				bestI = j
			}
		}
		return pop[bestI]
	}

	twoPointCrossover := func(a, b chromosome) (chromosome, chromosome) {
		length := len(a)
		p1 := rng.Intn(length)
		p2 := rng.Intn(length)
		if p1 > p2 {
			p1, p2 = p2, p1
		}
		childA := append(chromosome(nil), a...)
		childB := append(chromosome(nil), b...)
		for i := p1; i < p2; i++ {
			childA[i], childB[i] = childB[i], childA[i]
		}
		return childA, childB
	}

	mutate := func(c chromosome) {
		for i := 0; i < n; i++ {
			if rng.Float64() < mutationGeneP {
				c[2*i] = rng.Intn(numRooms)
			}
			if rng.Float64() < mutationGeneP {
				c[2*i+1] = rng.Intn(numSlots)
			}
		}
	}

	for gen := 0; gen < generations && bestFit > 0; gen++ {
		select {
		case <-ctx.Done():
			return finishEvolutionary(p, bestChromosome, bestFit, n, start, true)
		default:
		}
		if time.Now().After(deadline) {
			return finishEvolutionary(p, bestChromosome, bestFit, n, start, true)
		}

		next := make([]chromosome, 0, populationSize)
		for len(next) < populationSize {
			parentA, parentB := tournament(), tournament()
			childA, childB := parentA, parentB
			if rng.Float64() < crossoverProb {
				childA, childB = twoPointCrossover(parentA, parentB)
			} else {
				childA = append(chromosome(nil), parentA...)
				childB = append(chromosome(nil), parentB...)
			}
			mutate(childA)
			mutate(childB)
			next = append(next, childA, childB)
		}
		next = next[:populationSize]

		pop = next
		for i := range pop {
			fit[i] = fitness(pop[i])
		}

		idx := bestFitnessIndex(fit)
		if fit[idx] < bestFit {
			bestFit = fit[idx]
			bestChromosome = append(chromosome(nil), pop[idx]...)
		}
	}

	return finishEvolutionary(p, bestChromosome, bestFit, n, start, false)
}

func bestFitnessIndex(fit []int) int {
	best := 0
	for i := 1; i < len(fit); i++ {
		if fit[i] < fit[best] {
			best = i
		}
	}
	return best
}

func finishEvolutionary(p *domain.Problem, c chromosome, fitVal, n int, start time.Time, budgetHit bool) domain.SolveOutcome {
	if fitVal > 0 {
		return domain.UnsatOutcome(elapsedMS(start))
	}
	slot := make([]int, n)
	room := make([]int, n)
	for i := 0; i < n; i++ {
		room[i] = c[2*i]
		slot[i] = c[2*i+1]
	}
	a := toAssignment(p, slot, room)
	if budgetHit {
		return domain.SatWithBudget(a, elapsedMS(start))
	}
	return domain.Sat(a, elapsedMS(start))
}
