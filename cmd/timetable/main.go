// Command timetable is the CLI wrapper around internal/facade: load an
// instance, list what's registered, solve, evaluate, or compare two
// backends. It is not part of the core — the exit-code model described in
// the specification's External Interfaces section lives here.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/josephchay/assessment-timetabling-problem-solver/internal/config"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/domain"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/facade"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/logging"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/metrics"
	"github.com/josephchay/assessment-timetabling-problem-solver/internal/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		return 1
	}
	defer log.Sync()

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.New()
		go http.ListenAndServe(cfg.Metrics.Addr, reg.Handler())
	}

	budget := solver.Budget{WallClock: cfg.Budget.WallClock, GapTolerance: cfg.Budget.GapTolerance}
	solver.Configure(solver.Tuning{
		Tabu: solver.TabuTuning{
			Tenure:      cfg.Tabu.Tenure,
			SampleMoves: cfg.Tabu.SampleMoves,
		},
		Evolution: solver.EvolutionTuning{
			PopulationSize: cfg.Evolution.PopulationSize,
			Generations:    cfg.Evolution.Generations,
			CrossoverProb:  cfg.Evolution.CrossoverProb,
			MutationGeneP:  cfg.Evolution.MutationGeneP,
			TournamentSize: cfg.Evolution.TournamentSize,
		},
		LocalSearch: solver.LocalSearchTuning{
			MaxAttempts:   cfg.LocalSearch.MaxAttempts,
			MaxIterations: cfg.LocalSearch.MaxIterations,
			RandomJumpP:   cfg.LocalSearch.RandomJumpP,
		},
	})

	switch args[0] {
	case "solvers":
		return cmdSolvers()
	case "constraints":
		return cmdConstraints()
	case "load":
		return cmdLoad(args[1:], log)
	case "solve":
		return cmdSolve(args[1:], log, budget, reg)
	case "evaluate":
		return cmdEvaluate(args[1:], log)
	case "compare":
		return cmdCompare(args[1:], log, budget, reg)
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: timetable <solvers|constraints|load|solve|evaluate|compare> [flags]")
}

func cmdSolvers() int {
	for _, name := range facade.ListSolvers() {
		fmt.Println(name)
	}
	return 0
}

func cmdConstraints() int {
	for _, c := range facade.ListConstraints() {
		fmt.Printf("%s\tdefault_active=%v\n", c.Name, c.DefaultActive)
	}
	return 0
}

func cmdLoad(args []string, log *zap.Logger) int {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	path := fs.String("path", "", "instance file path")
	fs.Parse(args)
	if *path == "" {
		fmt.Fprintln(os.Stderr, "load: -path is required")
		return 1
	}

	p, err := facade.LoadProblem(*path, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		return 1
	}
	fmt.Printf("%s: %d exams, %d slots, %d rooms\n", p.Name, p.NumExams(), p.NumSlots(), p.NumRooms())
	return 0
}

func cmdSolve(args []string, log *zap.Logger, budget solver.Budget, reg *metrics.Registry) int {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	path := fs.String("path", "", "instance file path")
	solverName := fs.String("solver", "z3", "solver name")
	active := fs.String("active", "", "comma-separated active constraint names (empty = defaults)")
	fs.Parse(args)

	p, err := facade.LoadProblem(*path, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solve:", err)
		return 1
	}

	outcome, err := facade.Solve(context.Background(), p, *solverName, splitCSV(*active), budget, log, reg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solve:", err)
		return 1
	}
	printOutcome(outcome)
	return 0
}

func cmdEvaluate(args []string, log *zap.Logger) int {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	path := fs.String("path", "", "instance file path")
	assignPath := fs.String("assignment", "", "path to a canonical-form assignment text file")
	active := fs.String("active", "", "comma-separated active constraint names (empty = defaults)")
	fs.Parse(args)

	p, err := facade.LoadProblem(*path, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evaluate:", err)
		return 1
	}

	raw, err := os.ReadFile(*assignPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evaluate:", err)
		return 1
	}
	a := facade.ParseAssignment(string(raw))

	scores, err := facade.Evaluate(p, a, splitCSV(*active))
	if err != nil {
		fmt.Fprintln(os.Stderr, "evaluate:", err)
		return 1
	}
	for _, s := range scores {
		fmt.Printf("%s\t%.2f\n", s.Constraint, s.Value)
	}
	return 0
}

func cmdCompare(args []string, log *zap.Logger, budget solver.Budget, reg *metrics.Registry) int {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	path := fs.String("path", "", "instance file path")
	solverA := fs.String("a", "z3", "first solver name")
	solverB := fs.String("b", "ortools", "second solver name")
	active := fs.String("active", "", "comma-separated active constraint names (empty = defaults)")
	fs.Parse(args)

	p, err := facade.LoadProblem(*path, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compare:", err)
		return 1
	}

	report, err := facade.Compare(context.Background(), log, reg, p, *solverA, *solverB, splitCSV(*active), budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compare:", err)
		return 1
	}
	fmt.Printf("winner=%s final_a=%.2f final_b=%.2f\n", report.Winner, report.FinalA, report.FinalB)
	fmt.Println(report.Summary)
	return 0
}

func printOutcome(o domain.SolveOutcome) {
	switch {
	case o.IsSat():
		fmt.Print(facade.SerializeAssignment(o.Assignment()))
		if o.BudgetExhausted() {
			fmt.Println("(time budget exhausted; returning best feasible solution found)")
		}
	case o.IsUnsat():
		fmt.Println("UNSAT")
	default:
		fmt.Println("ERROR:", o.Message())
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
