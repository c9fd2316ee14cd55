// Command satrandom generates random k-SAT instances and pipes each
// one through a solver, reporting one JSON line per trial (spec.md
// §6.4: "random -n N -k K -l L [-r R]"). Grounded on original_source's
// bin/random.rs, translated from clap/serde_json flags and structs to
// the standard flag package and encoding/json (see DESIGN.md — no
// third-party CLI or JSON library appears anywhere in the retrieved
// corpus, matching the teacher's own all-stdlib main.go).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/kaushik327/satkit/internal/satcore"
	"github.com/kaushik327/satkit/internal/satrandom"
)

var (
	flagNumVars       = flag.Int("n", 20, "number of variables")
	flagVarsPerClause = flag.Int("k", 3, "variables per clause")
	flagNumClauses    = flag.Int("l", 80, "number of clauses")
	flagRepetitions   = flag.Int("r", 1, "repetitions")
	flagSolver        = flag.String("solver", "cdcl", "search strategy: cdcl, cnc, dpll, backtrack, or basic")
)

// trialResult is one JSON-lines record emitted per generated instance.
type trialResult struct {
	NumVars       int     `json:"n"`
	VarsPerClause int     `json:"k"`
	NumClauses    int     `json:"l"`
	Satisfiable   bool    `json:"sat"`
	DurationMS    float64 `json:"duration_ms"`
}

func resolveSolver(name string) (func(satcore.CnfFormula) satcore.SolverResult, error) {
	switch name {
	case "cdcl":
		return satcore.SolveCDCL, nil
	case "cnc":
		return func(f satcore.CnfFormula) satcore.SolverResult {
			return satcore.SolveCnC(f, satcore.DefaultCnCOptions)
		}, nil
	case "dpll":
		return satcore.SolveDPLL, nil
	case "backtrack":
		return satcore.SolveBacktrack, nil
	case "basic":
		return satcore.SolveEnumeration, nil
	default:
		return nil, fmt.Errorf("unknown solver %q", name)
	}
}

func main() {
	flag.Parse()

	solve, err := resolveSolver(*flagSolver)
	if err != nil {
		log.Fatal(err)
	}

	cfg := satrandom.Config{
		NumVars:       *flagNumVars,
		NumClauses:    *flagNumClauses,
		VarsPerClause: *flagVarsPerClause,
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	enc := json.NewEncoder(os.Stdout)

	successful := 0
	for i := 0; i < *flagRepetitions; i++ {
		cnf, err := satrandom.Generate(cfg, rng)
		if err != nil {
			log.Fatal(err)
		}

		start := time.Now()
		result := solve(cnf)
		elapsed := time.Since(start)

		if result.IsSatisfiable() {
			successful++
		}

		if err := enc.Encode(trialResult{
			NumVars:       cfg.NumVars,
			VarsPerClause: cfg.VarsPerClause,
			NumClauses:    cfg.NumClauses,
			Satisfiable:   result.IsSatisfiable(),
			DurationMS:    elapsed.Seconds() * 1000,
		}); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Fprintf(os.Stderr, "n=%d k=%d l=%d: SAT %d/%d\n",
		cfg.NumVars, cfg.VarsPerClause, cfg.NumClauses, successful, *flagRepetitions)
}
