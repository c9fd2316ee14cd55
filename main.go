package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/kaushik327/satkit/internal/dimacs"
	"github.com/kaushik327/satkit/internal/satcore"
)

var (
	flagSolver = flag.String(
		"solver",
		"cdcl",
		"search strategy: cdcl, cnc, dpll, backtrack, or basic",
	)
	flagDepth = flag.Int(
		"depth",
		2,
		"cube-and-conquer split depth (only used by -solver=cnc)",
	)
	flagOutputDir = flag.String(
		"output-dir",
		"",
		"if set, write <base>.dimacs and (if unsatisfiable) <base>.drat per input file",
	)
	flagCPUProfile = flag.Bool(
		"cpuprof",
		false,
		"save pprof CPU profile in cpuprof",
	)
	flagMemProfile = flag.Bool(
		"memprof",
		false,
		"save pprof memory profile in memprof",
	)
)

type config struct {
	files     []string
	solver    string
	depth     int
	outputDir string
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 {
		return nil, fmt.Errorf("no input files specified")
	}
	return &config{
		files:     flag.Args(),
		solver:    *flagSolver,
		depth:     *flagDepth,
		outputDir: *flagOutputDir,
	}, nil
}

// resolveSolver maps a -solver flag value to a search function, per
// spec.md §6.4's "solve [--solver={cdcl|cnc|dpll|backtrack|basic}]".
func resolveSolver(name string, depth int) (func(satcore.CnfFormula) satcore.SolverResult, error) {
	switch name {
	case "cdcl":
		return satcore.SolveCDCL, nil
	case "cnc":
		return func(f satcore.CnfFormula) satcore.SolverResult {
			return satcore.SolveCnC(f, satcore.CnCOptions{Depth: depth, CDCL: satcore.DefaultCDCLOptions})
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

func openInput(file string) (*os.File, error) {
	if file == "-" {
		return os.Stdin, nil
	}
	return os.Open(file)
}

func outputPath(inputFile, outputDir, ext string) string {
	base := filepath.Base(inputFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+"."+ext)
}

func writeOutputs(file string, result satcore.SolverResult, outputDir string) error {
	if file == "-" || outputDir == "" {
		return nil
	}

	dimacsFile, err := os.Create(outputPath(file, outputDir, "dimacs"))
	if err != nil {
		return fmt.Errorf("could not create dimacs output: %w", err)
	}
	defer dimacsFile.Close()
	if err := dimacs.WriteResult(dimacsFile, result); err != nil {
		return fmt.Errorf("could not write dimacs output: %w", err)
	}

	if proof, ok := result.UnsatProof(); ok {
		dratFile, err := os.Create(outputPath(file, outputDir, "drat"))
		if err != nil {
			return fmt.Errorf("could not create drat output: %w", err)
		}
		defer dratFile.Close()
		if err := dimacs.WriteDRAT(dratFile, proof); err != nil {
			return fmt.Errorf("could not write drat output: %w", err)
		}
	}
	return nil
}

func solveOne(file string, solve func(satcore.CnfFormula) satcore.SolverResult, outputDir string) error {
	r, err := openInput(file)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", file, err)
	}
	defer r.Close()

	cnf, err := dimacs.ParseDIMACS(r)
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", file, err)
	}

	start := time.Now()
	result := solve(cnf)
	elapsed := time.Since(start)

	if err := writeOutputs(file, result, outputDir); err != nil {
		return err
	}

	label := "\x1b[32mSAT"
	if !result.IsSatisfiable() {
		label = "\x1b[31mUNSAT"
	}
	fmt.Printf("%s: %s in %.3fs\x1b[0m\n", label, file, elapsed.Seconds())

	if a, ok := result.Assignment(); ok {
		if !satcore.CheckAssignment(cnf, a) {
			// A Satisfiable verdict whose assignment fails independent
			// verification is a solver bug, not a normal outcome
			// (spec.md §7).
			panic(fmt.Sprintf("satkit: solver %q returned an assignment that does not satisfy %q", *flagSolver, file))
		}
	}
	return nil
}

func run(cfg *config) error {
	solve, err := resolveSolver(cfg.solver, cfg.depth)
	if err != nil {
		return err
	}

	if cfg.outputDir != "" {
		if err := os.MkdirAll(cfg.outputDir, 0o755); err != nil {
			return fmt.Errorf("could not create output directory %q: %w", cfg.outputDir, err)
		}
	}

	for _, file := range cfg.files {
		if err := solveOne(file, solve, cfg.outputDir); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if *flagMemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
