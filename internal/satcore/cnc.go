package satcore

import "sync"

// CnCOptions configures a cube-and-conquer search.
type CnCOptions struct {
	// Depth is the number of cube-splitting levels before each leaf
	// delegates to CDCL (spec.md §4.6). Depth 0 means "run CDCL on the
	// pure-literal-eliminated formula with no cube splitting at all".
	Depth int

	CDCL CDCLOptions
}

// DefaultCnCOptions splits 2 levels deep (4 parallel leaves) using the
// package's default CDCL configuration.
var DefaultCnCOptions = CnCOptions{Depth: 2, CDCL: DefaultCDCLOptions}

// SolveCnC runs the bounded cube-and-conquer search of spec.md §4.6:
// pure-literal elimination once up front, then recursive variable
// splitting down to Depth levels, each leaf searched by an independent
// CDCL worker in its own goroutine. The first Satisfiable leaf wins;
// Unsatisfiable requires every leaf to agree.
func SolveCnC(cnf CnfFormula, opts CnCOptions) SolverResult {
	state := PureLiteralEliminate(FromCNF(cnf))
	return cncSearch(state, opts.Depth, opts.CDCL)
}

func cncSearch(state SolverState, depth int, cdclOpts CDCLOptions) SolverResult {
	if depth == 0 {
		return runCDCL(state, UIPFirst, cdclOpts)
	}

	state = PropagateNaive(state)

	status := state.GetStatus()
	switch status.Kind {
	case StatusSatisfied:
		return Satisfiable(state.Assignment.FillUnassigned())
	case StatusFalsified:
		return Unsatisfiable(emptyProof)
	}

	v := status.Lit.Var

	// Each worker gets a disjoint clone of state, decided at this
	// level's split variable (spec.md §5, "Each worker owns a disjoint
	// clone of the initial SolverState"). No state or clause database
	// is shared between them.
	branches := [2]SolverState{
		state.Clone().Decide(v, True),
		state.Clone().Decide(v, False),
	}

	// Buffered to len(branches) so a goroutine whose result is never
	// read (because an earlier one already returned Satisfiable) can
	// still send without blocking and leaking (spec.md §5,
	// "abandonment is always safe").
	results := make(chan SolverResult, len(branches))
	var wg sync.WaitGroup
	for _, branch := range branches {
		wg.Add(1)
		go func(s SolverState) {
			defer wg.Done()
			results <- cncSearch(s, depth-1, cdclOpts)
		}(branch)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.IsSatisfiable() {
			return r
		}
	}
	return Unsatisfiable(emptyProof)
}
