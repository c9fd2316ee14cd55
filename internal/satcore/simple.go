package satcore

// This file implements the three reference solvers of spec.md §4.8:
// exhaustive enumeration, plain backtracking search, and DPLL
// (backtracking plus unit propagation and pure-literal elimination).
// None of these learn clauses, so their Unsatisfiable results all carry
// the "or equivalent" minimal proof of spec.md §3: just the empty
// clause. They exist to cross-check CDCL and cube-and-conquer against
// simpler, more obviously correct implementations (spec.md §8,
// "Agreement across solvers").

// emptyProof is the proof used by every solver in this file: none of
// them learn clauses, so there is nothing to list before the final
// empty-clause marker.
var emptyProof = []Clause{{}}

// SolveEnumeration tries every total assignment in lexicographic,
// False-before-True order (spec.md §4.8) and returns the first that
// satisfies every clause.
func SolveEnumeration(cnf CnfFormula) SolverResult {
	a := EmptyAssignment(cnf.NumVars)
	if found, ok := enumerate(cnf, a, 1); ok {
		return Satisfiable(found)
	}
	return Unsatisfiable(emptyProof)
}

func enumerate(cnf CnfFormula, a Assignment, v int) (Assignment, bool) {
	if v > cnf.NumVars {
		if CheckAssignment(cnf, a) {
			return a, true
		}
		return a, false
	}
	for _, val := range [2]Val{False, True} {
		if found, ok := enumerate(cnf, a.Set(Var(v), val, 0), v+1); ok {
			return found, true
		}
	}
	return a, false
}

// SolveBacktrack performs plain chronological backtracking: decide the
// lowest-indexed unassigned variable True, recurse; on Falsified,
// backtrack and retry False; if both fail, backtrack further. It never
// learns a clause and never propagates — GetStatus's own falsified/
// satisfied checks are the only pruning.
func SolveBacktrack(cnf CnfFormula) SolverResult {
	state := FromCNF(cnf)
	if final, ok := backtrackSearch(state); ok {
		return Satisfiable(final.Assignment.FillUnassigned())
	}
	return Unsatisfiable(emptyProof)
}

func backtrackSearch(state SolverState) (SolverState, bool) {
	status := state.GetStatus()
	switch status.Kind {
	case StatusSatisfied:
		return state, true
	case StatusFalsified:
		return state, false
	}

	v, _ := state.Assignment.GetUnassignedVar()

	for _, val := range [2]Val{True, False} {
		// Clone before deciding: Assignment.Set writes into a shared
		// backing array (spec.md §9 notes cloning, not in-place mutation,
		// as the isolation boundary between sibling branches), so without
		// Clone() the True attempt's deeper assignments would still be
		// visible — and look "already assigned" — once we backtrack here
		// and try False.
		next := state.Clone().Decide(v, val)
		if final, ok := backtrackSearch(next); ok {
			return final, true
		}
	}
	return state, false
}

// SolveDPLL performs the classic Davis-Putnam-Logemann-Loveland
// procedure: eliminate pure literals, propagate unit clauses to
// fixpoint, and on remaining choice, decide the lowest-indexed
// unassigned variable and recurse on both polarities, backtracking on
// Falsified. Pure-literal elimination runs at every recursive call, not
// just at the root; it classifies variables over all clauses, satisfied
// ones included, so below the root it finds no new pure variable.
func SolveDPLL(cnf CnfFormula) SolverResult {
	state := FromCNF(cnf)
	if final, ok := dpllSearch(state); ok {
		return Satisfiable(final.Assignment.FillUnassigned())
	}
	return Unsatisfiable(emptyProof)
}

func dpllSearch(state SolverState) (SolverState, bool) {
	state = PureLiteralEliminate(state)
	state = PropagateNaive(state)

	status := state.GetStatus()
	switch status.Kind {
	case StatusSatisfied:
		return state, true
	case StatusFalsified:
		return state, false
	}

	v, _ := state.Assignment.GetUnassignedVar()
	for _, val := range [2]Val{True, False} {
		// See backtrackSearch: Clone() isolates this branch's deeper
		// assignments from its sibling.
		next := state.Clone().Decide(v, val)
		if final, ok := dpllSearch(next); ok {
			return final, true
		}
	}
	return state, false
}
