package satcore

// PropagateNaive repeatedly applies unit propagation by rescanning the
// whole clause vector (spec.md §4.4, "Naive"): while GetStatus reports
// an unassigned unit clause, assign its unit literal; stop on
// Satisfied, Falsified, or UnassignedDecision. The loop is idempotent
// at the boundary — calling it again on its own output is a no-op,
// which is exactly the propagation-idempotence property tested in
// satcore_test.go.
func PropagateNaive(state SolverState) SolverState {
	for {
		status := state.GetStatus()
		if status.Kind != StatusUnassignedUnit {
			return state
		}
		state = state.AssignUnitProp(status.Lit.Var, status.Lit.Value, status.Clause)
	}
}
