package satcore

import "sort"

// UIPPolicy selects which unique-implication-point cut conflict
// analysis uses (spec.md §4.5, §9). Both are fully implemented; the
// package's canonical entry point, SolveCDCL, uses UIPFirst — "the
// stronger default" per spec.md §9's resolution of its own open
// question.
type UIPPolicy int

const (
	UIPFirst UIPPolicy = iota
	UIPLast
)

// CDCLOptions configures a CDCL search.
type CDCLOptions struct {
	// Trace, if true, routes verbose per-step diagnostics to Tracer
	// (adapted from etsangsplk-go-sat's Solver.Trace/Tracer fields).
	Trace  bool
	Tracer Tracer

	// UseVarOrder enables the VSIDS-like decision heuristic of
	// ordering.go instead of deciding the literal GetStatus reports.
	// Not required for correctness (spec.md §9).
	UseVarOrder bool
	VarDecay    float64
}

// DefaultCDCLOptions matches the teacher's DefaultOptions decay
// constants, scaled down to VarDecay only (this package has no clause
// activity decay: learned clauses are never deleted, per spec.md's
// scope — no clause-DB reduction is specified).
var DefaultCDCLOptions = CDCLOptions{
	UseVarOrder: true,
	VarDecay:    0.95,
}

// SolveCDCL runs CDCL search to completion using first-UIP conflict
// analysis and the package's default options.
func SolveCDCL(cnf CnfFormula) SolverResult {
	return SolveCDCLWithUIP(cnf, UIPFirst, DefaultCDCLOptions)
}

// SolveCDCLWithUIP runs CDCL search to completion (spec.md §4.5): at
// each iteration, propagate to fixpoint, then dispatch on status —
// Satisfied returns the filled-in assignment, Falsified triggers
// conflict analysis and backjumping, UnassignedDecision makes a new
// decision. CDCL does not run pure-literal elimination first (unlike
// DPLL and cube-and-conquer): the canonical search starts directly
// from SolverState.FromCNF, matching the reference solve_cdcl variants.
func SolveCDCLWithUIP(cnf CnfFormula, policy UIPPolicy, opts CDCLOptions) SolverResult {
	return runCDCL(FromCNF(cnf), policy, opts)
}

// runCDCL is the CDCL search loop proper, parameterized over its
// starting state so cube-and-conquer leaves (spec.md §4.6 step 2,
// "delegate to CDCL on the current state") can hand it a state that
// already carries cube decisions and pure-literal eliminations, rather
// than always starting from FromCNF.
func runCDCL(state SolverState, policy UIPPolicy, opts CDCLOptions) SolverResult {
	numOriginalClauses := len(state.Formula.Clauses)
	cnf := state.Formula

	prop := NewPropagator(cnf.NumVars)
	for i, c := range state.Formula.Clauses {
		prop.Watch(i, c)
	}

	var order *VarOrder
	if opts.UseVarOrder && cnf.NumVars > 0 {
		decay := opts.VarDecay
		if decay <= 0 {
			decay = DefaultCDCLOptions.VarDecay
		}
		order = NewVarOrder(cnf.NumVars, decay)
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noopTracer{}
	}

	for {
		var conflict *Clause
		state, conflict = prop.Run(state)

		var status Status
		if conflict == nil {
			// The watch list can miss a clause whose two watched literals
			// were already falsified when it was learned; GetStatus still
			// sees it, and it is analyzed like any other conflict.
			status = state.GetStatus()
			if status.Kind == StatusFalsified {
				c := status.Clause
				conflict = &c
			}
		}

		if conflict != nil {
			if opts.Trace {
				tracer.Printf("conflict at level %d: %s", state.DecisionLevel(), conflict)
			}

			if state.DecisionLevel() == 0 {
				return Unsatisfiable(buildProof(state, numOriginalClauses))
			}

			learned, backtrackLevel := analyzeUIP(state, *conflict, policy)

			if order != nil {
				for _, v := range undoneVars(state, backtrackLevel) {
					order.Reinsert(v)
				}
				order.Decay()
				for _, l := range learned.Literals {
					order.Bump(l.Var)
				}
			}

			state = state.BackjumpToDecisionLevel(backtrackLevel)

			learnedIdx := len(state.Formula.Clauses)
			state = state.LearnClause(learned)
			prop.Watch(learnedIdx, learned)

			if opts.Trace {
				tracer.Printf("learned clause %s, backjump to level %d", learned, backtrackLevel)
			}
			continue
		}

		switch status.Kind {
		case StatusSatisfied:
			return Satisfiable(state.Assignment.FillUnassigned())
		case StatusUnassignedUnit:
			// The watch-list propagator only fires on newly-falsified
			// watched literals, so it never discovers a clause that was
			// already unit before any of its literals were touched — a
			// level-0 unit clause in the original formula, or a unit
			// left over from a watch list that updated a literal it
			// wasn't watching yet. Assign it directly; the propagator
			// picks up the new trail element on its next Run.
			state = state.AssignUnitProp(status.Lit.Var, status.Lit.Value, status.Clause)
		case StatusUnassignedDecision:
			lit := status.Lit
			if order != nil {
				if v, ok := order.Next(state.Assignment); ok {
					lit = Lit{Var: v, Value: True}
				}
			}
			if opts.Trace {
				tracer.Printf("decide %s", lit)
			}
			state = state.Decide(lit.Var, lit.Value)
		default:
			panic("satcore: unreachable solver status after propagation to fixpoint")
		}
	}
}

// undoneVars returns the variables that BackjumpToDecisionLevel(level)
// would unassign, given state's current trail. Used only to keep the
// optional VarOrder heap in sync with the core state machine, which
// has no notion of VarOrder itself.
func undoneVars(state SolverState, level int) []Var {
	bound := len(state.Trail)
	if level < len(state.decisionBounds) {
		bound = state.decisionBounds[level]
	}
	vars := make([]Var, 0, len(state.Trail)-bound)
	for i := bound; i < len(state.Trail); i++ {
		vars = append(vars, state.Trail[i].Lit.Var)
	}
	return vars
}

// buildProof returns the DRAT proof for an unsatisfiable search: every
// learned clause in the order it was learned, followed by the empty
// clause (spec.md §3, §6.3).
func buildProof(state SolverState, numOriginalClauses int) []Clause {
	learned := state.Formula.Clauses[numOriginalClauses:]
	proof := make([]Clause, 0, len(learned)+1)
	proof = append(proof, learned...)
	proof = append(proof, Clause{})
	return proof
}

// analyzeUIP implements the implication-graph-cut conflict analysis of
// spec.md §4.5: starting from the conflict set K = {¬l : l ∈ conflict},
// walk the trail backward performing one resolution step per trail
// element found in K (replacing that element's literal with the
// negated antecedents of the clause that implied it), until a UIP cut
// is reached. Learn the clause {¬k : k ∈ K} and backjump to the
// highest decision level among K's non-asserting literals.
//
// The two policies differ only in when they stop:
//
//   - UIPFirst stops at the first point where K contains exactly one
//     literal at the conflict's decision level (the UIP closest to the
//     conflict), matching the reference solve_cdcl_first_uip variant.
//   - UIPLast keeps resolving every unit-propagated trail element of
//     the current level regardless of intermediate single-literal
//     states, naturally halting only once it reaches the level's
//     Decision element (which cannot itself be resolved away) — the
//     UIP closest to the decision, i.e. the decision literal itself.
func analyzeUIP(state SolverState, conflict Clause, policy UIPPolicy) (Clause, int) {
	level := state.DecisionLevel()

	k := make(map[Lit]struct{}, len(conflict.Literals))
	for _, l := range conflict.Literals {
		k[l.Not()] = struct{}{}
	}

	countAtLevel := func() int {
		n := 0
		for lit := range k {
			if lvl, ok := state.Assignment.GetDecisionLevel(lit); ok && lvl == level {
				n++
			}
		}
		return n
	}

	for i := len(state.Trail) - 1; i >= 0; i-- {
		// Check the stop condition before resolving anything at this
		// step (including the very first), not after: otherwise
		// first-UIP can resolve straight through an already-unique
		// current-level literal and learn a weaker, earlier cut than
		// the one closest to the conflict.
		if policy == UIPFirst && countAtLevel() == 1 {
			break
		}

		te := state.Trail[i]
		if _, inK := k[te.Lit]; !inK {
			continue
		}
		if te.Reason.Kind == ReasonDecision {
			// Decisions are never resolved away (spec.md §4.5
			// assertion); this must be the asserting literal for
			// both policies.
			break
		}

		delete(k, te.Lit)
		for _, m := range te.Reason.Clause.Literals {
			if m == te.Lit {
				continue
			}
			k[m.Not()] = struct{}{}
		}
	}

	lits := make([]Lit, 0, len(k))
	backtrackLevel := 0
	for lit := range k {
		lits = append(lits, lit.Not())
		if lvl, ok := state.Assignment.GetDecisionLevel(lit); ok && lvl != level && lvl > backtrackLevel {
			backtrackLevel = lvl
		}
	}
	sort.Slice(lits, func(i, j int) bool {
		if lits[i].Var != lits[j].Var {
			return lits[i].Var < lits[j].Var
		}
		return !bool(lits[i].Value) && bool(lits[j].Value)
	})

	return Clause{Literals: lits}, backtrackLevel
}
