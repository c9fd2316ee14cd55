package satcore

import (
	"strconv"
	"strings"
	"testing"
)

// mustParse builds a CnfFormula from a tiny textual notation used only
// by this test file: each line is space-separated signed integers
// terminated by 0, e.g. "1 2 0\n1 -2 0\n" is (x1 V x2) ^ (x1 V -x2).
func mustParse(t *testing.T, numVars int, text string) CnfFormula {
	t.Helper()
	f := CnfFormula{NumVars: numVars}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		var lits []Lit
		for _, tok := range fields {
			v, err := strconv.Atoi(tok)
			if err != nil {
				t.Fatalf("bad literal %q: %s", tok, err)
			}
			if v == 0 {
				break
			}
			if v < 0 {
				lits = append(lits, Lit{Var: Var(-v), Value: False})
			} else {
				lits = append(lits, Lit{Var: Var(v), Value: True})
			}
		}
		f.Clauses = append(f.Clauses, Clause{Literals: lits})
	}
	return f
}

var solvers = []struct {
	name string
	solve func(CnfFormula) SolverResult
}{
	{"enumeration", SolveEnumeration},
	{"backtrack", SolveBacktrack},
	{"dpll", SolveDPLL},
	{"cdcl-first-uip", SolveCDCL},
	{"cdcl-last-uip", func(f CnfFormula) SolverResult { return SolveCDCLWithUIP(f, UIPLast, DefaultCDCLOptions) }},
	{"cnc", func(f CnfFormula) SolverResult { return SolveCnC(f, CnCOptions{Depth: 2, CDCL: DefaultCDCLOptions}) }},
}

// boundary scenarios, spec.md §8.
func TestBoundaryScenarios(t *testing.T) {
	tests := []struct {
		name    string
		numVars int
		cnf     string
		wantSAT bool
	}{
		{
			name:    "scenario 1: satisfiable",
			numVars: 5,
			cnf:     "1 2 0\n1 -2 0\n3 4 0\n3 -4 0\n",
			wantSAT: true,
		},
		{
			name:    "scenario 2: unsatisfiable",
			numVars: 5,
			cnf:     "1 2 0\n1 -2 0\n3 4 0\n3 -4 0\n-1 -3 0\n",
			wantSAT: false,
		},
		{
			name:    "scenario 3: unit propagation cascade",
			numVars: 5,
			cnf:     "1 2 0\n-1 -2 0\n1 0\n3 4 0\n",
			wantSAT: true,
		},
		{
			name:    "scenario 4: pure literal elimination",
			numVars: 5,
			cnf:     "1 2 0\n1 -2 0\n3 4 0\n3 -4 0\n-3 0\n",
			wantSAT: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cnf := mustParse(t, tc.numVars, tc.cnf)
			for _, s := range solvers {
				t.Run(s.name, func(t *testing.T) {
					result := s.solve(cnf)
					if result.IsSatisfiable() != tc.wantSAT {
						t.Fatalf("%s: IsSatisfiable() = %v, want %v", s.name, result.IsSatisfiable(), tc.wantSAT)
					}
					if a, ok := result.Assignment(); ok {
						if !CheckAssignment(cnf, a) {
							t.Errorf("%s: assignment %v does not satisfy %v", s.name, a.Values(), cnf)
						}
					}
				})
			}
		})
	}
}

// scenario 6: empty-clause proof.
func TestEmptyClauseProof(t *testing.T) {
	cnf := mustParse(t, 5, "1 2 0\n1 -2 0\n3 4 0\n3 -4 0\n-1 -3 0\n")
	result := SolveCDCL(cnf)
	if result.IsSatisfiable() {
		t.Fatalf("SolveCDCL(): want Unsatisfiable")
	}
	proof, ok := result.UnsatProof()
	if !ok || len(proof) == 0 {
		t.Fatalf("Proof(): want a non-empty proof")
	}
	last := proof[len(proof)-1]
	if len(last.Literals) != 0 {
		t.Errorf("final proof clause = %v, want the empty clause", last)
	}
}

// Agreement across solver strategies (spec.md §8) on a slightly larger
// random-looking but hand-fixed instance.
func TestAgreementAcrossSolvers(t *testing.T) {
	cnf := mustParse(t, 4, "1 2 3 0\n-1 -2 0\n-2 -3 0\n-1 -3 0\n2 4 0\n-4 1 0\n")
	var results []bool
	for _, s := range solvers {
		results = append(results, s.solve(cnf).IsSatisfiable())
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("%s disagrees with %s: %v vs %v", solvers[i].name, solvers[0].name, results[i], results[0])
		}
	}
}

func TestPropagationIdempotence(t *testing.T) {
	cnf := mustParse(t, 3, "1 2 0\n-1 3 0\n")
	state := FromCNF(cnf)
	state = state.Decide(1, True)
	once := PropagateNaive(state)
	twice := PropagateNaive(once)
	if len(once.Trail) != len(twice.Trail) {
		t.Errorf("PropagateNaive is not idempotent: %d trail elements then %d", len(once.Trail), len(twice.Trail))
	}
}

func TestBackjumpRoundTrip(t *testing.T) {
	cnf := mustParse(t, 3, "1 2 0\n-1 3 0\n")
	pre := FromCNF(cnf)
	preLevel := pre.DecisionLevel()

	decided := pre.Decide(1, True)
	back := decided.BackjumpToDecisionLevel(preLevel)

	if back.DecisionLevel() != pre.DecisionLevel() {
		t.Errorf("DecisionLevel() = %d, want %d", back.DecisionLevel(), pre.DecisionLevel())
	}
	if len(back.Trail) != len(pre.Trail) {
		t.Errorf("len(Trail) = %d, want %d", len(back.Trail), len(pre.Trail))
	}
	if _, ok := back.Assignment.GetVar(1); ok {
		t.Errorf("variable 1 still assigned after backjump past its decision")
	}
}

func TestTrailInvariant(t *testing.T) {
	cnf := mustParse(t, 3, "1 2 0\n-1 3 0\n")
	state := FromCNF(cnf)
	state = state.Decide(1, True)
	state = PropagateNaive(state)

	for _, te := range state.Trail {
		v, ok := state.Assignment.Get(te.Lit)
		if !ok || !v {
			t.Errorf("trail element %v: assignment.Get() = (%v, %v), want (true, true)", te.Lit, v, ok)
		}
	}
}
