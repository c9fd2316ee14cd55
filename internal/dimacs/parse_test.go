package dimacs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kaushik327/satkit/internal/satcore"
)

func lit(v int) satcore.Lit {
	if v < 0 {
		return satcore.Lit{Var: satcore.Var(-v), Value: satcore.False}
	}
	return satcore.Lit{Var: satcore.Var(v), Value: satcore.True}
}

func clause(vs ...int) satcore.Clause {
	lits := make([]satcore.Lit, len(vs))
	for i, v := range vs {
		lits[i] = lit(v)
	}
	return satcore.Clause{Literals: lits}
}

func TestParseDIMACS_ok(t *testing.T) {
	input := "c a comment\np cnf 5 4\n1 2 0\n1 -2 0\n3 4 0\n3 -4 0\n"

	got, err := ParseDIMACS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}

	want := satcore.CnfFormula{
		NumVars: 5,
		Clauses: []satcore.Clause{
			clause(1, 2),
			clause(1, -2),
			clause(3, 4),
			clause(3, -4),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_multilineClause(t *testing.T) {
	input := "p cnf 3 1\n1 2\n-3 0\n"

	got, err := ParseDIMACS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}
	want := satcore.CnfFormula{NumVars: 3, Clauses: []satcore.Clause{clause(1, 2, -3)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_trailingPercent(t *testing.T) {
	input := "p cnf 2 1\n1 -2 0\n%\n0\n"

	got, err := ParseDIMACS(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}
	want := satcore.CnfFormula{NumVars: 2, Clauses: []satcore.Clause{clause(1, -2)}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"missing header", "1 2 0\n", ErrMissingHeader},
		{"empty input", "", ErrMissingHeader},
		{"non-integer token", "p cnf 2 1\n1 x 0\n", ErrNonIntegerToken},
		{"literal out of range", "p cnf 2 1\n1 3 0\n", ErrLiteralOutOfRange},
		{"clause count mismatch (too few)", "p cnf 2 2\n1 2 0\n", ErrClauseCountMismatch},
		{"clause count mismatch (too many)", "p cnf 2 1\n1 2 0\n-1 -2 0\n", ErrClauseCountMismatch},
		{"unterminated clause", "p cnf 2 1\n1 2\n", ErrClauseCountMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDIMACS(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("ParseDIMACS(%q): want error, got none", tc.input)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ParseDIMACS(%q): want *ParseError, got %T", tc.input, err)
			}
			if pe.Kind != tc.kind {
				t.Errorf("ParseDIMACS(%q): want kind %v, got %v", tc.input, tc.kind, pe.Kind)
			}
		})
	}
}
