// Package dimacs reads and writes the DIMACS CNF format and writes
// DRAT proofs (spec.md §6.1-§6.3). Parsing is a core, in-scope
// component — it rejects malformed input with a typed error rather
// than delegating to a builder callback, so the error taxonomy of
// spec.md §7 ("Input format errors... fail fast with a typed error")
// is visible to callers instead of collapsing into a single opaque
// error type.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kaushik327/satkit/internal/satcore"
)

// ErrorKind distinguishes the DIMACS parse-error taxonomy of spec.md
// §6.1 and §7.
type ErrorKind int

const (
	ErrMissingHeader ErrorKind = iota
	ErrNonIntegerToken
	ErrLiteralOutOfRange
	ErrClauseCountMismatch
)

// ParseError is the typed error returned for every malformed-DIMACS
// condition. Line is 1-based and 0 when the error is not tied to a
// single line (e.g. a missing header discovered only at EOF).
type ParseError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("dimacs: %s", e.Msg)
}

// ParseDIMACS reads a CNF formula in DIMACS format from r (spec.md
// §6.1): lines starting with "c" are comments, the header is
// "p cnf <num_vars> <num_clauses>", and the body is whitespace- and
// newline-separated signed integers, each clause terminated by a
// literal 0. A line consisting solely of "%" ends parsing early
// (trailing-terminator tolerance); anything after it is ignored.
func ParseDIMACS(r io.Reader) (satcore.CnfFormula, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	numVars := -1
	numClauses := 0
	clauses := make([]satcore.Clause, 0)
	var current []satcore.Lit
	clauseCount := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}
		if fields[0] == "%" {
			break
		}

		if numVars < 0 {
			if fields[0] != "p" || len(fields) < 4 || fields[1] != "cnf" {
				return satcore.CnfFormula{}, &ParseError{
					Kind: ErrMissingHeader,
					Line: lineNo,
					Msg:  `expected DIMACS header "p cnf <num_vars> <num_clauses>"`,
				}
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return satcore.CnfFormula{}, &ParseError{
					Kind: ErrNonIntegerToken, Line: lineNo,
					Msg: fmt.Sprintf("header variable count %q is not an integer", fields[2]),
				}
			}
			m, err := strconv.Atoi(fields[3])
			if err != nil {
				return satcore.CnfFormula{}, &ParseError{
					Kind: ErrNonIntegerToken, Line: lineNo,
					Msg: fmt.Sprintf("header clause count %q is not an integer", fields[3]),
				}
			}
			numVars, numClauses = n, m
			continue
		}

		for _, tok := range fields {
			val, err := strconv.Atoi(tok)
			if err != nil {
				return satcore.CnfFormula{}, &ParseError{
					Kind: ErrNonIntegerToken, Line: lineNo,
					Msg: fmt.Sprintf("token %q is not an integer", tok),
				}
			}
			if val == 0 {
				clauses = append(clauses, satcore.Clause{Literals: append([]satcore.Lit(nil), current...)})
				current = current[:0]
				clauseCount++
				continue
			}

			abs := val
			if abs < 0 {
				abs = -abs
			}
			if abs > numVars {
				return satcore.CnfFormula{}, &ParseError{
					Kind: ErrLiteralOutOfRange, Line: lineNo,
					Msg: fmt.Sprintf("literal %d exceeds declared variable count %d", val, numVars),
				}
			}
			current = append(current, satcore.Lit{Var: satcore.Var(abs), Value: satcore.Val(val > 0)})
		}
	}
	if err := scanner.Err(); err != nil {
		return satcore.CnfFormula{}, err
	}

	if numVars < 0 {
		return satcore.CnfFormula{}, &ParseError{Kind: ErrMissingHeader, Msg: "no header line found"}
	}
	if len(current) > 0 {
		return satcore.CnfFormula{}, &ParseError{
			Kind: ErrClauseCountMismatch,
			Msg:  "final clause is not terminated by 0",
		}
	}
	if clauseCount != numClauses {
		return satcore.CnfFormula{}, &ParseError{
			Kind: ErrClauseCountMismatch,
			Msg:  fmt.Sprintf("header declared %d clauses, found %d", numClauses, clauseCount),
		}
	}

	return satcore.CnfFormula{NumVars: numVars, Clauses: clauses}, nil
}
