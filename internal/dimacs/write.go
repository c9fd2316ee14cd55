package dimacs

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kaushik327/satkit/internal/satcore"
)

// WriteResult writes result in the format of spec.md §6.2: for a
// Satisfiable result, "s SATISFIABLE" followed by a "v" line listing
// every variable 1..N signed by its assigned value; for Unsatisfiable,
// just "s UNSATISFIABLE".
func WriteResult(w io.Writer, result satcore.SolverResult) error {
	bw := bufio.NewWriter(w)

	if a, ok := result.Assignment(); ok {
		if _, err := fmt.Fprintln(bw, "s SATISFIABLE"); err != nil {
			return err
		}
		if _, err := bw.WriteString("v"); err != nil {
			return err
		}
		for i, v := range a.Values() {
			sign := "-"
			if v == satcore.True {
				sign = ""
			}
			if _, err := fmt.Fprintf(bw, " %s%d", sign, i+1); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	if _, err := fmt.Fprintln(bw, "s UNSATISFIABLE"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteDRAT writes proof in the format of spec.md §6.3: one line per
// clause, space-separated signed integers terminated by 0, in order;
// the empty clause (zero literals) is written as a lone "0" line.
func WriteDRAT(w io.Writer, proof []satcore.Clause) error {
	bw := bufio.NewWriter(w)
	for _, c := range proof {
		for _, l := range c.Literals {
			sign := ""
			if l.Value == satcore.False {
				sign = "-"
			}
			if _, err := fmt.Fprintf(bw, "%s%d ", sign, int(l.Var)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
