package satcore

import "github.com/rhartert/yagh"

// VarOrder is an optional, VSIDS-like decision heuristic for the CDCL
// entry point, adapted from the teacher's internal/sat/ordering.go. It
// is not required for correctness — spec.md §9 permits "heuristics
// beyond a plain decision rule" without mandating them. The CDCL
// leaves of cube-and-conquer use it too (DefaultCnCOptions carries
// DefaultCDCLOptions); backtracking and DPLL branch on the
// lowest-indexed unassigned variable instead, and enumeration walks the
// variables in index order.
//
// VarOrder tracks, per variable, an activity score in a binary heap
// (github.com/rhartert/yagh.IntMap) so the next decision is the
// highest-activity unassigned variable rather than the lowest index.
type VarOrder struct {
	heap    *yagh.IntMap[float64]
	scores  []float64
	scoreInc   float64
	scoreDecay float64
}

// NewVarOrder returns a VarOrder for numVars variables, all initially
// tied at zero activity (so the first decisions fall back to heap
// insertion order, i.e. variable index, until conflicts start bumping
// scores).
func NewVarOrder(numVars int, decay float64) *VarOrder {
	vo := &VarOrder{
		heap:       yagh.New[float64](0),
		scores:     make([]float64, numVars),
		scoreInc:   1,
		scoreDecay: decay,
	}
	vo.heap.GrowBy(numVars)
	for i := 0; i < numVars; i++ {
		vo.heap.Put(i, 0)
	}
	return vo
}

// Bump increases v's activity, rescaling every score if the bumped
// value grows too large (mirrors the teacher's BumpVarActivity).
func (vo *VarOrder) Bump(v Var) {
	i := int(v) - 1
	newScore := vo.scores[i] + vo.scoreInc
	vo.scores[i] = newScore
	if vo.heap.Contains(i) {
		vo.heap.Put(i, -newScore)
	}
	if newScore > 1e100 {
		vo.rescale()
	}
}

// Decay grows the increment applied by future Bump calls, giving
// recently bumped variables relatively more weight (mirrors the
// teacher's DecayVarActivity).
func (vo *VarOrder) Decay() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for i, s := range vo.scores {
		rescaled := s * 1e-100
		vo.scores[i] = rescaled
		if vo.heap.Contains(i) {
			vo.heap.Put(i, -rescaled)
		}
	}
}

// Reinsert makes v a candidate for selection again. The CDCL loop
// calls this for every variable a backjump unassigns, since Next
// removes a variable from the heap once it is selected.
func (vo *VarOrder) Reinsert(v Var) {
	i := int(v) - 1
	vo.heap.Put(i, -vo.scores[i])
}

// Next pops and returns the highest-activity variable that is still
// unassigned under a, removing it from the heap (the CDCL loop is
// expected to either assign it immediately or call Reinsert if it
// does not). ok is false once every variable has been popped.
func (vo *VarOrder) Next(a Assignment) (v Var, ok bool) {
	for {
		next, popped := vo.heap.Pop()
		if !popped {
			return 0, false
		}
		candidate := Var(next.Elem + 1)
		if _, assigned := a.GetVar(candidate); assigned {
			continue
		}
		return candidate, true
	}
}
