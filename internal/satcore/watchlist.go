package satcore

// WatchEntry records that a clause is watching a literal: ClauseIdx is
// the clause's stable index into the owning SolverState's
// Formula.Clauses, not a pointer (spec.md §9, "Arena + index for watch
// lists" — appending learned clauses must never invalidate an existing
// watch). Blocking is the clause's other watched literal, cached so a
// watcher can be skipped without touching the clause when Blocking is
// already satisfied.
type WatchEntry struct {
	ClauseIdx int
	Blocking  Lit
}

// WatchList is the two-watched-literal index of spec.md §4.4: for each
// literal it holds the set of clauses currently watching it.
type WatchList struct {
	watches [][]WatchEntry
}

// NewWatchList returns an empty watch list sized for numVars variables.
func NewWatchList(numVars int) *WatchList {
	return &WatchList{watches: make([][]WatchEntry, 2*numVars)}
}

func litIndex(l Lit) int {
	idx := (int(l.Var) - 1) * 2
	if l.Value == False {
		idx++
	}
	return idx
}

// AddClause registers clause (found at clauseIdx in the owning
// formula) in the watch list. Unit clauses watch only themselves, per
// spec.md §4.4; all other clauses watch their first two literals.
func (wl *WatchList) AddClause(clauseIdx int, c Clause) {
	switch len(c.Literals) {
	case 0:
		panic("satcore: cannot watch an empty clause")
	case 1:
		lit0 := c.Literals[0]
		i := litIndex(lit0)
		wl.watches[i] = append(wl.watches[i], WatchEntry{ClauseIdx: clauseIdx, Blocking: lit0})
	default:
		lit0, lit1 := c.Literals[0], c.Literals[1]
		i0, i1 := litIndex(lit0), litIndex(lit1)
		wl.watches[i0] = append(wl.watches[i0], WatchEntry{ClauseIdx: clauseIdx, Blocking: lit1})
		wl.watches[i1] = append(wl.watches[i1], WatchEntry{ClauseIdx: clauseIdx, Blocking: lit0})
	}
}

// UpdateForAssignment processes the watchers of assignedLit.Not() —
// the literal that just became falsified because assignedLit was just
// assigned true — looking for a replacement watch in each watching
// clause, per spec.md §4.4:
//
//  1. If the clause's other watched literal is satisfied, skip it.
//  2. Else scan the clause for a replacement watch: any literal that is
//     not falsified; swap it in.
//  3. Else (no replacement): if the other watched literal is
//     unassigned, the clause is unit — assign it immediately; if it is
//     falsified, the clause is a conflict.
//
// A unit is assigned the moment it's found, not merely reported,
// mirroring the teacher's enqueue-inside-Propagate pattern
// (internal/sat/solver.go's Clause.Propagate calling s.enqueue directly
// rather than deferring). This matters when assignedLit's falsification
// makes two or more watched clauses unit simultaneously: each is
// assigned against the up-to-date state before the next watcher is
// examined, so none are silently dropped (spec.md §4.4, "propagation
// must be complete — no more unit clauses remain"). Scanning stops
// immediately on the first conflict found.
func (wl *WatchList) UpdateForAssignment(assignedLit Lit, state SolverState) (SolverState, *Clause) {
	negLit := assignedLit.Not()
	idx := litIndex(negLit)
	entries := wl.watches[idx]

	kept := entries[:0]
	for i := 0; i < len(entries); i++ {
		w := entries[i]

		if v, ok := state.Assignment.Get(w.Blocking); ok && v {
			kept = append(kept, w)
			continue
		}

		clause := state.Formula.Clauses[w.ClauseIdx]

		replacement, hasReplacement := Lit{}, false
		for _, l := range clause.Literals {
			if l == negLit || l == w.Blocking {
				continue
			}
			if v, ok := state.Assignment.Get(l); ok && !v {
				continue // falsified: not a valid watch
			}
			replacement, hasReplacement = l, true
			break
		}

		if hasReplacement {
			newIdx := litIndex(replacement)
			wl.watches[newIdx] = append(wl.watches[newIdx], WatchEntry{ClauseIdx: w.ClauseIdx, Blocking: w.Blocking})
			continue
		}

		// No replacement: the clause now rests entirely on w.Blocking.
		kept = append(kept, w)
		v, ok := state.Assignment.Get(w.Blocking)
		switch {
		case ok && !v:
			c := clause
			kept = append(kept, entries[i+1:]...)
			wl.watches[idx] = kept
			return state, &c
		case !ok:
			state = state.AssignUnitProp(w.Blocking.Var, w.Blocking.Value, clause)
		}
	}

	wl.watches[idx] = kept
	return state, nil
}

// Propagator drives unit propagation via a WatchList, replaying the
// trail incrementally rather than rescanning every clause (spec.md
// §4.4, "two-watched-literal"). A Propagator is tied to one
// SolverState's clause vector: use Watch whenever a clause (original
// or learned) is appended.
type Propagator struct {
	wl        *WatchList
	processed int
}

// NewPropagator returns a Propagator with an empty watch list sized
// for numVars variables. Callers must register every clause of the
// initial formula with Watch before the first call to Run.
func NewPropagator(numVars int) *Propagator {
	return &Propagator{wl: NewWatchList(numVars)}
}

// Watch registers clause (at clauseIdx in the formula) with the
// propagator's watch list. Call this once for every original clause
// up front, and again every time LearnClause appends a new clause.
func (p *Propagator) Watch(clauseIdx int, c Clause) {
	p.wl.AddClause(clauseIdx, c)
}

// Run propagates to fixpoint: it replays every trail element not yet
// seen by this propagator (new decisions, and any unit consequences it
// derives itself) until either a conflict clause is found or no more
// watchers yield a new unit literal. It returns the (possibly updated)
// state and, on conflict, the falsified clause.
func (p *Propagator) Run(state SolverState) (SolverState, *Clause) {
	if p.processed > len(state.Trail) {
		// The trail was truncated by a backjump since our last Run;
		// the watch-list structure itself needs no rollback (watch
		// pointers are literal-indexed, not assignment-indexed), but
		// our replay cursor must not run past the current trail.
		p.processed = len(state.Trail)
	}

	for p.processed < len(state.Trail) {
		lit := state.Trail[p.processed].Lit
		p.processed++

		var conflict *Clause
		state, conflict = p.wl.UpdateForAssignment(lit, state)
		if conflict != nil {
			return state, conflict
		}
	}
	return state, nil
}
