package periodicity

import (
	"errors"
	"fmt"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// ErrNoPeriod indicates the search exhausted every (m, k) candidate
// without finding an isomorphic pair of strata. Non-fatal: the caller
// should return the behaviour graph unlooped and retry once t grows.
var ErrNoPeriod = errors.New("periodicity: no isomorphic period found")

// ErrIsomorphismBacktrackExhausted indicates one particular (m, k)
// candidate's pairing search backtracked through every permutation
// without success. Detect absorbs this internally and tries the next
// (m, k); it only surfaces wrapped inside ErrNoPeriod once every
// candidate has failed.
var ErrIsomorphismBacktrackExhausted = errors.New("periodicity: candidate pairing exhausted")

// StatePair is a matched (q at level m+i, q' at level m+k+i) couple
// produced by the isomorphism search.
type StatePair struct {
	Q1, Q2 hypothesis.StateID
}

// Period describes a detected periodic fold: offset m, length k, and the
// matched (q at level m+i, q' at level m+k+i) pairs for every i in
// [0, k]: the full level-aligned pairing between the two induced
// windows, not just their floor states.
type Period struct {
	Offset  int
	Length  int
	Couples []StatePair
}

// EdgeClass is the per-edge classification installed by LoopBack: the
// existing edges of the unfolded graph stay EdgeInit, and the loop-back
// step adds the other three classes around a matched couple.
type EdgeClass int

const (
	// EdgeInit is any transition present before folding.
	EdgeInit EdgeClass = iota
	// EdgeLoopinUnconditional is a +1-weight edge out of the lower
	// couple state q1, duplicated onto the upper couple state q2.
	EdgeLoopinUnconditional
	// EdgeLoopinConditional is a -1-weight edge out of the upper couple
	// state q2, duplicated onto the lower couple state q1, guarded
	// "cv > m".
	EdgeLoopinConditional
	// EdgeLoopout is a pre-existing outgoing edge of q1 that shares its
	// label with a loopin-conditional edge; reclassified, guarded
	// "cv <= m".
	EdgeLoopout
)

// String renders the edge class for logs and DOT output.
func (c EdgeClass) String() string {
	switch c {
	case EdgeLoopinUnconditional:
		return "loopin-unconditional"
	case EdgeLoopinConditional:
		return "loopin-conditional"
	case EdgeLoopout:
		return "loopout"
	default:
		return "init"
	}
}

// Guard renders the counter-value predicate attached to a conditional
// edge class at period offset m. Returns "" for EdgeInit/EdgeLoopin-
// Unconditional, which carry no guard.
func (c EdgeClass) Guard(m int) string {
	switch c {
	case EdgeLoopinConditional:
		return fmt.Sprintf("cv > %d", m)
	case EdgeLoopout:
		return fmt.Sprintf("cv <= %d", m)
	default:
		return ""
	}
}

// LoopBack folds g at the period p found by Detect. Every state above
// m+k is deleted first; then, for each matched couple (q1 at level m+i,
// q2 at level m+k+i) that survived the cut, the loop-back edges are
// installed over what remains: a loopin-unconditional duplicate on q2
// for every +1-weight edge out of q1, a loopin-conditional duplicate on
// q1 for every -1-weight edge out of q2, guarded "cv > m". Every
// pre-existing outgoing edge of q1 sharing a loopin-conditional edge's
// label is reclassified loopout, guarded "cv <= m" (all competing
// same-label edges, not merely the first). Deleting before linking
// keeps a couple whose upper state fell above the cut from leaving
// dangling edges behind. g is mutated in place, annotated with the
// counter semantics Accepts needs, and the per-edge classification is
// returned for rendering.
func LoopBack(g *hypothesis.Automaton, p *Period, a alphabet.Alphabet) (map[hypothesis.Transition]EdgeClass, error) {
	g.RemoveStatesAbove(p.Offset + p.Length)

	classes := make(map[hypothesis.Transition]EdgeClass, len(g.Transitions()))
	for _, t := range g.Transitions() {
		classes[t] = EdgeInit
	}

	for _, couple := range p.Couples {
		q1, q2 := couple.Q1, couple.Q2
		if _, err := g.State(q1); err != nil {
			continue
		}
		q2Alive := true
		if _, err := g.State(q2); err != nil {
			q2Alive = false
		}

		if q2Alive {
			for _, t := range g.TransitionsFrom(q1) {
				w, err := a.Weight(t.Symbol)
				if err != nil {
					return nil, err
				}
				if w != 1 {
					continue
				}
				newT := hypothesis.Transition{From: q2, Symbol: t.Symbol, To: t.To}
				g.AddTransition(newT.From, newT.Symbol, newT.To)
				classes[newT] = EdgeLoopinUnconditional
			}
		}

		conditionalLabels := make(map[alphabet.Symbol]bool)
		for _, t := range g.TransitionsFrom(q2) {
			w, err := a.Weight(t.Symbol)
			if err != nil {
				return nil, err
			}
			if w != -1 {
				continue
			}
			newT := hypothesis.Transition{From: q1, Symbol: t.Symbol, To: t.To}
			g.AddTransition(newT.From, newT.Symbol, newT.To)
			classes[newT] = EdgeLoopinConditional
			conditionalLabels[t.Symbol] = true
		}

		// Every competing outgoing edge of q1 sharing a loopin-conditional
		// label (except the loopin-conditional edge just installed)
		// becomes loopout.
		for _, t := range g.TransitionsFrom(q1) {
			if !conditionalLabels[t.Symbol] {
				continue
			}
			if classes[t] == EdgeLoopinConditional {
				continue
			}
			classes[t] = EdgeLoopout
		}
	}

	weights := make(map[alphabet.Symbol]int, len(a.Symbols))
	for _, sym := range a.Symbols {
		w, err := a.Weight(sym)
		if err != nil {
			return nil, err
		}
		weights[sym] = w
	}
	g.SetCounterSemantics(weights, p.Offset, p.Length)
	for t, c := range classes {
		switch c {
		case EdgeLoopinConditional:
			g.GuardTransition(t, hypothesis.GuardGreater, p.Offset)
		case EdgeLoopout:
			g.GuardTransition(t, hypothesis.GuardAtMost, p.Offset)
		}
	}
	return classes, nil
}

// Detect searches g (a behaviour graph known up to maxLevel) for the
// earliest offset m and longest length k such that the sub-graph induced
// by levels [m, m+k] is isomorphic to the sub-graph induced by levels
// [m+k, m+2k] (level-aligned: state at m+i pairs with state at m+k+i).
// k is tried largest-to-smallest and m smallest-to-largest, so the
// earliest, longest period wins. Requires at least 3 levels
// (maxLevel >= 2); returns ErrNoPeriod otherwise or if no candidate
// succeeds.
func Detect(g *hypothesis.Automaton, maxLevel int, a alphabet.Alphabet) (*Period, error) {
	if maxLevel < 2 {
		return nil, ErrNoPeriod
	}
	exhausted := false
	for m := 0; m <= maxLevel-2; m++ {
		for k := (maxLevel - m) / 2; k >= 1; k-- {
			b1 := windowBounds{lo: m, hi: m + k}
			b2 := windowBounds{lo: m + k, hi: m + 2*k}
			side1 := statesInWindow(g, b1.lo, b1.hi)
			side2 := statesInWindow(g, b2.lo, b2.hi)
			if len(side1) == 0 || len(side1) != len(side2) {
				continue
			}
			couples, ok, err := matchPairing(g, a.Symbols, side1, b1, side2, b2, k)
			if err != nil {
				return nil, err
			}
			if ok {
				return &Period{Offset: m, Length: k, Couples: couples}, nil
			}
			exhausted = true
		}
	}
	if exhausted {
		return nil, fmt.Errorf("%w: %w", ErrNoPeriod, ErrIsomorphismBacktrackExhausted)
	}
	return nil, ErrNoPeriod
}
