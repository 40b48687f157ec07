package periodicity

import (
	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// windowBounds is an inclusive [lo, hi] counter-value range. A neighbor
// whose level falls outside its window's bounds is treated as absent,
// matching induced-subgraph semantics: an edge with an endpoint outside
// the window does not exist in that window's subgraph, so it must not be
// followed or compared here, only noted as present/absent.
type windowBounds struct{ lo, hi int }

func (b windowBounds) contains(level int) bool { return level >= b.lo && level <= b.hi }

// isoQueueItem pairs a state from each side during the parallel walk.
type isoQueueItem struct {
	q1, q2 hypothesis.StateID
}

// inBounds reports whether id's level falls within b.
func inBounds(g *hypothesis.Automaton, id hypothesis.StateID, b windowBounds) (bool, error) {
	s, err := g.State(id)
	if err != nil {
		return false, err
	}
	return b.contains(s.Level), nil
}

// firstTransitionFrom returns the first transition out of q under sym
// whose destination lies within b. Well-formed behaviour graphs never
// carry two outgoing edges with the same label from the same state
// (Family.OEquivalent guarantees a unique destination class per symbol),
// so at most one candidate can ever match regardless of the bound.
func firstTransitionFrom(g *hypothesis.Automaton, q hypothesis.StateID, sym alphabet.Symbol, b windowBounds) (hypothesis.StateID, bool, error) {
	for _, t := range g.TransitionsFrom(q) {
		if t.Symbol != sym {
			continue
		}
		ok, err := inBounds(g, t.To, b)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		return t.To, true, nil
	}
	return 0, false, nil
}

// firstTransitionTo returns the first transition into q under sym whose
// source lies within b (the window q itself belongs to, per induced-
// subgraph semantics: both endpoints must be kept).
func firstTransitionTo(g *hypothesis.Automaton, q hypothesis.StateID, sym alphabet.Symbol, b windowBounds) (hypothesis.StateID, bool, error) {
	for _, t := range g.TransitionsTo(q) {
		if t.Symbol != sym {
			continue
		}
		ok, err := inBounds(g, t.From, b)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		return t.From, true, nil
	}
	return 0, false, nil
}

// stateIsomorphic reports whether q1 (confined to window b1) and q2
// (confined to window b2) are isomorphic within their respective
// induced sub-graphs: a parallel BFS from (q1, q2) that expands along
// both outgoing and incoming edges for every symbol, aborting on any
// in-window neighbor-existence, acceptance-status, or level-alignment
// mismatch. The alignment invariant is that every matched pair sits
// exactly shift levels apart (a state at level m+i pairs only with one
// at level m+k+i), checked for the starting pair and for every neighbor
// pair the walk discovers. A neighbor outside its own window is treated
// as absent rather than recursed into, so the walk always terminates
// within the two finite windows instead of propagating out to the rest
// of the graph.
func stateIsomorphic(g *hypothesis.Automaton, syms []alphabet.Symbol, q1 hypothesis.StateID, b1 windowBounds, q2 hypothesis.StateID, b2 windowBounds, shift int) (bool, error) {
	match, err := pairCompatible(g, q1, q2, shift)
	if err != nil {
		return false, err
	}
	if !match {
		return false, nil
	}

	queue := []isoQueueItem{{q1, q2}}
	visited := map[hypothesis.StateID]bool{q1: true}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for _, a := range syms {
			n1, ok1, err := firstTransitionFrom(g, item.q1, a, b1)
			if err != nil {
				return false, err
			}
			n2, ok2, err := firstTransitionFrom(g, item.q2, a, b2)
			if err != nil {
				return false, err
			}
			if ok1 != ok2 {
				return false, nil
			}
			if ok1 {
				if match, err := pairCompatible(g, n1, n2, shift); err != nil {
					return false, err
				} else if !match {
					return false, nil
				}
				if !visited[n1] {
					visited[n1] = true
					queue = append(queue, isoQueueItem{n1, n2})
				}
			}

			p1, pok1, err := firstTransitionTo(g, item.q1, a, b1)
			if err != nil {
				return false, err
			}
			p2, pok2, err := firstTransitionTo(g, item.q2, a, b2)
			if err != nil {
				return false, err
			}
			if pok1 != pok2 {
				return false, nil
			}
			if pok1 {
				if match, err := pairCompatible(g, p1, p2, shift); err != nil {
					return false, err
				} else if !match {
					return false, nil
				}
				if !visited[p1] {
					visited[p1] = true
					queue = append(queue, isoQueueItem{p1, p2})
				}
			}
		}
	}
	return true, nil
}

// pairCompatible reports whether q1 and q2 may be matched at all: equal
// acceptance status, and q2 exactly shift levels above q1.
func pairCompatible(g *hypothesis.Automaton, q1, q2 hypothesis.StateID, shift int) (bool, error) {
	s1, err := g.State(q1)
	if err != nil {
		return false, err
	}
	s2, err := g.State(q2)
	if err != nil {
		return false, err
	}
	return s1.Accepting == s2.Accepting && s2.Level == s1.Level+shift, nil
}

// matchPairing recursively pairs every state in side1 (window b1)
// against some state in side2 (window b2) such that stateIsomorphic
// holds, backtracking on failure: the first candidate for side1[0] that
// both passes the isomorphism test and lets the remainder pair off
// successfully is kept; any other failed candidate is un-paired and the
// next one tried. Candidates are confined to the level shift levels
// above side1[0]'s, so a structurally-compatible but level-misaligned
// pairing can never be produced.
func matchPairing(g *hypothesis.Automaton, syms []alphabet.Symbol, side1 []hypothesis.StateID, b1 windowBounds, side2 []hypothesis.StateID, b2 windowBounds, shift int) ([]StatePair, bool, error) {
	if len(side1) == 0 {
		return nil, true, nil
	}
	q1 := side1[0]
	rest1 := side1[1:]
	for i, q2 := range side2 {
		ok, err := stateIsomorphic(g, syms, q1, b1, q2, b2, shift)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		rest2 := make([]hypothesis.StateID, 0, len(side2)-1)
		rest2 = append(rest2, side2[:i]...)
		rest2 = append(rest2, side2[i+1:]...)

		couples, matched, err := matchPairing(g, syms, rest1, b1, rest2, b2, shift)
		if err != nil {
			return nil, false, err
		}
		if matched {
			return append(couples, StatePair{Q1: q1, Q2: q2}), true, nil
		}
	}
	return nil, false, nil
}

// statesInWindow returns every state of g whose level falls within
// [lo, hi], in construction order.
func statesInWindow(g *hypothesis.Automaton, lo, hi int) []hypothesis.StateID {
	var out []hypothesis.StateID
	for i := lo; i <= hi; i++ {
		out = append(out, g.StatesAtLevel(i)...)
	}
	return out
}
