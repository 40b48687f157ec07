package hypothesis

import "github.com/oraclearn/oraclearn/alphabet"

// InducedSubgraph returns a new Automaton containing only the states in
// keep and the transitions whose endpoints are both kept. The receiver
// is not mutated. State IDs are preserved: they are arena handles, so
// transition sets, guards, and any caller-held per-edge annotations
// keyed by the parent's IDs remain valid against the sub-automaton.
//
// Complexity: O(V + E).
func (a *Automaton) InducedSubgraph(keep map[StateID]bool) *Automaton {
	out := New()
	out.nextID = a.nextID

	for _, s := range a.states {
		if !keep[s.ID] {
			continue
		}
		out.index[s.ID] = len(out.states)
		out.states = append(out.states, s)
	}
	if a.hasInitial && keep[a.initial] {
		out.SetInitial(a.initial)
	}

	for _, t := range a.transitions {
		if keep[t.From] && keep[t.To] {
			out.AddTransition(t.From, t.Symbol, t.To)
		}
	}

	if a.folded {
		out.folded = true
		out.periodOffset = a.periodOffset
		out.periodLength = a.periodLength
		out.weights = make(map[alphabet.Symbol]int, len(a.weights))
		for sym, w := range a.weights {
			out.weights[sym] = w
		}
		out.guards = make(map[Transition]guard, len(a.guards))
		for t, gd := range a.guards {
			if keep[t.From] && keep[t.To] {
				out.guards[t] = gd
			}
		}
	}

	return out
}

// RemoveStatesAbove deletes every state at a level strictly greater than
// level, along with every transition touching a removed state. Used by
// the periodicity fold: once a period (m, k) is found, every state above
// m+k is discarded and replaced by loop-back edges into the m..m+k window.
//
// Complexity: O(V + E).
func (a *Automaton) RemoveStatesAbove(level int) {
	keep := make(map[StateID]bool, len(a.states))
	newStates := a.states[:0:0]
	newIndex := make(map[StateID]int, len(a.states))
	for _, s := range a.states {
		if s.Level <= level {
			keep[s.ID] = true
			newIndex[s.ID] = len(newStates)
			newStates = append(newStates, s)
		}
	}
	a.states = newStates
	a.index = newIndex

	newTrans := a.transitions[:0:0]
	newSet := make(map[Transition]struct{}, len(newTrans))
	for _, t := range a.transitions {
		if keep[t.From] && keep[t.To] {
			newTrans = append(newTrans, t)
			newSet[t] = struct{}{}
		}
	}
	a.transitions = newTrans
	a.transSet = newSet

	for t := range a.guards {
		if !keep[t.From] || !keep[t.To] {
			delete(a.guards, t)
		}
	}
}
