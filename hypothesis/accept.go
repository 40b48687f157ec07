package hypothesis

import "github.com/oraclearn/oraclearn/alphabet"

// Accepts runs w through a by tracking the set of states reachable after
// each symbol, starting from the initial state, and reports whether any
// state reached after the last symbol is accepting. Returns false for an
// Automaton with no initial state set. On a counter-guarded automaton
// (one that went through a periodicity fold) the simulation additionally
// tracks the counter value and follows only transitions whose guard
// holds.
//
// Complexity: O(len(w) * |transitions|).
func Accepts(a *Automaton, w alphabet.Word) bool {
	if a.folded {
		return acceptsCounter(a, w)
	}
	init, ok := a.Initial()
	if !ok {
		return false
	}

	current := map[StateID]bool{init: true}
	for _, sym := range w {
		next := make(map[StateID]bool)
		for id := range current {
			for _, t := range a.TransitionsFrom(id) {
				if t.Symbol == sym {
					next[t.To] = true
				}
			}
		}
		current = next
		if len(current) == 0 {
			return false
		}
	}

	for id := range current {
		st, err := a.State(id)
		if err == nil && st.Accepting {
			return true
		}
	}
	return false
}
