package hypothesis

import "github.com/oraclearn/oraclearn/alphabet"

// GuardKind is the predicate form a counter guard takes. Guards appear
// only on automata that went through a periodicity fold; an unguarded
// transition is always enabled.
type GuardKind int

const (
	// GuardNone marks an unguarded transition.
	GuardNone GuardKind = iota
	// GuardGreater enables a transition only while cv > threshold.
	GuardGreater
	// GuardAtMost enables a transition only while cv <= threshold.
	GuardAtMost
)

type guard struct {
	kind      GuardKind
	threshold int
}

// SetCounterSemantics turns a into a one-counter automaton: words are now
// read with a running counter value, transitions may carry counter
// guards, and Accepts honors both. weights is χ, copied; offset and
// length record the periodic fold (m, k) that produced the machine.
func (a *Automaton) SetCounterSemantics(weights map[alphabet.Symbol]int, offset, length int) {
	a.weights = make(map[alphabet.Symbol]int, len(weights))
	for sym, w := range weights {
		a.weights[sym] = w
	}
	a.periodOffset = offset
	a.periodLength = length
	a.folded = true
	if a.guards == nil {
		a.guards = make(map[Transition]guard)
	}
}

// GuardTransition attaches a counter guard to an existing transition.
// Calling it before SetCounterSemantics is allowed; the guard takes
// effect once the automaton is marked counter-guarded.
func (a *Automaton) GuardTransition(t Transition, kind GuardKind, threshold int) {
	if kind == GuardNone {
		delete(a.guards, t)
		return
	}
	if a.guards == nil {
		a.guards = make(map[Transition]guard)
	}
	a.guards[t] = guard{kind: kind, threshold: threshold}
}

// Guard returns the guard attached to t, or GuardNone.
func (a *Automaton) Guard(t Transition) (GuardKind, int) {
	gd, ok := a.guards[t]
	if !ok {
		return GuardNone, 0
	}
	return gd.kind, gd.threshold
}

// CounterGuarded reports whether a carries one-counter semantics, i.e. a
// periodicity fold has installed a weight map and counter guards.
func (a *Automaton) CounterGuarded() bool { return a.folded }

// Period returns the fold's offset m and length k. ok is false for a
// plain NFA or an unfolded behaviour graph.
func (a *Automaton) Period() (m, k int, ok bool) {
	if !a.folded {
		return 0, 0, false
	}
	return a.periodOffset, a.periodLength, true
}

// guardSatisfied evaluates t's guard against the counter value cv held
// when the edge is taken (before the symbol's own weight is applied;
// that value identifies which unfolded level the folded state is
// standing in for).
func (a *Automaton) guardSatisfied(t Transition, cv int) bool {
	gd, ok := a.guards[t]
	if !ok {
		return true
	}
	switch gd.kind {
	case GuardGreater:
		return cv > gd.threshold
	case GuardAtMost:
		return cv <= gd.threshold
	default:
		return true
	}
}

// acceptsCounter simulates a counter-guarded automaton on w: the set of
// reachable states advances per symbol as in the plain NFA case, but a
// transition is only followed when its guard holds for the current
// counter value, and a word whose counter ever goes negative (or uses a
// symbol with no weight) is rejected outright. The counter is a function
// of the input read so far, not of the path taken, so a single cv is
// tracked alongside the whole state set.
func acceptsCounter(a *Automaton, w alphabet.Word) bool {
	init, ok := a.Initial()
	if !ok {
		return false
	}

	current := map[StateID]bool{init: true}
	cv := 0
	for _, sym := range w {
		wt, ok := a.weights[sym]
		if !ok {
			return false
		}
		next := make(map[StateID]bool)
		for id := range current {
			for _, t := range a.TransitionsFrom(id) {
				if t.Symbol != sym {
					continue
				}
				if !a.guardSatisfied(t, cv) {
					continue
				}
				next[t.To] = true
			}
		}
		cv += wt
		if cv < 0 {
			return false
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
