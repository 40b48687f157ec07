package hypothesis

// Prune removes states that can never reach an accepting state, and
// states unreachable from the initial state. The learner never calls it
// automatically: no minimality is promised beyond what closure and
// consistency give, so pruning is an explicit caller choice.
//
// Complexity: O(V * (V + E)) via repeated reachability closures; V is the
// number of hypothesis states, small in practice (one per table row).
func (a *Automaton) Prune() {
	reachesAccepting := make(map[StateID]bool, len(a.states))
	for _, s := range a.states {
		if s.Accepting {
			reachesAccepting[s.ID] = true
		}
	}
	changed := true
	for changed {
		changed = false
		for _, t := range a.transitions {
			if reachesAccepting[t.To] && !reachesAccepting[t.From] {
				reachesAccepting[t.From] = true
				changed = true
			}
		}
	}

	reachableFromInit := make(map[StateID]bool, len(a.states))
	if init, ok := a.Initial(); ok {
		reachableFromInit[init] = true
		changed = true
		for changed {
			changed = false
			for _, t := range a.transitions {
				if reachableFromInit[t.From] && !reachableFromInit[t.To] {
					reachableFromInit[t.To] = true
					changed = true
				}
			}
		}
	}

	keep := make(map[StateID]bool, len(a.states))
	for _, s := range a.states {
		if reachesAccepting[s.ID] && reachableFromInit[s.ID] {
			keep[s.ID] = true
		}
	}

	pruned := a.InducedSubgraph(keep)
	a.states = pruned.states
	a.index = pruned.index
	a.nextID = pruned.nextID
	a.transitions = pruned.transitions
	a.transSet = pruned.transSet
	a.guards = pruned.guards
	a.weights = pruned.weights
	if pruned.hasInitial {
		a.initial = pruned.initial
		a.hasInitial = true
	} else {
		a.hasInitial = false
	}
}
