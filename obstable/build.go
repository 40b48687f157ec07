package obstable

import (
	"fmt"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// rowSigKey renders a row signature as a comparable string key, used to
// dedup rows by signature when assigning states.
func rowSigKey(sig []bool) string {
	b := make([]byte, len(sig))
	for i, v := range sig {
		if v {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

func wordKeyLocal(w alphabet.Word) string {
	key := ""
	for _, s := range w {
		key += string(s) + "\x1f"
	}
	return key
}

// BuildNFA turns a closed, consistent flat table into an acceptor: rows
// are deduplicated by row signature, ε maps to the initial state, states
// whose representative row r satisfies T(r,ε)=1 are accepting, and one
// transition per (state, a) is emitted to the state of a representative
// of r·a.
func BuildNFA(t *Table) (*hypothesis.Automaton, error) {
	a := hypothesis.New()
	sigToState := make(map[string]hypothesis.StateID)
	rowToState := make(map[string]hypothesis.StateID)

	rows := t.Rows()
	for _, r := range rows {
		sig := t.RowSignature(r)
		key := rowSigKey(sig)
		id, ok := sigToState[key]
		if !ok {
			id = a.AddState(0, r.String(), t.Accepting(r))
			sigToState[key] = id
		}
		rowToState[wordKeyLocal(r)] = id
	}

	eps := wordKeyLocal(alphabet.Word{})
	initID, ok := rowToState[eps]
	if !ok {
		return nil, fmt.Errorf("obstable: table has no row for epsilon: %w", hypothesis.ErrNoStates)
	}
	a.SetInitial(initID)

	for _, r := range rows {
		from := rowToState[wordKeyLocal(r)]
		for _, sym := range t.alpha.Symbols {
			ra := r.Append(sym)
			raSig := t.RowSignature(ra)
			key := rowSigKey(raSig)
			to, ok := sigToState[key]
			if !ok {
				return nil, fmt.Errorf("obstable: no representative row for %q: %w", ra.String(), hypothesis.ErrStateNotFound)
			}
			a.AddTransition(from, sym, to)
		}
	}
	return a, nil
}
