package stratified

import (
	"fmt"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

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

// BuildBehaviourGraph turns a closed, consistent stratified family into
// a behaviour graph: for each level i, rows are deduplicated by
// O-equivalence class, named "i_u" (display only; real identity is the
// (level, class) pair), and transitions resolve the destination level
// via Family.OEquivalent, which is guaranteed to find a match by the
// family's closure invariant.
func BuildBehaviourGraph(f *Family) (*hypothesis.Automaton, error) {
	a := hypothesis.New()
	type stateKey struct {
		level int
		sig   string
	}
	stateOf := make(map[stateKey]hypothesis.StateID)
	repOf := make(map[stateKey]alphabet.Word)

	for i := 0; i <= f.MaxLevel(); i++ {
		lvl, ok := f.Level(i)
		if !ok {
			continue
		}
		for _, r := range lvl.Rows() {
			key := stateKey{level: i, sig: rowSigKey(lvl.RowSignature(r))}
			if _, exists := stateOf[key]; exists {
				continue
			}
			label := fmt.Sprintf("%d_%s", i, r.String())
			id := a.AddState(i, label, lvl.Accepting(r))
			stateOf[key] = id
			repOf[key] = r
		}
	}

	lvl0, ok := f.Level(0)
	if !ok {
		return nil, hypothesis.ErrNoStates
	}
	epsKey := stateKey{level: 0, sig: rowSigKey(lvl0.RowSignature(alphabet.Word{}))}
	initID, ok := stateOf[epsKey]
	if !ok {
		return nil, hypothesis.ErrNoStates
	}
	a.SetInitial(initID)

	alpha := f.Alphabet()
	for key, rep := range repOf {
		from := stateOf[key]
		for _, sym := range alpha.Symbols {
			w, err := alpha.Weight(sym)
			if err != nil {
				return nil, err
			}
			j := key.level + w
			if j < 0 || j > f.MaxLevel() {
				continue
			}
			dest := rep.Append(sym)
			lvlJ, ok := f.Level(j)
			if !ok {
				continue
			}
			destKey := stateKey{level: j, sig: rowSigKey(lvlJ.RowSignature(dest))}
			to, ok := stateOf[destKey]
			if !ok {
				return nil, fmt.Errorf("stratified: no representative state for %q at level %d: %w", dest.String(), j, hypothesis.ErrStateNotFound)
			}
			a.AddTransition(from, sym, to)
		}
	}
	return a, nil
}
