package periodicity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
	"github.com/oraclearn/oraclearn/periodicity"
)

func anbnAlphabet(t *testing.T) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.NewWeighted([]alphabet.Symbol{"a", "b"}, map[alphabet.Symbol]int{"a": 1, "b": -1})
	require.NoError(t, err)
	return a
}

// anbnChain builds the (unfolded) behaviour graph a sufficiently-grown
// stratified learner would produce for aⁿbⁿ: one state per level 0..top,
// level 0 accepting, level i (i>=1) reached by "a" from level i-1 and
// returning to level i-1 via "b".
func anbnChain(top int) (*hypothesis.Automaton, []hypothesis.StateID) {
	g := hypothesis.New()
	states := make([]hypothesis.StateID, top+1)
	for i := 0; i <= top; i++ {
		states[i] = g.AddState(i, "", i == 0)
	}
	g.SetInitial(states[0])
	for i := 0; i < top; i++ {
		g.AddTransition(states[i], "a", states[i+1])
		g.AddTransition(states[i+1], "b", states[i])
	}
	return g, states
}

func TestDetect_TooFewLevelsReturnsErrNoPeriod(t *testing.T) {
	a := anbnAlphabet(t)
	g, _ := anbnChain(1)
	_, err := periodicity.Detect(g, 1, a)
	assert.ErrorIs(t, err, periodicity.ErrNoPeriod)
}

func TestDetect_NoIsomorphismWithinRange(t *testing.T) {
	a := anbnAlphabet(t)
	// Only level 0 (accepting) vs level 1 (not) is in range for m=0; no
	// other m fits within maxLevel=2 (m <= maxLevel-2 = 0).
	g, _ := anbnChain(2)
	_, err := periodicity.Detect(g, 2, a)
	assert.ErrorIs(t, err, periodicity.ErrNoPeriod)
}

func TestDetect_FindsPeriodInAnBnChain(t *testing.T) {
	a := anbnAlphabet(t)
	g, states := anbnChain(5)

	p, err := periodicity.Detect(g, 5, a)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, 1, p.Offset)
	assert.Equal(t, 2, p.Length)

	want := map[hypothesis.StateID]hypothesis.StateID{
		states[1]: states[3],
		states[2]: states[4],
		states[3]: states[5],
	}
	require.Len(t, p.Couples, len(want))
	for _, c := range p.Couples {
		assert.Equal(t, want[c.Q1], c.Q2, "couple (%v,%v) unexpected", c.Q1, c.Q2)
	}
	assertCouplesAligned(t, g, p)
}

// assertCouplesAligned checks the pairing invariant: every couple's
// upper state sits exactly k levels above its lower state.
func assertCouplesAligned(t *testing.T, g *hypothesis.Automaton, p *periodicity.Period) {
	t.Helper()
	for _, c := range p.Couples {
		s1, err := g.State(c.Q1)
		require.NoError(t, err)
		s2, err := g.State(c.Q2)
		require.NoError(t, err)
		assert.Equalf(t, s1.Level+p.Length, s2.Level,
			"couple (%v at level %d, %v at level %d) is not aligned to k=%d",
			c.Q1, s1.Level, c.Q2, s2.Level, p.Length)
	}
}

func TestLoopBack_FoldsAnBnChain(t *testing.T) {
	a := anbnAlphabet(t)
	g, states := anbnChain(5)
	q0, q1, q2, q3 := states[0], states[1], states[2], states[3]

	p, err := periodicity.Detect(g, 5, a)
	require.NoError(t, err)

	classes, err := periodicity.LoopBack(g, p, a)
	require.NoError(t, err)

	// Folding deletes every state above m+k = 3.
	assert.Len(t, g.States(), 4)
	for _, s := range g.States() {
		assert.LessOrEqual(t, s.Level, 3)
	}

	assertClass := func(from hypothesis.StateID, sym alphabet.Symbol, to hypothesis.StateID, want periodicity.EdgeClass) {
		t.Helper()
		got, ok := classes[hypothesis.Transition{From: from, Symbol: sym, To: to}]
		require.True(t, ok, "expected transition %v --%s--> %v to survive folding", from, sym, to)
		assert.Equal(t, want, got)
	}

	// Forward (+1) edges below the cut keep their original classification.
	assertClass(q0, "a", q1, periodicity.EdgeInit)
	assertClass(q1, "a", q2, periodicity.EdgeInit)
	assertClass(q2, "a", q3, periodicity.EdgeInit)

	// The couple whose states both survived the cut is (q1, q3): q1's
	// +1 edge is duplicated onto q3, q3's -1 edge is duplicated onto q1.
	assertClass(q3, "a", q2, periodicity.EdgeLoopinUnconditional)
	assertClass(q1, "b", q2, periodicity.EdgeLoopinConditional)

	// q1's pre-existing "b" edge competes with the conditional one and
	// becomes loopout; b-edges of uncoupled lower states are untouched.
	assertClass(q1, "b", q0, periodicity.EdgeLoopout)
	assertClass(q2, "b", q1, periodicity.EdgeInit)
	assertClass(q3, "b", q2, periodicity.EdgeInit)

	// The fold annotates the graph with counter semantics and guards.
	require.True(t, g.CounterGuarded())
	m, k, ok := g.Period()
	require.True(t, ok)
	assert.Equal(t, 1, m)
	assert.Equal(t, 2, k)

	kind, threshold := g.Guard(hypothesis.Transition{From: q1, Symbol: "b", To: q2})
	assert.Equal(t, hypothesis.GuardGreater, kind)
	assert.Equal(t, 1, threshold)
	kind, threshold = g.Guard(hypothesis.Transition{From: q1, Symbol: "b", To: q0})
	assert.Equal(t, hypothesis.GuardAtMost, kind)
	assert.Equal(t, 1, threshold)
	kind, _ = g.Guard(hypothesis.Transition{From: q3, Symbol: "a", To: q2})
	assert.Equal(t, hypothesis.GuardNone, kind)
}

func TestLoopBack_FoldedAutomatonAcceptsAnBn(t *testing.T) {
	a := anbnAlphabet(t)
	g, _ := anbnChain(5)

	p, err := periodicity.Detect(g, 5, a)
	require.NoError(t, err)
	_, err = periodicity.LoopBack(g, p, a)
	require.NoError(t, err)

	// The folded machine must accept a^n b^n for n well beyond the
	// levels that survived the fold, and nothing else.
	for n := 0; n <= 8; n++ {
		w := make(alphabet.Word, 0, 2*n)
		for i := 0; i < n; i++ {
			w = append(w, "a")
		}
		for i := 0; i < n; i++ {
			w = append(w, "b")
		}
		assert.Truef(t, hypothesis.Accepts(g, w), "a^%d b^%d must be accepted", n, n)
	}
	for _, w := range []alphabet.Word{
		{"a"},
		{"b"},
		{"a", "a", "b"},
		{"a", "b", "b"},
		{"b", "a"},
	} {
		assert.Falsef(t, hypothesis.Accepts(g, w), "word %q must be rejected", w.String())
	}
}

func ancbnAlphabet(t *testing.T) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.NewWeighted(
		[]alphabet.Symbol{"a", "b", "c"},
		map[alphabet.Symbol]int{"a": 1, "b": -1, "c": 0},
	)
	require.NoError(t, err)
	return a
}

// ancbnStates indexes the four states a^n c^* b^n needs per level: the
// ascent class (still reading a's), the plateau class (reading weight-0
// c's, only c/b may follow), the descent class (only b's may follow),
// and the dead class.
type ancbnStates struct {
	ascent, plateau, descent, dead []hypothesis.StateID
}

// ancbnGraph builds the behaviour graph a converged stratified learner
// produces for a^n c^k b^n up to the given top level. Unlike the a^n b^n
// chain, interior levels hold several distinct live states, so the
// isomorphism search has to pick the right partner among same-window
// alternatives rather than just walk a path.
func ancbnGraph(top int) (*hypothesis.Automaton, ancbnStates) {
	g := hypothesis.New()
	var st ancbnStates
	st.ascent = make([]hypothesis.StateID, top+1)
	st.plateau = make([]hypothesis.StateID, top+1)
	st.descent = make([]hypothesis.StateID, top+1)
	st.dead = make([]hypothesis.StateID, top+1)
	for i := 0; i <= top; i++ {
		st.ascent[i] = g.AddState(i, "", i == 0) // level 0 ascent state is [ε]
		if i >= 1 {
			st.plateau[i] = g.AddState(i, "", false)
		}
		st.descent[i] = g.AddState(i, "", i == 0) // level 0 descent state is [ab]
		st.dead[i] = g.AddState(i, "", false)
	}
	g.SetInitial(st.ascent[0])

	g.AddTransition(st.ascent[0], "a", st.ascent[1])
	g.AddTransition(st.ascent[0], "c", st.dead[0])
	g.AddTransition(st.descent[0], "a", st.dead[1])
	g.AddTransition(st.descent[0], "c", st.dead[0])
	g.AddTransition(st.dead[0], "a", st.dead[1])
	g.AddTransition(st.dead[0], "c", st.dead[0])
	for i := 1; i <= top; i++ {
		if i < top {
			g.AddTransition(st.ascent[i], "a", st.ascent[i+1])
		}
		g.AddTransition(st.ascent[i], "c", st.plateau[i])
		g.AddTransition(st.ascent[i], "b", st.descent[i-1])
		if i < top {
			g.AddTransition(st.plateau[i], "a", st.dead[i+1])
		}
		g.AddTransition(st.plateau[i], "c", st.plateau[i])
		g.AddTransition(st.plateau[i], "b", st.descent[i-1])
		if i < top {
			g.AddTransition(st.descent[i], "a", st.dead[i+1])
		}
		g.AddTransition(st.descent[i], "c", st.dead[i])
		g.AddTransition(st.descent[i], "b", st.descent[i-1])
		if i < top {
			g.AddTransition(st.dead[i], "a", st.dead[i+1])
		}
		g.AddTransition(st.dead[i], "c", st.dead[i])
		g.AddTransition(st.dead[i], "b", st.dead[i-1])
	}
	return g, st
}

// TestDetect_BranchingGraphPairsWithinLevels exercises the pairing
// search on a graph with four states per interior level: every couple
// must match a state with its counterpart exactly k levels up, never a
// same-window neighbor that merely looks structurally similar.
func TestDetect_BranchingGraphPairsWithinLevels(t *testing.T) {
	a := ancbnAlphabet(t)
	g, st := ancbnGraph(3)

	p, err := periodicity.Detect(g, 3, a)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Offset)
	assert.Equal(t, 1, p.Length)
	require.Len(t, p.Couples, 8)
	assertCouplesAligned(t, g, p)

	want := map[hypothesis.StateID]hypothesis.StateID{
		st.ascent[1]:  st.ascent[2],
		st.plateau[1]: st.plateau[2],
		st.descent[1]: st.descent[2],
		st.dead[1]:    st.dead[2],
		st.ascent[2]:  st.ascent[3],
		st.plateau[2]: st.plateau[3],
		st.descent[2]: st.descent[3],
		st.dead[2]:    st.dead[3],
	}
	for _, c := range p.Couples {
		assert.Equal(t, want[c.Q1], c.Q2, "couple (%v,%v) pairs unrelated classes", c.Q1, c.Q2)
	}
}

// TestLoopBack_FoldedBranchingGraphAcceptsAnCkBn folds the branching
// graph and checks the guarded machine recognizes a^n c^k b^n for
// counters well beyond the surviving levels.
func TestLoopBack_FoldedBranchingGraphAcceptsAnCkBn(t *testing.T) {
	a := ancbnAlphabet(t)
	g, _ := ancbnGraph(3)

	p, err := periodicity.Detect(g, 3, a)
	require.NoError(t, err)
	_, err = periodicity.LoopBack(g, p, a)
	require.NoError(t, err)
	require.True(t, g.CounterGuarded())

	word := func(n, k int) alphabet.Word {
		w := make(alphabet.Word, 0, 2*n+k)
		for i := 0; i < n; i++ {
			w = append(w, "a")
		}
		for i := 0; i < k; i++ {
			w = append(w, "c")
		}
		for i := 0; i < n; i++ {
			w = append(w, "b")
		}
		return w
	}

	for n := 1; n <= 6; n++ {
		for k := 0; k <= 2; k++ {
			assert.Truef(t, hypothesis.Accepts(g, word(n, k)),
				"a^%d c^%d b^%d must be accepted", n, k, n)
		}
	}
	assert.True(t, hypothesis.Accepts(g, alphabet.Word{}))

	for _, w := range []alphabet.Word{
		{"c"},
		{"a", "c"},
		{"c", "b"},
		{"a", "a", "c", "b"},
		{"a", "c", "b", "b"},
		{"a", "b", "c"},
		{"c", "a", "b"},
		{"a", "a", "b"},
	} {
		assert.Falsef(t, hypothesis.Accepts(g, w), "word %q must be rejected", w.String())
	}
}

// TestDetect_AperiodicAcceptanceNeverMatches feeds the detector a chain
// whose per-level acceptance follows the Thue-Morse sequence. An
// overlap-free sequence has no factor with period k spanning 2k+1
// positions, so every candidate pair of level windows disagrees on some
// aligned level's acceptance: the search must exhaust every (m, k) and
// decline to claim a periodic structure, leaving the graph to keep
// growing.
func TestDetect_AperiodicAcceptanceNeverMatches(t *testing.T) {
	a := anbnAlphabet(t)
	top := 8
	g := hypothesis.New()
	states := make([]hypothesis.StateID, top+1)
	thueMorse := []int{0, 1, 1, 0, 1, 0, 0, 1, 1}
	for i := 0; i <= top; i++ {
		states[i] = g.AddState(i, "", thueMorse[i] == 0)
	}
	g.SetInitial(states[0])
	for i := 0; i < top; i++ {
		g.AddTransition(states[i], "a", states[i+1])
		g.AddTransition(states[i+1], "b", states[i])
	}

	_, err := periodicity.Detect(g, top, a)
	assert.ErrorIs(t, err, periodicity.ErrNoPeriod)
}

func TestEdgeClass_StringAndGuard(t *testing.T) {
	assert.Equal(t, "init", periodicity.EdgeInit.String())
	assert.Equal(t, "loopin-unconditional", periodicity.EdgeLoopinUnconditional.String())
	assert.Equal(t, "loopin-conditional", periodicity.EdgeLoopinConditional.String())
	assert.Equal(t, "loopout", periodicity.EdgeLoopout.String())

	assert.Equal(t, "", periodicity.EdgeInit.Guard(3))
	assert.Equal(t, "", periodicity.EdgeLoopinUnconditional.Guard(3))
	assert.Equal(t, "cv > 3", periodicity.EdgeLoopinConditional.Guard(3))
	assert.Equal(t, "cv <= 3", periodicity.EdgeLoopout.Guard(3))
}
