package learner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
	"github.com/oraclearn/oraclearn/learner"
	"github.com/oraclearn/oraclearn/teacher"
)

func unweightedAB(t *testing.T) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New("a", "b")
	require.NoError(t, err)
	return a
}

func weightedAB(t *testing.T) alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.NewWeighted([]alphabet.Symbol{"a", "b"}, map[alphabet.Symbol]int{"a": 1, "b": -1})
	require.NoError(t, err)
	return a
}

// Empty language: the teacher accepts no word.
func TestLearnRegular_EmptyLanguage(t *testing.T) {
	a := unweightedAB(t)
	mt := teacher.NewFuncTeacher(func(alphabet.Word) bool { return false }, a, 3)

	res, err := learner.LearnRegular(a, mt)
	require.NoError(t, err)
	require.NotNil(t, res.Automaton)

	for _, w := range []alphabet.Word{{}, {"a"}, {"b"}, {"a", "b"}} {
		assert.False(t, hypothesis.Accepts(res.Automaton, w), "word %q must be rejected", w.String())
	}
}

// Universal language over {a}.
func TestLearnRegular_UniversalLanguage(t *testing.T) {
	a, err := alphabet.New("a")
	require.NoError(t, err)
	mt := teacher.NewFuncTeacher(func(alphabet.Word) bool { return true }, a, 4)

	res, err := learner.LearnRegular(a, mt)
	require.NoError(t, err)

	for _, w := range []alphabet.Word{{}, {"a"}, {"a", "a"}, {"a", "a", "a"}} {
		assert.True(t, hypothesis.Accepts(res.Automaton, w), "word %q must be accepted", w.String())
	}
}

// Target "ab" exactly.
func TestLearnRegular_ExactlyAB(t *testing.T) {
	a := unweightedAB(t)
	mt := teacher.NewFuncTeacher(func(w alphabet.Word) bool {
		return w.String() == "ab"
	}, a, 3)

	res, err := learner.LearnRegular(a, mt)
	require.NoError(t, err)

	assert.True(t, hypothesis.Accepts(res.Automaton, alphabet.Word{"a", "b"}))
	for _, w := range []alphabet.Word{{}, {"a"}, {"b"}, {"a", "a"}, {"b", "a"}, {"a", "b", "a"}} {
		assert.False(t, hypothesis.Accepts(res.Automaton, w), "word %q must be rejected", w.String())
	}
}

func isAnBn(w alphabet.Word) bool {
	i := 0
	for i < len(w) && w[i] == "a" {
		i++
	}
	n := i
	if n == 0 {
		return len(w) == 0
	}
	j := 0
	for i < len(w) && w[i] == "b" {
		i++
		j++
	}
	return i == len(w) && j == n
}

// a^n b^n: the stratified learner must converge and the learned
// automaton must agree with the target on the scenario's test words.
func TestLearnOneCounter_AnBn(t *testing.T) {
	a := weightedAB(t)
	mt := teacher.NewFuncTeacher(isAnBn, a, 8)

	res, err := learner.LearnOneCounter(a, mt, learner.WithMaxIterations(50))
	require.NoError(t, err)
	require.NotNil(t, res.Automaton)

	// A fold always reports its edge classification alongside the
	// automaton, so classified DOT export stays possible.
	if res.Automaton.CounterGuarded() {
		assert.NotNil(t, res.EdgeClasses)
	}

	assert.True(t, hypothesis.Accepts(res.Automaton, alphabet.Word{"a", "a", "b", "b"}))
	for _, w := range []alphabet.Word{
		{"a", "a", "b"},
		{"a", "b", "b"},
		{"a", "b", "a", "b"},
	} {
		assert.False(t, hypothesis.Accepts(res.Automaton, w), "word %q must be rejected", w.String())
	}
}

func TestLearnRegular_RespectsMaxIterations(t *testing.T) {
	a := unweightedAB(t)
	// A teacher that always hands back a fresh, longer counter-example
	// never lets the loop converge, exercising the safety valve.
	n := 0
	bad := &neverConvergingTeacher{alpha: a, n: &n}

	_, err := learner.LearnRegular(a, bad, learner.WithMaxIterations(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, learner.ErrMaxIterationsExceeded)
}

// neverConvergingTeacher always rejects everything via Member, but its
// Equiv always disagrees by growing counter-examples, so the learner
// never reaches Ok and WithMaxIterations must trip.
type neverConvergingTeacher struct {
	alpha alphabet.Alphabet
	n     *int
}

func (n *neverConvergingTeacher) Member(context.Context, alphabet.Word) (bool, error) {
	return false, nil
}

func (n *neverConvergingTeacher) Equiv(context.Context, *hypothesis.Automaton) (teacher.Verdict, error) {
	*n.n++
	w := make(alphabet.Word, *n.n)
	for i := range w {
		w[i] = "a"
	}
	return teacher.CounterExampleVerdict(w), nil
}
