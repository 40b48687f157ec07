package teacher

import (
	"context"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// MemberFunc decides membership of w in the target language.
type MemberFunc func(alphabet.Word) bool

// FuncTeacher wraps a MemberFunc as a Teacher, answering equivalence by
// the same bounded brute-force search as RegexTeacher. This is the
// typical way a Go caller embeds a hand-written language predicate
// (e.g. is_ancbn) without building a regexp.
type FuncTeacher struct {
	member   MemberFunc
	alphabet alphabet.Alphabet
	maxLen   int
	cache    *cache
}

// NewFuncTeacher returns a FuncTeacher over member, searching words up to
// maxLen when answering equivalence queries.
func NewFuncTeacher(member MemberFunc, a alphabet.Alphabet, maxLen int) *FuncTeacher {
	return &FuncTeacher{member: member, alphabet: a, maxLen: maxLen, cache: newCache()}
}

func (t *FuncTeacher) cacheFor() *cache { return t.cache }

// Member reports whether w is accepted by the wrapped predicate.
func (t *FuncTeacher) Member(_ context.Context, w alphabet.Word) (bool, error) {
	if v, ok := t.cache.lookup(w); ok {
		return v, nil
	}
	answer := t.member(w)
	if err := t.cache.store(w, answer); err != nil {
		return false, err
	}
	return answer, nil
}

// Equiv brute-force searches all words over the alphabet up to maxLen,
// returning the shortest one on which h disagrees with the predicate.
func (t *FuncTeacher) Equiv(ctx context.Context, h *hypothesis.Automaton) (Verdict, error) {
	for _, w := range enumerateWords(t.alphabet, t.maxLen) {
		if len(w) == 0 {
			continue
		}
		want, err := t.Member(ctx, w)
		if err != nil {
			return Verdict{}, err
		}
		if hypothesis.Accepts(h, w) != want {
			return CounterExampleVerdict(w), nil
		}
	}
	return Ok(), nil
}

// EquivBehaviour judges g (a behaviour graph restricted to levels learned
// so far) the same way Equiv judges a flat NFA: any word over the
// alphabet up to maxLen that g disagrees with the predicate on is a
// counter-example. The one-counter learner calls this before attempting
// periodicity detection, restricting maxLen implicitly via g's own
// level ceiling (words that would need a deeper level than g covers
// simply find no accepting path and so compare correctly against a
// "reject" verdict from g).
func (t *FuncTeacher) EquivBehaviour(ctx context.Context, g *hypothesis.Automaton) (Verdict, error) {
	return t.Equiv(ctx, g)
}
