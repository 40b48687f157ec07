package teacher

import (
	"context"
	"errors"
	"sync"

	"github.com/oraclearn/oraclearn/alphabet"
	"github.com/oraclearn/oraclearn/hypothesis"
)

// Sentinel errors. Callers MUST use errors.Is.
var (
	// ErrEmptyCounterExample indicates a Teacher returned the empty word
	// as a counter-example, which is illegal.
	ErrEmptyCounterExample = errors.New("teacher: counter-example must be non-empty")

	// ErrTeacherInconsistent indicates Member returned two different
	// answers for the same word across calls; a teacher bug, fatal.
	ErrTeacherInconsistent = errors.New("teacher: contradictory answers for the same word")
)

// Verdict is the sum type Ok | CounterExample(word) returned by an
// equivalence query. The zero Verdict is never valid; use Ok() or
// CounterExampleVerdict to construct one.
type Verdict struct {
	ok bool
	ce alphabet.Word
	is bool // true once properly constructed, guards the zero-value footgun
}

// Ok returns the "hypothesis accepted" verdict.
func Ok() Verdict { return Verdict{ok: true, is: true} }

// CounterExampleVerdict returns a verdict carrying a non-empty
// counter-example word. Panics if w is empty: construction-time, not a
// recoverable runtime condition, since every caller controls w directly.
func CounterExampleVerdict(w alphabet.Word) Verdict {
	if len(w) == 0 {
		panic("teacher: CounterExampleVerdict requires a non-empty word")
	}
	return Verdict{ok: false, ce: w, is: true}
}

// IsOk reports whether v is the Ok verdict.
func (v Verdict) IsOk() bool { return v.is && v.ok }

// CounterExample returns the counter-example word and true, or a zero
// Word and false if v is Ok.
func (v Verdict) CounterExample() (alphabet.Word, bool) {
	if v.is && !v.ok {
		return v.ce, true
	}
	return nil, false
}

// Teacher is the oracle interface consumed by the regular (L*) learner.
type Teacher interface {
	// Member answers whether w is in the target language L. Implementations
	// must cache their answer and return it verbatim on repeated calls.
	Member(ctx context.Context, w alphabet.Word) (bool, error)

	// Equiv judges whether h accepts exactly L. Returns Ok, or a
	// counter-example word w such that h.Accepts(w) XOR (w in L).
	Equiv(ctx context.Context, h *hypothesis.Automaton) (Verdict, error)
}

// BehaviourTeacher additionally exposes a partial equivalence query that
// judges only the behaviour graph known up to the current level, used by
// the stratified (one-counter) learner before attempting periodicity
// detection.
type BehaviourTeacher interface {
	Teacher
	EquivBehaviour(ctx context.Context, g *hypothesis.Automaton) (Verdict, error)
}

// cache is the sole source of truth for membership answers: once a word
// has been answered, every subsequent Member call for it returns the
// cached value without consulting the oracle again.
type cache struct {
	mu      sync.Mutex
	answers map[string]bool
}

func newCache() *cache {
	return &cache{answers: make(map[string]bool)}
}

// lookup returns the cached answer for w and true, or false, false if
// unknown.
func (c *cache) lookup(w alphabet.Word) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.answers[w.String()]
	return v, ok
}

// store records w's answer. If w was already cached with a different
// answer, returns ErrTeacherInconsistent; the learner treats this as
// fatal.
func (c *cache) store(w alphabet.Word, answer bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := w.String()
	if prev, ok := c.answers[key]; ok && prev != answer {
		return ErrTeacherInconsistent
	}
	c.answers[key] = answer
	return nil
}

// MarkAccepted pre-seeds the membership cache with w as accepted, used
// when the stratified learner absorbs a counter-example: a word the
// hypothesis wrongly rejects is in L by construction, so caching it
// spares the oracle (possibly a human) one more query. A word whose
// answer is already cached keeps that answer: a counter-example on the
// other side of the disagreement (hypothesis accepts, language rejects)
// must not be flipped to accepted.
func MarkAccepted(t Teacher, w alphabet.Word) error {
	type cacheHolder interface{ cacheFor() *cache }
	ch, ok := t.(cacheHolder)
	if !ok {
		return nil
	}
	c := ch.cacheFor()
	if _, known := c.lookup(w); known {
		return nil
	}
	return c.store(w, true)
}
