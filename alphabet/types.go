package alphabet

import (
	"errors"
	"strings"
)

// Sentinel errors for alphabet validation. Callers MUST use errors.Is.
var (
	// ErrEmptyAlphabet indicates an Alphabet was built with zero symbols.
	ErrEmptyAlphabet = errors.New("alphabet: symbol set is empty")

	// ErrUnknownSymbol indicates a Word referenced a symbol outside Σ.
	ErrUnknownSymbol = errors.New("alphabet: word contains a symbol not in the alphabet")

	// ErrWeightUndefined indicates a symbol has no entry in the weight map χ.
	ErrWeightUndefined = errors.New("alphabet: symbol has no defined weight")
)

// Symbol is a single letter of Σ. Symbols are compared by value, so an
// Alphabet may use multi-character tokens (e.g. loaded from YAML) as long
// as each one is reserved for exactly one logical symbol.
type Symbol string

// Word is an ordered sequence of Symbol. The empty Word{} / nil Word is ε.
type Word []Symbol

// String renders w as its symbols concatenated in order, used for display
// and as the cache/table key. Multi-character symbols are joined with no
// separator; callers that need unambiguous round-tripping for such
// alphabets should key on the Word value itself, not this string.
func (w Word) String() string {
	var b strings.Builder
	for _, s := range w {
		b.WriteString(string(s))
	}
	return b.String()
}

// Append returns a new Word equal to w with a appended. w is not mutated.
func (w Word) Append(a Symbol) Word {
	out := make(Word, len(w)+1)
	copy(out, w)
	out[len(w)] = a
	return out
}

// Prefixes returns every prefix of w, including ε, in increasing length
// order (ε first, w itself last).
//
// Complexity: O(n^2) in len(w) due to the defensive copies; n is the
// length of a single query/counter-example word, never the table size.
func (w Word) Prefixes() []Word {
	res := make([]Word, 0, len(w)+1)
	for i := 0; i <= len(w); i++ {
		pref := make(Word, i)
		copy(pref, w[:i])
		res = append(res, pref)
	}
	return res
}

// Concat returns w ++ suffix as a new Word.
func (w Word) Concat(suffix Word) Word {
	out := make(Word, 0, len(w)+len(suffix))
	out = append(out, w...)
	out = append(out, suffix...)
	return out
}

// Alphabet is a finite symbol set Σ, plus an optional weight map χ used by
// the stratified (one-counter) learner. Symbols is the canonical iteration
// order: closure/consistency witness search walks it in this order and
// picks the first witness, so construction order is significant.
type Alphabet struct {
	Symbols []Symbol
	Weights map[Symbol]int // χ: Symbol -> {-1, 0, +1}; nil for the flat (L*) learner
}

// New builds an Alphabet from symbols in iteration order, with no weight
// map (suitable for the regular/L* learner only).
func New(symbols ...Symbol) (Alphabet, error) {
	if len(symbols) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	cp := make([]Symbol, len(symbols))
	copy(cp, symbols)
	return Alphabet{Symbols: cp}, nil
}

// NewWeighted builds an Alphabet with an explicit weight map χ, required
// by the stratified (one-counter) learner. Every symbol in symbols must
// have a weights entry in {-1, 0, +1}; ErrWeightUndefined is returned
// otherwise.
func NewWeighted(symbols []Symbol, weights map[Symbol]int) (Alphabet, error) {
	if len(symbols) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}
	cp := make([]Symbol, len(symbols))
	copy(cp, symbols)
	w := make(map[Symbol]int, len(weights))
	for _, s := range cp {
		v, ok := weights[s]
		if !ok {
			return Alphabet{}, ErrWeightUndefined
		}
		if v < -1 || v > 1 {
			return Alphabet{}, ErrWeightUndefined
		}
		w[s] = v
	}
	return Alphabet{Symbols: cp, Weights: w}, nil
}

// Contains reports whether s is a member of Σ.
func (a Alphabet) Contains(s Symbol) bool {
	for _, sym := range a.Symbols {
		if sym == s {
			return true
		}
	}
	return false
}

// Weight returns χ(s). ErrWeightUndefined is returned if a carries no
// weight map or s has no entry in it.
func (a Alphabet) Weight(s Symbol) (int, error) {
	if a.Weights == nil {
		return 0, ErrWeightUndefined
	}
	v, ok := a.Weights[s]
	if !ok {
		return 0, ErrWeightUndefined
	}
	return v, nil
}

// CounterValue computes cv(w) = sum of χ over w's symbols. Returns
// ErrUnknownSymbol if w uses a symbol outside Σ, or ErrWeightUndefined if
// a has no weight map (the flat/L* learner never calls this).
//
// Complexity: O(len(w)).
func (a Alphabet) CounterValue(w Word) (int, error) {
	cv := 0
	for _, s := range w {
		if !a.Contains(s) {
			return 0, ErrUnknownSymbol
		}
		wt, err := a.Weight(s)
		if err != nil {
			return 0, err
		}
		cv += wt
	}
	return cv, nil
}
