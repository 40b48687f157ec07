// Package alphabet defines the symbol set Σ shared by every learner in
// oraclearn, plus the optional weight map χ used by the one-counter
// (stratified) learner to compute a word's counter value cv.
//
// A Word is an ordered sequence of Symbol; the empty Word represents ε.
// CounterValue folds χ over a Word: cv(ε) = 0, cv(wa) = cv(w) + χ(a).
//
// Errors:
//
//	ErrEmptyAlphabet   - an Alphabet with no symbols was constructed.
//	ErrUnknownSymbol   - a Word contains a symbol outside Σ.
//	ErrWeightUndefined - CounterValue was asked for a symbol with no χ entry.
package alphabet
