// Package oraclearn is an active automaton learning engine: it infers a
// finite-state acceptor of an unknown formal language by querying a
// teacher oracle via membership and equivalence queries.
//
// Two learners are provided, built from the same observation-table
// machinery:
//
//   - LearnRegular (package learner) runs the L*-style algorithm and
//     produces an NFA equivalent to a regular target language.
//   - LearnOneCounter (package learner) runs a stratified variant and
//     produces a behaviour graph folded, via periodicity detection, into
//     a one-counter automaton for a visibly one-counter target language.
//
// Package layout, leaves first:
//
//	alphabet/    Σ, the optional weight map χ, and cv(w)
//	teacher/     the oracle interface, membership cache, and three
//	             concrete teachers (regex, function, interactive)
//	obstable/    the flat (R, S, T) observation table for L*
//	stratified/  the level-indexed family {O_i} for the one-counter learner
//	hypothesis/  the Automaton acceptor type and its two builders
//	periodicity/ isomorphic-stratum detection and loop-back folding
//	learner/     the two outer learning loops
//	export/      DOT diagnostic rendering
//	config/      YAML alphabet-file loading
//	cmd/oraclearn/ the CLI entry point
//
// The core is single-threaded and synchronous: there is no concurrent
// access to a Teacher, and every Automaton handed to one is an immutable
// snapshot rebuilt fresh each outer iteration.
package oraclearn
