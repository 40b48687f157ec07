// Package hypothesis provides the acceptor data type produced by the
// learners: an NFA for the regular branch, a behaviour graph / one-counter
// automaton for the stratified branch. It depends only on alphabet, so
// that obstable and stratified, which both need to build an Automaton
// from their own table type, can import it without creating a cycle;
// the builders themselves (BuildNFA, BuildBehaviourGraph) live in those
// packages rather than here.
//
// Automaton is a small labeled-transition multigraph: states carry a
// counter-value Level (0 for the flat NFA variant), a display Label in
// the "i_u" encoding, and an Accepting flag; transitions are
// (From, Symbol, To) triples with set semantics (AddTransition never
// adds a duplicate edge). Automaton carries no locks: the learner is
// single-threaded by design, and every Automaton returned to a Teacher
// is an immutable snapshot built fresh each outer iteration.
//
// InducedSubgraph/StatesAtLevel/RemoveStatesAbove are the primitives the
// periodicity package needs to extract and fold level-windowed
// subgraphs. After a fold, an Automaton additionally carries counter
// semantics (a weight map, a period, and per-transition guards), which
// Accepts honors when simulating a word.
package hypothesis
