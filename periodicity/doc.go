// Package periodicity detects an isomorphic pair of strata in a
// behaviour graph and folds the upper stratum back onto the lower one
// via conditional, counter-guarded loop-back edges, the step that lets
// a finite table describe a language with an unbounded counter.
//
// The isomorphism test is a breadth-first parallel walk: two
// synchronized queues advance over the candidate windows on both
// outgoing and incoming edges, since state equivalence here depends on
// neighborhoods in both directions rather than reachability alone.
//
//	Detect    searches for a period (m, k) and returns its state couples
//	LoopBack  reclassifies edges around the couples and deletes states above m+k
package periodicity
