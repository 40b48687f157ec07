// Package stratified implements the level-indexed family of observation
// tables {O_i} that drives the one-counter learner: one obstable.Table
// per counter value i in [0, t], O-equivalence in place of plain row
// equality, and the level-aware closure/consistency operations that grow
// the family toward its invariants.
//
//	Family.NewFamily         seeds O_0
//	Family.Extend            ensures a row at level cv(w)
//	Family.OEquivalent       cv(u) = cv(v) and row(u) = row(v) at that level
//	Family.MakeClosed        single level-closure-witness step
//	Family.MakeConsistent    single level-consistency-witness step
//	Family.Fixpoint          iterates both to a joint fixpoint
//	Family.AbsorbCounterExample  two-phase prefix/suffix insertion across levels
package stratified
