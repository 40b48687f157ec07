// Package obstable implements the flat observation table that drives the
// L*-style regular-language learner: a pair (R, S) of access words and
// distinguishing suffixes, backed by a membership function T populated
// lazily from a teacher.Teacher, plus the closure and consistency
// operations that mutate the table toward its two invariants.
//
//	Table.New             builds the seed table (R={ε}, S={ε})
//	Table.RowSignature     row(r) = <T(r,s) : s in S>, filled on demand
//	Table.MakeClosed       single closure-witness step
//	Table.MakeConsistent   single consistency-witness step
//	Table.Fixpoint         iterates both to a joint fixpoint
//	Table.AbsorbCounterExample  inserts every prefix of a counter-example into R
//	BuildNFA                    turns a closed, consistent table into a hypothesis.Automaton
package obstable
