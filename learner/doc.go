// Package learner implements the two outer learning loops.
// LearnRegular drives the flat observation table to a closed, consistent
// fixpoint and queries a teacher.Teacher for equivalence until it answers
// Ok, returning an NFA. LearnOneCounter drives the stratified family the
// same way against a teacher.BehaviourTeacher, then, once the partial
// behaviour-graph equivalence query succeeds, attempts a periodicity
// fold before the final full equivalence query, absorbing a
// counter-example from whichever query last disagreed.
//
// Both loops are configured via functional Option values (WithLogger,
// WithMaxIterations, WithPrune) and report a Result carrying the learned
// Automaton, a run ID, and the number of equivalence queries made.
package learner
