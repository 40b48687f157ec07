// Package teacher defines the oracle contract consumed by the learner
// packages: membership queries ("is w in L?") and equivalence queries
// ("is H equivalent to L; if not, a counter-example").
//
// Teacher implementations must be pure and deterministic for a given run:
// repeated Member calls on the same word return the cached answer, and a
// contradiction is reported as ErrTeacherInconsistent rather than silently
// accepted: the cache is the sole source of truth for membership.
//
// Three implementations are provided:
//
//   - RegexTeacher wraps a compiled regexp.Regexp.
//   - FuncTeacher wraps a plain membership predicate, used for the
//     built-in demo languages (aⁿbⁿ, aⁿcᵏbⁿ, ...).
//   - InteractiveTeacher prompts a human over a readline session.
//
// Equivalence queries return Ok when the hypothesis is accepted as final,
// or a non-empty counter-example word otherwise.
package teacher
