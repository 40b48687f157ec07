// Package export renders a hypothesis.Automaton as Graphviz DOT text: a
// write-only diagnostic side effect consumed by operators, never by the
// learner. DOT is produced directly via text/template over an io.Writer.
package export
