package hypothesis

import (
	"errors"

	"github.com/oraclearn/oraclearn/alphabet"
)

// Sentinel errors for Automaton construction and queries.
var (
	// ErrNoStates indicates an Automaton with no states was queried.
	ErrNoStates = errors.New("hypothesis: automaton has no states")

	// ErrStateNotFound indicates a StateID not present in the Automaton.
	ErrStateNotFound = errors.New("hypothesis: state not found")
)

// StateID identifies a State within a single Automaton. IDs are dense
// small integers assigned in construction order; they are not stable
// across rebuilds of the hypothesis (a fresh Automaton is built each
// outer learning iteration).
type StateID int

// State is a single vertex of the hypothesis acceptor.
//
// Label carries the "i_u" display encoding (the counter value as the
// prefix before '_') as metadata only; the real identity of a state is
// its ID, which stays valid when RemoveStatesAbove compacts the states.
type State struct {
	ID        StateID
	Level     int
	Label     string
	Accepting bool
}

// Transition is a single labeled edge (From, Symbol, To).
type Transition struct {
	From   StateID
	Symbol alphabet.Symbol
	To     StateID
}

// Automaton is a labeled-transition multigraph: the NFA produced by the
// flat learner, or the behaviour graph / one-counter automaton produced
// by the stratified learner. It is not safe for concurrent mutation;
// callers build one fresh Automaton per outer iteration and never mutate
// a snapshot already handed to a Teacher.
type Automaton struct {
	states      []State
	index       map[StateID]int // StateID -> position in states; IDs stay stable across fold removals
	nextID      StateID
	transitions []Transition
	transSet    map[Transition]struct{} // dedup index mirroring core.Graph's adjacencyList membership check
	initial     StateID
	hasInitial  bool

	// counter semantics, present only after a periodicity fold (counter.go)
	guards       map[Transition]guard
	weights      map[alphabet.Symbol]int
	periodOffset int
	periodLength int
	folded       bool
}

// New returns an empty Automaton with no states or transitions.
func New() *Automaton {
	return &Automaton{
		index:    make(map[StateID]int),
		transSet: make(map[Transition]struct{}),
	}
}

// AddState appends a new State and returns its ID. IDs are never reused,
// so a state added after a fold removal cannot collide with a survivor.
//
// Complexity: O(1) amortized.
func (a *Automaton) AddState(level int, label string, accepting bool) StateID {
	id := a.nextID
	a.nextID++
	a.index[id] = len(a.states)
	a.states = append(a.states, State{ID: id, Level: level, Label: label, Accepting: accepting})
	return id
}

// SetInitial marks id as the initial state. The first call also seeds the
// default initial state; subsequent calls overwrite it.
func (a *Automaton) SetInitial(id StateID) {
	a.initial = id
	a.hasInitial = true
}

// Initial returns the initial state's ID. ok is false if none was set.
func (a *Automaton) Initial() (StateID, bool) {
	return a.initial, a.hasInitial
}

// AddTransition adds (from, sym, to) if it is not already present. NFAs
// are inherently multigraphs with self-loops, so neither is restricted
// here.
//
// Complexity: O(1) amortized.
func (a *Automaton) AddTransition(from StateID, sym alphabet.Symbol, to StateID) {
	t := Transition{From: from, Symbol: sym, To: to}
	if _, exists := a.transSet[t]; exists {
		return
	}
	a.transSet[t] = struct{}{}
	a.transitions = append(a.transitions, t)
}

// States returns every state, in construction order.
func (a *Automaton) States() []State {
	out := make([]State, len(a.states))
	copy(out, a.states)
	return out
}

// State returns the State with the given ID. IDs are resolved through
// the arena index, so lookups stay correct after RemoveStatesAbove has
// compacted the state slice.
func (a *Automaton) State(id StateID) (State, error) {
	pos, ok := a.index[id]
	if !ok {
		return State{}, ErrStateNotFound
	}
	return a.states[pos], nil
}

// Transitions returns every transition, in construction/insertion order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, len(a.transitions))
	copy(out, a.transitions)
	return out
}

// TransitionsFrom returns every transition whose From equals id.
func (a *Automaton) TransitionsFrom(id StateID) []Transition {
	var out []Transition
	for _, t := range a.transitions {
		if t.From == id {
			out = append(out, t)
		}
	}
	return out
}

// TransitionsTo returns every transition whose To equals id.
func (a *Automaton) TransitionsTo(id StateID) []Transition {
	var out []Transition
	for _, t := range a.transitions {
		if t.To == id {
			out = append(out, t)
		}
	}
	return out
}

// StatesAtLevel returns the IDs of every state at the given counter-value
// level, in construction order.
func (a *Automaton) StatesAtLevel(level int) []StateID {
	var out []StateID
	for _, s := range a.states {
		if s.Level == level {
			out = append(out, s.ID)
		}
	}
	return out
}
