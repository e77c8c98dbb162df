package nfa

import "github.com/coregx/wrx/wrxerr"

// deltaStates scales the table's initial capacity: a pattern byte rarely
// compiles to more than four states.
const deltaStates = 4

// Table is the append-only, index-addressable sequence of NFA states a
// Compiler emits into. It owns every State's Class vector.
//
// Table is pre-sized from the pattern length and refuses to grow past
// MaxStates.
type Table struct {
	states []State
}

// NewTable returns a Table pre-sized for a pattern of the given length.
// The +1 keeps zero-length patterns from starting with no capacity at all.
func NewTable(patternLen int) *Table {
	capacity := deltaStates * (patternLen + 1)
	if capacity > MaxStates {
		capacity = MaxStates
	}
	return &Table{states: make([]State, 0, capacity)}
}

// Add appends a new state with the given opcode and both transitions
// unset, returning its id. It reports ErrManyStates once the table would
// exceed MaxStates.
func (t *Table) Add(op Opcode) (StateID, error) {
	if len(t.states) >= MaxStates {
		return InvalidState, &wrxerr.Error{Code: wrxerr.ErrManyStates}
	}
	id := StateID(len(t.states))
	t.states = append(t.states, State{Op: op, S0: InvalidState, S1: InvalidState})
	return id, nil
}

// Len reports the number of states currently in the table.
func (t *Table) Len() int {
	return len(t.states)
}

// Get returns a pointer to the state at id for in-place mutation (setting
// its payload, patching its transitions). The pointer is invalidated by
// any subsequent Add, since Add may reallocate the backing slice.
func (t *Table) Get(id StateID) *State {
	return &t.states[id]
}

// Link attaches a transition from 'from' to 'to', filling S0 if it is
// still InvalidState, otherwise S1. Every state has room for at most two
// outgoing transitions; a third Link on the same state is a compiler bug,
// not a user-facing error, so it panics.
func (t *Table) Link(from, to StateID) {
	s := &t.states[from]
	switch {
	case s.S0 == InvalidState:
		s.S0 = to
	case s.S1 == InvalidState:
		s.S1 = to
	default:
		panic("nfa: state already has two transitions")
	}
}

// SetS0 forces the S0 transition of state id to to, overwriting whatever
// was there. Used by the compiler's bounded-quantifier duplication, which
// relinks a chain of already-built segments rather than appending a fresh
// transition.
func (t *Table) SetS0(id, to StateID) {
	t.states[id].S0 = to
}

// Duplicate creates a copy of state j with the same opcode, payload and
// transitions (SET's Class is deep-copied so duplicated copies can be
// inverted or mutated independently), used by the bounded-quantifier
// duplication strategy. The caller is responsible for rewriting the
// copy's transitions by the appropriate offset.
func (t *Table) Duplicate(j StateID) (StateID, error) {
	src := t.states[j]
	k, err := t.Add(src.Op)
	if err != nil {
		return InvalidState, err
	}
	dst := t.Get(k)
	dst.S0 = src.S0
	dst.S1 = src.S1
	dst.Byte = src.Byte
	dst.Idx = src.Idx
	if src.Class != nil {
		dst.Class = src.Class.Clone()
	}
	return k, nil
}
