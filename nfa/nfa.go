package nfa

// NFA is a compiled regular expression: a state table plus the entry and
// accept state indices and the number of capture slots.
//
// An NFA is immutable from the executor's point of view once a Compile
// call returns it, and safe to match against concurrently as long as each
// concurrent Exec call uses its own operation stack and capture array —
// nothing here is ever mutated after compilation.
type NFA struct {
	Table *Table

	// Start and Stop are the entry and accept state indices.
	Start StateID
	Stop  StateID

	// NSubm is the number of capture slots, always >= 1 (slot 0 is the
	// whole match).
	NSubm int

	// Pattern is an owned copy of the original pattern text, kept so
	// errors and diagnostics can refer back to it.
	Pattern string

	// Anchored records whether the compiled pattern began with '^', which
	// lets a search skip trying successive start positions.
	Anchored bool

	// Escape is the escape byte this pattern was compiled with, kept so
	// a post-compile pass such as prefilter.Build can re-walk Pattern's
	// top-level alternation consistently with how it was parsed.
	Escape byte
}

// State returns the state at id.
func (n *NFA) State(id StateID) *State {
	return n.Table.Get(id)
}

// Len reports the number of states in the compiled NFA.
func (n *NFA) Len() int {
	return n.Table.Len()
}
