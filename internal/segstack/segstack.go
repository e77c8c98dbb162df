// Package segstack implements the compile-time stack of NFA fragments the
// parser composes sub-expressions with. Each entry is a Segment: a
// {begin, end} pair of state indices describing a sub-NFA already emitted
// into the state table. At every return from a parser production exactly
// one Segment must be on top of the Stack, representing the parsed
// sub-pattern.
package segstack

// StateID mirrors nfa.StateID without importing the nfa package, avoiding
// a dependency cycle between the compiler's two lowest layers.
type StateID int32

// Segment is a partially- or fully-built sub-NFA: the state at which it
// begins and the state at which it ends. Every state reachable from Begin
// without leaving the segment eventually reaches End.
type Segment struct {
	Begin StateID
	End   StateID
}

// Stack is a growable LIFO stack of Segments.
//
// The zero Stack is ready to use.
type Stack struct {
	segs []Segment
}

// New returns a Stack with room for the given number of segments without
// reallocating. A capacity hint isn't required; it exists because the
// compiler knows roughly how many fragments a pattern of a given length
// will produce and can avoid a few grows.
func New(capacity int) *Stack {
	return &Stack{segs: make([]Segment, 0, capacity)}
}

// Push places a segment on top of the stack.
func (s *Stack) Push(seg Segment) {
	s.segs = append(s.segs, seg)
}

// PushPair is a convenience for Push(Segment{begin, end}).
func (s *Stack) PushPair(begin, end StateID) {
	s.Push(Segment{Begin: begin, End: end})
}

// Pop removes and returns the top segment. It panics if the stack is
// empty: every parser production that calls Pop has already established,
// via the grammar, that a matching Push happened earlier in the same
// production or one it called — an empty stack here means the compiler
// itself is broken, not that the pattern was invalid.
func (s *Stack) Pop() Segment {
	n := len(s.segs)
	if n == 0 {
		panic("segstack: pop from empty stack")
	}
	seg := s.segs[n-1]
	s.segs = s.segs[:n-1]
	return seg
}

// Peek returns the top segment without removing it.
func (s *Stack) Peek() Segment {
	return s.segs[len(s.segs)-1]
}

// Len reports the number of segments currently on the stack.
func (s *Stack) Len() int {
	return len(s.segs)
}
