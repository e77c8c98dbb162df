// Package compiler turns a pattern string into a compiled *nfa.NFA: a
// recursive-descent parser that emits states directly into an nfa.Table as
// it recognizes each grammar production, composing sub-expressions via a
// stack of {begin,end} state-index pairs.
package compiler

import (
	"github.com/coregx/wrx/internal/classvec"
	"github.com/coregx/wrx/internal/segstack"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// parser holds everything a single Compile call threads through the
// grammar's mutually-recursive functions.
type parser struct {
	pattern string
	pos     int

	table *nfa.Table
	segs  *segstack.Stack

	nsubm int
	ci    bool

	escape byte
}

func newParser(pattern string) *parser {
	return &parser{
		pattern: pattern,
		table:   nfa.NewTable(len(pattern)),
		segs:    segstack.New(10),
		nsubm:   1,
		escape:  '\\',
	}
}

// fail builds a compile error anchored at the parser's current offset.
func (p *parser) fail(code wrxerr.Code) error {
	return &wrxerr.Error{Code: code, Offset: p.pos, Pattern: p.pattern}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) cur() byte {
	return p.pattern[p.pos]
}

func (p *parser) newState(op nfa.Opcode) (nfa.StateID, error) {
	id, err := p.table.Add(op)
	if err != nil {
		return nfa.InvalidState, p.fail(wrxerr.ErrManyStates)
	}
	return id, nil
}

func (p *parser) setByte(id nfa.StateID, b byte) {
	p.table.Get(id).Byte = b
}

func (p *parser) setIdx(id nfa.StateID, idx int) {
	p.table.Get(id).Idx = idx
}

func (p *parser) setClass(id nfa.StateID, v *classvec.Vector) {
	p.table.Get(id).Class = v
}

func (p *parser) link(from, to nfa.StateID) {
	p.table.Link(from, to)
}

func (p *parser) pushSeg(begin, end nfa.StateID) {
	p.segs.PushPair(segstack.StateID(begin), segstack.StateID(end))
}

type seg struct {
	Begin, End nfa.StateID
}

func (p *parser) popSeg() seg {
	s := p.segs.Pop()
	return seg{Begin: nfa.StateID(s.Begin), End: nfa.StateID(s.End)}
}

// duplicateWithOffset copies state j and shifts any of its live
// transitions by ofs, so the copy points at the corresponding states of
// its own duplicated fragment rather than back into the original.
func (p *parser) duplicateWithOffset(j, ofs nfa.StateID) (nfa.StateID, error) {
	k, err := p.table.Duplicate(j)
	if err != nil {
		return nfa.InvalidState, p.fail(wrxerr.ErrManyStates)
	}
	st := p.table.Get(k)
	if st.S0 != nfa.InvalidState {
		st.S0 += ofs
	}
	if st.S1 != nfa.InvalidState {
		st.S1 += ofs
	}
	return k, nil
}

// duplicateRange duplicates every state in [sub1, sub2), offsetting each
// copy's transitions by ofs. It is the inner loop the bounded-quantifier
// cases ({m}, {m,}, {,n}, {m,n}) all repeat a variable number of times.
func (p *parser) duplicateRange(sub1, sub2, ofs nfa.StateID) error {
	for j := sub1; j < sub2; j++ {
		if _, err := p.duplicateWithOffset(j, ofs); err != nil {
			return err
		}
	}
	return nil
}
