package compiler

import (
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// parseElement implements:
//
//	element ::= ("(" [":"] list ")" | value)
//	            [(("*"|"+"|"?")["?"]) | ("{" [digit+] ["," [digit+]] "}" ["?"])]
//	            [element]
func (p *parser) parseElement() error {
	sub1 := nfa.StateID(p.table.Len())

	if !p.eof() && p.cur() == '$' {
		// An element that starts at '$' (e.g. the right branch of "a|$")
		// is an empty branch; give it a no-op segment so the enclosing
		// list still finds one to pop.
		b, err := p.newState(nfa.MOV)
		if err != nil {
			return err
		}
		p.pushSeg(b, b)
		return nil
	}

	if !p.eof() && p.cur() == '(' {
		if err := p.parseGroup(); err != nil {
			return err
		}
	} else {
		if err := p.parseValue(); err != nil {
			return err
		}
	}

	if !p.eof() && p.cur() == '$' {
		return nil
	}

	if !p.eof() && isQuantifier(p.cur()) {
		if err := p.parseUnboundedQuantifier(); err != nil {
			return err
		}
	} else if !p.eof() && p.cur() == '{' {
		if err := p.parseBoundedQuantifier(sub1); err != nil {
			return err
		}
	}

	if !p.eof() && p.cur() != '|' && p.cur() != ')' && p.cur() != '$' {
		m := p.popSeg()
		b, e := m.Begin, m.End
		if err := p.parseElement(); err != nil {
			return err
		}
		m2 := p.popSeg()
		p.link(e, m2.Begin)
		p.pushSeg(b, m2.End)
	}
	return nil
}

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '?'
}

// parseGroup implements: "(" [":"] list ")"
// A leading ":" marks a non-capturing group.
func (p *parser) parseGroup() error {
	p.pos++ // consume '('

	capture := -1
	if !p.eof() && p.cur() == ':' {
		p.pos++
	} else {
		capture = p.nsubm
		p.nsubm++
	}

	if err := p.parseList(); err != nil {
		return err
	}
	if p.eof() || p.cur() != ')' {
		return p.fail(wrxerr.ErrBracket)
	}

	if capture >= 0 {
		m := p.popSeg()

		b, err := p.newState(nfa.REC)
		if err != nil {
			return err
		}
		p.setIdx(b, capture)
		p.link(b, m.Begin)

		e, err := p.newState(nfa.STP)
		if err != nil {
			return err
		}
		p.setIdx(e, capture)
		p.link(m.End, e)

		p.pushSeg(b, e)
	}

	p.pos++ // consume ')'
	return nil
}

// parseUnboundedQuantifier implements ("*"|"+"|"?")["?"].
func (p *parser) parseUnboundedQuantifier() error {
	m := p.popSeg()

	b, err := p.newState(nfa.CHC)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(b, m.Begin)
	p.link(b, e)

	switch p.cur() {
	case '*':
		p.link(m.End, b)
		p.pushSeg(b, e)
	case '+':
		p.link(m.End, b)
		p.pushSeg(m.Begin, e)
	case '?':
		p.link(m.End, e)
		p.pushSeg(b, e)
	}
	p.pos++

	if !p.eof() && p.cur() == '?' {
		p.pos++
		p.weaken(b)
	}
	return nil
}

func (p *parser) weaken(s nfa.StateID) {
	st := p.table.Get(s)
	st.S0, st.S1 = st.S1, st.S0
}

// parseBoundedQuantifier implements "{" [digit+] ["," [digit+]] "}" ["?"].
// sub1 is the state index the enclosing element() started at, before its
// value/group was compiled — the duplication arithmetic below measures
// "how many states did that value/group need" as sub2-sub1.
func (p *parser) parseBoundedQuantifier(sub1 nfa.StateID) error {
	p.pos++ // consume '{'

	boc, eoc, cf := 0, 0, 0

	if !p.eof() && isDigit(p.cur()) {
		cf = 1
	}
	for !p.eof() && isDigit(p.cur()) {
		boc = boc*10 + int(p.cur()-'0')
		p.pos++
	}

	if !p.eof() && p.cur() == ',' {
		cf |= 2
		p.pos++
		if !p.eof() && isDigit(p.cur()) {
			cf |= 4
		}
		for !p.eof() && isDigit(p.cur()) {
			eoc = eoc*10 + int(p.cur()-'0')
			p.pos++
		}
	}

	if p.eof() || p.cur() != '}' {
		return p.fail(wrxerr.ErrCurlyB)
	}
	p.pos++

	// cf: 0 "{}" (as '*'), 1 "{x}", 2 "{,}" (as '*'), 3 "{x,}", 6 "{,y}",
	// 7 "{x,y}". cf 4 and 5 can't happen (digit-after-comma without a
	// leading digit run is still just a normal digit run).
	if cf == 7 && boc == eoc {
		cf = 1
	}

	switch cf {
	case 0, 2:
		return p.boundedStar()
	case 1:
		return p.boundedExact(sub1, boc)
	case 3:
		return p.boundedAtLeast(sub1, boc)
	case 6:
		return p.boundedAtMost(sub1, eoc)
	case 7:
		if boc > eoc {
			return p.fail(wrxerr.ErrBadCurlyB)
		}
		return p.boundedRange(sub1, boc, eoc)
	}
	return nil
}

// boundedStar handles "{}" and "{,}", both treated as '*'.
func (p *parser) boundedStar() error {
	m := p.popSeg()

	b, err := p.newState(nfa.CHC)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(b, m.Begin)
	p.link(b, e)
	p.link(m.End, b)
	p.pushSeg(b, e)

	if !p.eof() && p.cur() == '?' {
		p.pos++
		p.weaken(b)
	}
	return nil
}

// boundedExact handles "{n}": duplicate the preceding fragment n-1 more
// times and chain the copies in sequence.
func (p *parser) boundedExact(sub1 nfa.StateID, n int) error {
	sub2 := nfa.StateID(p.table.Len())
	m := p.popSeg()

	ofs := sub2 - sub1
	b := m.Begin + ofs
	e := m.End

	for i := 1; i < n; i++ {
		if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
			return err
		}
		p.table.SetS0(e, b)
		b += ofs
		e += ofs
		sub1 += ofs
		sub2 += ofs
	}

	if !p.eof() && p.cur() == '?' {
		// Weakening has no meaning for an exact count; consume and discard.
		p.pos++
	}

	p.pushSeg(m.Begin, e)
	return nil
}

// boundedAtLeast handles "{n,}": "a{3,}" is compiled the way "aaa+" would
// be — n-1 duplicated copies followed by a '+' on the final one.
func (p *parser) boundedAtLeast(sub1 nfa.StateID, n int) error {
	sub2 := nfa.StateID(p.table.Len())
	m := p.popSeg()

	ofs := sub2 - sub1
	b := m.Begin + ofs
	e := m.End

	for i := 1; i < n; i++ {
		if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
			return err
		}
		p.table.SetS0(e, b)
		b += ofs
		e += ofs
		sub1 += ofs
		sub2 += ofs
	}

	b -= ofs
	chc, err := p.newState(nfa.CHC)
	if err != nil {
		return err
	}
	mov, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(chc, b)
	p.link(chc, mov)
	p.link(e, chc)

	if !p.eof() && p.cur() == '?' {
		p.pos++
		p.weaken(chc)
	}

	p.pushSeg(m.Begin, mov)
	return nil
}

// boundedAtMost handles "{,n}": "A{,3}" is compiled as "A?A?A?".
func (p *parser) boundedAtMost(sub1 nfa.StateID, n int) error {
	m := p.popSeg()

	b, err := p.newState(nfa.CHC)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(b, m.Begin)
	p.link(b, e)
	p.link(m.End, e)

	if !p.eof() && p.cur() == '?' {
		p.pos++
		p.weaken(b)
	}

	sub2 := nfa.StateID(p.table.Len())
	m.Begin = b
	m.End = e
	ofs := sub2 - sub1
	b += ofs

	for i := 1; i < n; i++ {
		if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
			return err
		}
		p.table.SetS0(e, b)
		b += ofs
		e += ofs
		sub1 += ofs
		sub2 += ofs
	}

	p.pushSeg(m.Begin, e)
	return nil
}

// boundedRange handles "{m,n}": compiled as m copies followed by (n-m)
// optional copies, e.g. "A{2,5}" as "AAA?A?A?".
func (p *parser) boundedRange(sub1 nfa.StateID, m, n int) error {
	sub2 := nfa.StateID(p.table.Len())
	seg := p.popSeg()

	ofs := sub2 - sub1
	b := seg.Begin + ofs
	e := seg.End

	for i := 1; i < m; i++ {
		if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
			return err
		}
		p.table.SetS0(e, b)
		b += ofs
		e += ofs
		sub1 += ofs
		sub2 += ofs
	}

	sub3 := nfa.StateID(p.table.Len())
	if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
		return err
	}

	chc, err := p.newState(nfa.CHC)
	if err != nil {
		return err
	}
	mov, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.table.SetS0(e, chc)
	p.link(chc, b)
	p.link(chc, mov)
	e += ofs
	p.link(e, mov)

	if !p.eof() && p.cur() == '?' {
		p.weaken(chc)
	}

	// Now repeat the "A?" block (n-m-1) more times. Each block is entered
	// through its CHC, so that is what the previous block's exit links to.
	sub1 = sub3
	sub2 = nfa.StateID(p.table.Len())
	ofs = sub2 - sub1
	b = chc
	e = mov

	for i := m; i < n-1; i++ {
		if err := p.duplicateRange(sub1, sub2, ofs); err != nil {
			return err
		}
		b += ofs
		p.table.SetS0(e, b)
		e += ofs
		sub1 += ofs
		sub2 += ofs
	}

	p.pushSeg(seg.Begin, e)

	if !p.eof() && p.cur() == '?' {
		p.pos++
	}
	return nil
}
