package compiler

import (
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// parsePattern implements: pattern ::= ['^'] [list] ['$']
func (p *parser) parsePattern() error {
	if p.eof() {
		// Empty pattern: match everything.
		b, err := p.newState(nfa.MEV)
		if err != nil {
			return err
		}
		p.pushSeg(b, b)
		return nil
	}

	bol := false
	hasList := false

	if p.cur() == '^' {
		bol = true
		b, err := p.newState(nfa.BOL)
		if err != nil {
			return err
		}
		p.pushSeg(b, b)
		p.pos++
		if p.eof() {
			// A bare "^" never gets the submatch-0 wrapper below.
			return nil
		}
	}

	if p.cur() != '$' {
		hasList = true
		if err := p.parseList(); err != nil {
			return err
		}
	}

	if bol && hasList {
		m2 := p.popSeg()
		m1 := p.popSeg()
		p.link(m1.End, m2.Begin)
		p.pushSeg(m1.Begin, m2.End)
	}

	if !p.eof() && p.cur() == '$' {
		if !bol && !hasList {
			b, err := p.newState(nfa.MEV)
			if err != nil {
				return err
			}
			p.pushSeg(b, b)
		}

		p.pos++
		if !p.eof() {
			return p.fail(wrxerr.ErrBadDollar)
		}

		b, err := p.newState(nfa.EOL)
		if err != nil {
			return err
		}
		e, err := p.newState(nfa.MOV)
		if err != nil {
			return err
		}
		p.link(b, e)

		m1 := p.popSeg()
		p.link(m1.End, b)
		p.pushSeg(m1.Begin, e)
	}

	// Wrap the whole pattern in REC/STP for submatch 0, which always
	// captures the entire matched text.
	m1 := p.popSeg()
	b, err := p.newState(nfa.REC)
	if err != nil {
		return err
	}
	p.setIdx(b, 0)
	e, err := p.newState(nfa.STP)
	if err != nil {
		return err
	}
	p.setIdx(e, 0)
	p.link(b, m1.Begin)
	p.link(m1.End, e)
	p.pushSeg(b, e)
	return nil
}

// parseList implements: list ::= element ["|" list]
func (p *parser) parseList() error {
	if err := p.parseElement(); err != nil {
		return err
	}

	if !p.eof() && p.cur() == '|' {
		p.pos++

		m := p.popSeg()
		b, e := m.Begin, m.End

		if err := p.parseList(); err != nil {
			return err
		}
		m2 := p.popSeg()

		n1, err := p.newState(nfa.CHC)
		if err != nil {
			return err
		}
		n2, err := p.newState(nfa.MOV)
		if err != nil {
			return err
		}
		p.link(n1, b)
		p.link(n1, m2.Begin)
		p.link(e, n2)
		p.link(m2.End, n2)
		p.pushSeg(n1, n2)
	}
	return nil
}
