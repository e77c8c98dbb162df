package compiler

import (
	"github.com/coregx/wrx/internal/classvec"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// parseValue implements the grammar's value production: a literal
// character, a character class, '.', a word-boundary anchor, or an escape
// sequence.
func (p *parser) parseValue() error {
	c := p.cur()

	switch {
	case isAlnum(c) || c == ' ':
		return p.literal(c)
	case c == '[':
		return p.parseClass()
	case c == '.':
		return p.parseDot()
	case c == '<':
		return p.zeroWidth(nfa.BOW)
	case c == '>':
		return p.zeroWidth(nfa.EOW)
	case c == '$':
		return nil
	case c == p.escape:
		return p.parseEscape()
	case c != ')' && isGraphOrSpace(c):
		// Punctuation that needs no escaping. Never case-folded: it has
		// no case to fold.
		return p.matchByte(nfa.MTC, c)
	default:
		// Allows constructs such as "(a|)": an empty alternative compiles
		// to a no-op segment instead of failing.
		b, err := p.newState(nfa.MOV)
		if err != nil {
			return err
		}
		p.pushSeg(b, b)
		return nil
	}
}

// matchByte emits a two-state fragment: op matching Byte c, then MOV.
func (p *parser) matchByte(op nfa.Opcode, c byte) error {
	b, err := p.newState(op)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.setByte(b, c)
	p.link(b, e)
	p.pushSeg(b, e)
	p.pos++
	return nil
}

// literal matches byte c, case-folded if the pattern is currently inside a
// \i ... or \I ... case-(in)sensitive region.
func (p *parser) literal(c byte) error {
	op := nfa.MTC
	if p.ci {
		op = nfa.MCI
	}
	return p.matchByte(op, c)
}

// zeroWidth emits a two-state fragment for a zero-width assertion opcode
// (BOW, EOW), consuming the one pattern byte that named it.
func (p *parser) zeroWidth(op nfa.Opcode) error {
	b, err := p.newState(op)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(b, e)
	p.pushSeg(b, e)
	p.pos++
	return nil
}

func (p *parser) parseDot() error {
	b, err := p.newState(nfa.SET)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.setClass(b, classvec.Dot())
	p.link(b, e)
	p.pushSeg(b, e)
	p.pos++
	return nil
}

// parseClass implements: "[" ["^"] sets "]"
func (p *parser) parseClass() error {
	p.pos++ // consume '['

	b, err := p.newState(nfa.SET)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}

	inv := false
	if !p.eof() && p.cur() == '^' {
		inv = true
		p.pos++
	}

	v, err := p.parseSets()
	if err != nil {
		return err
	}
	if inv {
		v.InvertPrintable()
	}

	p.setClass(b, v)
	p.link(b, e)
	p.pushSeg(b, e)

	if p.eof() || p.cur() != ']' {
		return p.fail(wrxerr.ErrAngleB)
	}
	p.pos++
	return nil
}

// parseEscape implements the grammar's escape-sequence alternatives of
// value, dispatching on the byte that follows the escape character.
func (p *parser) parseEscape() error {
	p.pos++ // consume the escape byte
	if p.eof() {
		return p.fail(wrxerr.ErrEscape)
	}
	c := p.cur()

	switch {
	case c == 'i' || c == 'I':
		return p.caseModeEscape(c)
	case isClassEscapeLetter(c):
		return p.classEscape(c)
	case c == 'r' || c == 'n' || c == 't' || c == 'b':
		return p.controlEscape(c)
	case isEscapablePunct(c) || c == p.escape:
		return p.matchByte(nfa.MTC, c)
	case isDigit(c):
		return p.backrefEscape()
	default:
		p.pos++
		return p.fail(wrxerr.ErrEscape)
	}
}

// caseModeEscape implements \i and \I: everything parsed until the end of
// the enclosing list (or the pattern) is matched case-insensitively (\i)
// or case-sensitively (\I).
func (p *parser) caseModeEscape(c byte) error {
	p.ci = c == 'i'
	p.pos++
	if !p.eof() && p.cur() != '$' {
		return p.parseList()
	}
	// Nothing follows: push a no-op segment so the enclosing production's
	// pop still finds something.
	b, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.pushSeg(b, b)
	return nil
}

func isClassEscapeLetter(c byte) bool {
	switch toLower(c) {
	case 'd', 'a', 'u', 'l', 's', 'w', 'x':
		return true
	}
	return false
}

// classEscape implements \d \a \u \l \s \w \x and their uppercase
// complements (\D \A \U \L \S \W \X).
func (p *parser) classEscape(c byte) error {
	b, err := p.newState(nfa.SET)
	if err != nil {
		return err
	}
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}

	var v *classvec.Vector
	switch toLower(c) {
	case 'd':
		v = classvec.Digits()
	case 'a':
		v = classvec.Alpha()
	case 'u':
		if p.ci { // \u has no case-insensitive meaning of its own
			v = classvec.Alpha()
		} else {
			v = classvec.Upper()
		}
	case 'l':
		if p.ci { // \l has no case-insensitive meaning of its own
			v = classvec.Alpha()
		} else {
			v = classvec.Lower()
		}
	case 's':
		v = classvec.Space()
	case 'w':
		v = classvec.Word()
	case 'x':
		v = classvec.Hex()
	}

	if isUpper(c) {
		v.InvertPrintable()
	}

	p.setClass(b, v)
	p.link(b, e)
	p.pushSeg(b, e)
	p.pos++
	return nil
}

// controlEscape implements \n \r \t \b.
func (p *parser) controlEscape(c byte) error {
	if c == 'b' {
		return p.zeroWidth(nfa.BND)
	}
	var lit byte
	switch c {
	case 'n':
		lit = '\n'
	case 'r':
		lit = '\r'
	case 't':
		lit = '\t'
	}
	// Always case-sensitive: these have no case to fold.
	return p.matchByte(nfa.MTC, lit)
}

// isEscapablePunct reports whether c is one of the grammar's special
// characters, escapable to match it literally.
func isEscapablePunct(c byte) bool {
	switch c {
	case '.', '*', '+', '?', '[', ']', '(', ')', '{', '}', '|', '^', '$', '<', '>', ':':
		return true
	}
	return false
}

// backrefEscape implements \N: a decimal back-reference to submatch N.
func (p *parser) backrefEscape() error {
	i := 0
	for !p.eof() && isDigit(p.cur()) {
		i = i*10 + int(p.cur()-'0')
		p.pos++
	}

	op := nfa.BRF
	if p.ci {
		op = nfa.BRI
	}
	b, err := p.newState(op)
	if err != nil {
		return err
	}
	p.setIdx(b, i)
	e, err := p.newState(nfa.MOV)
	if err != nil {
		return err
	}
	p.link(b, e)
	p.pushSeg(b, e)
	return nil
}
