package compiler

import (
	"github.com/coregx/wrx/internal/classvec"
	"github.com/coregx/wrx/wrxerr"
)

// parseSets implements: sets ::= (c ["-" c])+
// where c is a printable ASCII character (>= 0x20), or one of CR, LF, TAB.
// The caller has already consumed the opening '[' and an optional '^'.
func (p *parser) parseSets() (*classvec.Vector, error) {
	v := &classvec.Vector{}

	for {
		if p.eof() {
			return nil, p.fail(wrxerr.ErrAngleB)
		}

		u := p.cur()

		if u == p.escape {
			if p.pos+1 >= len(p.pattern) {
				return nil, p.fail(wrxerr.ErrAngleB)
			}
			p.setEscapedClassMember(v, p.pattern[p.pos+1])
			p.pos += 2
		} else {
			var w byte
			if p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] == '-' {
				p.pos += 2
				if p.eof() {
					return nil, p.fail(wrxerr.ErrSet)
				}
				w = p.cur()

				if !isAlnum(u) || !isAlnum(w) {
					return nil, p.fail(wrxerr.ErrRangeBadChar)
				}
				if isUpper(u) && !isUpper(w) {
					return nil, p.fail(wrxerr.ErrRangeMismatch)
				}
				if isLower(u) && !isLower(w) {
					return nil, p.fail(wrxerr.ErrRangeMismatch)
				}
				if isDigit(u) && !isDigit(w) {
					return nil, p.fail(wrxerr.ErrRangeMismatch)
				}
			} else {
				w = u
			}
			p.pos++

			if !isSetChar(u) || !isSetChar(w) {
				return nil, p.fail(wrxerr.ErrSet)
			}
			if w < u {
				return nil, p.fail(wrxerr.ErrRangeOrder)
			}

			if p.ci {
				for c := int(u); c <= int(w); c++ {
					v.Set(toUpper(byte(c)))
					v.Set(toLower(byte(c)))
				}
			} else {
				v.SetRange(u, w)
			}
		}

		if !p.eof() && p.cur() == ']' {
			break
		}
	}

	return v, nil
}

// isSetChar reports whether c is allowed as a [...] set endpoint: any
// printable ASCII byte, or CR, LF, TAB.
func isSetChar(c byte) bool {
	return c >= 0x20 || c == '\r' || c == '\n' || c == '\t'
}

// setEscapedClassMember applies one of the \r \n \t \- \^ \] \d \a \u \l \s
// \w \x shorthand escapes recognized inside a [...] set to v (plus the
// configured escape byte itself). Unknown escape letters are silently
// ignored; the grammar has no catch-all error case here.
func (p *parser) setEscapedClassMember(v *classvec.Vector, c byte) {
	switch c {
	case 'r':
		v.Set('\r')
	case 'n':
		v.Set('\n')
	case 't':
		v.Set('\t')
	case p.escape, '-', '^', ']':
		v.Set(c)
	case 'd':
		v.SetRange('0', '9')
	case 'a':
		v.SetRange('a', 'z')
		v.SetRange('A', 'Z')
	case 'u':
		v.SetRange('A', 'Z')
		if p.ci {
			v.SetRange('a', 'z')
		}
	case 'l':
		v.SetRange('a', 'z')
		if p.ci {
			v.SetRange('A', 'Z')
		}
	case 's':
		v.Set(' ')
		v.Set('\t')
		v.Set('\r')
		v.Set('\n')
	case 'w':
		v.SetRange('a', 'z')
		v.SetRange('A', 'Z')
		v.SetRange('0', '9')
		v.Set('_')
	case 'x':
		v.SetRange('a', 'f')
		v.SetRange('A', 'F')
		v.SetRange('0', '9')
	}
}
