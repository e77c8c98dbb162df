package compiler

import (
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// Compile parses pattern and returns the compiled NFA, or a *wrxerr.Error
// describing the first syntax problem encountered and the byte offset it
// was found at.
func Compile(pattern string, opts ...Option) (*nfa.NFA, error) {
	p := newParser(pattern)
	for _, opt := range opts {
		opt(p)
	}

	if err := p.parsePattern(); err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.fail(wrxerr.ErrInvalid)
	}

	m := p.popSeg()

	stop, err := p.newState(nfa.EOM)
	if err != nil {
		return nil, err
	}
	p.link(m.End, stop)

	start := optimize(p.table, m.Begin)

	return &nfa.NFA{
		Table:    p.table,
		Start:    start,
		Stop:     stop,
		NSubm:    p.nsubm,
		Pattern:  pattern,
		Anchored: len(pattern) > 0 && pattern[0] == '^',
		Escape:   p.escape,
	}, nil
}
