// Package prefilter narrows the executor's unanchored start-position
// search without ever changing whether a pattern matches. It extracts
// the literal byte sequence every branch of a pattern's top-level
// alternation must begin with and, when at least two such prefixes
// exist, builds an Aho-Corasick automaton over them.
//
// A Filter is purely a skip-ahead hint: vm.Exec's unanchored search
// still independently verifies every candidate offset it returns.
// Back-references make a literal automaton unsound as a standalone
// matcher, so nothing here is permitted to replace the backtracking VM,
// only to reduce how many start offsets it retries.
package prefilter

import "github.com/coregx/ahocorasick"

// Filter is a built prefilter ready to answer Next queries.
type Filter struct {
	aho *ahocorasick.Automaton
}

// Next returns the smallest offset >= at in subject at which one of the
// filter's literal prefixes begins, or ok=false if none occurs at or
// after at. It implements vm.StartHint.
func (f *Filter) Next(subject []byte, at int) (next int, ok bool) {
	if f == nil || f.aho == nil || at >= len(subject) {
		return 0, false
	}
	m := f.aho.Find(subject, at)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}

// Build extracts the top-level alternation branches of pattern (splitting
// on '|' at paren depth 0, the way compiler.parseList does) and, if every
// branch has a nonempty literal prefix and there are at least two
// branches, builds a Filter over those prefixes. It returns ok=false when
// the pattern has fewer than two top-level branches, any branch has an
// empty literal prefix (e.g. it starts with a class, an anchor, or a
// quantified group), or building the underlying automaton fails — in all
// of those cases the caller should fall back to the plain one-byte-at-a-
// time search, never fail compilation over it.
func Build(pattern string, escape byte) (*Filter, bool) {
	branches := splitTopLevel(pattern, escape)
	if len(branches) < 2 {
		return nil, false
	}

	prefixes := make([][]byte, 0, len(branches))
	for _, b := range branches {
		lit := literalPrefix(b, escape)
		if len(lit) == 0 {
			return nil, false
		}
		prefixes = append(prefixes, lit)
	}

	builder := ahocorasick.NewBuilder()
	for _, p := range prefixes {
		builder.AddPattern(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Filter{aho: auto}, true
}

// splitTopLevel splits pattern on '|' bytes that sit at paren depth 0 and
// are not escaped, mirroring compiler.parseList's recursive structure
// without building any NFA state — this package only ever reads pattern
// text, it never participates in compilation.
func splitTopLevel(pattern string, escape byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == escape:
			i++ // skip the escaped byte, whatever it is
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == '|' && depth == 0:
			out = append(out, pattern[start:i])
			start = i + 1
		}
	}
	out = append(out, pattern[start:])
	return out
}

// literalPrefix returns the leading run of branch that the compiler's
// grammar would emit as plain MTC/MCI matches: alphanumerics, spaces, and
// escapable punctuation used literally. It stops — returning whatever was
// collected so far — at the first byte that could start a class, a
// quantifier, an anchor, a group, an alternation, or an escape sequence
// whose meaning isn't "this exact byte", since a branch's *required*
// prefix ends wherever pattern matching could diverge from a flat byte
// compare.
func literalPrefix(branch string, escape byte) []byte {
	var lit []byte
	for i := 0; i < len(branch); i++ {
		c := branch[i]
		switch {
		case c == escape:
			// Only a literal-byte escape (\. \* \\ etc, never \d \w \i
			// \N ...) keeps the prefix going; anything else ends it.
			if i+1 >= len(branch) || !isLiteralEscape(branch[i+1]) {
				return lit
			}
			lit = append(lit, controlByte(branch[i+1]))
			i++
		case c == '^':
			// A leading anchor doesn't contribute a byte but doesn't
			// break literalness either; only meaningful at i == 0.
			if i != 0 {
				return lit
			}
		case isPlainLiteralByte(c):
			// A following quantifier (*, +, ?, {) turns this byte from a
			// required single match into an optional/repeated one, so it
			// cannot be folded into a fixed prefix.
			if i+1 < len(branch) && isQuantifierStart(branch[i+1]) {
				return lit
			}
			lit = append(lit, c)
		default:
			return lit
		}
	}
	return lit
}

func isPlainLiteralByte(c byte) bool {
	switch c {
	case '.', '[', ']', '(', ')', '{', '}', '|', '$', '<', '>', '*', '+', '?':
		return false
	}
	return c >= 0x20 && c < 0x7f
}

func isQuantifierStart(c byte) bool {
	return c == '*' || c == '+' || c == '?' || c == '{'
}

func isLiteralEscape(c byte) bool {
	switch c {
	case '.', '*', '+', '?', '[', ']', '(', ')', '{', '}', '|', '^', '$', '<', '>', ':', 'r', 'n', 't':
		return true
	}
	return false
}

// controlByte maps the \r \n \t escape letters to the control byte they
// produce; every other escapable byte in isLiteralEscape matches itself
// literally.
func controlByte(c byte) byte {
	switch c {
	case 'r':
		return '\r'
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}
