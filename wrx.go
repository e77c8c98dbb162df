// Package wrx implements a self-contained, byte-oriented regular expression
// engine: a compiler that turns a pattern into a table of opcoded NFA
// states, and a backtracking executor that matches that table against a
// subject and extracts numbered sub-captures and back-references.
//
// The engine targets ASCII/byte text rather than Unicode, trades linear-time
// guarantees for a small, auditable backtracking core, and is built to be
// embedded in a host program the way a library like PCRE or Oniguruma is —
// the cmd/wgrep command in this module is one such host.
//
// Basic usage:
//
//	re, err := wrx.Compile(`[a-z]+@[a-z]+\.[a-z]+`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if re.MatchString("contact: bob@example.com") {
//		fmt.Println("found an address")
//	}
//
// Advanced usage — sub-captures and back-references:
//
//	re := wrx.MustCompile(`(\w+)=\1`)
//	m := re.FindStringSubmatch("retry=retry")
//	fmt.Println(m[1]) // "retry"
//
// Performance characteristics: compilation is a single linear pass over the
// pattern text producing a fixed-size state table (no allocation-heavy
// backtracking at compile time). Execution is worst-case exponential in
// pathological alternations — this is the tradeoff for supporting
// back-references, which no DFA-based engine can express. The engine caps
// both the number of NFA states and the depth of the backtracking stack so
// a runaway pattern fails with an error rather than exhausting memory.
//
// Limitations: byte-oriented only (no multi-byte-aware character classes),
// no lookaround, and FindAll walks the subject with repeated Find calls
// rather than a streaming scan.
package wrx

import (
	"github.com/coregx/wrx/compiler"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/prefilter"
	"github.com/coregx/wrx/vm"
	"github.com/coregx/wrx/wrxerr"
)

// Regex is a compiled pattern, ready to match against subjects. The zero
// value is not usable; obtain one from Compile or MustCompile.
//
// A *Regex is safe for concurrent use by multiple goroutines: matching
// never mutates the underlying NFA, and each call to a Find/Match method
// allocates its own backtracking stack and capture array.
type Regex struct {
	prog   *nfa.NFA
	filter *prefilter.Filter // nil unless the pattern's top-level alternation has a usable literal prefix per branch
}

// Compile parses pattern and returns a Regex, or a *wrxerr.Error describing
// the first syntax problem found and the byte offset it occurred at.
//
// Example:
//
//	re, err := wrx.Compile(`ab*c`)
func Compile(pattern string, opts ...compiler.Option) (*Regex, error) {
	prog, err := compiler.Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}
	re := &Regex{prog: prog}
	// An anchored pattern never consults the start hint: its search only
	// ever restarts right after line breaks, so a filter would be dead
	// weight.
	if !prog.Anchored {
		if f, ok := prefilter.Build(prog.Pattern, prog.Escape); ok {
			re.filter = f
		}
	}
	return re, nil
}

// MustCompile is like Compile but panics if pattern fails to parse. It is
// meant for patterns known at compile time, such as package-level vars.
//
// Example:
//
//	var identifier = wrx.MustCompile(`[A-Za-z_]\w*`)
func MustCompile(pattern string, opts ...compiler.Option) *Regex {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic(`wrx: Compile(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

func quote(s string) string {
	return "\"" + s + "\""
}

// String returns the source pattern re was compiled from.
func (re *Regex) String() string {
	return re.prog.Pattern
}

// NumSubexp reports the number of parenthesised sub-expressions in the
// pattern, not counting the whole-match slot 0.
func (re *Regex) NumSubexp() int {
	return re.prog.NSubm - 1
}

// NFA exposes the compiled automaton underlying re. It exists for
// diagnostic tooling only — nfa.Dump and nfa.DOT, and cmd/wgrep's -dump
// and -dot flags that call them — never for anything compiler or vm
// themselves need.
func (re *Regex) NFA() *nfa.NFA {
	return re.prog
}

// Match reports whether subject contains any match of re.
//
// Example:
//
//	wrx.MustCompile(`\d+`).Match([]byte("room 42")) // true
func (re *Regex) Match(subject []byte) bool {
	ok, _, err := vm.ExecHint(re.prog, subject, 0, re.filter)
	return err == nil && ok
}

// MatchString is Match for a string subject.
func (re *Regex) MatchString(subject string) bool {
	return re.Match([]byte(subject))
}

// FindIndex returns a two-element slice holding the byte offsets of the
// leftmost match of re in subject, or nil if there is no match.
//
// Example:
//
//	wrx.MustCompile(`b+`).FindIndex([]byte("abbbc")) // []int{1, 4}
func (re *Regex) FindIndex(subject []byte) []int {
	ok, subm, err := vm.ExecHint(re.prog, subject, 1, re.filter)
	if err != nil || !ok {
		return nil
	}
	return []int{subm[0].Beg, subm[0].End}
}

// FindStringIndex is FindIndex for a string subject.
func (re *Regex) FindStringIndex(subject string) []int {
	return re.FindIndex([]byte(subject))
}

// Find returns the leftmost match of re in subject, or nil if there is no
// match.
func (re *Regex) Find(subject []byte) []byte {
	loc := re.FindIndex(subject)
	if loc == nil {
		return nil
	}
	return subject[loc[0]:loc[1]]
}

// FindString is Find for a string subject.
func (re *Regex) FindString(subject string) string {
	b := re.Find([]byte(subject))
	if b == nil {
		return ""
	}
	return string(b)
}

// FindSubmatchIndex returns index pairs for the whole match and every
// capture group, in the conventional 2*(n+1)-length layout: match is
// [0:2], group k is [2k:2k+2]. A group that did not participate in the
// match has both its offsets set to -1. Returns nil if there is no match.
//
// Example:
//
//	wrx.MustCompile(`(a)(b)?`).FindSubmatchIndex([]byte("a"))
//	// []int{0, 1, 0, 1, -1, -1}
func (re *Regex) FindSubmatchIndex(subject []byte) []int {
	ok, subm, err := vm.ExecHint(re.prog, subject, re.prog.NSubm, re.filter)
	if err != nil || !ok {
		return nil
	}
	out := make([]int, 2*len(subm))
	for i, s := range subm {
		out[2*i], out[2*i+1] = s.Beg, s.End
	}
	return out
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string subject.
func (re *Regex) FindStringSubmatchIndex(subject string) []int {
	return re.FindSubmatchIndex([]byte(subject))
}

// FindSubmatch returns the whole match and every capture group's bytes, in
// the same [0]=match, [k]=group k layout as FindSubmatchIndex. An
// unparticipating group is nil. Returns nil if there is no match.
func (re *Regex) FindSubmatch(subject []byte) [][]byte {
	loc := re.FindSubmatchIndex(subject)
	if loc == nil {
		return nil
	}
	out := make([][]byte, len(loc)/2)
	for i := range out {
		b, e := loc[2*i], loc[2*i+1]
		if b < 0 || e < 0 {
			continue
		}
		out[i] = subject[b:e]
	}
	return out
}

// FindStringSubmatch is FindSubmatch for a string subject.
func (re *Regex) FindStringSubmatch(subject string) []string {
	loc := re.FindSubmatchIndex([]byte(subject))
	if loc == nil {
		return nil
	}
	out := make([]string, len(loc)/2)
	for i := range out {
		b, e := loc[2*i], loc[2*i+1]
		if b < 0 || e < 0 {
			continue
		}
		out[i] = subject[b:e]
	}
	return out
}

// FindAllIndex returns the index pairs of all non-overlapping matches of re
// in subject, scanning left to right. An empty match advances by one byte
// so the scan always terminates. Returns nil if there is no match at all.
func (re *Regex) FindAllIndex(subject []byte) [][]int {
	var out [][]int
	pos := 0
	for pos <= len(subject) {
		loc := re.FindIndex(subject[pos:])
		if loc == nil {
			break
		}
		beg, end := loc[0]+pos, loc[1]+pos
		out = append(out, []int{beg, end})
		if end == beg {
			pos = end + 1
		} else {
			pos = end
		}
	}
	return out
}

// FindAllString is FindAllIndex rendered as substrings of subject.
func (re *Regex) FindAllString(subject string) []string {
	locs := re.FindAllIndex([]byte(subject))
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = subject[loc[0]:loc[1]]
	}
	return out
}

// Describe returns the human-readable description of a compile or execute
// error code, the same text a host program would show a user.
func Describe(err error) string {
	return wrxerr.Describe(errCode(err))
}

func errCode(err error) wrxerr.Code {
	switch e := err.(type) {
	case nil:
		return wrxerr.Success
	case *wrxerr.Error:
		return e.Code
	case *wrxerr.ExecError:
		return e.Code
	default:
		return wrxerr.ErrInvalid
	}
}
