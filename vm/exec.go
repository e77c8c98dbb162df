// Package vm implements the backtracking interpreter that matches a
// compiled *nfa.NFA against a subject string, recording sub-captures as it
// goes. It is driven by an explicit operation stack rather than host
// recursion: every suspended alternative and every capture write that
// might need undoing on backtrack is an entry pushed onto that stack,
// never a Go call frame.
package vm

import (
	"github.com/coregx/wrx/internal/classvec"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

// StartHint narrows the unanchored start-position search without ever
// changing whether a subject matches. Exec consults it only from the
// "no backtracking alternative left" branch, the exact point the default
// one-byte advance happens, so a hint that returns no better answer than
// at+1 is indistinguishable in outcome from having no hint at all — it
// only changes how many offsets get tried (see prefilter.Filter).
type StartHint interface {
	// Next returns the smallest offset >= at at which a match could
	// begin, or ok=false if no such offset exists in subject.
	Next(subject []byte, at int) (next int, ok bool)
}

// Exec matches nfa against subject, starting the search at or after
// offset 0, and reports whether a match was found. On a match, the
// returned slice holds nsm submatches (slot 0 is always the whole match);
// slots never reached along the winning path have Beg == End == -1.
//
// nsm may be smaller than the NFA's submatch count — slots beyond nsm are
// still tracked internally (the pattern may backreference them) but are
// not returned. nsm must not be negative.
func Exec(n *nfa.NFA, subject []byte, nsm int) (bool, []Submatch, error) {
	return ExecHint(n, subject, nsm, nil)
}

// ExecHint is Exec with an optional StartHint plugged into the unanchored
// start-position search (see StartHint). A nil hint behaves exactly like
// Exec.
func ExecHint(n *nfa.NFA, subject []byte, nsm int, hint StartHint) (bool, []Submatch, error) {
	if n == nil || n.Table == nil {
		return false, nil, &wrxerr.ExecError{Code: wrxerr.ErrBadNFA}
	}
	if nsm < 0 {
		return false, nil, &wrxerr.ExecError{Code: wrxerr.ErrSmallNsm}
	}

	subm := newSubmatches(nsm)
	var spare []Submatch
	if nsm < n.NSubm {
		spare = newSubmatches(n.NSubm - nsm)
	}

	getBeg := func(idx int) int {
		if idx < nsm {
			return subm[idx].Beg
		}
		return spare[idx-nsm].Beg
	}
	setBeg := func(idx, v int) {
		if idx < nsm {
			subm[idx].Beg = v
		} else {
			spare[idx-nsm].Beg = v
		}
	}
	getEnd := func(idx int) int {
		if idx < nsm {
			return subm[idx].End
		}
		return spare[idx-nsm].End
	}
	setEnd := func(idx, v int) {
		if idx < nsm {
			subm[idx].End = v
		} else {
			spare[idx-nsm].End = v
		}
	}

	stack := newOpStack(n.Len())
	if err := stack.pushPos(0, n.Start); err != nil {
		return false, nil, err
	}

	// bol tracks whether the pattern is anchored with '^': 0 means no
	// anchor seen, 1 means seen but the bulk post-newline start-position
	// scan hasn't run yet, 2 means it has.
	bol := 0
	startCursor := 0

	for {
		top, ok := stack.pop()
		if !ok {
			break
		}

		switch top.kind {
		case opRBeg:
			setBeg(top.idx, top.saved)
			continue
		case opREnd:
			setEnd(top.idx, top.saved)
			continue
		}

		pos := top.pos
		state := top.state

		for {
			cont := false
			st := n.State(state)

			switch st.Op {
			case nfa.CHC:
				if err := stack.pushPos(pos, st.S1); err != nil {
					return false, nil, err
				}
				cont = true

			case nfa.MOV:
				cont = true

			case nfa.EOM, nfa.MEV:
				return true, subm, nil

			case nfa.SET:
				if pos < len(subject) && st.Class.Test(subject[pos]) {
					cont = true
					pos++
				}

			case nfa.REC:
				if err := stack.pushRBeg(st.Idx, getBeg(st.Idx)); err != nil {
					return false, nil, err
				}
				setBeg(st.Idx, pos)
				cont = true

			case nfa.STP:
				if err := stack.pushREnd(st.Idx, getEnd(st.Idx)); err != nil {
					return false, nil, err
				}
				setEnd(st.Idx, pos)
				cont = true

			case nfa.BRF, nfa.BRI:
				if st.Idx >= n.NSubm {
					return false, nil, &wrxerr.ExecError{Code: wrxerr.ErrInvBref}
				}
				beg, end := getBeg(st.Idx), getEnd(st.Idx)
				if beg < 0 || end < 0 {
					return false, nil, &wrxerr.ExecError{Code: wrxerr.ErrInvBref}
				}
				cont = true
				for b := beg; b < end; b++ {
					if pos >= len(subject) {
						cont = false
						break
					}
					a, c := subject[b], subject[pos]
					if st.Op == nfa.BRI {
						a, c = foldByte(a), foldByte(c)
					}
					if a != c {
						cont = false
						break
					}
					pos++
				}

			case nfa.BOL:
				bol = 1
				if pos == 0 || subject[pos-1] == '\r' || subject[pos-1] == '\n' {
					cont = true
				}

			case nfa.EOL:
				if pos >= len(subject) || subject[pos] == '\r' || subject[pos] == '\n' {
					cont = true
				}

			case nfa.BOW:
				if pos == 0 {
					cont = pos < len(subject) && classvec.IsAlnum(subject[pos])
				} else {
					cont = pos < len(subject) && classvec.IsAlnum(subject[pos]) && !classvec.IsAlnum(subject[pos-1])
				}

			case nfa.EOW:
				cont = pos > 0 && classvec.IsAlnum(subject[pos-1]) &&
					(pos >= len(subject) || !classvec.IsAlnum(subject[pos]))

			case nfa.BND:
				if pos == 0 {
					cont = pos < len(subject) && classvec.IsAlnum(subject[pos])
				} else {
					curAlnum := pos < len(subject) && classvec.IsAlnum(subject[pos])
					cont = curAlnum != classvec.IsAlnum(subject[pos-1])
				}

			case nfa.MTC:
				if pos < len(subject) && subject[pos] == st.Byte {
					cont = true
					pos++
				}

			case nfa.MCI:
				if pos < len(subject) && foldByte(subject[pos]) == foldByte(st.Byte) {
					cont = true
					pos++
				}

			default:
				return false, nil, &wrxerr.ExecError{Code: wrxerr.ErrOpcode}
			}

			if cont {
				state = st.S0
			}

			// Start-position search: if no suspended alternative remains
			// on the stack, this is the last chance to try the pattern
			// starting further along the subject. An anchored pattern
			// restricts that advance to positions right after a line
			// break, and performs it once, in bulk.
			ctr := stack.countPos()
			switch {
			case bol != 0:
				if bol == 1 && ctr == 0 {
					for startCursor < len(subject) {
						c := subject[startCursor]
						if (c == '\r' || c == '\n') && startCursor+1 < len(subject) {
							startCursor++
							if err := stack.pushPos(startCursor, n.Start); err != nil {
								return false, nil, err
							}
						}
						startCursor++
					}
					bol = 2
				}
			case ctr == 0 && startCursor+1 < len(subject):
				next := startCursor + 1
				if hint != nil {
					if h, ok := hint.Next(subject, next); ok {
						next = h
					} else {
						next = len(subject)
					}
				}
				if next < len(subject) {
					startCursor = next
					if err := stack.pushPos(startCursor, n.Start); err != nil {
						return false, nil, err
					}
				}
			}

			if !cont {
				break
			}
		}
	}

	return false, nil, nil
}

func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}
