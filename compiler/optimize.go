package compiler

import "github.com/coregx/wrx/nfa"

// optimize collapses chains of MOV states, the parser's dummy epsilon
// nodes, so the executor never has to step through them. It returns the
// (possibly updated) start state. InvalidState halts the chase; only EOM
// carries one, and an EOM is never the target of a MOV chain's tail.
func optimize(t *nfa.Table, start nfa.StateID) nfa.StateID {
	for i := nfa.StateID(0); i < nfa.StateID(t.Len()); i++ {
		s := t.Get(i)
		for s.S0 != nfa.InvalidState && t.Get(s.S0).Op == nfa.MOV {
			s.S0 = t.Get(s.S0).S0
		}
		for s.S1 != nfa.InvalidState && t.Get(s.S1).Op == nfa.MOV {
			s.S1 = t.Get(s.S1).S0
		}
	}

	for t.Get(start).Op == nfa.MOV {
		start = t.Get(start).S0
	}
	return start
}
