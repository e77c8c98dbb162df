package nfa

import (
	"strings"
	"testing"

	"github.com/coregx/wrx/internal/classvec"
)

func buildSample(t *testing.T) *NFA {
	t.Helper()
	tbl := NewTable(4)

	m, _ := tbl.Add(MTC)
	tbl.Get(m).Byte = 'a'
	s, _ := tbl.Add(SET)
	tbl.Get(s).Class = classvec.Digits()
	e, _ := tbl.Add(EOM)

	tbl.Link(m, s)
	tbl.Link(s, e)

	return &NFA{Table: tbl, Start: m, Stop: e, NSubm: 1, Pattern: `a\d`}
}

func TestDumpListsEveryState(t *testing.T) {
	var b strings.Builder
	Dump(&b, buildSample(t))
	out := b.String()

	for _, want := range []string{"start: 0; stop: 2", "MTC 'a'", "SET [0123456789]", "EOM"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDOTIsAWellFormedDigraph(t *testing.T) {
	var b strings.Builder
	DOT(&b, buildSample(t))
	out := b.String()

	for _, want := range []string{"digraph G {", "start -> state000;", "doublecircle", "}"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}
