package nfa

import (
	"fmt"
	"io"
	"strings"

	"github.com/coregx/wrx/internal/classvec"
)

// Dump writes a mnemonic, one-line-per-state listing of n to w: state
// index, opcode, payload, and outgoing transitions. It is a diagnostic
// tool only; nothing in compiler or vm imports this file — only
// cmd/wgrep's -dump flag and this package's own tests do.
func Dump(w io.Writer, n *NFA) {
	fmt.Fprintf(w, "start: %d; stop: %d\n", n.Start, n.Stop)
	for i := 0; i < n.Len(); i++ {
		id := StateID(i)
		s := n.State(id)
		fmt.Fprintf(w, "%3d %s %s", id, s.Op, payloadString(s))
		if s.S0 != InvalidState {
			fmt.Fprintf(w, " %d", s.S0)
			if s.S1 != InvalidState {
				fmt.Fprintf(w, " %d", s.S1)
			}
		}
		fmt.Fprintln(w)
	}
}

func payloadString(s *State) string {
	switch s.Op {
	case MTC, MCI:
		return fmt.Sprintf("%s ", quoteByte(s.Byte))
	case SET:
		return fmt.Sprintf("[%s] ", classString(s.Class))
	case REC, STP, BRF, BRI:
		return fmt.Sprintf("<%d> ", s.Idx)
	case CHC:
		return "--- "
	default:
		return ""
	}
}

func quoteByte(b byte) string {
	switch b {
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	default:
		return fmt.Sprintf("'%c'", b)
	}
}

// classString renders a class vector's members: CR/LF/TAB first (they
// print as escapes), then every other printable byte in ascending order.
func classString(v *classvec.Vector) string {
	var b strings.Builder
	if v == nil {
		return ""
	}
	if v.Test('\r') {
		b.WriteString(`\r`)
	}
	if v.Test('\n') {
		b.WriteString(`\n`)
	}
	if v.Test('\t') {
		b.WriteString(`\t`)
	}
	for c := byte(0x20); c < 0x7f; c++ {
		if v.Test(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// DOT writes n in Graphviz dot(1) format to w. MOV states are elided from
// the graph; the optimisation pass has already rewired everything that
// matters around them.
func DOT(w io.Writer, n *NFA) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  orientation=portrait;")
	fmt.Fprintln(w, "  fontsize=8;")
	fmt.Fprintln(w, "  start [shape=box];")
	fmt.Fprintf(w, "  start -> state%03d;\n", n.Start)

	for i := 0; i < n.Len(); i++ {
		id := StateID(i)
		s := n.State(id)
		if s.Op == MOV {
			continue
		}
		switch s.Op {
		case SET:
			fmt.Fprintf(w, "  state%03d [label=\"[%s]\",shape=box];\n", id, dotClassString(s.Class))
		case CHC:
			fmt.Fprintf(w, "  state%03d [label=\"\",shape=point];\n", id)
		case EOM:
			fmt.Fprintf(w, "  state%03d [label=\"\",shape=doublecircle];\n", id)
		default:
			fmt.Fprintf(w, "  state%03d [label=\"%s\",shape=ellipse];\n", id, s.Op)
		}
		if s.S0 != InvalidState {
			fmt.Fprintf(w, "  state%03d -> state%03d;\n", id, s.S0)
		}
		if s.S1 != InvalidState {
			fmt.Fprintf(w, "  state%03d -> state%03d [style=dashed];\n", id, s.S1)
		}
	}
	fmt.Fprintln(w, "}")
}

// dotClassString is classString with '"' escaped for a dot label.
func dotClassString(v *classvec.Vector) string {
	return strings.ReplaceAll(classString(v), `"`, `\"`)
}
