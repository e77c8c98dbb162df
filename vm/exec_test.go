package vm_test

import (
	"errors"
	"testing"

	"github.com/coregx/wrx/compiler"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/vm"
	"github.com/coregx/wrx/wrxerr"
)

func compile(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	n, err := compiler.Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return n
}

func TestGreedyTakesLongestLazyTakesShortest(t *testing.T) {
	subject := []byte("aaa")

	ok, subm, err := vm.Exec(compile(t, "a*"), subject, 1)
	if err != nil || !ok {
		t.Fatalf("a* against %q: ok=%v err=%v", subject, ok, err)
	}
	if subm[0].Beg != 0 || subm[0].End != 3 {
		t.Errorf("greedy match = [%d,%d), want [0,3)", subm[0].Beg, subm[0].End)
	}

	ok, subm, err = vm.Exec(compile(t, "a*?"), subject, 1)
	if err != nil || !ok {
		t.Fatalf("a*? against %q: ok=%v err=%v", subject, ok, err)
	}
	if subm[0].Beg != 0 || subm[0].End != 0 {
		t.Errorf("lazy match = [%d,%d), want the empty [0,0)", subm[0].Beg, subm[0].End)
	}
}

// TestBacktrackRestoresCaptures drives a path where a capture is written,
// the path dies, and the winning path must not see the stale value:
// (a*) first swallows both a's, fails at the following 'a', and must
// re-record the slot as just the first 'a'.
func TestBacktrackRestoresCaptures(t *testing.T) {
	ok, subm, err := vm.Exec(compile(t, "(a*)ab"), []byte("aab"), 2)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if subm[1].Beg != 0 || subm[1].End != 1 {
		t.Errorf("slot 1 = [%d,%d), want [0,1) after backtracking", subm[1].Beg, subm[1].End)
	}
}

func TestEmptyAlternativeBranch(t *testing.T) {
	ok, subm, err := vm.Exec(compile(t, "a(b|)d"), []byte("ad"), 2)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if subm[1].Beg != subm[1].End {
		t.Errorf("the empty branch should record an empty slot 1, got [%d,%d)", subm[1].Beg, subm[1].End)
	}
}

// TestSpilloverCaptures asks for fewer slots than the NFA records; the
// backreference must still resolve via the executor's internal spillover.
func TestSpilloverCaptures(t *testing.T) {
	ok, subm, err := vm.Exec(compile(t, `(ab)\1`), []byte("abab"), 0)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !ok {
		t.Fatal("backreference should resolve through the spillover slots")
	}
	if len(subm) != 0 {
		t.Errorf("asked for 0 slots, got %d back", len(subm))
	}
}

func TestCaseInsensitiveBackreference(t *testing.T) {
	n := compile(t, `(ab)-\i\1`)
	if ok, _, err := vm.Exec(n, []byte("ab-AB"), 0); err != nil || !ok {
		t.Errorf("BRI should match case-insensitively: ok=%v err=%v", ok, err)
	}
	if ok, _, _ := vm.Exec(n, []byte("ab-Ax"), 0); ok {
		t.Error("BRI must still compare content, not just length")
	}
}

func TestNilNFAIsFatal(t *testing.T) {
	_, _, err := vm.Exec(nil, []byte("x"), 0)
	var ee *wrxerr.ExecError
	if !errors.As(err, &ee) || ee.Code != wrxerr.ErrBadNFA {
		t.Errorf("error = %v, want ErrBadNFA", err)
	}
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	tbl := nfa.NewTable(1)
	if _, err := tbl.Add(nfa.Opcode(42)); err != nil {
		t.Fatal(err)
	}
	n := &nfa.NFA{Table: tbl, Start: 0, Stop: 0, NSubm: 1}

	_, _, err := vm.Exec(n, []byte("x"), 0)
	var ee *wrxerr.ExecError
	if !errors.As(err, &ee) || ee.Code != wrxerr.ErrOpcode {
		t.Errorf("error = %v, want ErrOpcode", err)
	}
}

func TestNoMatchDrainsCleanly(t *testing.T) {
	ok, subm, err := vm.Exec(compile(t, "zz"), []byte("abcabc"), 1)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if ok || subm != nil {
		t.Errorf("want a clean no-match, got ok=%v subm=%v", ok, subm)
	}
}

// recordingHint skips straight to occurrences of one byte, and records
// every query so the test can tell the hint was actually consulted.
type recordingHint struct {
	b     byte
	calls int
}

func (h *recordingHint) Next(subject []byte, at int) (int, bool) {
	h.calls++
	for i := at; i < len(subject); i++ {
		if subject[i] == h.b {
			return i, true
		}
	}
	return 0, false
}

// TestStartHintNarrowsSearchWithoutChangingVerdict runs the same pattern
// with and without a hint; the verdict and the match bounds must agree.
func TestStartHintNarrowsSearchWithoutChangingVerdict(t *testing.T) {
	n := compile(t, "bc")
	subject := []byte("aaaaabcaaa")

	ok1, subm1, err := vm.Exec(n, subject, 1)
	if err != nil {
		t.Fatal(err)
	}

	hint := &recordingHint{b: 'b'}
	ok2, subm2, err := vm.ExecHint(n, subject, 1, hint)
	if err != nil {
		t.Fatal(err)
	}

	if ok1 != ok2 {
		t.Fatalf("verdicts disagree: plain=%v hinted=%v", ok1, ok2)
	}
	if subm1[0] != subm2[0] {
		t.Errorf("match bounds disagree: plain=%v hinted=%v", subm1[0], subm2[0])
	}
	if hint.calls == 0 {
		t.Error("the hint was never consulted")
	}
}

// TestHintExhaustionEndsSearch: a hint that reports no further candidate
// must end the unanchored scan instead of falling back to +1 stepping.
func TestHintExhaustionEndsSearch(t *testing.T) {
	n := compile(t, "bc")
	hint := &recordingHint{b: 'z'}
	ok, _, err := vm.ExecHint(n, []byte("xxbcxx"), 1, hint)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("with no candidate offsets past 0 the pattern cannot match off-origin")
	}
}
