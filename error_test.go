package wrx

import (
	"errors"
	"testing"

	"github.com/coregx/wrx/vm"
	"github.com/coregx/wrx/wrxerr"
)

// TestCompileErrors exercises the compile-time syntax error codes:
// missing ')'/']'/'}'; bad {m,n} ordering; '$' not at the end;
// unrecognised escape; character-set errors.
func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		code    wrxerr.Code
	}{
		{"unclosed_group", `(abc`, wrxerr.ErrBracket},
		{"unclosed_class", `[abc`, wrxerr.ErrAngleB},
		{"unclosed_curly", `a{2,3`, wrxerr.ErrCurlyB},
		{"reversed_curly_bounds", `a{4,2}`, wrxerr.ErrBadCurlyB},
		{"dollar_not_at_end", `a$b`, wrxerr.ErrBadDollar},
		{"unknown_escape", `\q`, wrxerr.ErrEscape},
		{"dangling_escape", `\`, wrxerr.ErrEscape},
		{"range_reversed", `[z-a]`, wrxerr.ErrRangeOrder},
		{"range_mismatched_kind", `[a-Z]`, wrxerr.ErrRangeMismatch},
		{"range_nonalnum_endpoint", `[.-9]`, wrxerr.ErrRangeBadChar},
		{"trailing_garbage", `abc)`, wrxerr.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("Compile(%q) expected error, got nil", tt.pattern)
			}
			var ce *wrxerr.Error
			if !errors.As(err, &ce) {
				t.Fatalf("Compile(%q) error is %T, want *wrxerr.Error", tt.pattern, err)
			}
			if ce.Code != tt.code {
				t.Errorf("Compile(%q) code = %v (%s), want %v (%s)",
					tt.pattern, ce.Code, wrxerr.Describe(ce.Code), tt.code, wrxerr.Describe(tt.code))
			}
		})
	}
}

// TestCompileErrorOffset checks that a compile error carries the byte
// offset parsing stopped at.
func TestCompileErrorOffset(t *testing.T) {
	_, err := Compile(`abc(def`)
	var ce *wrxerr.Error
	if !errors.As(err, &ce) {
		t.Fatalf("error is %T, want *wrxerr.Error", err)
	}
	if ce.Offset != len(`abc(def`) {
		t.Errorf("Offset = %d, want %d", ce.Offset, len(`abc(def`))
	}
}

// TestExecInvalidBackreference: a backreference the grammar lets through
// syntactically (a valid decimal) but that names a submatch the pattern
// doesn't have is a fatal execution error.
func TestExecInvalidBackreference(t *testing.T) {
	re := MustCompile(`a\9`)

	if re.Match([]byte("a")) {
		t.Fatal("Match should report false once the execute-time error fires")
	}

	_, _, err := vm.Exec(re.NFA(), []byte("a"), re.NFA().NSubm)
	var ee *wrxerr.ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *wrxerr.ExecError", err)
	}
	if ee.Code != wrxerr.ErrInvBref {
		t.Errorf("code = %v, want ErrInvBref", ee.Code)
	}
}

// TestNegativeNsm: a negative slot count is an input error, not a panic.
func TestNegativeNsm(t *testing.T) {
	re := MustCompile(`a`)
	_, _, err := vm.Exec(re.NFA(), []byte("a"), -1)
	var ee *wrxerr.ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *wrxerr.ExecError", err)
	}
	if ee.Code != wrxerr.ErrSmallNsm {
		t.Errorf("code = %v, want ErrSmallNsm", ee.Code)
	}
}

// TestDescribeIsTotal checks wrxerr.Describe never returns an empty
// string, including for codes outside the closed enumeration.
func TestDescribeIsTotal(t *testing.T) {
	codes := []wrxerr.Code{
		wrxerr.Success, wrxerr.ErrMemory, wrxerr.ErrValue, wrxerr.ErrBracket,
		wrxerr.ErrInvalid, wrxerr.ErrAngleB, wrxerr.ErrSet, wrxerr.ErrRangeOrder,
		wrxerr.ErrRangeBadChar, wrxerr.ErrRangeMismatch, wrxerr.ErrEscape,
		wrxerr.ErrBadDollar, wrxerr.ErrCurlyB, wrxerr.ErrBadCurlyB,
		wrxerr.ErrBadNFA, wrxerr.ErrSmallNsm, wrxerr.ErrInvBref,
		wrxerr.ErrManyStates, wrxerr.ErrStack, wrxerr.ErrOpcode,
		wrxerr.Code(-999), // not in the enumeration at all
	}
	for _, c := range codes {
		if wrxerr.Describe(c) == "" {
			t.Errorf("Describe(%d) returned an empty string", c)
		}
	}
}

// TestDescribeFacade checks the package-level Describe helper dispatches
// through both compile and execute error types.
func TestDescribeFacade(t *testing.T) {
	_, err := Compile(`[abc`)
	if got := Describe(err); got == "" {
		t.Error("Describe(compile error) should not be empty")
	}

	execErr := &wrxerr.ExecError{Code: wrxerr.ErrInvBref}
	if got := Describe(execErr); got != wrxerr.Describe(wrxerr.ErrInvBref) {
		t.Errorf("Describe(exec error) = %q, want %q", got, wrxerr.Describe(wrxerr.ErrInvBref))
	}
}

