package wrx

import "testing"

// TestWordBoundary exercises \b (BND), the combined word-boundary
// assertion: true wherever the alphanumeric category flips.
func TestWordBoundary(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    bool
		wantLoc []int
	}{
		{"word_start_match", `\bword`, "hello word", true, []int{6, 10}},
		{"word_start_at_string_start", `\bword`, "word end", true, []int{0, 4}},
		{"word_start_no_match_inside", `\bword`, "sword", false, nil},
		{"word_end_match", `word\b`, "word!", true, []int{0, 4}},
		{"word_end_no_match_inside", `word\b`, "words", false, nil},
		{"whole_word_match", `\bword\b`, "a word here", true, []int{2, 6}},
		{"whole_word_no_match_embedded", `\bword\b`, "swords", false, nil},
		{"digit_is_word_char", `\btest123\b`, "x test123 y", true, []int{2, 9}},
		{"underscore_is_not_word_char", `\b_test\b`, "a _test here", false, nil},
		{"at_empty_string_no_word", `\b`, "", false, nil},
		{"at_start_entering_word", `\ba`, "abc", true, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			got := re.MatchString(tt.subject)
			if got != tt.want {
				t.Fatalf("MatchString(%q) against %q = %v, want %v", tt.pattern, tt.subject, got, tt.want)
			}
			if tt.wantLoc != nil {
				loc := re.FindStringIndex(tt.subject)
				if loc == nil || loc[0] != tt.wantLoc[0] || loc[1] != tt.wantLoc[1] {
					t.Errorf("FindStringIndex(%q) = %v, want %v", tt.subject, loc, tt.wantLoc)
				}
			}
		})
	}
}

// TestWordEdgeAnchors exercises '<' (BOW) and '>' (EOW), the grammar's
// dedicated word-edge anchors distinct from the combined \b.
func TestWordEdgeAnchors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    bool
	}{
		{"start_of_word", `<word`, "hello word", true},
		{"not_mid_word_start", `<word`, "sword", false},
		{"end_of_word", `word>`, "word!", true},
		{"not_mid_word_end", `word>`, "words", false},
		{"both_edges", `<word>`, "a word here", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.MatchString(tt.subject); got != tt.want {
				t.Errorf("MatchString(%q) against %q = %v, want %v", tt.pattern, tt.subject, got, tt.want)
			}
		})
	}
}
