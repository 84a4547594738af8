// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"strings"
	"testing"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "What is the chief end of man?", want: "What is the chief end of man?"},
		{name: "ampersand", in: "faith & repentance", want: `faith \& repentance`},
		{name: "percent and dollar", in: "100% of $5", want: `100\% of \$5`},
		{name: "braces", in: "a {b} c", want: `a \{b\} c`},
		{name: "underscore and hash", in: "ps_23 #1", want: `ps\_23 \#1`},
		{name: "tilde", in: "~", want: `\textasciitilde{}`},
		{name: "caret", in: "^", want: `\textasciicircum{}`},
		{name: "backslash", in: `a\b`, want: `a\textbackslash{}b`},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeLaTeX(tt.in); got != tt.want {
				t.Errorf("EscapeLaTeX(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Escaping is single-pass: the backslashes it introduces are not themselves
// re-escaped, even when the replacement table contains backslash.
func TestEscapeLaTeXNoDoubleEscape(t *testing.T) {
	got := EscapeLaTeX("&")
	if got != `\&` {
		t.Fatalf("EscapeLaTeX(&) = %q, want %q", got, `\&`)
	}
	if strings.Contains(got, `\textbackslash`) {
		t.Fatalf("escape rescanned its own output: %q", got)
	}
}

func TestIsEnumeratedItem(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1. First point", true},
		{"12. Twelfth point", true},
		{"1.No space", false},
		{"[1] Bracketed", false},
		{"First point", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEnumeratedItem(tt.in); got != tt.want {
			t.Errorf("IsEnumeratedItem(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsBracketedItem(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"[1] First point", true},
		{"[12] Twelfth", true},
		{"[1]No space", false},
		{"1. Enumerated", false},
		{"[a] Lettered", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBracketedItem(tt.in); got != tt.want {
			t.Errorf("IsBracketedItem(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestItemNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3. Third point", "3"},
		{"[7] Seventh point", "7"},
		{"no prefix here", ""},
	}
	for _, tt := range tests {
		if got := ItemNumber(tt.in); got != tt.want {
			t.Errorf("ItemNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripItemPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. First point", "First point"},
		{"[2] Second point", "Second point"},
		{"no prefix", "no prefix"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripItemPrefix(tt.in); got != tt.want {
			t.Errorf("StripItemPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripItemPrefixIdempotent(t *testing.T) {
	inputs := []string{"1. First point", "[2] Second point", "plain", ""}
	for _, in := range inputs {
		once := StripItemPrefix(in)
		twice := StripItemPrefix(once)
		if once != twice {
			t.Errorf("StripItemPrefix not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
