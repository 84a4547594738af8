// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package modernize

import "testing"

func TestModernize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "long s words",
			in:   "Jeſus Chriſt ſhall ſave his people",
			want: "Jesus Christ shall save his people",
		},
		{
			name: "long s fallback in uncommon word",
			in:   "a ſtranger in the land",
			want: "a stranger in the land",
		},
		{
			name: "u for v",
			in:   "haue loue vnto euery one",
			want: "have love unto every one",
		},
		{
			name: "double v for w",
			in:   "vvhat is the vvord of God",
			want: "what is the word of God",
		},
		{
			name: "ocr misreads",
			in:   "the Gbd of the Cburch",
			want: "the God of the Church",
		},
		{
			name: "punctuation spacing",
			in:   "What is required , and what forbidden ?",
			want: "What is required, and what forbidden?",
		},
		{
			name: "collapses runs of spaces and trims",
			in:   "  too   many    spaces  ",
			want: "too many spaces",
		},
		{
			name: "modern text untouched",
			in:   "Man's chief end is to glorify God.",
			want: "Man's chief end is to glorify God.",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Modernize(tt.in); got != tt.want {
				t.Errorf("Modernize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// One application fully normalizes; a second pass changes nothing.
func TestModernizeStable(t *testing.T) {
	in := "Queſt. vvhat ſhall we ſay ?"
	once := Modernize(in)
	if got := Modernize(once); got != once {
		t.Errorf("second pass changed output: %q -> %q", once, got)
	}
}
