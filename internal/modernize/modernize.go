// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package modernize normalizes 17th-century spelling and OCR artifacts in
// recovered text. Rules are an ordered sequence: literal substitutions
// first, in table order, then regexp fallbacks for any long-s characters
// the table missed. Order matters because rules overlap (whole-word long-s
// entries shadow the generic character fallback).
package modernize

import (
	"regexp"
	"strings"
)

// rule is one literal substitution.
type rule struct {
	old, new string
}

// rules is applied in order. Grouped: long-s words, u/v confusion,
// archaic spellings, OCR misreads, punctuation spacing.
var rules = []rule{
	// Long s (ſ) in common words. Whole words first so the single-character
	// entry below does not spoil capitalized forms handled specially.
	{"Chriſt", "Christ"},
	{"Goſpel", "Gospel"},
	{"Jeſus", "Jesus"},
	{"Queſt", "Quest"},
	{"Anſw", "Answ"},
	{"ſhall", "shall"},
	{"ſhould", "should"},
	{"ſin", "sin"},
	{"ſoul", "soul"},
	{"ſpirit", "spirit"},
	{"ſalvation", "salvation"},
	{"ſaviour", "saviour"},
	{"ſerve", "serve"},
	{"ſervice", "service"},
	{"ſuffer", "suffer"},
	{"ſuch", "such"},
	{"ſame", "same"},
	{"ſelf", "self"},
	{"ſtate", "state"},
	{"ſtrength", "strength"},
	{"ſ", "s"},

	// u/v confusion.
	{"haue", "have"},
	{"vnto", "unto"},
	{"vpon", "upon"},
	{"vnderstand", "understand"},
	{"vnion", "union"},
	{"vniversal", "universal"},
	{"vp", "up"},
	{"giue", "give"},
	{"liue", "live"},
	{"loue", "love"},
	{"aboue", "above"},
	{"moue", "move"},
	{"proue", "prove"},
	{"preserue", "preserve"},
	{"obserue", "observe"},
	{"deserue", "deserve"},
	{"conuert", "convert"},
	{"conuersion", "conversion"},
	{"euery", "every"},
	{"euer", "ever"},
	{"euerlasting", "everlasting"},
	{"neuer", "never"},
	{"ouer", "over"},
	{"vnder", "under"},
	{"moreouer", "moreover"},
	{"whatsoeuer", "whatsoever"},
	{"whosoeuer", "whosoever"},

	// Double-v for w.
	{"vvhat", "what"},
	{"vvhen", "when"},
	{"vvhere", "where"},
	{"vvhich", "which"},
	{"vvho", "who"},
	{"vvill", "will"},
	{"vvith", "with"},
	{"vvord", "word"},
	{"vvork", "work"},
	{"vvorld", "world"},
	{"vvorship", "worship"},
	{"vvould", "would"},

	// Archaic spellings.
	{"thinke", "think"},
	{"beleive", "believe"},
	{"receaue", "receive"},

	// OCR misreads.
	{"Gbd", "God"},
	{"Cbrist", "Christ"},
	{"Cbristian", "Christian"},
	{"Cburch", "Church"},
	{"Gommandment", "Commandment"},
	{"Gommandments", "Commandments"},

	// Punctuation spacing.
	{" ;", ";"},
	{" :", ":"},
	{" ,", ","},
	{" .", "."},
	{" ?", "?"},
	{" !", "!"},

	// Collapse runs of spaces left by the substitutions above.
	{"   ", " "},
	{"  ", " "},
}

// Fallbacks for long-s characters the literal table missed: word-initial,
// word-final, and mid-word positions.
var longSRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\bſ([a-z])`), "s$1"},
	{regexp.MustCompile(`([a-z])ſ\b`), "${1}s"},
	{regexp.MustCompile(`([a-z])ſ([a-z])`), "${1}s$2"},
}

// Modernize rewrites archaic spelling and common OCR artifacts into modern
// forms and trims surrounding whitespace. Pure; safe to apply repeatedly,
// though one application suffices.
func Modernize(text string) string {
	out := text
	for _, r := range rules {
		out = strings.ReplaceAll(out, r.old, r.new)
	}
	for _, r := range longSRules {
		out = r.re.ReplaceAllString(out, r.repl)
	}
	return strings.TrimSpace(out)
}
