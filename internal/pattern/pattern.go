// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern provides stateless predicates and transforms over single
// text fragments: LaTeX escaping, list-item shape detection, and numbering
// prefix removal. All functions are pure.
package pattern

import (
	"regexp"
	"strings"
)

var (
	// enumeratedRe matches a leading "N. " numbering prefix.
	enumeratedRe = regexp.MustCompile(`^(\d+)\.\s`)

	// bracketedRe matches a leading "[N] " numbering prefix.
	bracketedRe = regexp.MustCompile(`^\[(\d+)\]\s`)
)

// latexEscaper replaces LaTeX reserved characters. strings.Replacer walks
// the input once and never rescans replacement text, so escaping is applied
// exactly once no matter what the input contains. The output of EscapeLaTeX
// must never be fed back through it.
var latexEscaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`\`, `\textbackslash{}`,
)

// EscapeLaTeX returns text with every LaTeX reserved character replaced by
// its literal-safe form.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

// IsEnumeratedItem reports whether text begins with one or more digits,
// a period, and whitespace ("3. thus").
func IsEnumeratedItem(text string) bool {
	return enumeratedRe.MatchString(text)
}

// IsBracketedItem reports whether text begins with a bracketed number and
// whitespace ("[3] thus").
func IsBracketedItem(text string) bool {
	return bracketedRe.MatchString(text)
}

// ItemNumber returns the numbering prefix of a list item as a string, or ""
// when text carries no recognized prefix.
func ItemNumber(text string) string {
	if m := enumeratedRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := bracketedRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// StripItemPrefix removes a leading "N. " or "[N] " numbering prefix.
// Applying it to non-matching text is a no-op, which makes it idempotent.
func StripItemPrefix(text string) string {
	text = enumeratedRe.ReplaceAllString(text, "")
	return bracketedRe.ReplaceAllString(text, "")
}
