// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns classified catechism records into LaTeX: answer
// bodies with superscript footnote markers, footnote reference blocks, and
// question headings.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mwhitmore/catechism-press/internal/classify"
	"github.com/mwhitmore/catechism-press/internal/pattern"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

const answerPrefix = "A: "

// premiseHeaderRe matches the "N. text" opening of a numbered premise.
var premiseHeaderRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)

// counter allocates footnote numbers for one record's render. A fresh
// counter must be constructed per Answer call; reusing one across records
// silently corrupts numbering.
type counter struct {
	next      int
	footnotes []types.Footnote
}

func newCounter() *counter {
	return &counter{next: 1}
}

// take records a footnote for verses and returns its number.
func (c *counter) take(verses string) int {
	n := c.next
	c.footnotes = append(c.footnotes, types.Footnote{Number: n, Verses: verses})
	c.next++
	return n
}

// Answer renders a record's answer according to its classified shape and
// returns the LaTeX body plus the footnotes extracted from it, in marker
// order. Footnote numbers are a contiguous run starting at 1: the counter
// increments once per fragment with non-empty verses, in fragment order,
// and is never reset mid-record. A record with no non-empty fragments
// yields an empty body and no footnotes.
func Answer(rec types.Record, cfg types.ClassifierConfig) (string, []types.Footnote) {
	switch classify.Classify(rec.Fragments, cfg) {
	case classify.ShapeHierarchical:
		return hierarchicalAnswer(rec.Fragments)
	case classify.ShapeList:
		return listAnswer(rec.Fragments)
	default:
		return plainAnswer(rec.Fragments)
	}
}

// plainAnswer joins escaped fragments with single spaces, appending a
// superscript marker after each fragment that carries verses.
func plainAnswer(fragments []types.Fragment) (string, []types.Footnote) {
	c := newCounter()
	body := flowFragments(fragments, c, false)
	return body, c.footnotes
}

// hierarchicalAnswer renders like plainAnswer but inserts a blank-line
// paragraph break before each numbered premise header, except before the
// very first fragment.
func hierarchicalAnswer(fragments []types.Fragment) (string, []types.Footnote) {
	c := newCounter()
	body := flowFragments(fragments, c, true)
	return body, c.footnotes
}

// flowFragments is the shared traversal behind the plain and hierarchical
// strategies. When breakOnHeaders is set, a fragment matching the premise
// header pattern is preceded by a paragraph break unless it is the first
// fragment. Malformed headers that fail the pattern flow as ordinary text.
func flowFragments(fragments []types.Fragment, c *counter, breakOnHeaders bool) string {
	var b strings.Builder
	b.WriteString(answerPrefix)

	wrote := false
	for i, frag := range fragments {
		if frag.Text == "" {
			continue
		}
		wrote = true

		if breakOnHeaders && i > 0 && premiseHeaderRe.MatchString(frag.Text) {
			b.WriteString("\n\n")
		}

		b.WriteString(pattern.EscapeLaTeX(frag.Text))
		if frag.Verses != "" {
			fmt.Fprintf(&b, "$^{%d}$ ", c.take(frag.Verses))
		} else {
			b.WriteString(" ")
		}
	}
	if !wrote {
		return ""
	}

	return strings.TrimSpace(b.String())
}

// listAnswer partitions fragments into list items and intro prose, renders
// the intro as flowing text, then the items as an enumerate block with
// their numbering prefixes stripped. Footnote numbering continues from the
// intro into the list block.
func listAnswer(fragments []types.Fragment) (string, []types.Footnote) {
	var intro, items []types.Fragment
	for _, frag := range fragments {
		if frag.Text == "" {
			continue
		}
		if pattern.IsEnumeratedItem(frag.Text) || pattern.IsBracketedItem(frag.Text) {
			items = append(items, frag)
		} else {
			intro = append(intro, frag)
		}
	}

	c := newCounter()
	body := flowFragments(intro, c, false)

	if len(items) == 0 {
		return body, c.footnotes
	}

	var b strings.Builder
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	b.WriteString("\\begin{enumerate}\n")
	for _, frag := range items {
		escaped := pattern.EscapeLaTeX(pattern.StripItemPrefix(frag.Text))
		if frag.Verses != "" {
			fmt.Fprintf(&b, "\\item %s$^{%d}$\n", escaped, c.take(frag.Verses))
		} else {
			fmt.Fprintf(&b, "\\item %s\n", escaped)
		}
	}
	b.WriteString("\\end{enumerate}")

	return b.String(), c.footnotes
}
