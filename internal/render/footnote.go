// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/mwhitmore/catechism-press/internal/pattern"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

// bibleGatewayTemplate is the cross-reference search URL. The character
// substitutions in verseEncoder must be reproduced exactly for output
// compatibility with existing documents.
const bibleGatewayTemplate = "https://www.biblegateway.com/passage/?search=%s&version=ESV"

var verseEncoder = strings.NewReplacer(
	" ", "+",
	":", "%3A",
	";", "%3B",
	",", "%2C",
)

// BibleURL returns the BibleGateway search URL for a verse reference like
// "Rom. 3:20; 1 Cor. 6:19". The transform is total: any input string
// produces a URL.
func BibleURL(verses string) string {
	return fmt.Sprintf(bibleGatewayTemplate, verseEncoder.Replace(verses))
}

// Footnotes renders the collected footnotes for one record as a framed
// two-column LaTeX block, each entry a numbered hyperlink to its resolved
// verse URL, in ascending number order. Footnotes lacking a URL get one
// from BibleURL. Empty input yields an empty string and the assembler
// omits the block entirely.
func Footnotes(footnotes []types.Footnote) string {
	if len(footnotes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\\begin{mdframed}[linecolor=blue!20,backgroundcolor=blue!5,linewidth=1pt,skipabove=20pt,skipbelow=20pt,innertopmargin=0pt,innerbottommargin=15pt]\n")
	b.WriteString("\\setlength{\\columnsep}{2em}\n")
	b.WriteString("\\setlength{\\parindent}{0pt}\n")
	b.WriteString("\\begin{multicols}{2}\n")
	b.WriteString("\\footnotesize\\color[RGB]{0, 0, 150}\n")

	for _, fn := range footnotes {
		url := fn.URL
		if url == "" {
			url = BibleURL(fn.Verses)
		}
		fmt.Fprintf(&b, "$^{%d}$ \\href{%s}{%s}\\\\\n", fn.Number, url, pattern.EscapeLaTeX(fn.Verses))
	}

	b.WriteString("\\end{multicols}\n")
	b.WriteString("\\end{mdframed}")

	return b.String()
}
