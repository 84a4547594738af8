// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/mwhitmore/catechism-press/internal/pattern"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

// Anchor returns the hyperlink target for a record: its id with dots
// replaced by dashes, prefixed with "q".
func Anchor(id string) string {
	return "q" + strings.ReplaceAll(id, ".", "-")
}

// Question renders a record's prompt as a section heading with an explicit
// hypertarget so cross-references and PDF bookmarks resolve to it.
func Question(rec types.Record) string {
	return fmt.Sprintf("\\hypertarget{%s}{\\section{Q. %s: %s}}",
		Anchor(rec.ID), rec.ID, pattern.EscapeLaTeX(rec.Prompt))
}
