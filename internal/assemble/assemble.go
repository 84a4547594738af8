// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble merges rendered records into one LaTeX document:
// a fixed preamble, records sorted by identifier with optional weekly
// section breaks, and a document close.
package assemble

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mwhitmore/catechism-press/internal/render"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

// SortRecords orders records by identifier: numerically when the id parses
// as a decimal number ("2" < "2.1" < "10"), lexically otherwise. Numeric
// ids sort before non-numeric ones. The sort is stable, so records with
// identical keys keep source-encounter order.
func SortRecords(records []types.Record) []types.Record {
	sorted := make([]types.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, aNum := numericID(sorted[i].ID)
		b, bNum := numericID(sorted[j].ID)
		switch {
		case aNum && bNum:
			return a < b
		case aNum != bNum:
			return aNum
		default:
			return sorted[i].ID < sorted[j].ID
		}
	})

	return sorted
}

func numericID(id string) (float64, bool) {
	v, err := strconv.ParseFloat(id, 64)
	return v, err == nil
}

// weekInfo is one schedule-derived section break.
type weekInfo struct {
	week  int
	title string
}

// buildWeekMap maps each week's first listed question number to the week.
// Weeks with no questions are skipped.
func buildWeekMap(schedule *types.Schedule) map[int]weekInfo {
	if schedule == nil {
		return nil
	}
	m := make(map[int]weekInfo)
	for _, w := range schedule.Weeks {
		if len(w.Questions) == 0 {
			continue
		}
		m[w.Questions[0]] = weekInfo{week: w.Week, title: w.Title}
	}
	return m
}

// Document assembles sorted records into a complete LaTeX document.
// Schedule may be nil, in which case no weekly headings are emitted. Each
// record contributes its heading, answer body, footnote block (omitted
// when empty), and a visual separator. Records whose id is not a plain
// integer never match the week map but still sort and render.
func Document(records []types.Record, schedule *types.Schedule, cfg types.ClassifierConfig) string {
	weekMap := buildWeekMap(schedule)

	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString(documentStart)

	for _, rec := range SortRecords(records) {
		if n, err := strconv.Atoi(rec.ID); err == nil {
			if info, ok := weekMap[n]; ok {
				fmt.Fprintf(&b, "\\newpage\n\\subsection{Week %d: %s}\n\\vspace{10pt}\n\n", info.week, info.title)
			}
		}

		body, footnotes := render.Answer(rec, cfg)
		block := render.Footnotes(footnotes)

		fmt.Fprintf(&b, "%s\n\n%s\n\n%s\n\n\\vspace{10pt}\\hrulefill\n\n",
			render.Question(rec), body, block)
	}

	b.WriteString(documentEnd)
	return b.String()
}
