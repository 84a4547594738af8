// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides the structural shape of a catechism answer from
// its ordered fragments. Detection is structural and intentionally
// heuristic: it looks at numbering patterns, not meaning.
package classify

import (
	"regexp"

	"github.com/mwhitmore/catechism-press/internal/pattern"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

// Shape is the structural classification of an answer.
type Shape int

const (
	// ShapePlain is flowing prose with no recognized structure.
	ShapePlain Shape = iota

	// ShapeList is an enumerated or bracketed list with an optional prose intro.
	ShapeList

	// ShapeHierarchical is a multi-premise numbered argument
	// ("1. From Scripture ... 2. From reason ...").
	ShapeHierarchical
)

func (s Shape) String() string {
	switch s {
	case ShapeHierarchical:
		return "hierarchical"
	case ShapeList:
		return "list"
	default:
		return "plain"
	}
}

// DefaultThreshold is the fragment-match count at which either detector
// fires. Tuned empirically on one corpus; override via ClassifierConfig.
const DefaultThreshold = 3

// hierarchicalRe matches premise headers like "1. From the Scriptures,".
var hierarchicalRe = regexp.MustCompile(`^\d+\.\s+From\s+`)

// Classify returns the shape of an answer given its fragments. The
// hierarchical detector takes priority over the list detector: premise
// headers reuse the leading-digit shape of plain enumeration, so a numbered
// list whose items happen to start "N. From" is classified hierarchical.
func Classify(fragments []types.Fragment, cfg types.ClassifierConfig) Shape {
	if IsHierarchical(fragments, threshold(cfg.HierarchicalThreshold)) {
		return ShapeHierarchical
	}
	if IsList(fragments, threshold(cfg.ListThreshold)) {
		return ShapeList
	}
	return ShapePlain
}

// IsHierarchical reports whether at least min non-empty fragments open with
// a "N. From " premise header.
func IsHierarchical(fragments []types.Fragment, min int) bool {
	count := 0
	for _, f := range fragments {
		if f.Text != "" && hierarchicalRe.MatchString(f.Text) {
			count++
		}
	}
	return count >= min
}

// IsList reports whether at least min non-empty fragments are enumerated or
// bracketed list items.
func IsList(fragments []types.Fragment, min int) bool {
	count := 0
	nonEmpty := 0
	for _, f := range fragments {
		if f.Text == "" {
			continue
		}
		nonEmpty++
		if pattern.IsEnumeratedItem(f.Text) || pattern.IsBracketedItem(f.Text) {
			count++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return count >= min
}

func threshold(v int) int {
	if v <= 0 {
		return DefaultThreshold
	}
	return v
}
