// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the catechism-press pipeline.
package types

// Fragment is one ordered unit of an answer's text, optionally tagged with
// the scripture references that support it. Fragments are produced by the
// source parser and never mutated afterwards; their order within a record
// is significant and preserved through rendering.
type Fragment struct {
	// Text is the fragment body, trimmed of surrounding whitespace.
	Text string `json:"text" toml:"text"`

	// Verses is the raw scripture-reference string (e.g. "Rom. 3:20; 1 Cor. 6:19").
	// Empty when the fragment carries no citation.
	Verses string `json:"verses" toml:"verses"`
}

// Record is one catechism question/answer entry with a stable identifier.
// One record per source file; created at the parse boundary, consumed
// exactly once by the generation pipeline.
type Record struct {
	// ID is a dot-separated numeric identifier, e.g. "42" or "42.3".
	// Non-numeric IDs still sort and render but never match the schedule.
	ID string `json:"id" toml:"id"`

	// Prompt is the question text.
	Prompt string `json:"question" toml:"question"`

	// Fragments holds the answer body in source order.
	Fragments []Fragment `json:"sections" toml:"sections"`

	// Optional marks supplementary entries excluded from the publication.
	Optional bool `json:"optional,omitempty" toml:"optional,omitempty"`
}

// Footnote is a numbered, URL-resolved citation extracted from a fragment
// during answer rendering. Numbering restarts at 1 for every record and a
// footnote is never shared across records.
type Footnote struct {
	// Number is the 1-based index, unique within one record's render.
	Number int `json:"number" yaml:"number"`

	// Verses is the citation string the footnote was extracted from.
	Verses string `json:"verses" yaml:"verses"`

	// URL is the resolved cross-reference link. Filled in by the footnote
	// renderer when empty.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ScheduleWeek assigns a block of question numbers to one reading week.
// Only the first listed question is consulted when placing section breaks.
type ScheduleWeek struct {
	Week      int    `json:"week" toml:"week"`
	Title     string `json:"title" toml:"title"`
	Questions []int  `json:"questions" toml:"questions"`
}

// Schedule is the optional weekly reading overlay. It is supplied wholesale
// before assembly begins and used only to decide where section-break
// headings are injected into the output stream.
type Schedule struct {
	Weeks []ScheduleWeek `json:"weeks" toml:"weeks"`
}
