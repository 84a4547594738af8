// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads catechism records and the optional reading schedule
// from a directory of TOML files. It is the parse boundary: records are
// validated and trimmed here so the rendering core never inspects
// malformed shapes.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mwhitmore/catechism-press/pkg/types"
)

// ScheduleFile is the reserved filename for the weekly reading overlay.
const ScheduleFile = "schedule.toml"

// LoadRecords reads every *.toml file in dir (except the schedule file) and
// returns the parsed records. Malformed files and records missing an id or
// prompt are skipped with a warning on w rather than aborting the batch;
// records marked optional are dropped silently.
func LoadRecords(dir string, w io.Writer) ([]types.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	var records []types.Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".toml") || name == ScheduleFile {
			continue
		}

		rec, err := loadRecordFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", name, err)
			continue
		}
		if rec == nil {
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}

// loadRecordFile parses one record file. It returns (nil, nil) for optional
// records and an error for unparseable or incomplete ones.
func loadRecordFile(path string) (*types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec types.Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	if rec.Optional {
		return nil, nil
	}

	rec.ID = strings.TrimSpace(rec.ID)
	rec.Prompt = strings.TrimSpace(rec.Prompt)
	if rec.ID == "" || rec.Prompt == "" {
		return nil, fmt.Errorf("record missing id or question")
	}

	for i := range rec.Fragments {
		rec.Fragments[i].Text = strings.TrimSpace(rec.Fragments[i].Text)
		rec.Fragments[i].Verses = strings.TrimSpace(rec.Fragments[i].Verses)
	}

	return &rec, nil
}

// LoadSchedule reads the weekly reading schedule from dir if present.
// A missing schedule is not an error; the document is simply assembled
// without weekly headings. An unreadable schedule produces a warning and
// is likewise ignored.
func LoadSchedule(dir string, w io.Writer) *types.Schedule {
	data, err := os.ReadFile(filepath.Join(dir, ScheduleFile))
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: could not read schedule: %v\n", err)
		}
		return nil
	}

	var sched types.Schedule
	if err := toml.Unmarshal(data, &sched); err != nil {
		fmt.Fprintf(w, "warning: could not parse schedule: %v\n", err)
		return nil
	}
	return &sched
}
