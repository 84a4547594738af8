// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose turns raw OCR page text into structured record TOML
// files. It segments the text into question/answer pairs, modernizes the
// spelling of both sides, and splits trailing scripture-reference blocks
// off each answer.
package compose

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mwhitmore/catechism-press/internal/modernize"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var (
	// questionMarkRe locates the start of a question block. The archaic
	// "Queſt." form appears in raw OCR output before modernization.
	questionMarkRe = regexp.MustCompile(`(?m)^\s*(?:Q\.|Queſt\.|Quest\.)`)

	// answerMarkRe locates the answer marker inside one block.
	answerMarkRe = regexp.MustCompile(`A\.|Anſw\.|Answ\.`)

	// refStartRe finds the beginning of a scripture-reference block like
	// "(a) Rom. 3. 20" or "{.-) 1 Cor. 6. 19" (OCR mangles the letter tags).
	refStartRe = regexp.MustCompile(`[\({\[][-.\w]*[\)}\]]\s*(?:\d+\s*)?[A-Z][a-z]*\.?\s*\d+`)

	// refTagRe matches the parenthesized letter tags inside a reference block.
	refTagRe = regexp.MustCompile(`[\({\[][-.\w]*[\)}\]]\s*`)

	// spaceRunRe collapses whitespace runs.
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// QA is one segmented question/answer pair, already modernized, with the
// scripture references split off the answer.
type QA struct {
	Question string
	Answer   string
	Verses   string
}

// SplitQA segments OCR text into question/answer pairs. Blocks without a
// recognizable answer marker are dropped; segmentation is heuristic and a
// page that yields nothing is not an error.
func SplitQA(text string) []QA {
	starts := questionMarkRe.FindAllStringIndex(text, -1)
	var pairs []QA

	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := text[loc[1]:end]

		ans := answerMarkRe.FindStringIndex(block)
		if ans == nil {
			continue
		}

		question := modernize.Modernize(block[:ans[0]])
		answer := modernize.Modernize(block[ans[1]:])
		if question == "" || answer == "" {
			continue
		}

		answer, verses := SplitReferences(answer)
		pairs = append(pairs, QA{Question: question, Answer: answer, Verses: verses})
	}

	return pairs
}

// SplitReferences separates a trailing scripture-reference block from the
// answer body. References conventionally follow the prose, introduced by
// letter tags like "(a)". When no reference block is found the whole text
// is returned as the body with empty verses.
func SplitReferences(text string) (body, verses string) {
	loc := refStartRe.FindStringIndex(text)
	if loc == nil {
		return collapse(text), ""
	}

	body = collapse(text[:loc[0]])
	verses = refTagRe.ReplaceAllString(text[loc[0]:], "")
	return body, collapse(verses)
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// Summary holds counts from one compose run.
type Summary struct {
	Pages   int
	Records int
	Skipped int
}

// Run reads every .txt page in cfg.TextDir in name order, segments the
// concatenated text, and writes one numbered record TOML file per pair to
// cfg.SourceDir. Page files that cannot be read are skipped and counted.
func Run(cfg types.ComposeConfig, w io.Writer) (Summary, error) {
	entries, err := os.ReadDir(cfg.TextDir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading OCR text directory %s: %w", cfg.TextDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var summary Summary
	var full strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(cfg.TextDir, name))
		if err != nil {
			fmt.Fprintf(w, "skipped %s: %v\n", name, err)
			summary.Skipped++
			continue
		}
		summary.Pages++
		full.Write(data)
		full.WriteString("\n")
	}

	pairs := SplitQA(full.String())
	if len(pairs) == 0 {
		fmt.Fprintln(w, "no question/answer pairs recognized")
		return summary, nil
	}

	if err := os.MkdirAll(cfg.SourceDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating source directory: %w", err)
	}

	for i, qa := range pairs {
		rec := types.Record{
			ID:     fmt.Sprintf("%d", i+1),
			Prompt: qa.Question,
			Fragments: []types.Fragment{
				{Text: qa.Answer, Verses: qa.Verses},
			},
		}

		path := filepath.Join(cfg.SourceDir, fmt.Sprintf("%03d.toml", i+1))
		if err := writeRecord(path, rec); err != nil {
			return summary, err
		}
		summary.Records++
		fmt.Fprintf(w, "composed %s: %.50s\n", filepath.Base(path), qa.Question)
	}

	return summary, nil
}

func writeRecord(path string, rec types.Record) error {
	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", rec.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", path, err)
	}
	return nil
}
