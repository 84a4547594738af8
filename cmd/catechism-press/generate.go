// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mwhitmore/catechism-press/internal/assemble"
	"github.com/mwhitmore/catechism-press/internal/source"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the record corpus into a LaTeX document",
	Long: `Generate loads every record file from the source directory, sorts the
records by question number, renders each answer with its footnotes, and
writes the complete LaTeX document. If the source directory contains a
schedule.toml, weekly section headings are inserted before the first
question of each week.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	sourceDir, _ := cmd.Flags().GetString("source-dir")
	outputPath, _ := cmd.Flags().GetString("output")
	hierThreshold, _ := cmd.Flags().GetInt("hierarchical-threshold")
	listThreshold, _ := cmd.Flags().GetInt("list-threshold")

	records, err := source.LoadRecords(sourceDir, os.Stderr)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records in %s", sourceDir)
	}
	schedule := source.LoadSchedule(sourceDir, os.Stderr)

	cfg := types.ClassifierConfig{
		HierarchicalThreshold: hierThreshold,
		ListThreshold:         listThreshold,
	}
	doc := assemble.Document(records, schedule, cfg)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}

	fmt.Printf("Wrote %d records to %s\n", len(records), outputPath)
	return nil
}

func init() {
	generateCmd.Flags().String("source-dir", "src", "directory of record TOML files (and schedule.toml)")
	generateCmd.Flags().String("output", "output/catechism.tex", "destination LaTeX file")
	generateCmd.Flags().Int("hierarchical-threshold", 0, "minimum numbered-argument fragments (0 = default 3)")
	generateCmd.Flags().Int("list-threshold", 0, "minimum enumerated fragments (0 = default 3)")

	rootCmd.AddCommand(generateCmd)
}
