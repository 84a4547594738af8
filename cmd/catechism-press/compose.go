// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhitmore/catechism-press/internal/compose"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Split OCR transcripts into question/answer record files",
	Long: `Compose reads the per-page OCR text in order, finds question and answer
marks, modernizes the early-modern spelling, and writes one TOML record
file per question into the source directory. Records with no answer text
are dropped; the record files are meant to be hand-corrected afterwards.`,
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	textDir, _ := cmd.Flags().GetString("text-dir")
	sourceDir, _ := cmd.Flags().GetString("source-dir")

	cfg := types.ComposeConfig{
		TextDir:   textDir,
		SourceDir: sourceDir,
	}

	summary, err := compose.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Records == 0 {
		return fmt.Errorf("no records composed from %s", textDir)
	}
	return nil
}

func init() {
	composeCmd.Flags().String("text-dir", "text", "input directory of OCR page text")
	composeCmd.Flags().String("source-dir", "src", "output directory for record TOML files")

	rootCmd.AddCommand(composeCmd)
}
