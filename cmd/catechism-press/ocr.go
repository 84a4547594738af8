// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhitmore/catechism-press/internal/ocr"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Transcribe page images with a vision model",
	Long: `OCR sends each page image to an Ollama-compatible vision model and
writes the transcription to a per-page text file. Pages whose text file
is newer than the image are skipped, so interrupted runs resume where
they left off. A batch report is written alongside the text files.

The bearer token for hosted endpoints comes from --token or the
.secrets/ocr-token file.`,
	RunE: runOCR,
}

func runOCR(cmd *cobra.Command, args []string) error {
	endpoint, _ := cmd.Flags().GetString("endpoint")
	model, _ := cmd.Flags().GetString("model")
	token, _ := cmd.Flags().GetString("token")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	pagesDir, _ := cmd.Flags().GetString("pages-dir")
	textDir, _ := cmd.Flags().GetString("text-dir")

	cfg := types.OCRConfig{
		Endpoint:   endpoint,
		Model:      model,
		Token:      secretDefault("ocr-token", token),
		Timeout:    timeout,
		MaxRetries: maxRetries,
		PagesDir:   pagesDir,
		TextDir:    textDir,
	}

	backend := ocr.NewOllamaBackend(cfg)
	ctx := context.Background()

	fmt.Fprintf(os.Stderr, "Warming up %s at %s...\n", cfg.Model, cfg.Endpoint)
	if err := backend.Warmup(ctx); err != nil {
		return fmt.Errorf("model warmup: %w", err)
	}

	summary, err := ocr.RunAll(ctx, backend, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d page(s) failed transcription", summary.Failed)
	}
	return nil
}

func init() {
	ocrCmd.Flags().String("endpoint", "http://127.0.0.1:11434", "Ollama-compatible API base URL")
	ocrCmd.Flags().String("model", "qwen2.5vl:7b", "vision model identifier")
	ocrCmd.Flags().String("token", "", "bearer token for hosted endpoints (overrides .secrets/ocr-token)")
	ocrCmd.Flags().Duration("timeout", 0, "per-request timeout (0 = default 10m)")
	ocrCmd.Flags().Int("max-retries", 3, "retry attempts per page")
	ocrCmd.Flags().String("pages-dir", "pages", "input directory of page images")
	ocrCmd.Flags().String("text-dir", "text", "output directory for per-page text")

	rootCmd.AddCommand(ocrCmd)
}
