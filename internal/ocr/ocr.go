// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr transcribes rasterized page images into plain text through a
// vision-model backend. Pages whose transcription is already current are
// skipped, so an interrupted run resumes where it stopped.
package ocr

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mwhitmore/catechism-press/pkg/types"
)

// ReportFile is the name of the YAML run report written to the text directory.
const ReportFile = "ocr-report.yaml"

// imageExts lists the page image extensions the runner accepts.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// VisionBackend abstracts the vision-model API so tests can supply a mock.
// Each implementation transcribes a single page image and returns the raw
// text.
type VisionBackend interface {
	Transcribe(ctx context.Context, image []byte) (string, error)
}

// BatchSummary holds counts from a batch OCR run.
type BatchSummary struct {
	Transcribed int `yaml:"transcribed"`
	Skipped     int `yaml:"skipped"`
	Failed      int `yaml:"failed"`
}

// Total returns the number of pages processed.
func (s BatchSummary) Total() int {
	return s.Transcribed + s.Skipped + s.Failed
}

// HasFailures reports whether any pages failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Report is the on-disk record of one OCR run. Kept alongside the output
// text so a later inspection can tell which model produced it and which
// pages need another pass.
type Report struct {
	Model     string       `yaml:"model"`
	Endpoint  string       `yaml:"endpoint"`
	Summary   BatchSummary `yaml:"summary"`
	Failures  []string     `yaml:"failures,omitempty"`
	Timestamp time.Time    `yaml:"timestamp"`
}

// RunAll transcribes every page image in cfg.PagesDir into a .txt file in
// cfg.TextDir. Pages whose output is newer than the image are skipped;
// pages that fail after retries are counted and recorded in the report but
// do not abort the batch.
func RunAll(ctx context.Context, backend VisionBackend, cfg types.OCRConfig, w io.Writer) (BatchSummary, error) {
	entries, err := os.ReadDir(cfg.PagesDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading pages directory %s: %w", cfg.PagesDir, err)
	}

	if err := os.MkdirAll(cfg.TextDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating text directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var summary BatchSummary
	var failures []string

	for _, name := range names {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		imgPath := filepath.Join(cfg.PagesDir, name)
		outPath := filepath.Join(cfg.TextDir, stem+".txt")

		changed, err := hasChanged(imgPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			failures = append(failures, name)
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		text, err := transcribeWithRetry(ctx, backend, imgPath, maxRetries)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			failures = append(failures, name)
			continue
		}

		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", name, err)
			summary.Failed++
			failures = append(failures, name)
			continue
		}

		fmt.Fprintf(w, "transcribed %s (%d bytes)\n", name, len(text))
		summary.Transcribed++
	}

	report := Report{
		Model:     cfg.Model,
		Endpoint:  cfg.Endpoint,
		Summary:   summary,
		Failures:  failures,
		Timestamp: time.Now(),
	}
	if err := writeReport(filepath.Join(cfg.TextDir, ReportFile), report); err != nil {
		return summary, err
	}

	return summary, nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// transcribeWithRetry reads the page image and calls the backend with
// exponential backoff on transient errors.
func transcribeWithRetry(ctx context.Context, backend VisionBackend, imgPath string, maxRetries int) (string, error) {
	image, err := os.ReadFile(imgPath)
	if err != nil {
		return "", fmt.Errorf("reading page image: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Transcribe(ctx, image)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// hasChanged reports whether the page image is newer than its transcription.
func hasChanged(imgPath, outPath string) (bool, error) {
	imgInfo, err := os.Stat(imgPath)
	if err != nil {
		return false, fmt.Errorf("stat image %s: %w", imgPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat output %s: %w", outPath, err)
	}

	return imgInfo.ModTime().After(outInfo.ModTime()), nil
}

func writeReport(path string, report Report) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
