// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rasterize renders PDF pages to per-page images using an external
// tool. pdftoppm is preferred; mutool is the fallback. Both produce the
// same numbered page files, they differ only in binary name and argument
// shape.
package rasterize

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/mwhitmore/catechism-press/pkg/types"
)

const (
	binPdftoppm = "pdftoppm"
	binMutool   = "mutool"

	defaultDPI    = 300
	defaultFormat = "png"
)

// Tool renders one PDF into numbered page images.
type Tool interface {
	// Name returns the tool name ("pdftoppm" or "mutool").
	Name() string

	// Available reports whether the tool binary exists on PATH.
	Available() bool

	// Rasterize renders pdfPath into page images under outDir using the
	// given resolution and format.
	Rasterize(pdfPath, outDir string, dpi int, format string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// argsFunc builds the command line for one tool given the render parameters.
type argsFunc func(pdfPath, outDir string, dpi int, format string) []string

// tool implements Tool for a specific rasterizer binary.
type tool struct {
	bin  string
	args argsFunc
	exec executor
}

func (t *tool) Name() string { return t.bin }

func (t *tool) Available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

func (t *tool) Rasterize(pdfPath, outDir string, dpi int, format string) error {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	if format == "" {
		format = defaultFormat
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating pages directory: %w", err)
	}
	if err := t.exec.Run(t.bin, t.args(pdfPath, outDir, dpi, format)...); err != nil {
		return fmt.Errorf("rasterizing %s with %s: %w", pdfPath, t.bin, err)
	}
	return nil
}

func pdftoppmArgs(pdfPath, outDir string, dpi int, format string) []string {
	args := []string{"-r", strconv.Itoa(dpi)}
	if format == "jpeg" {
		args = append(args, "-jpeg")
	} else {
		args = append(args, "-png")
	}
	return append(args, pdfPath, outDir+"/page")
}

func mutoolArgs(pdfPath, outDir string, dpi int, format string) []string {
	return []string{
		"draw",
		"-r", strconv.Itoa(dpi),
		"-o", fmt.Sprintf("%s/page-%%03d.%s", outDir, format),
		pdfPath,
	}
}

func newPdftoppm(exec executor) *tool {
	return &tool{bin: binPdftoppm, args: pdftoppmArgs, exec: exec}
}

func newMutool(exec executor) *tool {
	return &tool{bin: binMutool, args: mutoolArgs, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectTool tries pdftoppm first, falls back to mutool. Returns an error
// if neither is on PATH.
func DetectTool() (Tool, error) {
	return detectTool(defaultExec)
}

func detectTool(exec executor) (Tool, error) {
	pdftoppm := newPdftoppm(exec)
	if pdftoppm.Available() {
		return pdftoppm, nil
	}

	mutool := newMutool(exec)
	if mutool.Available() {
		return mutool, nil
	}

	return nil, fmt.Errorf(
		"no rasterizer available: neither %s nor %s found on PATH",
		binPdftoppm, binMutool,
	)
}

// Run rasterizes one PDF according to cfg using the detected tool.
func Run(pdfPath string, cfg types.RasterizeConfig) error {
	t, err := DetectTool()
	if err != nil {
		return err
	}
	return t.Rasterize(pdfPath, cfg.PagesDir, cfg.DPI, cfg.Format)
}
