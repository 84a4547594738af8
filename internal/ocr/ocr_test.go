// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mwhitmore/catechism-press/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	text  string
	err   error
	calls int
}

func (m *mockBackend) Transcribe(_ context.Context, _ []byte) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// failNTimesBackend fails the first N calls, then succeeds.
type failNTimesBackend struct {
	failures  int
	callCount int
	text      string
}

func (f *failNTimesBackend) Transcribe(_ context.Context, _ []byte) (string, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return "", fmt.Errorf("transient error (call %d)", f.callCount)
	}
	return f.text, nil
}

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

func testConfig(pagesDir, textDir string) types.OCRConfig {
	return types.OCRConfig{
		Endpoint:   "http://127.0.0.1:11434",
		Model:      "test-model",
		MaxRetries: 2,
		PagesDir:   pagesDir,
		TextDir:    textDir,
	}
}

func writePage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAll(t *testing.T) {
	pagesDir := t.TempDir()
	textDir := filepath.Join(t.TempDir(), "out")
	writePage(t, pagesDir, "page-002.png")
	writePage(t, pagesDir, "page-001.png")
	writePage(t, pagesDir, "README.md") // not an image, ignored

	backend := &mockBackend{text: "Q. What is faith?\nA. Faith is assent."}
	var out bytes.Buffer

	summary, err := RunAll(context.Background(), backend, testConfig(pagesDir, textDir), &out)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if summary.Transcribed != 2 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if backend.calls != 2 {
		t.Errorf("backend called %d times, want 2", backend.calls)
	}

	data, err := os.ReadFile(filepath.Join(textDir, "page-001.txt"))
	if err != nil {
		t.Fatalf("transcription not written: %v", err)
	}
	if string(data) != backend.text {
		t.Errorf("transcription = %q", data)
	}

	// The run report names the model and carries the summary.
	var report Report
	raw, err := os.ReadFile(filepath.Join(textDir, ReportFile))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if err := yaml.Unmarshal(raw, &report); err != nil {
		t.Fatalf("report not parseable: %v", err)
	}
	if report.Model != "test-model" || report.Summary.Transcribed != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunAllSkipsCurrentPages(t *testing.T) {
	pagesDir := t.TempDir()
	textDir := t.TempDir()
	writePage(t, pagesDir, "page-001.png")

	// Existing transcription newer than the image.
	outPath := filepath.Join(textDir, "page-001.txt")
	if err := os.WriteFile(outPath, []byte("already done"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(outPath, future, future); err != nil {
		t.Fatal(err)
	}

	backend := &mockBackend{text: "new text"}
	summary, err := RunAll(context.Background(), backend, testConfig(pagesDir, textDir), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if summary.Skipped != 1 || summary.Transcribed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if backend.calls != 0 {
		t.Errorf("backend called for a current page")
	}
	data, _ := os.ReadFile(outPath)
	if string(data) != "already done" {
		t.Errorf("current transcription overwritten: %q", data)
	}
}

func TestRunAllRetriesTransientErrors(t *testing.T) {
	pagesDir := t.TempDir()
	textDir := t.TempDir()
	writePage(t, pagesDir, "page-001.png")

	backend := &failNTimesBackend{failures: 2, text: "recovered"}
	summary, err := RunAll(context.Background(), backend, testConfig(pagesDir, textDir), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if summary.Transcribed != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if backend.callCount != 3 {
		t.Errorf("backend called %d times, want 3", backend.callCount)
	}
}

func TestRunAllCountsPersistentFailures(t *testing.T) {
	pagesDir := t.TempDir()
	textDir := t.TempDir()
	writePage(t, pagesDir, "page-001.png")
	writePage(t, pagesDir, "page-002.png")

	backend := &mockBackend{err: errors.New("model exploded")}
	var out bytes.Buffer

	summary, err := RunAll(context.Background(), backend, testConfig(pagesDir, textDir), &out)
	if err != nil {
		t.Fatalf("failures must not abort the batch: %v", err)
	}

	if summary.Failed != 2 || !summary.HasFailures() {
		t.Errorf("summary = %+v", summary)
	}

	var report Report
	raw, err := os.ReadFile(filepath.Join(textDir, ReportFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := yaml.Unmarshal(raw, &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Failures) != 2 {
		t.Errorf("report failures = %v", report.Failures)
	}
}

// --- Ollama backend ---

func TestOllamaBackendTranscribe(t *testing.T) {
	var gotReq generateRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "page text"})
	}))
	defer ts.Close()

	backend := NewOllamaBackend(types.OCRConfig{Endpoint: ts.URL, Model: "qwen2.5vl:7b"})
	text, err := backend.Transcribe(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if text != "page text" {
		t.Errorf("text = %q", text)
	}
	if gotReq.Model != "qwen2.5vl:7b" || gotReq.Stream {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Images) != 1 || gotReq.Images[0] != "aW1n" {
		t.Errorf("image not base64-encoded: %v", gotReq.Images)
	}
}

func TestOllamaBackendChatShapeResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"content": "chat text"},
		})
	}))
	defer ts.Close()

	backend := NewOllamaBackend(types.OCRConfig{Endpoint: ts.URL, Model: "m"})
	text, err := backend.Transcribe(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "chat text" {
		t.Errorf("text = %q", text)
	}
}

func TestOllamaBackendErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	backend := NewOllamaBackend(types.OCRConfig{Endpoint: ts.URL, Model: "m"})
	_, err := backend.Transcribe(context.Background(), []byte("img"))
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestOllamaBackendSendsToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer ts.Close()

	backend := NewOllamaBackend(types.OCRConfig{Endpoint: ts.URL, Model: "m", Token: "tok123"})
	if err := backend.Warmup(context.Background()); err != nil {
		t.Fatalf("Warmup: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
