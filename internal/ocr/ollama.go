// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwhitmore/catechism-press/internal/httputil"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

// transcribePrompt asks the model for verbatim text and nothing else.
const transcribePrompt = "Extract all text verbatim from this image. Output plain text only."

// keepAlive keeps the model loaded between pages so a batch run does not
// pay the load cost per page.
const keepAlive = "30m"

// OllamaBackend transcribes images through an Ollama-compatible
// /api/generate endpoint.
type OllamaBackend struct {
	endpoint string
	model    string
	token    string
	client   *http.Client
}

// NewOllamaBackend builds a backend for the configured endpoint. Timeout
// defaults to 10 minutes; dense pages on modest hardware run long.
func NewOllamaBackend(cfg types.OCRConfig) *OllamaBackend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &OllamaBackend{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		token:    cfg.Token,
		client:   &http.Client{Timeout: timeout},
	}
}

// generateRequest is the /api/generate payload.
type generateRequest struct {
	Model     string   `json:"model"`
	Prompt    string   `json:"prompt"`
	Images    []string `json:"images,omitempty"`
	Stream    bool     `json:"stream"`
	KeepAlive string   `json:"keep_alive,omitempty"`
}

// generateResponse covers both the bare-completion and the chat-style
// response shapes.
type generateResponse struct {
	Response string `json:"response"`
	Message  struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Transcribe sends one page image to the model and returns the recovered text.
func (b *OllamaBackend) Transcribe(ctx context.Context, image []byte) (string, error) {
	req := generateRequest{
		Model:     b.model,
		Prompt:    transcribePrompt,
		Images:    []string{base64.StdEncoding.EncodeToString(image)},
		Stream:    false,
		KeepAlive: keepAlive,
	}
	var resp generateResponse
	if err := b.post(ctx, req, &resp); err != nil {
		return "", err
	}

	if resp.Response != "" {
		return resp.Response, nil
	}
	return resp.Message.Content, nil
}

// Warmup loads the model ahead of the batch so the first page does not
// absorb the load time.
func (b *OllamaBackend) Warmup(ctx context.Context) error {
	req := generateRequest{
		Model:     b.model,
		Prompt:    "ready",
		Stream:    false,
		KeepAlive: keepAlive,
	}
	var resp generateResponse
	return b.post(ctx, req, &resp)
}

func (b *OllamaBackend) post(ctx context.Context, payload generateRequest, out *generateResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := httputil.DoWithRetry(ctx, b.client, req, 0)
	if err != nil {
		return fmt.Errorf("calling %s: %w", b.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("model API returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
