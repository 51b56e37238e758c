// Package upstream contains the wire-level clients for the LLM vendors. Each
// sub-package implements Provider for one protocol family.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pysugar/code-facts/internal/version"
)

// DefaultLogMaxLen caps how much of an upstream body is written to the log.
const DefaultLogMaxLen = 1024

// ErrEmptyResponse is returned when a successful reply carries no generated text.
var ErrEmptyResponse = errors.New("response contained no generated text")

// Endpoint identifies where and as whom a call is made.
type Endpoint struct {
	BaseURL string
	APIKey  string
}

// Request is one non-streaming text generation call.
type Request struct {
	Endpoint
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider is implemented by every protocol variant.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	ListModels(ctx context.Context, endpoint Endpoint) ([]string, error)
}

// StatusError is a non-2xx reply. Message is the vendor's own error text, or
// empty when the body did not carry one.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.StatusCode)
}

// TransportError is a failure below HTTP: DNS, refused connection, timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DoJSON sends a request with an optional JSON body and decodes a 2xx JSON
// reply into out. Non-2xx replies become *StatusError and network failures
// become *TransportError.
func DoJSON(ctx context.Context, client *http.Client, method, target string, headers map[string]string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		// url.Error repeats the full URL, query key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return &TransportError{URL: redactURL(target), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: redactURL(target), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    ExtractErrorMessage(respBody),
			Body:       TruncateLog(string(respBody), DefaultLogMaxLen),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ExtractErrorMessage pulls a human-readable message out of the error
// envelopes the supported vendors use:
//
//	{"error":{"message":"..."}}  OpenAI, Anthropic, Google
//	{"error":"..."}              Ollama
//	{"message":"..."}            Mistral
//	{"detail":"..."}             Mistral validation errors
func ExtractErrorMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return strings.TrimSpace(nested.Message)
		}
		var flat string
		if err := json.Unmarshal(envelope.Error, &flat); err == nil && flat != "" {
			return strings.TrimSpace(flat)
		}
	}
	if envelope.Message != "" {
		return strings.TrimSpace(envelope.Message)
	}
	if len(envelope.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
			return strings.TrimSpace(detail)
		}
	}
	return ""
}

// TruncateLog shortens long upstream bodies before they reach the log.
func TruncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}

// UserAgent identifies this service to upstream vendors.
func UserAgent() string {
	return "code-facts/" + version.Version
}

// JoinURL joins a base URL and a path without doubling slashes.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// redactURL hides the query string, which may carry an API key.
func redactURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
