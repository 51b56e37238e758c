package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pysugar/code-facts/internal/upstream"
)

func TestGenerate_KeyInQueryAndEnvelope(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "g-key" {
			t.Errorf("expected key query param, got %q", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Claude Code reads binary. "}]}}]}`))
	}))
	defer server.Close()

	text, err := NewProvider(server.Client()).Generate(context.Background(), upstream.Request{
		Endpoint:    upstream.Endpoint{BaseURL: server.URL, APIKey: "g-key"},
		Model:       "gemini-1.5-flash",
		System:      "SYSTEM",
		Prompt:      "USER",
		Temperature: 0.9,
		MaxTokens:   150,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "Claude Code reads binary." {
		t.Fatalf("unexpected text %q", text)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "SYSTEM\n\nUSER" {
		t.Fatalf("expected system prompt folded into user text, got %+v", got.Contents)
	}
	if got.GenerationConfig.MaxOutputTokens != 150 {
		t.Fatalf("unexpected generation config %+v", got.GenerationConfig)
	}
}

func TestGenerate_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := NewProvider(nil).Generate(context.Background(), upstream.Request{
		Endpoint: upstream.Endpoint{BaseURL: baseURL, APIKey: "super-secret"},
		Model:    "gemini-1.5-flash",
	})
	var transportErr *upstream.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Fatalf("transport error leaked the api key: %v", err)
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := NewProvider(server.Client()).Generate(context.Background(), upstream.Request{
		Endpoint: upstream.Endpoint{BaseURL: server.URL, APIKey: "k"},
		Model:    "gemini-1.5-flash",
	})
	if !errors.Is(err, upstream.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestListModels_FiltersGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-pro","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/text-embedding-004","supportedGenerationMethods":["embedContent"]},
			{"name":"models/gemini-2.0-flash-exp","supportedGenerationMethods":["generateContent"]}
		]}`))
	}))
	defer server.Close()

	names, err := NewProvider(server.Client()).ListModels(context.Background(), upstream.Endpoint{BaseURL: server.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "gemini-1.5-pro" || names[1] != "gemini-2.0-flash-exp" {
		t.Fatalf("unexpected names %v", names)
	}
}
