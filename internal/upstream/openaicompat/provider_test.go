package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pysugar/code-facts/internal/upstream"
)

func TestGenerate_SendsBearerAuthAndChatShape(t *testing.T) {
	var capturedAuth string
	var capturedURL string
	var captured chatRequest

	client := &http.Client{
		Timeout: time.Second,
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			capturedAuth = r.Header.Get("Authorization")
			capturedURL = r.URL.String()
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &captured)
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  Claude Code pulls production.  \n"}}]}`), nil
		}),
	}

	text, err := NewProvider(client).Generate(context.Background(), upstream.Request{
		Endpoint:    upstream.Endpoint{BaseURL: "https://api.mistral.ai/", APIKey: "server-key"},
		Model:       "mistral-small-latest",
		System:      "be funny",
		Prompt:      "one fact",
		Temperature: 0.9,
		MaxTokens:   150,
	})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	if text != "Claude Code pulls production." {
		t.Fatalf("expected trimmed content, got %q", text)
	}
	if capturedAuth != "Bearer server-key" {
		t.Fatalf("expected bearer auth header, got %q", capturedAuth)
	}
	if capturedURL != "https://api.mistral.ai/v1/chat/completions" {
		t.Fatalf("unexpected url %s", capturedURL)
	}
	if captured.Model != "mistral-small-latest" || captured.MaxTokens != 150 || captured.Temperature != 0.9 {
		t.Fatalf("unexpected payload %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "one fact" {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
}

func TestGenerate_StatusErrorCarriesVendorMessage(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`), nil
	})}

	_, err := NewProvider(client).Generate(context.Background(), upstream.Request{
		Endpoint: upstream.Endpoint{BaseURL: "https://api.openai.com", APIKey: "nope"},
		Model:    "gpt-4o-mini",
	})

	var statusErr *upstream.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized || statusErr.Message != "bad key" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"choices":[]}`), nil
	})}

	_, err := NewProvider(client).Generate(context.Background(), upstream.Request{
		Endpoint: upstream.Endpoint{BaseURL: "https://api.openai.com", APIKey: "k"},
	})
	if !errors.Is(err, upstream.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/v1/models") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"data":[{"id":"gpt-4o"},{"id":"whisper-1"},{"id":""}]}`), nil
	})}

	ids, err := NewProvider(client).ListModels(context.Background(), upstream.Endpoint{BaseURL: "https://api.openai.com", APIKey: "k"})
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(ids) != 2 || ids[0] != "gpt-4o" || ids[1] != "whisper-1" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestGenerate_KeylessEndpointSendsNoAuthorization(t *testing.T) {
	var sawAuth bool
	client := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		_, sawAuth = r.Header["Authorization"]
		return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"local fact"}}]}`), nil
	})}

	text, err := NewProvider(client).Generate(context.Background(), upstream.Request{
		Endpoint: upstream.Endpoint{BaseURL: "http://localhost:1234"},
		Model:    "local-model",
	})
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if text != "local fact" {
		t.Fatalf("unexpected text %q", text)
	}
	if sawAuth {
		t.Fatal("expected no Authorization header without an API key")
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
