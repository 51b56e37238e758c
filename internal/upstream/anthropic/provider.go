// Package anthropic speaks the Anthropic Messages API.
package anthropic

import (
	"context"
	"net/http"
	"strings"

	"github.com/pysugar/code-facts/internal/upstream"
)

// APIVersion is sent as the anthropic-version header on every call.
const APIVersion = "2023-06-01"

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type Provider struct {
	httpClient *http.Client
}

func NewProvider(httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Provider{httpClient: httpClient}
}

// Generate posts to /v1/messages and returns content[0].text.
func (p *Provider) Generate(ctx context.Context, req upstream.Request) (string, error) {
	payload := messagesRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Messages:    []message{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
	}

	var resp messagesResponse
	target := upstream.JoinURL(req.BaseURL, "/v1/messages")
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodPost, target, headers(req.APIKey), payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Content) == 0 || strings.TrimSpace(resp.Content[0].Text) == "" {
		return "", upstream.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}

// ListModels returns the ids from GET /v1/models.
func (p *Provider) ListModels(ctx context.Context, endpoint upstream.Endpoint) ([]string, error) {
	var resp modelsResponse
	target := upstream.JoinURL(endpoint.BaseURL, "/v1/models?limit=100")
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodGet, target, headers(endpoint.APIKey), nil, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         strings.TrimSpace(apiKey),
		"anthropic-version": APIVersion,
	}
}
