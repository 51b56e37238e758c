// Package openaicompat speaks the OpenAI chat/completions protocol. OpenAI and
// Mistral both use it, on different hosts.
package openaicompat

import (
	"context"
	"net/http"
	"strings"

	"github.com/pysugar/code-facts/internal/upstream"
	"golang.org/x/oauth2"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Provider calls an OpenAI-compatible endpoint with bearer-token auth.
type Provider struct {
	httpClient *http.Client
}

// NewProvider returns a Provider that sends requests through httpClient.
// A nil client uses http.DefaultClient.
func NewProvider(httpClient *http.Client) *Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Provider{httpClient: httpClient}
}

// Generate posts a two-message chat and returns choices[0].message.content.
func (p *Provider) Generate(ctx context.Context, req upstream.Request) (string, error) {
	payload := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var resp chatResponse
	target := upstream.JoinURL(req.BaseURL, "/v1/chat/completions")
	if err := upstream.DoJSON(ctx, p.bearerClient(req.APIKey), http.MethodPost, target, nil, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", upstream.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ListModels returns the ids from GET /v1/models.
func (p *Provider) ListModels(ctx context.Context, endpoint upstream.Endpoint) ([]string, error) {
	var resp modelsResponse
	target := upstream.JoinURL(endpoint.BaseURL, "/v1/models")
	if err := upstream.DoJSON(ctx, p.bearerClient(endpoint.APIKey), http.MethodGet, target, nil, nil, &resp); err != nil {
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

// bearerClient wraps the shared client so every request carries
// "Authorization: Bearer <apiKey>". Keyless endpoints get the client as is.
func (p *Provider) bearerClient(apiKey string) *http.Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return p.httpClient
	}
	return &http.Client{
		Timeout:       p.httpClient.Timeout,
		CheckRedirect: p.httpClient.CheckRedirect,
		Jar:           p.httpClient.Jar,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: apiKey,
				TokenType:   "Bearer",
			}),
			Base: p.httpClient.Transport,
		},
	}
}
