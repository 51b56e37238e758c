// Package ollama speaks the local Ollama HTTP API. No credentials are sent.
package ollama

import (
	"context"
	"net/http"
	"strings"

	"github.com/pysugar/code-facts/internal/upstream"
)

type options struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
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

// Generate posts to /api/generate with streaming disabled.
func (p *Provider) Generate(ctx context.Context, req upstream.Request) (string, error) {
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}
	payload := generateRequest{
		Model:  req.Model,
		Prompt: prompt,
		Stream: false,
		Options: options{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}

	var resp generateResponse
	target := upstream.JoinURL(req.BaseURL, "/api/generate")
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodPost, target, nil, payload, &resp); err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return "", upstream.ErrEmptyResponse
	}
	return text, nil
}

// ListModels returns the locally pulled model names from /api/tags.
func (p *Provider) ListModels(ctx context.Context, endpoint upstream.Endpoint) ([]string, error) {
	var resp tagsResponse
	target := upstream.JoinURL(endpoint.BaseURL, "/api/tags")
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodGet, target, nil, nil, &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	return names, nil
}
