// Package gemini speaks the Google AI Studio generateContent API. The API key
// travels in the "key" query parameter.
package gemini

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/pysugar/code-facts/internal/upstream"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type modelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
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

// Generate posts to /v1beta/models/{model}:generateContent. Gemini has no
// system role on this endpoint, so the system prompt is prepended to the user
// text.
func (p *Provider) Generate(ctx context.Context, req upstream.Request) (string, error) {
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	path := "/v1beta/models/" + url.PathEscape(strings.TrimPrefix(req.Model, "models/")) + ":generateContent"
	var resp generateResponse
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodPost, withKey(req.BaseURL, path, req.APIKey), nil, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", upstream.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", upstream.ErrEmptyResponse
	}
	return text, nil
}

// ListModels returns the models that support generateContent, without the
// "models/" prefix.
func (p *Provider) ListModels(ctx context.Context, endpoint upstream.Endpoint) ([]string, error) {
	var resp modelsResponse
	if err := upstream.DoJSON(ctx, p.httpClient, http.MethodGet, withKey(endpoint.BaseURL, "/v1beta/models", endpoint.APIKey), nil, nil, &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		if !slices.Contains(m.SupportedGenerationMethods, "generateContent") {
			continue
		}
		if name := strings.TrimPrefix(m.Name, "models/"); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func withKey(baseURL, path, apiKey string) string {
	query := url.Values{}
	query.Set("key", strings.TrimSpace(apiKey))
	return upstream.JoinURL(baseURL, path) + "?" + query.Encode()
}
