// Package gateway turns "generate a fact", "list models" and "test a
// connection" into the right upstream call for the configured provider and
// classifies whatever goes wrong.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/pysugar/code-facts/internal/db"
	"github.com/pysugar/code-facts/internal/db/models"
	"github.com/pysugar/code-facts/internal/facts"
	"github.com/pysugar/code-facts/internal/logging"
	"github.com/pysugar/code-facts/internal/providers/catalog"
	"github.com/pysugar/code-facts/internal/upstream"
	"github.com/pysugar/code-facts/internal/upstream/anthropic"
	"github.com/pysugar/code-facts/internal/upstream/gemini"
	"github.com/pysugar/code-facts/internal/upstream/ollama"
	"github.com/pysugar/code-facts/internal/upstream/openaicompat"
)

// SettingsReader is the part of the settings store the gateway reads.
type SettingsReader interface {
	GetString(ctx context.Context, key string) (string, error)
}

// FactRecorder is the part of the fact log the gateway writes.
type FactRecorder interface {
	AppendFact(ctx context.Context, text, icon, provider string) (models.GeneratedFact, error)
}

// ModelList is the result of a model listing. Fallback is set when the live
// call could not be used and Models is the provider's static list instead.
type ModelList struct {
	Provider string   `json:"provider"`
	Models   []string `json:"models"`
	Fallback bool     `json:"fallback"`
	Reason   string   `json:"reason,omitempty"`
}

// ConnectionResult reports a credentials check.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Preview string `json:"preview,omitempty"`
}

// Gateway dispatches to one protocol variant per provider kind.
type Gateway struct {
	settings   SettingsReader
	factLog    FactRecorder
	httpClient *http.Client
	variants   map[string]upstream.Provider
}

type Option func(*Gateway)

// WithHTTPClient sets the client used by the default variants.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithVariant replaces the variant serving kind.
func WithVariant(kind string, p upstream.Provider) Option {
	return func(g *Gateway) { g.variants[kind] = p }
}

func New(settings SettingsReader, factLog FactRecorder, opts ...Option) *Gateway {
	g := &Gateway{
		settings:   settings,
		factLog:    factLog,
		httpClient: &http.Client{},
		variants:   make(map[string]upstream.Provider),
	}
	for _, opt := range opts {
		opt(g)
	}

	defaults := map[string]func(*http.Client) upstream.Provider{
		catalog.KindOpenAI:    func(c *http.Client) upstream.Provider { return openaicompat.NewProvider(c) },
		catalog.KindAnthropic: func(c *http.Client) upstream.Provider { return anthropic.NewProvider(c) },
		catalog.KindGemini:    func(c *http.Client) upstream.Provider { return gemini.NewProvider(c) },
		catalog.KindOllama:    func(c *http.Client) upstream.Provider { return ollama.NewProvider(c) },
	}
	for kind, build := range defaults {
		if _, ok := g.variants[kind]; !ok {
			g.variants[kind] = build(g.httpClient)
		}
	}
	return g
}

// selection is a validated provider choice ready to dispatch.
type selection struct {
	info    catalog.ProviderInfo
	variant upstream.Provider
	req     upstream.Request
}

// Generate produces one fact with the provider chosen in settings.
func (g *Gateway) Generate(ctx context.Context) (string, error) {
	sel, err := g.loadSelection(ctx)
	if err != nil {
		return "", err
	}
	return g.dispatch(ctx, sel)
}

// GenerateFact generates a fact, tags it with an icon and appends it to the
// fact log.
func (g *Gateway) GenerateFact(ctx context.Context) (*models.GeneratedFact, error) {
	sel, err := g.loadSelection(ctx)
	if err != nil {
		return nil, err
	}
	text, err := g.dispatch(ctx, sel)
	if err != nil {
		return nil, err
	}

	fact, err := g.factLog.AppendFact(ctx, text, facts.RandomIcon(), sel.info.ID)
	if err != nil {
		log.Printf("%s❌ Failed to log fact from %s: %v", logging.Tag(ctx), sel.info.ID, err)
		return nil, &Error{
			Kind:     ErrStorageUnavailable,
			Provider: sel.info.ID,
			Message:  "Failed to save generated fact",
			Err:      err,
		}
	}
	log.Printf("%s📝 Logged fact #%d from %s", logging.Tag(ctx), fact.ID, sel.info.ID)
	return &fact, nil
}

// ListModels asks the provider for its models. Failures fall back to the
// static list with Fallback set; only an unknown provider is an error.
func (g *Gateway) ListModels(ctx context.Context, providerID, apiKey, baseURL string) (ModelList, error) {
	info, variant, err := g.lookup(providerID)
	if err != nil {
		return ModelList{}, err
	}

	fallback := func(reason string) ModelList {
		log.Printf("%s⚠️  Using static model list for %s: %s", logging.Tag(ctx), info.ID, reason)
		return ModelList{Provider: info.ID, Models: info.Models, Fallback: true, Reason: reason}
	}

	apiKey = strings.TrimSpace(apiKey)
	if info.RequiresAPIKey && apiKey == "" {
		return fallback("API key required for " + info.Name), nil
	}
	endpoint := upstream.Endpoint{BaseURL: effectiveBaseURL(info, baseURL), APIKey: apiKey}

	callCtx, cancel := context.WithTimeout(ctx, info.Timeout)
	defer cancel()

	names, err := variant.ListModels(callCtx, endpoint)
	if err != nil {
		return fallback(classify(info, err).Error()), nil
	}
	names = filterModels(names, info.ModelFilter)
	if len(names) == 0 {
		return fallback("provider returned no models"), nil
	}
	return ModelList{Provider: info.ID, Models: names}, nil
}

// TestConnection makes a full generate call with the given credentials. It
// never writes to the fact log. Only an unknown provider is returned as an
// error; every other failure is reported in the result.
func (g *Gateway) TestConnection(ctx context.Context, providerID, apiKey, baseURL, model string) (ConnectionResult, error) {
	info, variant, err := g.lookup(providerID)
	if err != nil {
		return ConnectionResult{}, err
	}

	sel, err := prepare(info, variant, apiKey, baseURL, model)
	if err != nil {
		return ConnectionResult{Success: false, Message: err.Error()}, nil
	}
	text, err := g.dispatch(ctx, sel)
	if err != nil {
		return ConnectionResult{Success: false, Message: err.Error()}, nil
	}
	return ConnectionResult{
		Success: true,
		Message: "Connection successful!",
		Preview: text,
	}, nil
}

func (g *Gateway) loadSelection(ctx context.Context) (selection, error) {
	get := func(key string) (string, error) {
		v, err := g.settings.GetString(ctx, key)
		if err != nil {
			return "", &Error{Kind: ErrStorageUnavailable, Message: "Failed to read settings", Err: err}
		}
		return strings.TrimSpace(v), nil
	}

	providerID, err := get(db.KeySelectedProvider)
	if err != nil {
		return selection{}, err
	}
	if providerID == "" {
		return selection{}, &Error{
			Kind:    ErrConfigurationMissing,
			Message: "No LLM provider configured. Please configure a provider in settings.",
		}
	}

	info, variant, err := g.lookup(providerID)
	if err != nil {
		return selection{}, err
	}

	apiKey, err := get(db.KeyAPIKey)
	if err != nil {
		return selection{}, err
	}
	baseURL, err := get(db.KeyBaseURL)
	if err != nil {
		return selection{}, err
	}
	model, err := get(db.KeySelectedModel)
	if err != nil {
		return selection{}, err
	}
	return prepare(info, variant, apiKey, baseURL, model)
}

func (g *Gateway) lookup(providerID string) (catalog.ProviderInfo, upstream.Provider, error) {
	info, ok := catalog.GetProvider(providerID)
	if !ok {
		return catalog.ProviderInfo{}, nil, &Error{
			Kind:     ErrUnknownProvider,
			Provider: providerID,
			Message:  "Unknown provider: " + providerID,
		}
	}
	variant, ok := g.variants[info.Kind]
	if !ok {
		return catalog.ProviderInfo{}, nil, &Error{
			Kind:     ErrUnknownProvider,
			Provider: providerID,
			Message:  fmt.Sprintf("No client for provider kind %q", info.Kind),
		}
	}
	return info, variant, nil
}

// prepare checks credentials and builds the request.
func prepare(info catalog.ProviderInfo, variant upstream.Provider, apiKey, baseURL, model string) (selection, error) {
	apiKey = strings.TrimSpace(apiKey)
	baseURL = strings.TrimSpace(baseURL)
	model = strings.TrimSpace(model)

	if info.RequiresAPIKey && apiKey == "" {
		return selection{}, &Error{
			Kind:     ErrCredentialMissing,
			Provider: info.ID,
			Message:  "API key required for " + info.Name,
		}
	}
	if info.RequiresBaseURL && baseURL == "" {
		return selection{}, &Error{
			Kind:     ErrCredentialMissing,
			Provider: info.ID,
			Message:  "Base URL required for " + info.Name,
		}
	}
	if model == "" {
		model = info.DefaultModel
	}

	return selection{
		info:    info,
		variant: variant,
		req: upstream.Request{
			Endpoint:    upstream.Endpoint{BaseURL: effectiveBaseURL(info, baseURL), APIKey: apiKey},
			Model:       model,
			System:      SystemPrompt,
			Prompt:      UserPrompt,
			Temperature: Temperature,
			MaxTokens:   MaxTokens,
		},
	}, nil
}

func (g *Gateway) dispatch(ctx context.Context, sel selection) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, sel.info.Timeout)
	defer cancel()

	log.Printf("%s🔌 Calling %s (model=%s)", logging.Tag(ctx), sel.info.ID, sel.req.Model)
	text, err := sel.variant.Generate(callCtx, sel.req)
	if err != nil {
		classified := classify(sel.info, err)
		log.Printf("%s❌ %s failed: %v", logging.Tag(ctx), sel.info.ID, err)
		return "", classified
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", classify(sel.info, upstream.ErrEmptyResponse)
	}
	log.Printf("%s✅ %s returned %d chars", logging.Tag(ctx), sel.info.ID, len(text))
	return text, nil
}

// classify maps an upstream failure onto the gateway taxonomy.
func classify(info catalog.ProviderInfo, err error) *Error {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Message
		if msg == "" {
			msg = info.Name + " API request failed"
			if info.Kind == catalog.KindOllama {
				msg += ". Make sure Ollama is running."
			}
		}
		return &Error{
			Kind:       ErrProviderError,
			Provider:   info.ID,
			StatusCode: statusErr.StatusCode,
			Message:    msg,
			Err:        err,
		}
	}

	var transportErr *upstream.TransportError
	if errors.As(err, &transportErr) {
		msg := fmt.Sprintf("%s is unreachable: %v", info.Name, transportErr.Err)
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("%s did not respond within %s", info.Name, info.Timeout)
		}
		if info.Kind == catalog.KindOllama {
			msg += ". Make sure Ollama is running."
		}
		return &Error{Kind: ErrTransportError, Provider: info.ID, Message: msg, Err: err}
	}

	if errors.Is(err, upstream.ErrEmptyResponse) {
		return &Error{
			Kind:     ErrProviderError,
			Provider: info.ID,
			Message:  info.Name + " returned no fact text",
			Err:      err,
		}
	}

	return &Error{
		Kind:     ErrProviderError,
		Provider: info.ID,
		Message:  fmt.Sprintf("%s returned an unusable response: %v", info.Name, err),
		Err:      err,
	}
}

// effectiveBaseURL prefers a user supplied URL over the descriptor default.
func effectiveBaseURL(info catalog.ProviderInfo, override string) string {
	if v := strings.TrimRight(strings.TrimSpace(override), "/"); v != "" {
		return v
	}
	return info.DefaultBaseURL
}

func filterModels(names []string, filter string) []string {
	if filter == "" {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), filter) {
			out = append(out, n)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
