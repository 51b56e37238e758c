package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Kinds are the wire protocols a provider can speak. Every descriptor maps to
// exactly one of them.
const (
	KindOpenAI    = "openai"
	KindAnthropic = "anthropic"
	KindGemini    = "gemini"
	KindOllama    = "ollama"

	defaultTimeout = 60 * time.Second
)

var providerIDRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type fileConfig struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// ProviderConfig is one entry of the providers YAML file. Fields left empty
// keep the built-in value when the id matches a built-in provider.
type ProviderConfig struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Kind            string   `yaml:"kind"`
	BaseURL         string   `yaml:"base_url"`
	RequiresAPIKey  *bool    `yaml:"requires_api_key"`
	RequiresBaseURL *bool    `yaml:"requires_base_url"`
	Models          []string `yaml:"models"`
	DefaultModel    string   `yaml:"default_model"`
	ModelFilter     string   `yaml:"model_filter"`
	Timeout         string   `yaml:"timeout"`
}

// ProviderInfo is the read-only descriptor of a provider.
type ProviderInfo struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Kind            string        `json:"kind"`
	RequiresAPIKey  bool          `json:"requires_api_key"`
	RequiresBaseURL bool          `json:"requires_base_url"`
	Models          []string      `json:"models"`
	DefaultModel    string        `json:"default_model"`
	DefaultBaseURL  string        `json:"default_base_url"`
	ModelFilter     string        `json:"model_filter,omitempty"`
	Timeout         time.Duration `json:"-"`
	BaseURLEnv      string        `json:"base_url_env,omitempty"`
}

var (
	stateMu      sync.RWMutex
	initialized  bool
	providerByID map[string]ProviderInfo
	providerList []string
)

// InitFromEnvAndConfig loads the built-in descriptors, merges the optional
// YAML file over them and applies env overrides. A broken file is reported but
// the built-ins stay usable.
func InitFromEnvAndConfig() error {
	providers, err := loadProviders()

	stateMu.Lock()
	defer stateMu.Unlock()

	providerByID = make(map[string]ProviderInfo, len(providers))
	providerList = providerList[:0]
	for _, p := range providers {
		providerByID[p.ID] = p
		providerList = append(providerList, p.ID)
	}
	initialized = true
	return err
}

func ensureInitialized() {
	stateMu.RLock()
	ok := initialized
	stateMu.RUnlock()
	if ok {
		return
	}
	_ = InitFromEnvAndConfig()
}

// ResetForTest resets in-memory state so tests can force reload.
func ResetForTest() {
	stateMu.Lock()
	defer stateMu.Unlock()
	initialized = false
	providerByID = nil
	providerList = nil
}

// GetProviders returns every descriptor in display order.
func GetProviders() []ProviderInfo {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	result := make([]ProviderInfo, 0, len(providerList))
	for _, id := range providerList {
		if info, ok := providerByID[id]; ok {
			result = append(result, cloneInfo(info))
		}
	}
	return result
}

// GetProvider returns the descriptor for id.
func GetProvider(id string) (ProviderInfo, bool) {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	info, ok := providerByID[normalizeProviderID(id)]
	if !ok {
		return ProviderInfo{}, false
	}
	return cloneInfo(info), true
}

// IsKnown reports whether id names a descriptor.
func IsKnown(id string) bool {
	_, ok := GetProvider(id)
	return ok
}

func cloneInfo(info ProviderInfo) ProviderInfo {
	info.Models = append([]string(nil), info.Models...)
	return info
}

func loadProviders() ([]ProviderInfo, error) {
	configs := defaultProviders()
	fileProviders, loadErr := loadConfigProviders()
	configs = mergeConfigs(configs, fileProviders)

	providers := make([]ProviderInfo, 0, len(configs))
	for _, cfg := range configs {
		info, ok := normalizeConfig(cfg)
		if !ok {
			continue
		}
		providers = append(providers, info)
	}
	return providers, loadErr
}

// mergeConfigs overlays file entries on the built-ins by id. Unknown ids are
// appended in file order.
func mergeConfigs(base, overrides []ProviderConfig) []ProviderConfig {
	result := append([]ProviderConfig(nil), base...)
	index := make(map[string]int, len(result))
	for i, cfg := range result {
		index[normalizeProviderID(cfg.ID)] = i
	}

	for _, o := range overrides {
		id := normalizeProviderID(o.ID)
		i, exists := index[id]
		if !exists {
			index[id] = len(result)
			result = append(result, o)
			continue
		}
		merged := result[i]
		if o.Name != "" {
			merged.Name = o.Name
		}
		if o.Kind != "" {
			merged.Kind = o.Kind
		}
		if o.BaseURL != "" {
			merged.BaseURL = o.BaseURL
		}
		if o.RequiresAPIKey != nil {
			merged.RequiresAPIKey = o.RequiresAPIKey
		}
		if o.RequiresBaseURL != nil {
			merged.RequiresBaseURL = o.RequiresBaseURL
		}
		if len(o.Models) > 0 {
			merged.Models = o.Models
		}
		if o.DefaultModel != "" {
			merged.DefaultModel = o.DefaultModel
		}
		if o.ModelFilter != "" {
			merged.ModelFilter = o.ModelFilter
		}
		if o.Timeout != "" {
			merged.Timeout = o.Timeout
		}
		result[i] = merged
	}
	return result
}

func loadConfigProviders() ([]ProviderConfig, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file %q: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse providers file %q: %w", path, err)
	}

	return cfg.Providers, nil
}

func resolveConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("FACTS_PROVIDERS_FILE")); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	candidates := []string{
		"config/providers.yaml",
		"/etc/code-facts/providers.yaml",
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "code-facts", "providers.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func normalizeConfig(cfg ProviderConfig) (ProviderInfo, bool) {
	id := normalizeProviderID(cfg.ID)
	if !providerIDRegexp.MatchString(id) {
		return ProviderInfo{}, false
	}

	kind := strings.TrimSpace(strings.ToLower(cfg.Kind))
	switch kind {
	case KindOpenAI, KindAnthropic, KindGemini, KindOllama:
	default:
		return ProviderInfo{}, false
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = id
	}

	baseURLEnv := providerEnvName(id, "BASE_URL")
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if v := strings.TrimSpace(os.Getenv(baseURLEnv)); v != "" {
		baseURL = v
	}

	timeout := defaultTimeout
	if raw := strings.TrimSpace(cfg.Timeout); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv(providerEnvName(id, "TIMEOUT"))); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	models := make([]string, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	defaultModel := strings.TrimSpace(cfg.DefaultModel)
	if defaultModel == "" && len(models) > 0 {
		defaultModel = models[0]
	}

	// Remote kinds need a key unless the entry says otherwise.
	requiresAPIKey := kind != KindOllama
	if cfg.RequiresAPIKey != nil {
		requiresAPIKey = *cfg.RequiresAPIKey
	}
	requiresBaseURL := false
	if cfg.RequiresBaseURL != nil {
		requiresBaseURL = *cfg.RequiresBaseURL
	}

	return ProviderInfo{
		ID:              id,
		Name:            name,
		Kind:            kind,
		RequiresAPIKey:  requiresAPIKey,
		RequiresBaseURL: requiresBaseURL,
		Models:          models,
		DefaultModel:    defaultModel,
		DefaultBaseURL:  strings.TrimRight(baseURL, "/"),
		ModelFilter:     strings.TrimSpace(strings.ToLower(cfg.ModelFilter)),
		Timeout:         timeout,
		BaseURLEnv:      baseURLEnv,
	}, true
}

func normalizeProviderID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func providerEnvName(id, suffix string) string {
	upper := strings.ToUpper(id)
	replacer := strings.NewReplacer("-", "_", ".", "_", "/", "_", " ", "_")
	upper = replacer.Replace(upper)
	return fmt.Sprintf("FACTS_%s_%s", upper, suffix)
}

func defaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			ID:           "openai",
			Name:         "OpenAI",
			Kind:         KindOpenAI,
			BaseURL:      "https://api.openai.com",
			Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
			DefaultModel: "gpt-4o-mini",
			ModelFilter:  "gpt",
		},
		{
			ID:           "anthropic",
			Name:         "Anthropic Claude",
			Kind:         KindAnthropic,
			BaseURL:      "https://api.anthropic.com",
			Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022", "claude-3-opus-20240229"},
			DefaultModel: "claude-3-5-haiku-20241022",
		},
		{
			ID:           "google",
			Name:         "Google Gemini",
			Kind:         KindGemini,
			BaseURL:      "https://generativelanguage.googleapis.com",
			Models:       []string{"gemini-2.0-flash-exp", "gemini-1.5-pro", "gemini-1.5-flash"},
			DefaultModel: "gemini-2.0-flash-exp",
			ModelFilter:  "gemini",
		},
		{
			ID:           "mistral",
			Name:         "Mistral AI",
			Kind:         KindOpenAI,
			BaseURL:      "https://api.mistral.ai",
			Models:       []string{"mistral-large-latest", "mistral-medium-latest", "mistral-small-latest"},
			DefaultModel: "mistral-small-latest",
		},
		{
			ID:              "ollama",
			Name:            "Ollama (Local)",
			Kind:            KindOllama,
			BaseURL:         "http://localhost:11434",
			RequiresAPIKey:  boolPtr(false),
			RequiresBaseURL: boolPtr(true),
			Models:          []string{"llama3.2", "llama3.1", "mistral", "phi3", "gemma2"},
			DefaultModel:    "llama3.2",
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}
