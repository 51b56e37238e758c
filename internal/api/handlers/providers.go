package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pysugar/code-facts/internal/providers/catalog"
)

// ProvidersHandler lists the provider descriptors.
// GET /api/providers
func ProvidersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers := catalog.GetProviders()
		writeJSON(w, http.StatusOK, map[string]any{
			"providers": providers,
			"count":     len(providers),
		})
	}
}

// ProviderModelsHandler lists a provider's models with caller supplied
// credentials.
// POST /api/providers/{id}/models
func ProviderModelsHandler(gw Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			APIKey  string `json:"api_key"`
			BaseURL string `json:"base_url"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_request")
			return
		}

		list, err := gw.ListModels(r.Context(), providerParam(r), body.APIKey, body.BaseURL)
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// TestProviderHandler runs a connection test. A failed test is still a 200
// with success=false.
// POST /api/providers/{id}/test
func TestProviderHandler(gw Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			APIKey  string `json:"api_key"`
			BaseURL string `json:"base_url"`
			Model   string `json:"model"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_request")
			return
		}

		result, err := gw.TestConnection(r.Context(), providerParam(r), body.APIKey, body.BaseURL, body.Model)
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func providerParam(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, "id")))
}
