package handlers

import (
	"context"
	"net/http"

	"github.com/pysugar/code-facts/internal/db/models"
	"github.com/pysugar/code-facts/internal/gateway"
)

// Gateway is the provider gateway API the handlers need.
type Gateway interface {
	GenerateFact(ctx context.Context) (*models.GeneratedFact, error)
	ListModels(ctx context.Context, providerID, apiKey, baseURL string) (gateway.ModelList, error)
	TestConnection(ctx context.Context, providerID, apiKey, baseURL, model string) (gateway.ConnectionResult, error)
}

// GenerateHandler generates a fact with the configured provider and logs it.
// POST /api/generate
func GenerateHandler(gw Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fact, err := gw.GenerateFact(r.Context())
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, fact)
	}
}
