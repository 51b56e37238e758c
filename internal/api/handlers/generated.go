package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pysugar/code-facts/internal/db/models"
)

// FactLogStore is the generated-fact log API the handlers need.
type FactLogStore interface {
	ListAll(ctx context.Context) ([]models.GeneratedFact, error)
	ListByProvider(ctx context.Context, provider string) ([]models.GeneratedFact, error)
	ListSince(ctx context.Context, sinceMillis int64) ([]models.GeneratedFact, error)
	DeleteByID(ctx context.Context, id uint) error
	ClearAll(ctx context.Context) error
}

// GeneratedFactsHandler lists logged facts, optionally filtered by provider
// or by a since timestamp in epoch milliseconds. Both filters combine.
// GET /api/generated?provider=&since=
func GeneratedFactsHandler(store FactLogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := r.URL.Query().Get("provider")
		sinceRaw := r.URL.Query().Get("since")

		var (
			list []models.GeneratedFact
			err  error
		)
		switch {
		case sinceRaw != "":
			since, parseErr := strconv.ParseInt(sinceRaw, 10, 64)
			if parseErr != nil {
				writeError(w, http.StatusBadRequest, "since must be epoch milliseconds", "invalid_request")
				return
			}
			list, err = store.ListSince(r.Context(), since)
			if err == nil && provider != "" {
				list = filterProvider(list, provider)
			}
		case provider != "":
			list, err = store.ListByProvider(r.Context(), provider)
		default:
			list, err = store.ListAll(r.Context())
		}
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"facts": list,
			"count": len(list),
		})
	}
}

// DeleteGeneratedFactHandler removes one logged fact. Unknown ids succeed.
// DELETE /api/generated/{id}
func DeleteGeneratedFactHandler(store FactLogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid fact ID", "invalid_request")
			return
		}
		if err := store.DeleteByID(r.Context(), uint(id)); err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ClearGeneratedFactsHandler empties the log.
// DELETE /api/generated
func ClearGeneratedFactsHandler(store FactLogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearAll(r.Context()); err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func filterProvider(list []models.GeneratedFact, provider string) []models.GeneratedFact {
	out := list[:0]
	for _, f := range list {
		if f.Provider == provider {
			out = append(out, f)
		}
	}
	return out
}
