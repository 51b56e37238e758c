package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pysugar/code-facts/internal/facts"
)

// FactsHandler returns the whole built-in catalog.
// GET /api/facts
func FactsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := facts.All()
		writeJSON(w, http.StatusOK, map[string]any{
			"facts": all,
			"count": len(all),
		})
	}
}

// RandomFactHandler returns one catalog fact.
// GET /api/facts/random
func RandomFactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"fact": facts.Random(),
			"icon": facts.RandomIcon(),
		})
	}
}

// FactByIndexHandler returns the catalog fact at a zero-based index.
// GET /api/facts/{index}
func FactByIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid fact index", "invalid_request")
			return
		}
		fact, ok := facts.ByIndex(index)
		if !ok {
			writeError(w, http.StatusNotFound, "Fact not found", "not_found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"index": index,
			"fact":  fact,
		})
	}
}
