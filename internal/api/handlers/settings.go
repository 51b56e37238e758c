package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SettingsStore is the settings API the handlers need.
type SettingsStore interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	GetAll(ctx context.Context) (map[string]any, error)
}

// SettingsHandler returns every stored setting.
// GET /api/settings
func SettingsHandler(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.GetAll(r.Context())
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": all})
	}
}

// GetSettingHandler returns a single setting.
// GET /api/settings/{key}
func GetSettingHandler(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		value, ok, err := store.Get(r.Context(), key)
		if err != nil {
			writeGatewayError(w, r, err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "Setting not found: "+key, "not_found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
	}
}

// PutSettingHandler stores a setting from {"value": any}.
// PUT /api/settings/{key}
func PutSettingHandler(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")

		var body struct {
			Value *any `json:"value"`
		}
		if err := decodeBody(r, &body); err != nil || body.Value == nil {
			writeError(w, http.StatusBadRequest, `Request body must be {"value": ...}`, "invalid_request")
			return
		}

		if err := store.Set(r.Context(), key, *body.Value); err != nil {
			writeGatewayError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": *body.Value})
	}
}
