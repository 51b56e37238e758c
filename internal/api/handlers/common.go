// Package handlers implements the JSON API served by factsd.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/pysugar/code-facts/internal/gateway"
	"github.com/pysugar/code-facts/internal/logging"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to write response: %v", err)
	}
}

// writeError writes the {"error":{"message","type"}} envelope.
func writeError(w http.ResponseWriter, status int, message, errType string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"message": message,
			"type":    errType,
		},
	})
}

// writeGatewayError maps a failure to its HTTP status. Classified gateway
// messages are passed through verbatim; anything else is logged and replaced
// with a generic message.
func writeGatewayError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s❌ %s %s: %v", logging.Tag(r.Context()), r.Method, r.URL.Path, err)
	}

	message := err.Error()
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		switch {
		case errors.Is(err, gateway.ErrStorageUnavailable):
			message = "Storage unavailable"
		case status >= http.StatusInternalServerError:
			message = "Internal server error"
		}
	}
	writeError(w, status, message, gateway.KindName(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gateway.ErrConfigurationMissing),
		errors.Is(err, gateway.ErrCredentialMissing),
		errors.Is(err, gateway.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrProviderError),
		errors.Is(err, gateway.ErrTransportError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
