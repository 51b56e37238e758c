package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminAuth_DisabledWithoutPassword(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminAuth("")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/facts", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestAdminAuth_RejectsMissingOrWrongPassword(t *testing.T) {
	for name, setAuth := range map[string]func(*http.Request){
		"missing": func(*http.Request) {},
		"wrong":   func(r *http.Request) { r.SetBasicAuth("admin", "nope") },
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
			setAuth(req)
			rec := httptest.NewRecorder()
			AdminAuth("s3cret")(okHandler()).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Fatal("expected WWW-Authenticate challenge")
			}
			if !strings.Contains(rec.Body.String(), "authentication_error") {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}
}

func TestAdminAuth_AcceptsPassword(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.SetBasicAuth("anyone", "s3cret")
	rec := httptest.NewRecorder()
	AdminAuth("s3cret")(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
