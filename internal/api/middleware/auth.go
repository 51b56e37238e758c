package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminAuth requires HTTP basic auth with the given password. An empty
// password disables the check. The username is ignored.
func AdminAuth(password string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if password == "" {
				next.ServeHTTP(w, r)
				return
			}

			_, pass, ok := r.BasicAuth()
			if ok && subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="Code Facts Admin"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": {"message": "Invalid admin password", "type": "authentication_error"}}`))
		})
	}
}
