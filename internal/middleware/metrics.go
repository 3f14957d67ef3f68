package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// MetricsAuthMiddleware provides basic authentication for the metrics endpoint.
// The password is stored as a bcrypt hash.
type MetricsAuthMiddleware struct {
	username     string
	passwordHash []byte
	enabled      bool
}

// NewMetricsAuthMiddleware creates a new metrics auth middleware.
// If both username and hash are empty, authentication is disabled.
func NewMetricsAuthMiddleware(username, passwordHash string) *MetricsAuthMiddleware {
	return &MetricsAuthMiddleware{
		username:     username,
		passwordHash: []byte(passwordHash),
		enabled:      username != "" || passwordHash != "",
	}
}

// Handler returns middleware that requires basic authentication.
func (m *MetricsAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If auth is disabled, pass through
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			m.unauthorized(w)
			return
		}

		// Both checks always run so timing does not reveal which one failed
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.username)) == 1
		passMatch := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(pass)) == nil

		if !userMatch || !passMatch {
			m.unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// unauthorized sends a 401 response with WWW-Authenticate header.
func (m *MetricsAuthMiddleware) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
