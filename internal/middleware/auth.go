package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthMiddleware validates the Bearer token for write requests
type AuthMiddleware struct {
	authToken string
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new authentication middleware. An empty token
// disables authentication.
func NewAuthMiddleware(authToken string, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		authToken: authToken,
		logger:    logger,
	}
}

// Enabled reports whether a token is required
func (m *AuthMiddleware) Enabled() bool {
	return m.authToken != ""
}

// Authenticate validates the Bearer token in the request
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// If no auth token is configured, skip authentication
		if m.authToken == "" {
			next(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.deny(w, r, "Unauthorized: Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.deny(w, r, "Unauthorized: Invalid Authorization header format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.authToken)) != 1 {
			m.deny(w, r, "Unauthorized: Invalid token")
			return
		}

		next(w, r)
	}
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, r *http.Request, msg string) {
	m.logger.Warn("Rejected request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("reason", msg))
	http.Error(w, msg, http.StatusUnauthorized)
}
