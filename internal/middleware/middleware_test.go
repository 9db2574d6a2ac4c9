package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware("s3cret", zaptest.NewLogger(t))
	assert.True(t, m.Enabled())
	h := m.Authenticate(ok)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer s3cret", http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/feedback", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthenticate_Disabled(t *testing.T) {
	m := NewAuthMiddleware("", nil)
	assert.False(t, m.Enabled())

	rec := httptest.NewRecorder()
	m.Authenticate(ok)(rec, httptest.NewRequest(http.MethodPost, "/feedback", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLogging_PassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	Logging(zaptest.NewLogger(t), http.HandlerFunc(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
