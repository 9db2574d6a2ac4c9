package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/valentinpelus/signal/pkg/types"
)

func TestSend(t *testing.T) {
	var got types.DiscordMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))
	require.True(t, c.IsConfigured())
	require.NoError(t, c.Send(context.Background(), "**Top Themes**"))

	assert.Equal(t, "**Top Themes**", got.Content)
	assert.Equal(t, "Signal", got.Username)
}

func TestSend_Truncates(t *testing.T) {
	var got types.DiscordMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	require.NoError(t, c.Send(context.Background(), strings.Repeat("ü", 2500)))

	assert.Equal(t, MaxContentLength, utf8.RuneCountInString(got.Content))
	assert.True(t, strings.HasSuffix(got.Content, truncationMarker))
}

func TestSend_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unknown Webhook"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Send(context.Background(), "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSend_NotConfigured(t *testing.T) {
	c := NewClient("", nil)
	assert.False(t, c.IsConfigured())
	assert.Error(t, c.Send(context.Background(), "report"))
}
