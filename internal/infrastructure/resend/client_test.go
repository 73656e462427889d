package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient("re_clave_de_prueba")
	c.baseURL = server.URL
	return c
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewClient("").IsConfigured())
	assert.True(t, NewClient("re_x").IsConfigured())
}

func TestSendEmail_Exitoso(t *testing.T) {
	var got SendEmailRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_clave_de_prueba", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"email-abc-123"}`))
	})

	id, err := c.SendEmail(context.Background(), SendEmailRequest{
		From:    "Heladería Memimo <promos@memimo.pe>",
		To:      []string{"lucia@example.com"},
		Subject: "🍦 Semana del chocolate - Heladería Memimo",
		HTML:    "<p>hola</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "email-abc-123", id)

	assert.Equal(t, []string{"lucia@example.com"}, got.To)
	assert.Equal(t, "Heladería Memimo <promos@memimo.pe>", got.From)
}

func TestSendEmail_ErrorDelAPI(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Invalid from address"}`))
	})

	_, err := c.SendEmail(context.Background(), SendEmailRequest{To: []string{"x@example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "Invalid from address")
}
