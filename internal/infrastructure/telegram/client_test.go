package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient apunta el cliente a un Bot API falso.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient("123:token-de-prueba")
	c.baseURL = server.URL
	return c
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewClient("").IsConfigured())
	assert.True(t, NewClient("123:abc").IsConfigured())
}

func TestGetMe_Exitoso(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:token-de-prueba/getMe", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"ok":true,"result":{"id":42,"username":"memimo_bot"}}`))
	})

	info, err := c.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.ID)
	assert.Equal(t, "memimo_bot", info.Username)
}

func TestGetMe_TokenInvalido(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	})

	_, err := c.GetMe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestSendMessage_PayloadHTML(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:token-de-prueba/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ok":true,"result":{}}`))
	})

	err := c.SendMessage(context.Background(), "-100200300", "<b>¡Hola!</b>")
	require.NoError(t, err)

	assert.Equal(t, "-100200300", got["chat_id"])
	assert.Equal(t, "<b>¡Hola!</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"], "los mensajes de campaña usan formato HTML")
}

func TestSendMessage_ErrorDelAPI(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	})

	err := c.SendMessage(context.Background(), "999", "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
