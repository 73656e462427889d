// Package telegram implementa un cliente mínimo del Bot API de Telegram.
// Solo cubre lo que usa el despacho de campañas: getMe y sendMessage.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBase = "https://api.telegram.org"

// Client cliente HTTP del Bot API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con el token del bot.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured indica si hay token configurado.
func (c *Client) IsConfigured() bool {
	return c.token != ""
}

// BotInfo datos del bot devueltos por getMe.
type BotInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// apiResponse envoltorio estándar de todas las respuestas del Bot API.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// GetMe verifica el token contra el Bot API y devuelve los datos del bot.
func (c *Client) GetMe(ctx context.Context) (*BotInfo, error) {
	body, err := c.doRequest(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}
	var info BotInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parsear getMe: %w", err)
	}
	return &info, nil
}

// SendMessage envía un mensaje HTML al chat indicado.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	payload := map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	_, err := c.doRequest(ctx, "sendMessage", payload)
	return err
}

// doRequest hace el POST a /bot{token}/{method} y desenvuelve la respuesta.
func (c *Client) doRequest(ctx context.Context, method string, body any) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var wrapper apiResponse
	if err := json.Unmarshal(respBody, &wrapper); err != nil {
		return nil, fmt.Errorf("telegram %s: respuesta inválida: %s", method, string(respBody))
	}
	if !wrapper.OK {
		return nil, fmt.Errorf("telegram %s: %s", method, wrapper.Description)
	}
	return wrapper.Result, nil
}
