// Package resend implementa un cliente mínimo del API de Resend para el
// envío de correos de campaña.
package resend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBase = "https://api.resend.com"

// Client cliente HTTP del API de Resend.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con la API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured indica si hay API key configurada.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// SendEmailRequest payload de POST /emails.
type SendEmailRequest struct {
	From    string   `json:"from"` // "Nombre <correo@dominio>"
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendEmail envía un correo y devuelve el ID asignado por Resend.
func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/emails", strings.NewReader(string(data)))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("resend %d: %s", resp.StatusCode, string(body))
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parsear respuesta resend: %w", err)
	}
	return out.ID, nil
}
