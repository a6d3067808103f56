package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"commission-backend/internal/config"
)

// =====================================================
// TELEGRAM BOT API CLIENT
// =====================================================

type Client struct {
	config     *config.TelegramConfig
	httpClient *http.Client
}

// NewClient creates a new Telegram Bot API client
func NewClient(cfg *config.TelegramConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether telegram delivery is configured
func (c *Client) Enabled() bool {
	return c.config.BotToken != "" && c.config.ChatID != ""
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts a Markdown message to the configured chat.
// Callers treat failures as best-effort: log, never surface to end users.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.Enabled() {
		return fmt.Errorf("telegram is not configured")
	}

	// Step 1: Build request body
	requestBody := map[string]interface{}{
		"chat_id":    c.config.ChatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	// Step 2: Call sendMessage endpoint
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.config.APIURL, c.config.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	// Step 3: Parse response
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
