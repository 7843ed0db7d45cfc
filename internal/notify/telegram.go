// Package notify pushes messages to the team's Telegram bot.
package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIBase is the production Telegram Bot API host.
const DefaultAPIBase = "https://api.telegram.org"

// RejectedError is a message the Telegram API refused (bad token, unknown
// chat, malformed markup). It is a caller problem, not a transport failure.
type RejectedError struct {
	Description string
}

func (e *RejectedError) Error() string {
	return e.Description
}

// Client sends messages through the Telegram sendMessage endpoint.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// NewClient builds a Telegram client. An empty baseURL selects the production
// API host; tests point it at a local fake.
func NewClient(baseURL, token, chatID string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts a Markdown-formatted message to the configured chat.
func (c *Client) Send(text string) error {
	if text == "" {
		return errors.New("message must not be empty")
	}

	data, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read send response: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode send response: status %d: %s", resp.StatusCode, string(body))
	}
	if !result.OK {
		return &RejectedError{Description: friendlyDescription(result.Description)}
	}
	return nil
}

// friendlyDescription rewrites the two most common Telegram rejections into
// messages the settings page can show directly.
func friendlyDescription(desc string) string {
	switch {
	case desc == "Unauthorized":
		return "Invalid bot token. Please check your Telegram Bot Token."
	case strings.Contains(desc, "chat not found"):
		return "Invalid Chat ID. Make sure your bot is added to the chat/group."
	case desc == "":
		return "Unknown error"
	}
	return desc
}
