// Package telegram sends formatted messages to a channel through the Bot API.
// One endpoint is used: sendPhoto, with an HTML-mode caption. Failures are
// reported to the caller and never retried here; the pipeline simply skips
// persisting the item so a later run picks it up again.
package telegram

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"animerelay/pkg/config"
	apperrors "animerelay/pkg/errors"
	"animerelay/pkg/logger"
	"animerelay/pkg/models"
)

// parseMode is the markup flag sent with every caption
const parseMode = "HTML"

// Client is a Telegram Bot API client bound to one bot and one channel
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	channelID  string
	logger     logger.Logger
}

// NewClient creates a client from the Telegram configuration
func NewClient(cfg *config.TelegramConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.SendTimeout,
		},
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		token:     cfg.BotToken,
		channelID: cfg.ChannelID,
		logger:    log,
	}
}

// SendPhoto relays one message to the channel: a single photo URL with the
// caption attached.
func (c *Client) SendPhoto(msg models.Message) error {
	data := url.Values{}
	data.Set("chat_id", c.channelID)
	data.Set("photo", msg.PhotoURL)
	data.Set("caption", msg.Caption)
	data.Set("parse_mode", parseMode)

	start := time.Now()
	resp, err := c.httpClient.PostForm(c.sendPhotoURL(), data)
	if err != nil {
		return apperrors.New(apperrors.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := bodyPreview(resp.Body)
		c.logger.ErrorWithFields("sendPhoto rejected", map[string]interface{}{
			"status":       resp.StatusCode,
			"body_preview": preview,
		})
		return apperrors.FromStatusCode(resp.StatusCode, fmt.Sprintf("sendPhoto failed: %s", preview))
	}

	c.logger.DebugWithFields("sendPhoto completed", map[string]interface{}{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	return nil
}

// sendPhotoURL builds the bot-scoped endpoint URL
func (c *Client) sendPhotoURL() string {
	return fmt.Sprintf("%s/bot%s/sendPhoto", c.baseURL, c.token)
}

// bodyPreview reads a short prefix of a response body for error logs
func bodyPreview(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 200))
	if err != nil {
		return ""
	}
	return string(body)
}
