package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookClient определяет интерфейс для отправки сообщений в Slack.
// Это позволяет легко создавать моки для тестирования.
type WebhookClient interface {
	Post(ctx context.Context, msg Message) error
}

// Client инкапсулирует работу со Slack incoming webhook.
type Client struct {
	webhookURL string
	client     *http.Client
}

// Убеждаемся, что Client реализует интерфейс WebhookClient.
var _ WebhookClient = (*Client)(nil)

// NewClient создаёт клиента. webhookURL обязателен.
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Post отправляет одно сообщение. Успех = любой 2xx-статус.
// Ретраев нет: неудачная отправка будет повторена следующим запуском,
// так как id твита не фиксируется в state.
func (c *Client) Post(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Slack возвращает короткое текстовое описание ошибки в теле
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("slack webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
