package gemini

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient определяет интерфейс для работы с Gemini API.
// Это позволяет легко создавать моки для тестирования.
type GeminiClient interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

// Client инкапсулирует работу с Gemini API через официальный SDK.
type Client struct {
	client *genai.Client
}

// Убеждаемся, что Client реализует интерфейс GeminiClient.
var _ GeminiClient = (*Client)(nil)

// NewClient создаёт новый клиент для работы с Gemini API.
// Читает GEMINI_API_KEY из переменной окружения и явно передаёт его в SDK.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	config := &genai.ClientConfig{
		APIKey: apiKey,
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client: client,
	}, nil
}

// GenerateText отправляет запрос к Gemini API и возвращает текстовый ответ.
// Временные ошибки (429 rate limit, 5xx) ретраятся с задержкой;
// исчерпание дневной квоты (RPD) возвращается сразу как терминальная ошибка.
func (c *Client) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	const maxRetries = 3
	const rateLimitDelay = time.Minute
	const temporaryDelay = 15 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := temporaryDelay * time.Duration(attempt)
			if isRateLimitError(lastErr.Error()) {
				delay = rateLimitDelay
			}
			log.Printf("Retrying Gemini API request (attempt %d/%d) after %v...", attempt+1, maxRetries, delay)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.client.Models.GenerateContent(
			ctx,
			model,
			genai.Text(prompt),
			nil,
		)
		if err == nil {
			text, textErr := result.Text()
			if textErr != nil {
				return "", fmt.Errorf("get text from result: %w", textErr)
			}
			return text, nil
		}

		lastErr = err
		errStr := err.Error()

		// Дневная квота исчерпана: ждать бессмысленно, ретраи прекращаем
		if isQuotaExceededError(errStr) {
			log.Printf("CRITICAL: Gemini API quota exceeded - stopping retries: %v", err)
			return "", fmt.Errorf("gemini API quota exceeded: %w", err)
		}

		if isRateLimitError(errStr) || isTemporaryError(errStr) {
			continue
		}

		// Остальные ошибки не ретраим
		return "", fmt.Errorf("generate content: %w", err)
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isQuotaExceededError проверяет, является ли ошибка исчерпанием дневной квоты (RPD).
func isQuotaExceededError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "daily limit") ||
		strings.Contains(errLower, "generate_content_free_tier_requests")
}

// isRateLimitError проверяет, является ли ошибка RPM/TPM rate limit-ом.
func isRateLimitError(errStr string) bool {
	if isQuotaExceededError(errStr) {
		return false
	}
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "429") ||
		strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "too many requests") ||
		strings.Contains(errLower, "resource exhausted")
}

// isTemporaryError проверяет, является ли ошибка временной (5xx).
func isTemporaryError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "500") ||
		strings.Contains(errLower, "502") ||
		strings.Contains(errLower, "503") ||
		strings.Contains(errLower, "504") ||
		strings.Contains(errLower, "internal server error") ||
		strings.Contains(errLower, "service unavailable") ||
		strings.Contains(errLower, "overloaded")
}
