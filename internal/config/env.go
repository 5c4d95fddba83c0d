package config

import (
	"fmt"
	"os"
)

// EnvConfig содержит токены и другие переменные окружения.
type EnvConfig struct {
	TwitterBearerToken string
	TwitterAPIKey      string
	TwitterAPISecret   string
	SlackWebhookURL    string
	GeminiAPIKey       string
	SkipGemini         bool // Пропустить Gemini-скрининг (только keyword-фильтры)
	DryRun             bool // Прогон без отправки в Slack и без записи state
}

// LoadEnvConfig читает переменные окружения и возвращает конфигурацию.
// Возвращает ошибку, если обязательные переменные отсутствуют или пустые.
func LoadEnvConfig() (*EnvConfig, error) {
	bearer := os.Getenv("TWITTER_BEARER_TOKEN")
	if bearer == "" {
		return nil, fmt.Errorf("TWITTER_BEARER_TOKEN environment variable is required")
	}

	dryRun := os.Getenv("DRY_RUN") == "1"

	webhook := os.Getenv("SLACK_WEBHOOK_URL")
	if !dryRun && webhook == "" {
		return nil, fmt.Errorf("SLACK_WEBHOOK_URL environment variable is required (or set DRY_RUN=1)")
	}

	skipGemini := os.Getenv("SKIP_GEMINI") == "1"

	// GEMINI_API_KEY обязателен только если скрининг не пропускается
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if !skipGemini && geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required (or set SKIP_GEMINI=1)")
	}

	return &EnvConfig{
		TwitterBearerToken: bearer,
		TwitterAPIKey:      os.Getenv("TWITTER_API_KEY"),
		TwitterAPISecret:   os.Getenv("TWITTER_API_SECRET"),
		SlackWebhookURL:    webhook,
		GeminiAPIKey:       geminiKey,
		SkipGemini:         skipGemini,
		DryRun:             dryRun,
	}, nil
}
