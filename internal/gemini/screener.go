package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/jobs"
)

// Screener реализует app.Screener: отсеивает через Gemini твиты,
// которые прошли keyword-фильтры, но не являются настоящими вакансиями
// (спам, реклама курсов, engagement-bait).
type Screener struct {
	client    GeminiClient
	model     string
	batchSize int
}

// NewScreener создаёт новый экземпляр скринера.
func NewScreener(client GeminiClient, cfg config.Gemini) *Screener {
	batchSize := cfg.BatchSizeScreening
	if batchSize <= 0 {
		batchSize = 15 // дефолтное значение
	}
	model := cfg.ModelScreening
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Screener{
		client:    client,
		model:     model,
		batchSize: batchSize,
	}
}

// Screen реализует app.Screener.
// Твиты обрабатываются батчами; твит, по которому модель не вернула
// вердикт, сохраняется (fail open: скрининг может отсеять лишнее,
// но не должен молча терять вакансии при сбоях модели).
func (s *Screener) Screen(ctx context.Context, tweets []jobs.TweetRaw) ([]jobs.TweetRaw, error) {
	if len(tweets) == 0 {
		return nil, nil
	}

	totalBatches := (len(tweets) + s.batchSize - 1) / s.batchSize
	log.Printf("Screening %d tweets with Gemini in %d batches (batch size: %d)", len(tweets), totalBatches, s.batchSize)

	var kept []jobs.TweetRaw
	for i := 0; i < len(tweets); i += s.batchSize {
		end := i + s.batchSize
		if end > len(tweets) {
			end = len(tweets)
		}

		batchKept, err := s.screenBatch(ctx, tweets[i:end])
		if err != nil {
			return nil, fmt.Errorf("screen batch [%d-%d]: %w", i, end-1, err)
		}

		kept = append(kept, batchKept...)
	}

	log.Printf("Screening complete: %d of %d tweets kept", len(kept), len(tweets))
	return kept, nil
}

func (s *Screener) screenBatch(ctx context.Context, tweets []jobs.TweetRaw) ([]jobs.TweetRaw, error) {
	inputData := make([]tweetInput, 0, len(tweets))
	for _, tweet := range tweets {
		inputData = append(inputData, tweetInput{
			ID:   tweet.ID,
			Text: tweet.Text,
		})
	}

	inputJSON, err := json.Marshal(inputData)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}

	responseText, err := s.client.GenerateText(ctx, s.model, buildScreeningPrompt(string(inputJSON)))
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}

	verdicts, err := parseVerdicts(responseText)
	if err != nil {
		return nil, err
	}

	verdictByID := make(map[string]bool, len(verdicts))
	for _, v := range verdicts {
		verdictByID[v.ID] = v.Relevant
	}

	kept := make([]jobs.TweetRaw, 0, len(tweets))
	for _, tweet := range tweets {
		relevant, ok := verdictByID[tweet.ID]
		if !ok {
			// Fallback: если Gemini пропустил твит, оставляем его
			kept = append(kept, tweet)
			continue
		}
		if relevant {
			kept = append(kept, tweet)
		}
	}

	return kept, nil
}

func parseVerdicts(responseText string) ([]screeningVerdict, error) {
	var verdicts []screeningVerdict
	if err := json.Unmarshal([]byte(responseText), &verdicts); err != nil {
		// Пытаемся извлечь JSON из текста, если модель добавила лишнее
		cleaned := extractJSON(responseText)
		if cleaned == "" {
			return nil, fmt.Errorf("unmarshal response: %w (raw: %s)", err, responseText)
		}
		if err := json.Unmarshal([]byte(cleaned), &verdicts); err != nil {
			return nil, fmt.Errorf("unmarshal cleaned response: %w (raw: %s)", err, responseText)
		}
	}
	return verdicts, nil
}

func buildScreeningPrompt(inputJSON string) string {
	return fmt.Sprintf(`You are an assistant that screens tweets collected by a job-search bot.
You will receive a JSON array of tweets. Each tweet has a unique id and a text.
The tweets already matched job-related keywords, but some of them are not actual job postings.

For each tweet decide whether it is a genuine job posting:
- relevant: a concrete job opening, vacancy announcement, or hiring call from a company or recruiter
- not relevant: course/bootcamp advertising, CV-writing services, motivational or engagement-bait content,
  aggregated "top 10 jobs" threads without concrete openings, giveaways, crypto/forex signals

Return the result ONLY as a raw JSON array without markdown blocks, without extra commentary:
[{"id": "<tweet id>", "relevant": true|false}, ...]

Return a verdict for every tweet in the input.

Input:
%s`, inputJSON)
}

func extractJSON(text string) string {
	// Удаляем markdown code block (three-backtick json ... или без указания языка), если модель его добавила
	if idx := strings.Index(text, "```"); idx != -1 {
		rest := text[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			text = rest[:end]
		}
	}

	// Ищем JSON-массив в тексте
	start := strings.Index(text, "[")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[start : i+1])
			}
		}
	}

	return ""
}

type tweetInput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type screeningVerdict struct {
	ID       string `json:"id"`
	Relevant bool   `json:"relevant"`
}
