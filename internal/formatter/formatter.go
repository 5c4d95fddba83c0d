package formatter

import (
	"fmt"
	"strings"

	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/jobs"
	"github.com/maine/nigeria_jobs_bot/internal/slack"
)

const (
	// headerText - заголовок каждого сообщения о вакансии
	headerText = "🎯 New Job Posting Found"
	// defaultBodyMaxLength - лимит длины текста вакансии в сообщении
	defaultBodyMaxLength = 500
	// unknownAuthorName - подстановка для твитов без данных об авторе
	unknownAuthorName = "Unknown"
	// unknownAuthorUsername - подстановка для username без данных об авторе
	unknownAuthorUsername = "unknown"
	// ellipsis - символы, добавляемые при обрезке текста
	ellipsis = "..."
)

// Formatter реализует app.Formatter: превращает твит в Block Kit сообщение.
type Formatter struct {
	bodyMaxLength int
}

// NewFormatter создаёт новый экземпляр форматтера.
func NewFormatter(cfg config.Pipeline) *Formatter {
	maxLen := cfg.BodyMaxLength
	if maxLen <= 0 {
		maxLen = defaultBodyMaxLength
	}
	return &Formatter{
		bodyMaxLength: maxLen,
	}
}

// Build реализует app.Formatter.
// Чистая функция без ветвлений, кроме обрезки текста и подстановки
// placeholder-а для неизвестного автора.
func (f *Formatter) Build(tweet jobs.TweetRaw) slack.Message {
	name := tweet.AuthorName
	if strings.TrimSpace(name) == "" {
		name = unknownAuthorName
	}
	username := tweet.AuthorUsername
	if strings.TrimSpace(username) == "" {
		username = unknownAuthorUsername
	}

	blocks := []slack.Block{
		{
			Type: "header",
			Text: &slack.Text{Type: "plain_text", Text: headerText},
		},
		{
			Type: "section",
			Fields: []slack.Text{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Posted by:*\n%s (@%s)", name, username)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Date:*\n%s", tweet.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))},
			},
		},
		{
			Type: "section",
			Text: &slack.Text{Type: "mrkdwn", Text: "*Job Description:*\n" + truncate(tweet.Text, f.bodyMaxLength)},
		},
		{
			Type: "section",
			Text: &slack.Text{Type: "mrkdwn", Text: fmt.Sprintf("💙 %d | 🔁 %d", tweet.Likes, tweet.Retweets)},
		},
	}

	if tweet.URL != "" {
		blocks = append(blocks, slack.Block{
			Type: "actions",
			Elements: []slack.Element{
				{
					Type:  "button",
					Text:  &slack.Text{Type: "plain_text", Text: "View on Twitter"},
					URL:   tweet.URL,
					Style: "primary",
				},
			},
		})
	}

	blocks = append(blocks, slack.Block{Type: "divider"})

	return slack.Message{Blocks: blocks}
}

// truncate обрезает текст до maxLen рун, добавляя ellipsis.
// Считаем руны, а не байты: тексты вакансий содержат emoji и не-ASCII.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + ellipsis
}
