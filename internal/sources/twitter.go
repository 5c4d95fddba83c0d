package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/maine/nigeria_jobs_bot/internal/jobs"
)

const searchRecentURL = "https://api.twitter.com/2/tweets/search/recent"

// Twitter API v2 допускает max_results только в диапазоне 10..100.
const (
	minResultsPerKeyword = 10
	maxResultsPerKeyword = 100
)

// SearchCollector загружает твиты через поисковый API Twitter v2.
type SearchCollector struct {
	keywords   []string
	maxResults int
	bearer     string
	client     *http.Client
	clock      func() time.Time
	apiURL     string
}

// NewSearchCollector создаёт новый экземпляр.
func NewSearchCollector(keywords []string, maxResults int, bearer string, client *http.Client, clock func() time.Time) *SearchCollector {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if clock == nil {
		clock = time.Now
	}
	if maxResults < minResultsPerKeyword {
		maxResults = minResultsPerKeyword
	}
	if maxResults > maxResultsPerKeyword {
		maxResults = maxResultsPerKeyword
	}
	return &SearchCollector{
		keywords:   keywords,
		maxResults: maxResults,
		bearer:     bearer,
		client:     client,
		clock:      clock,
		apiURL:     searchRecentURL,
	}
}

// Collect реализует app.Collector.
// Ошибка поиска по одному запросу не прерывает обработку остальных:
// запрос пропускается, твиты по остальным запросам всё равно собираются.
func (c *SearchCollector) Collect(ctx context.Context) ([]jobs.TweetRaw, error) {
	var results []jobs.TweetRaw
	for _, keyword := range c.keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}

		tweets, err := c.searchKeyword(ctx, keyword)
		if err != nil {
			log.Printf("Error searching keyword %q: %v", keyword, err)
			continue
		}

		results = append(results, tweets...)
	}
	return results, nil
}

func (c *SearchCollector) searchKeyword(ctx context.Context, keyword string) ([]jobs.TweetRaw, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("max_results", strconv.Itoa(c.maxResults))
	params.Set("tweet.fields", "created_at,author_id,public_metrics")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "name,username")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	// 429 и прочие ошибки не ретраим внутри запуска: следующий запуск
	// по расписанию заберёт пропущенное окно recent search
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	return c.buildTweets(keyword, searchResp), nil
}

func (c *SearchCollector) buildTweets(keyword string, resp searchResponse) []jobs.TweetRaw {
	users := make(map[string]searchUser, len(resp.Includes.Users))
	for _, user := range resp.Includes.Users {
		users[user.ID] = user
	}

	tweets := make([]jobs.TweetRaw, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.ID == "" || strings.TrimSpace(item.Text) == "" {
			continue
		}

		author, hasAuthor := users[item.AuthorID]

		tweets = append(tweets, jobs.TweetRaw{
			ID:             item.ID,
			Keyword:        keyword,
			Text:           item.Text,
			AuthorName:     author.Name,
			AuthorUsername: author.Username,
			URL:            buildTweetURL(item.ID, author.Username, hasAuthor),
			CreatedAt:      parseCreatedAt(item.CreatedAt, c.clock()),
			Likes:          item.PublicMetrics.LikeCount,
			Retweets:       item.PublicMetrics.RetweetCount,
		})
	}

	return tweets
}

func buildTweetURL(id, username string, hasAuthor bool) string {
	if hasAuthor && username != "" {
		return fmt.Sprintf("https://twitter.com/%s/status/%s", username, id)
	}
	// Без известного автора остаётся универсальная форма ссылки
	return fmt.Sprintf("https://twitter.com/i/web/status/%s", id)
}

func parseCreatedAt(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return fallback
}

func truncateBody(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// --- search response parsing ---

type searchResponse struct {
	Data     []searchTweet  `json:"data"`
	Includes searchIncludes `json:"includes"`
}

type searchTweet struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     string        `json:"created_at"`
	PublicMetrics publicMetrics `json:"public_metrics"`
}

type publicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
}

type searchIncludes struct {
	Users []searchUser `json:"users"`
}

type searchUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
