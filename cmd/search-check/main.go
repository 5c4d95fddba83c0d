// search-check — вспомогательная утилита для настройки configs/keywords.yaml.
// Выполняет поиск по всем ключевым словам, прогоняет результаты через
// include/exclude-фильтры и печатает вердикты, не отправляя ничего в Slack
// и не трогая файл состояния.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/filter"
	"github.com/maine/nigeria_jobs_bot/internal/sources"
)

const textPreviewLen = 80

type keywordStats struct {
	fetched int
	passed  int
}

func main() {
	keywordsPath := "configs/keywords.yaml"
	if len(os.Args) > 1 {
		keywordsPath = os.Args[1]
	}

	keywordsCfg, err := config.LoadKeywords(keywordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load keywords config: %v\n", err)
		os.Exit(1)
	}

	bearer := os.Getenv("TWITTER_BEARER_TOKEN")
	if bearer == "" {
		fmt.Fprintln(os.Stderr, "TWITTER_BEARER_TOKEN environment variable is required")
		os.Exit(1)
	}

	fmt.Printf("Checking %d keywords from %s\n", len(keywordsCfg.Keywords), keywordsPath)
	fmt.Printf("Filters: %d include terms, %d exclude terms\n\n",
		len(keywordsCfg.Filters.Include), len(keywordsCfg.Filters.Exclude))

	ctx := context.Background()
	httpClient := &http.Client{Timeout: 15 * time.Second}
	collector := sources.NewSearchCollector(keywordsCfg.Keywords, 10, bearer, httpClient, time.Now)

	tweets, err := collector.Collect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect tweets: %v\n", err)
		os.Exit(1)
	}

	f := filter.New(keywordsCfg.Filters)

	stats := make(map[string]*keywordStats)
	for _, keyword := range keywordsCfg.Keywords {
		stats[keyword] = &keywordStats{}
	}

	fmt.Println("=== Verdicts ===")
	seen := make(map[string]struct{})
	for _, tweet := range tweets {
		st, ok := stats[tweet.Keyword]
		if !ok {
			st = &keywordStats{}
			stats[tweet.Keyword] = st
		}
		st.fetched++

		if _, dup := seen[tweet.ID]; dup {
			fmt.Printf("  DUP  %s %s\n", tweet.ID, preview(tweet.Text))
			continue
		}
		seen[tweet.ID] = struct{}{}

		verdict := "DROP"
		if f.Matches(tweet.Text) {
			verdict = "PASS"
			st.passed++
		}
		fmt.Printf("  %s %s %s\n", verdict, tweet.ID, preview(tweet.Text))
	}

	fmt.Println("\n=== Per-keyword summary ===")
	keywords := make([]string, 0, len(stats))
	for keyword := range stats {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	totalFetched, totalPassed := 0, 0
	for _, keyword := range keywords {
		st := stats[keyword]
		fmt.Printf("  %-30s fetched: %3d  passed: %3d\n", keyword, st.fetched, st.passed)
		totalFetched += st.fetched
		totalPassed += st.passed
	}
	fmt.Printf("\nTotal: %d fetched, %d unique passed\n", totalFetched, totalPassed)

	warnEmptyKeywords(keywords, stats)
}

// warnEmptyKeywords подсказывает, какие запросы не приносят результатов
// и могут быть удалены из конфига.
func warnEmptyKeywords(keywords []string, stats map[string]*keywordStats) {
	var empty []string
	for _, keyword := range keywords {
		if stats[keyword].fetched == 0 {
			empty = append(empty, keyword)
		}
	}
	if len(empty) > 0 {
		fmt.Printf("\nKeywords with no results (candidates for removal): %s\n", strings.Join(empty, ", "))
	}
}

func preview(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) > textPreviewLen {
		return string(runes[:textPreviewLen]) + "..."
	}
	return text
}
