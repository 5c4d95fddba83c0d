package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClock() time.Time {
	return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
}

func TestSearchCollector_buildTweets(t *testing.T) {
	collector := NewSearchCollector([]string{"#hiring"}, 100, "token", nil, testClock)

	resp := searchResponse{
		Data: []searchTweet{
			{
				ID:        "1",
				Text:      "We are hiring",
				AuthorID:  "u1",
				CreatedAt: "2025-08-20T09:30:00Z",
				PublicMetrics: publicMetrics{
					LikeCount:    5,
					RetweetCount: 2,
				},
			},
			{
				ID:       "2",
				Text:     "Author not in includes",
				AuthorID: "missing",
			},
			{
				// Твиты без текста пропускаются
				ID:   "3",
				Text: "   ",
			},
		},
		Includes: searchIncludes{
			Users: []searchUser{
				{ID: "u1", Name: "Acme Fintech", Username: "acmefintech"},
			},
		},
	}

	tweets := collector.buildTweets("#hiring", resp)
	if len(tweets) != 2 {
		t.Fatalf("buildTweets() len = %d, want 2", len(tweets))
	}

	first := tweets[0]
	if first.ID != "1" || first.Keyword != "#hiring" {
		t.Errorf("buildTweets()[0] = %+v", first)
	}
	if first.AuthorName != "Acme Fintech" || first.AuthorUsername != "acmefintech" {
		t.Errorf("author join failed: %+v", first)
	}
	if first.URL != "https://twitter.com/acmefintech/status/1" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Likes != 5 || first.Retweets != 2 {
		t.Errorf("metrics = %d/%d, want 5/2", first.Likes, first.Retweets)
	}
	if !first.CreatedAt.Equal(time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", first.CreatedAt)
	}

	second := tweets[1]
	if second.AuthorName != "" || second.AuthorUsername != "" {
		t.Errorf("unknown author should stay empty: %+v", second)
	}
	// Без известного автора используется универсальная форма ссылки
	if second.URL != "https://twitter.com/i/web/status/2" {
		t.Errorf("fallback URL = %q", second.URL)
	}
	// Без created_at используется время запуска
	if !second.CreatedAt.Equal(testClock()) {
		t.Errorf("fallback CreatedAt = %v", second.CreatedAt)
	}
}

func TestParseCreatedAt(t *testing.T) {
	fallback := testClock()

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "RFC3339",
			value: "2025-08-19T18:45:00Z",
			want:  time.Date(2025, 8, 19, 18, 45, 0, 0, time.UTC),
		},
		{
			name:  "empty value uses fallback",
			value: "",
			want:  fallback,
		},
		{
			name:  "garbage uses fallback",
			value: "yesterday",
			want:  fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCreatedAt(tt.value, fallback)
			if !got.Equal(tt.want) {
				t.Errorf("parseCreatedAt(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSearchCollector_Collect_PartialFailure(t *testing.T) {
	// Ошибка поиска по одному запросу не должна прерывать обработку
	// остальных запросов
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "#broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{"id": "42", "text": "We are hiring", "author_id": "u1"}],
			"includes": {"users": [{"id": "u1", "name": "Acme", "username": "acme"}]}
		}`))
	}))
	defer srv.Close()

	collector := NewSearchCollector([]string{"#broken", "#hiring"}, 10, "token", srv.Client(), testClock)
	collector.apiURL = srv.URL

	tweets, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(tweets) != 1 {
		t.Fatalf("Collect() len = %d, want 1", len(tweets))
	}
	if tweets[0].ID != "42" || tweets[0].Keyword != "#hiring" {
		t.Errorf("Collect()[0] = %+v", tweets[0])
	}
}

func TestSearchCollector_Collect_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	collector := NewSearchCollector([]string{"#hiring"}, 10, "secret-token", srv.Client(), testClock)
	collector.apiURL = srv.URL

	if _, err := collector.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q, want Bearer secret-token", gotAuth)
	}
}

func TestNewSearchCollector_ClampsMaxResults(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below API minimum", in: 1, want: 10},
		{name: "zero", in: 0, want: 10},
		{name: "above API maximum", in: 500, want: 100},
		{name: "in range", in: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSearchCollector(nil, tt.in, "token", nil, nil)
			if c.maxResults != tt.want {
				t.Errorf("maxResults = %d, want %d", c.maxResults, tt.want)
			}
		})
	}
}
