package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/jobs"
	"github.com/maine/nigeria_jobs_bot/internal/slack"
)

func baseTweet() jobs.TweetRaw {
	return jobs.TweetRaw{
		ID:             "1890000000000000001",
		Text:           "We are hiring a backend engineer in Lagos",
		AuthorName:     "Acme Fintech",
		AuthorUsername: "acmefintech",
		URL:            "https://twitter.com/acmefintech/status/1890000000000000001",
		CreatedAt:      time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC),
		Likes:          12,
		Retweets:       3,
	}
}

func findSectionText(msg slack.Message, prefix string) (string, bool) {
	for _, block := range msg.Blocks {
		if block.Type == "section" && block.Text != nil && strings.HasPrefix(block.Text.Text, prefix) {
			return block.Text.Text, true
		}
	}
	return "", false
}

func TestFormatter_Build(t *testing.T) {
	f := NewFormatter(config.Pipeline{BodyMaxLength: 500})
	msg := f.Build(baseTweet())

	if len(msg.Blocks) == 0 {
		t.Fatal("Build() returned no blocks")
	}

	if msg.Blocks[0].Type != "header" {
		t.Errorf("first block type = %q, want header", msg.Blocks[0].Type)
	}

	body, ok := findSectionText(msg, "*Job Description:*")
	if !ok {
		t.Fatal("Build() missing job description section")
	}
	if !strings.Contains(body, "backend engineer") {
		t.Errorf("job description does not contain tweet text: %q", body)
	}

	var fields []slack.Text
	for _, block := range msg.Blocks {
		if len(block.Fields) > 0 {
			fields = block.Fields
		}
	}
	if len(fields) != 2 {
		t.Fatalf("Build() fields len = %d, want 2", len(fields))
	}
	if !strings.Contains(fields[0].Text, "Acme Fintech (@acmefintech)") {
		t.Errorf("author field = %q", fields[0].Text)
	}
	if !strings.Contains(fields[1].Text, "2025-08-20 09:30 UTC") {
		t.Errorf("date field = %q", fields[1].Text)
	}

	last := msg.Blocks[len(msg.Blocks)-1]
	if last.Type != "divider" {
		t.Errorf("last block type = %q, want divider", last.Type)
	}
}

func TestFormatter_Build_Truncation(t *testing.T) {
	f := NewFormatter(config.Pipeline{BodyMaxLength: 10})

	tweet := baseTweet()
	tweet.Text = "0123456789ABCDEF"

	msg := f.Build(tweet)
	body, ok := findSectionText(msg, "*Job Description:*")
	if !ok {
		t.Fatal("Build() missing job description section")
	}

	if !strings.HasSuffix(body, "0123456789...") {
		t.Errorf("Build() body = %q, want truncated at 10 chars with ellipsis", body)
	}
	if strings.Contains(body, "ABCDEF") {
		t.Errorf("Build() body not truncated: %q", body)
	}
}

func TestFormatter_Build_ShortTextNotTruncated(t *testing.T) {
	f := NewFormatter(config.Pipeline{BodyMaxLength: 500})

	tweet := baseTweet()
	msg := f.Build(tweet)
	body, _ := findSectionText(msg, "*Job Description:*")

	if strings.HasSuffix(body, "...") {
		t.Errorf("Build() short text should not get ellipsis: %q", body)
	}
}

func TestFormatter_Build_UnknownAuthor(t *testing.T) {
	f := NewFormatter(config.Pipeline{})

	tweet := baseTweet()
	tweet.AuthorName = ""
	tweet.AuthorUsername = ""

	msg := f.Build(tweet)

	var authorField string
	for _, block := range msg.Blocks {
		if len(block.Fields) > 0 {
			authorField = block.Fields[0].Text
		}
	}
	if !strings.Contains(authorField, "Unknown (@unknown)") {
		t.Errorf("author field = %q, want Unknown placeholder", authorField)
	}
}

func TestFormatter_Build_NoURLOmitsButton(t *testing.T) {
	f := NewFormatter(config.Pipeline{})

	tweet := baseTweet()
	tweet.URL = ""

	msg := f.Build(tweet)
	for _, block := range msg.Blocks {
		if block.Type == "actions" {
			t.Error("Build() should omit actions block when URL is empty")
		}
	}
}
