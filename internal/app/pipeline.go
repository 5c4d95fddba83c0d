package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/maine/nigeria_jobs_bot/internal/jobs"
	"github.com/maine/nigeria_jobs_bot/internal/slack"
)

const defaultPostDelay = time.Second

// ErrNotConfigured возвращается, когда пайплайн запущен без обязательных зависимостей.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// Collector собирает твиты по всем поисковым запросам.
type Collector interface {
	Collect(ctx context.Context) ([]jobs.TweetRaw, error)
}

// Filter отвечает за дедупликацию, отсев уже отправленных и keyword-матчинг.
type Filter interface {
	Apply(ctx context.Context, tweets []jobs.TweetRaw, state jobs.State) ([]jobs.TweetRaw, error)
}

// Screener отсеивает твиты, не являющиеся настоящими вакансиями.
// Опциональная зависимость: nil означает "все прошедшие фильтр отправляются".
type Screener interface {
	Screen(ctx context.Context, tweets []jobs.TweetRaw) ([]jobs.TweetRaw, error)
}

// Formatter превращает твит в Slack-сообщение.
type Formatter interface {
	Build(tweet jobs.TweetRaw) slack.Message
}

// Poster публикует одно подготовленное сообщение в Slack.
type Poster interface {
	Post(ctx context.Context, msg slack.Message) error
}

// StateStore хранит и обновляет файл состояния.
type StateStore interface {
	Load(ctx context.Context) (jobs.State, error)
	Save(ctx context.Context, state jobs.State) error
}

// PipelineDeps перечисляет зависимости пайплайна.
type PipelineDeps struct {
	Collector  Collector
	Filter     Filter
	Screener   Screener
	Formatter  Formatter
	Poster     Poster
	StateStore StateStore
	Clock      Clock
	PostDelay  time.Duration
	DryRun     bool
}

// Pipeline инкапсулирует один запуск обработки вакансий.
type Pipeline struct {
	collector  Collector
	filter     Filter
	screener   Screener
	formatter  Formatter
	poster     Poster
	stateStore StateStore
	clock      Clock
	postDelay  time.Duration
	dryRun     bool
}

// NewPipeline создаёт новый экземпляр пайплайна.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	postDelay := deps.PostDelay
	if postDelay <= 0 {
		postDelay = defaultPostDelay
	}

	return &Pipeline{
		collector:  deps.Collector,
		filter:     deps.Filter,
		screener:   deps.Screener,
		formatter:  deps.Formatter,
		poster:     deps.Poster,
		stateStore: deps.StateStore,
		clock:      clock,
		postDelay:  postDelay,
		dryRun:     deps.DryRun,
	}
}

// Run исполняет полный цикл: load state -> collect -> filter -> screen ->
// format+post по одному -> save state. Строго последовательно, один проход.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.validateDeps(); err != nil {
		return err
	}

	state, err := p.stateStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	log.Println("Step 1: Searching Twitter for job postings...")
	rawTweets, err := p.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect tweets: %w", err)
	}
	log.Printf("Collected %d raw tweets", len(rawTweets))

	log.Println("Step 2: Filtering tweets...")
	filtered, err := p.filter.Apply(ctx, rawTweets, state)
	if err != nil {
		return fmt.Errorf("filter tweets: %w", err)
	}
	log.Printf("After filtering: %d tweets", len(filtered))

	candidates := filtered
	if p.screener != nil {
		log.Println("Step 3: Screening tweets with Gemini...")
		candidates, err = p.screener.Screen(ctx, filtered)
		if err != nil {
			return fmt.Errorf("screen tweets: %w", err)
		}
		log.Printf("After screening: %d tweets", len(candidates))
	}

	log.Println("Step 4: Posting to Slack...")
	posted, err := p.postAll(ctx, candidates, &state)
	if err != nil {
		return err
	}

	state.LastRun = p.clock()
	if p.dryRun {
		log.Println("DRY RUN: state not saved")
	} else if err := p.stateStore.Save(ctx, state); err != nil {
		// Потеря записи об отправленных id приведёт к дубликатам
		// в каждом следующем запуске, поэтому здесь ошибка терминальна
		return fmt.Errorf("save state: %w", err)
	}

	log.Printf("Summary: %d fetched, %d after filters, %d candidates, %d posted",
		len(rawTweets), len(filtered), len(candidates), posted)
	return nil
}

// postAll отправляет кандидатов по одному в порядке выдачи.
// Неудачная отправка логируется и не фиксируется в state: такой твит
// будет отправлен повторно следующим запуском. Ретраев внутри запуска нет.
func (p *Pipeline) postAll(ctx context.Context, candidates []jobs.TweetRaw, state *jobs.State) (int, error) {
	posted := 0
	for i, tweet := range candidates {
		if p.dryRun {
			log.Printf("DRY RUN: would post tweet %s (%s)", tweet.ID, tweet.URL)
			continue
		}

		// Пауза между отправками: Slack webhook допускает ~1 сообщение в секунду
		if i > 0 {
			select {
			case <-ctx.Done():
				return posted, ctx.Err()
			case <-time.After(p.postDelay):
			}
		}

		msg := p.formatter.Build(tweet)
		if err := p.poster.Post(ctx, msg); err != nil {
			log.Printf("Failed to post tweet %s to Slack: %v", tweet.ID, err)
			continue
		}

		state.RecordPosted(tweet.ID, p.clock())
		posted++
	}
	return posted, nil
}

func (p *Pipeline) validateDeps() error {
	// screener опционален: без него отправляется всё, что прошло фильтр.
	// poster не нужен в dry run.
	switch {
	case p.collector == nil,
		p.filter == nil,
		p.formatter == nil,
		p.stateStore == nil,
		p.clock == nil:
		return ErrNotConfigured
	case p.poster == nil && !p.dryRun:
		return ErrNotConfigured
	default:
		return nil
	}
}
