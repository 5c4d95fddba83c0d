package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/maine/nigeria_jobs_bot/internal/app"
	"github.com/maine/nigeria_jobs_bot/internal/config"
	"github.com/maine/nigeria_jobs_bot/internal/filter"
	"github.com/maine/nigeria_jobs_bot/internal/formatter"
	"github.com/maine/nigeria_jobs_bot/internal/gemini"
	"github.com/maine/nigeria_jobs_bot/internal/slack"
	"github.com/maine/nigeria_jobs_bot/internal/sources"
	"github.com/maine/nigeria_jobs_bot/internal/state"
)

func main() {
	ctx := context.Background()

	// Загружаем конфигурацию из YAML
	rootCfg, err := config.LoadRoot("configs/pipeline.yaml")
	if err != nil {
		log.Fatalf("load pipeline config: %v", err)
	}

	keywordsCfg, err := config.LoadKeywords("configs/keywords.yaml")
	if err != nil {
		log.Fatalf("load keywords config: %v", err)
	}

	// Загружаем переменные окружения (токены)
	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		log.Fatalf("load env config: %v", err)
	}

	// Инициализируем модули
	httpClient := &http.Client{Timeout: 15 * time.Second}
	collector := sources.NewSearchCollector(
		keywordsCfg.Keywords,
		rootCfg.Pipeline.MaxResultsPerKeyword,
		envCfg.TwitterBearerToken,
		httpClient,
		time.Now,
	)
	f := filter.New(keywordsCfg.Filters)
	msgFormatter := formatter.NewFormatter(rootCfg.Pipeline)
	stateStore := state.NewFileStore("state/posted_jobs.json")

	var poster app.Poster
	if !envCfg.DryRun {
		poster = slack.NewClient(envCfg.SlackWebhookURL)
	}

	// Инициализируем Gemini-скринер, только если он не пропускается
	var screener app.Screener
	if !envCfg.SkipGemini {
		geminiClient, err := gemini.NewClient()
		if err != nil {
			log.Fatalf("failed to create Gemini client: %v", err)
		}
		screener = gemini.NewScreener(geminiClient, rootCfg.Gemini)
	}

	// Создаём пайплайн
	p := app.NewPipeline(app.PipelineDeps{
		Collector:  collector,
		Filter:     f,
		Screener:   screener,
		Formatter:  msgFormatter,
		Poster:     poster,
		StateStore: stateStore,
		Clock:      nil, // используем time.Now по умолчанию
		PostDelay:  time.Duration(rootCfg.Pipeline.PostDelaySeconds) * time.Second,
		DryRun:     envCfg.DryRun,
	})

	if err := p.Run(ctx); err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	log.Println("pipeline completed successfully")
}
