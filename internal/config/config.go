package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Root объединяет все конфигурационные блоки.
	Root struct {
		Pipeline Pipeline `yaml:"pipeline"`
		Gemini   Gemini   `yaml:"gemini"`
	}

	// Pipeline описывает параметры главного пайплайна.
	Pipeline struct {
		MaxResultsPerKeyword int `yaml:"max_results_per_keyword"`
		BodyMaxLength        int `yaml:"body_max_length"`
		PostDelaySeconds     int `yaml:"post_delay_seconds"`
	}

	// Gemini содержит настройки модели и размера батча для скрининга.
	Gemini struct {
		ModelScreening     string `yaml:"model_screening"`
		BatchSizeScreening int    `yaml:"batch_size_screening"`
	}

	// KeywordsRoot описывает поисковые запросы и фильтры по словам.
	KeywordsRoot struct {
		Keywords []string `yaml:"keywords"`
		Filters  Filters  `yaml:"filters"`
	}

	// Filters содержит include/exclude списки подстрок.
	// Пустой include означает "без ограничения" (всё проходит),
	// exclude применяется всегда.
	Filters struct {
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	}
)

// LoadRoot читает основной файл конфигурации.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadKeywords читает конфиг с поисковыми запросами и фильтрами.
func LoadKeywords(path string) (KeywordsRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeywordsRoot{}, fmt.Errorf("read keywords config: %w", err)
	}

	var cfg KeywordsRoot
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KeywordsRoot{}, fmt.Errorf("unmarshal keywords config: %w", err)
	}
	return cfg, nil
}
