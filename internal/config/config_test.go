package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultConfigs(t *testing.T) {
	root, err := LoadRoot(filepath.Join("..", "..", "configs", "pipeline.yaml"))
	if err != nil {
		t.Fatalf("LoadRoot() error = %v", err)
	}
	if root.Pipeline.MaxResultsPerKeyword != 100 {
		t.Errorf("MaxResultsPerKeyword = %d, want 100", root.Pipeline.MaxResultsPerKeyword)
	}
	if root.Pipeline.BodyMaxLength != 500 {
		t.Errorf("BodyMaxLength = %d, want 500", root.Pipeline.BodyMaxLength)
	}
	if root.Gemini.ModelScreening == "" {
		t.Error("ModelScreening should not be empty")
	}

	keywords, err := LoadKeywords(filepath.Join("..", "..", "configs", "keywords.yaml"))
	if err != nil {
		t.Fatalf("LoadKeywords() error = %v", err)
	}
	if len(keywords.Keywords) == 0 {
		t.Error("default keywords list should not be empty")
	}
	if len(keywords.Filters.Include) == 0 {
		t.Error("default include list should not be empty")
	}
	if len(keywords.Filters.Exclude) == 0 {
		t.Error("default exclude list should not be empty")
	}
}

func TestLoadRoot_MissingFile(t *testing.T) {
	if _, err := LoadRoot(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadRoot() error = nil, want error for missing file")
	}
}

func TestLoadKeywords_MissingFile(t *testing.T) {
	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadKeywords() error = nil, want error for missing file")
	}
}
