package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maine/nigeria_jobs_bot/internal/jobs"
)

// FileStore хранит состояние в JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore создаёт новый файловый стор.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает состояние из файла.
// Отсутствующий файл не является ошибкой: возвращается пустой state.
func (s *FileStore) Load(ctx context.Context) (jobs.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return jobs.State{}, nil
		}
		return jobs.State{}, fmt.Errorf("read state file: %w", err)
	}

	var state jobs.State
	if err := json.Unmarshal(data, &state); err != nil {
		// Повреждённый JSON не фатален: потеря истории дедупликации грозит
		// только повторными уведомлениями. Старый файл переименовываем
		// в .broken для диагностики и продолжаем с пустым state.
		brokenPath := s.path + ".broken"
		_ = os.WriteFile(brokenPath, data, 0644)
		return jobs.State{}, nil
	}

	return state, nil
}

// Save записывает состояние в файл атомарно (через временный файл).
func (s *FileStore) Save(ctx context.Context, state jobs.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp state file: %w", err)
	}

	// Rename атомарен на большинстве файловых систем, поэтому упавшая
	// посередине запись не портит основной файл
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp state file: %w", err)
	}

	return nil
}
