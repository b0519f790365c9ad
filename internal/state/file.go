package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// FileStore keeps all watermarks in a single JSON file mapping feed
// name to a GMT timestamp string. A missing or corrupted file resolves
// to "no previous run" rather than failing the run.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context, feed string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	raw, ok := data[feed]
	if !ok || raw == "" {
		return time.Time{}, false, nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		// Unreadable entry means first run, not a failed run.
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func (s *FileStore) Set(_ context.Context, feed string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.load()
	data[feed] = FormatTime(t)
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("state: write %s: %w", s.path, err)
	}
	return nil
}

// load reads the whole state map, treating any problem as empty state.
func (s *FileStore) load() map[string]string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// Keep going; the next Set rewrites the file.
			slog.Warn("state: read failed, treating as empty", "path", s.path, "err", err)
		}
		return map[string]string{}
	}
	var data map[string]string
	if err := json.Unmarshal(b, &data); err != nil {
		return map[string]string{}
	}
	if data == nil {
		data = map[string]string{}
	}
	return data
}
