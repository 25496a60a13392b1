// Package dump persists raw collaborator responses for offline inspection.
package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store writes raw response bodies into a directory, one file per response.
// A nil *Store is valid and discards everything.
type Store struct {
	dir string

	mu  sync.Mutex
	seq int
	now func() time.Time
}

// New creates the directory if needed and returns a store writing into it.
func New(dir string) (*Store, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dump dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Write stores body under a name derived from kind and returns the file path.
func (s *Store) Write(kind string, body []byte) (string, error) {
	if s == nil {
		return "", nil
	}

	s.mu.Lock()
	s.seq++
	name := fmt.Sprintf("%s-%s-%03d.json", kind, s.now().UTC().Format("20060102T150405"), s.seq)
	s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
