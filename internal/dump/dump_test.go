package dump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStore_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return time.Date(2020, 10, 26, 3, 43, 30, 0, time.UTC) }

	p1, err := s.Write("simbad", []byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	p2, err := s.Write("simbad", []byte(`{"data":[[1]]}`))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if p1 == p2 {
		t.Errorf("consecutive writes share a path: %s", p1)
	}
	if !strings.HasSuffix(p1, "simbad-20201026T034330-001.json") {
		t.Errorf("unexpected file name %s", p1)
	}

	b, err := os.ReadFile(p2)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != `{"data":[[1]]}` {
		t.Errorf("file content = %q", b)
	}
	if s.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", s.Dir(), dir)
	}
}

func TestStore_NilIsNoop(t *testing.T) {
	var s *Store
	p, err := s.Write("timezone", []byte("{}"))
	if err != nil || p != "" {
		t.Errorf("nil store Write = (%q, %v), want empty", p, err)
	}
	if s.Dir() != "" {
		t.Errorf("nil store Dir = %q", s.Dir())
	}
}
