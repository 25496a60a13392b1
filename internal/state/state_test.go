package state

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/litescript/ls-starfinder/internal/finder"
	"github.com/litescript/ls-starfinder/internal/geo"
)

func reportAt(offset int) finder.Report {
	return finder.Report{Location: geo.Location{Name: "site", UTCOffsetHours: offset}}
}

func TestNewManager(t *testing.T) {
	m := NewManager(Config{})
	if m.maxEntries != 50 {
		t.Errorf("maxEntries = %d, want default 50", m.maxEntries)
	}

	snap := m.Snapshot()
	if len(snap.Entries) != 0 || snap.Total != 0 {
		t.Errorf("new manager not empty: %+v", snap)
	}
	if _, ok := snap.Last(); ok {
		t.Error("Last() on empty snapshot should report false")
	}
	if got := m.LastOffset(-7); got != -7 {
		t.Errorf("LastOffset fallback = %d, want -7", got)
	}
}

func TestManager_Record(t *testing.T) {
	m := NewManager(DefaultConfig())

	ok := m.Record(finder.Request{}, reportAt(8), 120*time.Millisecond, nil)
	if _, err := uuid.Parse(ok.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", ok.ID, err)
	}
	if !ok.OK() || ok.Duration != 120*time.Millisecond {
		t.Errorf("unexpected entry %+v", ok)
	}

	failed := m.Record(finder.Request{}, reportAt(3), 0, errors.New("location: no match"))
	if failed.OK() {
		t.Error("entry with error reports OK")
	}
	if failed.Report.Location.Name != "" {
		t.Error("failed entry should not keep a report")
	}
	if failed.ID == ok.ID {
		t.Error("entries share an ID")
	}

	snap := m.Snapshot()
	if snap.Total != 2 || snap.Failures != 1 {
		t.Errorf("Total/Failures = %d/%d, want 2/1", snap.Total, snap.Failures)
	}
	if last, _ := snap.Last(); last.ID != failed.ID {
		t.Errorf("Last() = %s, want %s", last.ID, failed.ID)
	}

	// Failures do not change the remembered offset
	if got := m.LastOffset(0); got != 8 {
		t.Errorf("LastOffset = %d, want 8", got)
	}

	if got, found := m.Get(ok.ID); !found || got.ID != ok.ID {
		t.Errorf("Get(%s) = %v, %v", ok.ID, got.ID, found)
	}
	if _, found := m.Get("missing"); found {
		t.Error("Get(missing) found an entry")
	}
}

func TestManager_RingBuffer(t *testing.T) {
	m := NewManager(Config{MaxEntries: 3})
	n := 0
	m.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }

	for i := 0; i < 5; i++ {
		m.Record(finder.Request{}, reportAt(i), 0, nil)
	}

	snap := m.Snapshot()
	if len(snap.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(snap.Entries))
	}
	for i, want := range []string{"id-3", "id-4", "id-5"} {
		if snap.Entries[i].ID != want {
			t.Errorf("Entries[%d] = %s, want %s", i, snap.Entries[i].ID, want)
		}
	}
	if snap.Total != 5 {
		t.Errorf("Total = %d, want 5", snap.Total)
	}

	recent := m.Recent(2)
	if len(recent) != 2 || recent[0].ID != "id-5" || recent[1].ID != "id-4" {
		t.Errorf("Recent(2) = %v", ids(recent))
	}
	if got := m.Recent(10); len(got) != 3 {
		t.Errorf("Recent(10) returned %d entries", len(got))
	}
	if got := m.Recent(-1); len(got) != 0 {
		t.Errorf("Recent(-1) returned %d entries", len(got))
	}
	if got := m.LastOffset(0); got != 4 {
		t.Errorf("LastOffset = %d, want 4", got)
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(Config{MaxEntries: 10})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Record(finder.Request{}, reportAt(1), 0, nil)
		}()
		go func() {
			defer wg.Done()
			_ = m.Snapshot()
			_ = m.Recent(3)
		}()
	}
	wg.Wait()

	if snap := m.Snapshot(); snap.Total != 20 || len(snap.Entries) != 10 {
		t.Errorf("Total/len = %d/%d, want 20/10", snap.Total, len(snap.Entries))
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
