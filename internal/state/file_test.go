package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2025, 10, 31, 18, 34, 14, 987654321, time.UTC)
	s := FormatTime(in)
	if want := "Fri, 31 Oct 2025 18:34:14 GMT"; s != want {
		t.Fatalf("FormatTime = %q, want %q", s, want)
	}
	out, err := ParseTime(s)
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if want := in.Truncate(time.Second); !out.Equal(want) {
		t.Errorf("round trip = %v, want %v", out, want)
	}
	if out.Location() != time.UTC {
		t.Errorf("parsed location = %v, want UTC", out.Location())
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	_, ok, err := s.Get(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Errorf("expected no watermark for fresh store")
	}
}

func TestFileStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := s.Set(ctx, "Alpha", now); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "Beta", now.Add(time.Hour)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := s.Get(ctx, "Alpha")
	if err != nil || !ok {
		t.Fatalf("Get Alpha: ok=%v err=%v", ok, err)
	}
	if !got.Equal(now) {
		t.Errorf("Alpha watermark = %v, want %v", got, now)
	}

	// Keys are independent.
	got, ok, err = s.Get(ctx, "Beta")
	if err != nil || !ok {
		t.Fatalf("Get Beta: ok=%v err=%v", ok, err)
	}
	if !got.Equal(now.Add(time.Hour)) {
		t.Errorf("Beta watermark = %v, want %v", got, now.Add(time.Hour))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewFileStore(path)

	_, ok, err := s.Get(ctx, "Alpha")
	if err != nil {
		t.Fatalf("Get on corrupt file: %v", err)
	}
	if ok {
		t.Errorf("corrupt file should resolve to no previous run")
	}

	// A write after corruption replaces the file.
	now := time.Now().UTC()
	if err := s.Set(ctx, "Alpha", now); err != nil {
		t.Fatalf("Set after corruption: %v", err)
	}
	got, ok, _ := s.Get(ctx, "Alpha")
	if !ok || !got.Equal(now.Truncate(time.Second)) {
		t.Errorf("Get after rewrite = %v ok=%v, want %v", got, ok, now.Truncate(time.Second))
	}
}

func TestFileStoreUnparseableEntry(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"Alpha": "yesterday-ish"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewFileStore(path)
	_, ok, err := s.Get(ctx, "Alpha")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Errorf("unparseable timestamp should resolve to no previous run")
	}
}
