package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var day = time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)

func TestStore_Idempotent(t *testing.T) {
	s := NewFileStore(t.TempDir())

	first, skipped, err := s.Store(KindMarketReport, day, "first content")
	if err != nil {
		t.Fatalf("first store: %v", err)
	}
	if skipped {
		t.Error("first store must not be skipped")
	}

	second, skipped, err := s.Store(KindMarketReport, day, "second content")
	if err != nil {
		t.Fatalf("second store: %v", err)
	}
	if !skipped {
		t.Error("second same-day store must be skipped")
	}
	if first != second {
		t.Errorf("expected same path, got %q and %q", first, second)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "first content" {
		t.Errorf("first-written content must be preserved, got %q", data)
	}
}

func TestStore_PathsByKindAndDate(t *testing.T) {
	root := t.TempDir()
	s := NewFileStore(root)

	post, _, err := s.Store(KindMarketReport, day, "report")
	if err != nil {
		t.Fatalf("store report: %v", err)
	}
	if want := filepath.Join(root, "posts", "etc-2026-08-31.md"); post != want {
		t.Errorf("expected %q, got %q", want, post)
	}

	page, _, err := s.Store(KindNewsDigest, day, "digest")
	if err != nil {
		t.Fatalf("store digest: %v", err)
	}
	if want := filepath.Join(root, "pages", "etc-news-2026-08-31.md"); page != want {
		t.Errorf("expected %q, got %q", want, page)
	}
}

func TestStore_DifferentDaysDifferentArtifacts(t *testing.T) {
	s := NewFileStore(t.TempDir())

	first, _, err := s.Store(KindMarketReport, day, "monday")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	second, skipped, err := s.Store(KindMarketReport, day.AddDate(0, 0, 1), "tuesday")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if skipped {
		t.Error("a new day must not be skipped")
	}
	if first == second {
		t.Error("different days must map to different paths")
	}
}
