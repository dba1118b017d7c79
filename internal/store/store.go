package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ETCTracker/internal/logger"
)

// Kind is the artifact kind. One artifact exists per kind per day.
type Kind string

const (
	KindMarketReport Kind = "market-report"
	KindNewsDigest   Kind = "news-digest"
)

// FileStore persists rendered documents under a content collection. Paths are
// derived from kind and ISO date, so idempotence is an existence check.
type FileStore struct {
	Root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

// PathFor returns the storage location for (kind, date).
func (s *FileStore) PathFor(kind Kind, date time.Time) (string, error) {
	dateStr := date.Format("2006-01-02")
	switch kind {
	case KindMarketReport:
		return filepath.Join(s.Root, "posts", fmt.Sprintf("etc-%s.md", dateStr)), nil
	case KindNewsDigest:
		return filepath.Join(s.Root, "pages", fmt.Sprintf("etc-news-%s.md", dateStr)), nil
	default:
		return "", fmt.Errorf("unknown artifact kind %q", kind)
	}
}

// Store writes content for (kind, date) unless an artifact already exists at
// the computed location. An existing artifact is returned as skipped, never
// overwritten — a soft duplicate guard for same-day reruns, not a
// transactional one.
func (s *FileStore) Store(kind Kind, date time.Time, content string) (path string, skipped bool, err error) {
	path, err = s.PathFor(kind, date)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(path); err == nil {
		logger.Log.Infof("artifact already exists (%s) — skipped", path)
		return path, true, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", false, fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", false, fmt.Errorf("write artifact: %w", err)
	}

	logger.Log.Infof("artifact created: %s", path)
	return path, false, nil
}
