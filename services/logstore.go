// services/logstore.go
package services

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"naver-booking-notifier/config"
	"naver-booking-notifier/models"
)

const (
	runFilePrefix  = "run_"
	runFileSuffix  = ".json"
	latestRunFile  = "latest.json"
	runKeyTimeform = "20060102_150405" // sorts lexicographically by time
)

// RunLogStore persists each run twice: an immutable timestamped artifact and
// an overwritten latest pointer with the same content.
type RunLogStore struct {
	dir string
}

func NewRunLogStore(dir string) (*RunLogStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &RunLogStore{dir: dir}, nil
}

// Persist writes the run artifact and updates the latest pointer, returning
// the artifact's storage key.
func (s *RunLogStore) Persist(run models.RunLog) (string, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", err
	}

	key := runFilePrefix + run.Timestamp.In(KST).Format(runKeyTimeform) + runFileSuffix
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, latestRunFile), data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

// ListRecent returns up to limit runs, most recent first, ordered purely by
// the filename timestamp. Unreadable artifacts are skipped with a warning.
func (s *RunLogStore) ListRecent(limit int) ([]models.RunLog, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, runFilePrefix) || !strings.HasSuffix(name, runFileSuffix) {
			continue
		}
		keys = append(keys, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var runs []models.RunLog
	for _, key := range keys {
		if limit > 0 && len(runs) >= limit {
			break
		}
		run, err := s.readRun(filepath.Join(s.dir, key))
		if err != nil {
			config.Logger().Warn("skipping unreadable run artifact",
				zap.String("key", key), zap.Error(err))
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Latest returns the most recently persisted run, or ErrRunNotFound when no
// run has ever been persisted.
func (s *RunLogStore) Latest() (models.RunLog, error) {
	run, err := s.readRun(filepath.Join(s.dir, latestRunFile))
	if errors.Is(err, fs.ErrNotExist) {
		return models.RunLog{}, models.ErrRunNotFound
	}
	return run, err
}

func (s *RunLogStore) readRun(path string) (models.RunLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RunLog{}, err
	}
	var run models.RunLog
	if err := json.Unmarshal(data, &run); err != nil {
		return models.RunLog{}, err
	}
	return run, nil
}
