// Package storage persists events. The FileStore is the source of truth: one
// pair of plain-text files per event, one task text per line. The
// serialization is intentionally lossy; everything beyond the display text is
// dropped on save. The Archive keeps the optional full-fidelity copy.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tanvirapon/eventdo/internal/model"
)

const completedPrefix = "COMPLETED_"

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) pendingPath(event string) string {
	return filepath.Join(s.dir, event+".txt")
}

func (s *FileStore) completedPath(event string) string {
	return filepath.Join(s.dir, completedPrefix+event+".txt")
}

// Save overwrites both backing files with the current task texts.
func (s *FileStore) Save(event string, pending, completed []*model.Task) error {
	if err := writeLines(s.pendingPath(event), pending); err != nil {
		return fmt.Errorf("save pending tasks for %s: %w", event, err)
	}
	if err := writeLines(s.completedPath(event), completed); err != nil {
		return fmt.Errorf("save completed tasks for %s: %w", event, err)
	}
	return nil
}

// Load reads both backing files. A missing file yields an empty half. Each
// non-blank line becomes a default-attribute task created at now; tasks from
// the completed file are marked completed.
func (s *FileStore) Load(event string, now time.Time) (pending, completed []*model.Task, err error) {
	pending, err = readTasks(s.pendingPath(event), false, now)
	if err != nil {
		return nil, nil, fmt.Errorf("load pending tasks for %s: %w", event, err)
	}
	completed, err = readTasks(s.completedPath(event), true, now)
	if err != nil {
		return nil, nil, fmt.Errorf("load completed tasks for %s: %w", event, err)
	}
	return pending, completed, nil
}

// Discover lists the event names present in the data directory: every *.txt
// file not carrying the completed prefix, extension stripped.
func (s *FileStore) Discover() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") || strings.HasPrefix(name, completedPrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes both backing files. Missing files are not an error.
func (s *FileStore) Remove(event string) error {
	for _, path := range []string{s.pendingPath(event), s.completedPath(event)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func writeLines(path string, tasks []*model.Task) error {
	var b strings.Builder
	for _, task := range tasks {
		b.WriteString(task.Text)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func readTasks(path string, completed bool, now time.Time) ([]*model.Task, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.Task{}, nil
		}
		return nil, err
	}
	out := make([]*model.Task, 0)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		task := model.NewTask(line, now)
		task.Completed = completed
		out = append(out, task)
	}
	return out, nil
}
