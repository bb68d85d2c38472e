package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskmaster/internal/task"
)

type document struct {
	Items []record `json:"items"`
}

type record struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      *task.Status `json:"status"`
	DueDate     string       `json:"due_date,omitempty"`
	Tags        []string     `json:"tags"`
}

func toRecord(t task.Task) record {
	tags := t.Tags
	status := t.Status
	if tags == nil {
		tags = []string{}
	}
	return record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      &status,
		DueDate:     t.FormatDue(),
		Tags:        tags,
	}
}

func (r record) toTask() (task.Task, error) {
	if r.Status == nil {
		return task.Task{}, errors.New("missing status")
	}
	t := task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      *r.Status,
	}
	if t.ID == "" {
		t.ID = task.NewID()
	}
	if r.DueDate != "" {
		if err := t.SetDueDate(r.DueDate); err != nil {
			return task.Task{}, err
		}
	}
	if len(r.Tags) > 0 {
		t.Tags = append([]string(nil), r.Tags...)
	}
	return t, nil
}

// FileStore keeps the collection in a single JSON document.
type FileStore struct {
	Path string
}

func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	return &FileStore{Path: filepath.Clean(path)}, nil
}

func (s *FileStore) Load() ([]task.Task, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	tasks := make([]task.Task, 0, len(doc.Items))
	for i, r := range doc.Items {
		t, err := r.toTask()
		if err != nil {
			return nil, fmt.Errorf("decode %s: item %d: %w", s.Path, i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save writes the document next to Path and renames it into place.
func (s *FileStore) Save(tasks []task.Task) error {
	doc := document{Items: make([]record, 0, len(tasks))}
	for _, t := range tasks {
		doc.Items = append(doc.Items, toRecord(t))
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Backup copies the current file to Path.bak, replacing an older backup.
func (s *FileStore) Backup() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	dst := s.Path + ".bak"
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}
