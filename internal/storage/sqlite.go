package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskmaster/internal/task"
)

// SQLiteStore keeps the collection in a tasks table ordered by position.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'todo',
	due TEXT DEFAULT NULL,
	tags TEXT NOT NULL DEFAULT '[]'
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLiteStore) Load() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, title, description, status, due, tags FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		var status, tagsJSON string
		var due sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &due, &tagsJSON); err != nil {
			return nil, err
		}
		if err := t.Status.UnmarshalText([]byte(status)); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		if due.Valid && due.String != "" {
			if err := t.SetDueDate(due.String); err != nil {
				return nil, fmt.Errorf("task %s: %w", t.ID, err)
			}
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			return nil, fmt.Errorf("task %s: tags: %w", t.ID, err)
		}
		if len(tags) > 0 {
			t.Tags = tags
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the stored collection in a single transaction.
func (s *SQLiteStore) Save(tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks;`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tasks (id, position, title, description, status, due, tags) VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tasks {
		id := t.ID
		if id == "" {
			id = task.NewID()
		}
		due := sql.NullString{}
		if t.Due != nil {
			due = sql.NullString{String: t.FormatDue(), Valid: true}
		}
		tags := t.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, i, t.Title, t.Description, t.Status.String(), due, string(tagsJSON)); err != nil {
			return fmt.Errorf("insert task %q: %w", t.Title, err)
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
