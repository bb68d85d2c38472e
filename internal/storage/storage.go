// Package storage persists the full task collection between runs.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"

	"taskmaster/internal/task"
)

const (
	DefaultDirName  = ".taskmaster"
	DefaultFileName = "tasks.json"
	DefaultDBName   = "tasks.db"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var ErrEmptyPath = errors.New("storage path is empty")

// Gateway loads and saves the whole ordered collection at once.
type Gateway interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
}

// DefaultTasks is what a fresh install starts with.
func DefaultTasks() []task.Task {
	return []task.Task{}
}

// backuper is implemented by gateways that can set aside data they failed to
// read before it is overwritten by the next save.
type backuper interface {
	Backup() (string, error)
}

// LoadOrDefault never fails: any load error is logged and replaced by the
// default collection. Unreadable data is copied aside first when the gateway
// supports it.
func LoadOrDefault(g Gateway, logger *log.Logger) []task.Task {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tasks, err := g.Load()
	if err == nil {
		return tasks
	}
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("no saved tasks, starting empty", "err", err)
		return DefaultTasks()
	}
	logger.Warn("falling back to default tasks", "err", err)
	if b, ok := g.(backuper); ok {
		path, berr := b.Backup()
		if berr != nil {
			logger.Error("failed to back up unreadable tasks", "err", berr)
		} else {
			logger.Warn("kept unreadable tasks", "backup", path)
		}
	}
	return DefaultTasks()
}

// DefaultPath returns ~/.taskmaster/<name>.
func DefaultPath(name string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DefaultDirName, name), nil
}

// Open returns the gateway for backend rooted at path. Callers close the
// returned closer when done; it is a no-op for file backed stores.
func Open(backend, path string) (Gateway, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() error { return nil }, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
