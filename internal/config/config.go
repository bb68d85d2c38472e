package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"taskmaster/internal/storage"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogFileName    = "taskmaster.log"
)

// Keymap maps each action to the key names bubbletea reports, e.g. "ctrl+s".
type Keymap struct {
	New       []string `toml:"new"`
	Edit      []string `toml:"edit"`
	Quit      []string `toml:"quit"`
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	Top       []string `toml:"top"`
	Bottom    []string `toml:"bottom"`
	Toggle    []string `toml:"toggle"`
	Unselect  []string `toml:"unselect"`
	Delete    []string `toml:"delete"`
	Save      []string `toml:"save"`
	Cancel    []string `toml:"cancel"`
	NextField []string `toml:"next_field"`
}

type Config struct {
	Backend  string `toml:"backend"`
	DataPath string `toml:"data_path"`
	LogPath  string `toml:"log_path"`
	LogLevel string `toml:"log_level"`
	Keys     Keymap `toml:"keys"`
}

// ResolveConfigPath returns ~/.taskmaster/config.toml, or the bare file name
// when the home directory is unknown.
func ResolveConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, storage.DefaultDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.expand()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg.expand()
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultDataPath picks the file name matching the backend.
func DefaultDataPath(backend string) string {
	name := storage.DefaultFileName
	if backend == storage.BackendSQLite {
		name = storage.DefaultDBName
	}
	return filepath.Join("~", storage.DefaultDirName, name)
}

func Default() Config {
	return Config{
		Backend:  storage.BackendJSON,
		DataPath: DefaultDataPath(storage.BackendJSON),
		LogPath:  filepath.Join("~", storage.DefaultDirName, DefaultLogFileName),
		LogLevel: "info",
		Keys:     DefaultKeymap(),
	}
}

func DefaultKeymap() Keymap {
	return Keymap{
		New:       []string{"n"},
		Edit:      []string{"e"},
		Quit:      []string{"q", "esc", "ctrl+c"},
		Up:        []string{"up", "k"},
		Down:      []string{"down", "j"},
		Top:       []string{"g", "home"},
		Bottom:    []string{"G", "end"},
		Toggle:    []string{" ", "enter", "right", "l"},
		Unselect:  []string{"left", "h"},
		Delete:    []string{"ctrl+d"},
		Save:      []string{"ctrl+s"},
		Cancel:    []string{"esc"},
		NextField: []string{"tab"},
	}
}

// fillDefaults restores anything a hand-edited file left empty.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.DataPath == "" || isOtherDefault(c.DataPath, c.Backend) {
		c.DataPath = DefaultDataPath(c.Backend)
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	k, d := &c.Keys, def.Keys
	for _, pair := range []struct {
		dst *[]string
		def []string
	}{
		{&k.New, d.New}, {&k.Edit, d.Edit}, {&k.Quit, d.Quit}, {&k.Up, d.Up},
		{&k.Down, d.Down}, {&k.Top, d.Top}, {&k.Bottom, d.Bottom}, {&k.Toggle, d.Toggle},
		{&k.Unselect, d.Unselect}, {&k.Delete, d.Delete}, {&k.Save, d.Save},
		{&k.Cancel, d.Cancel}, {&k.NextField, d.NextField},
	} {
		if len(*pair.dst) == 0 {
			*pair.dst = pair.def
		}
	}
}

func (c Config) expand() (Config, error) {
	var err error
	if c.DataPath, err = homedir.Expand(c.DataPath); err != nil {
		return c, fmt.Errorf("expand data_path: %w", err)
	}
	if c.LogPath, err = homedir.Expand(c.LogPath); err != nil {
		return c, fmt.Errorf("expand log_path: %w", err)
	}
	return c, nil
}

// WithBackend switches backend and, unless the data path was customised,
// the data file to match.
func (c Config) WithBackend(backend string) (Config, error) {
	if backend == "" || backend == c.Backend {
		return c, nil
	}
	if isOtherDefault(c.DataPath, backend) {
		var err error
		if c.DataPath, err = homedir.Expand(DefaultDataPath(backend)); err != nil {
			return c, err
		}
	}
	c.Backend = backend
	return c, nil
}

// isOtherDefault reports whether path is the default data file of a backend
// other than backend, written either with ~ or expanded.
func isOtherDefault(path, backend string) bool {
	for _, b := range []string{storage.BackendJSON, storage.BackendSQLite} {
		if b == backend {
			continue
		}
		def := DefaultDataPath(b)
		if path == def {
			return true
		}
		if expanded, err := homedir.Expand(def); err == nil && path == expanded {
			return true
		}
	}
	return false
}
