// Package cli holds the cobra commands of the taskmaster binary.
package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskmaster/internal/app"
	"taskmaster/internal/config"
	"taskmaster/internal/logging"
	"taskmaster/internal/storage"
	"taskmaster/internal/task"
	"taskmaster/internal/ui"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	DataPath   string
	Backend    string
}

// runTUI is swapped in tests so the root command can run without a terminal.
var runTUI = ui.Run

func New() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "taskmaster",
		Short:         "Keep a task list in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.ResolveConfigPath(), "Path to the config file.")
	cmd.PersistentFlags().StringVarP(&opts.DataPath, "data", "d", "", "Path to the task data file, overriding data_path.")
	cmd.PersistentFlags().StringVarP(&opts.Backend, "backend", "b", "", "Storage backend, one of 'json' or 'sqlite'.")

	addList(cmd, opts)
	addVersion(cmd)
	return cmd
}

// session is everything a command needs once config, logging and storage
// are set up.
type session struct {
	cfg    config.Config
	logger *log.Logger
	store  storage.Gateway
	tasks  []task.Task

	closers []func() error
}

func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openSession(opts *Options) (*session, error) {
	cfg, err := config.LoadOrCreate(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg, err = cfg.WithBackend(opts.Backend); err != nil {
		return nil, fmt.Errorf("select backend: %w", err)
	}
	if opts.DataPath != "" {
		cfg.DataPath = opts.DataPath
	}

	s := &session{cfg: cfg}
	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.LogLevel
	logger, logFile, err := logging.OpenFile(cfg.LogPath, logOpts)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	s.closers = append(s.closers, logFile.Close)

	store, closeStore, err := storage.Open(cfg.Backend, cfg.DataPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	s.store = store
	s.closers = append(s.closers, closeStore)

	s.tasks = storage.LoadOrDefault(store, logger)
	logger.Info("loaded tasks", "count", len(s.tasks), "backend", cfg.Backend, "path", cfg.DataPath)
	return s, nil
}

func runInteractive(opts *Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	a := app.New(s.tasks, s.store, s.logger)
	if err := runTUI(a, s.cfg); err != nil {
		s.logger.Error("program exited with error", "err", err)
		return fmt.Errorf("run program: %w", err)
	}
	if err := a.Save(); err != nil {
		s.logger.Error("failed to save on exit", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Info("saved tasks", "count", a.List.Len())
	return nil
}
