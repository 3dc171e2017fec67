// Package cli provides the stickyjar command-line interface.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tgienger/stickyjar/internal/config"
	"github.com/tgienger/stickyjar/internal/db"
	"github.com/tgienger/stickyjar/internal/lifecycle"
	"github.com/tgienger/stickyjar/internal/logging"
	"github.com/tgienger/stickyjar/internal/store"
	"github.com/tgienger/stickyjar/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// launchTUIFunc runs the board, allowing it to be mocked in tests.
var launchTUIFunc = func(st *store.Store) error {
	return ui.Run(st)
}

// BuildInfo is the version information set at build time
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	dbPath     string
	backend    string
	ephemeral  bool
}

// session is an opened store plus everything that must be released with it
type session struct {
	cfg       config.Config
	logger    *zap.Logger
	kv        db.KV
	store     *store.Store
	lifecycle *lifecycle.Manager
}

func (s *session) Close() error {
	return s.lifecycle.Shutdown(context.Background())
}

// NewRootCommand creates the root command for stickyjar.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "stickyjar",
		Short: "Sticky note tasks that fill a jar",
		Long: `stickyjar keeps small tasks on colored sticky notes.
Completing a note drops a token into the jar and keeps your daily streak going.

Run without arguments to open the board.`,
		Version: info.Version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			return launchTUIFunc(sess.store)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("stickyjar %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date))

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stickyjar/config.toml)")
	flags.StringVar(&opts.dbPath, "db", "", "storage file path")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: sqlite, bolt or memory")
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")

	root.AddCommand(
		newAddCommand(opts),
		newPresetCommand(opts),
		newListCommand(opts),
		newDoneCommand(opts),
		newRemoveCommand(opts),
		newClearCommand(opts),
		newStatsCommand(opts),
		newExportCommand(opts),
		newServeCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(info),
	)

	return root
}

// loadConfig reads the config file and applies flag overrides
func (o *globalOptions) loadConfig() (config.Config, string, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, "", err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}

	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.dbPath != "" {
		cfg.Storage.Path = o.dbPath
	}
	if o.ephemeral {
		cfg.Storage.Backend = db.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	if err := cfg.Resolve(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// open builds the logger, opens storage and loads the store
func (o *globalOptions) open() (*session, error) {
	cfg, _, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, flush, err := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		File:     cfg.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	lc := lifecycle.New(shutdownTimeout, logger)
	lc.Register("logger", func(context.Context) error {
		flush()
		return nil
	})

	kv, err := db.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		_ = lc.Shutdown(context.Background())
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	lc.Register("storage", func(context.Context) error {
		return kv.Close()
	})

	logger.Debug("storage opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
	)

	st := store.Open(kv,
		store.WithLogger(logger),
		store.WithJarCapacity(cfg.Jar.Capacity),
	)

	return &session{
		cfg:       cfg,
		logger:    logger,
		kv:        kv,
		store:     st,
		lifecycle: lc,
	}, nil
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stickyjar %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
			return err
		},
	}
}
