package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/osaxon/nc-tech-test/pkg/cliconfig"
	"github.com/osaxon/nc-tech-test/pkg/logging"
	"github.com/osaxon/nc-tech-test/pkg/store"
	"github.com/osaxon/nc-tech-test/pkg/store/file"
	"github.com/osaxon/nc-tech-test/pkg/store/memory"
	"github.com/osaxon/nc-tech-test/pkg/store/sqlite"
)

// globalFlagVals holds the persistent flags bound on the root command. Empty
// values mean "not given" and leave lower precedence sources in place.
type globalFlagVals struct {
	configFile    string
	backend       string
	dataDir       string
	cardsFile     string
	templatesFile string
	sqlitePath    string
	logLevel      string
	logFormat     string
}

// toConfig converts the flag values to a partial config for merging.
func (f *globalFlagVals) toConfig() *cliconfig.Config {
	return &cliconfig.Config{
		Backend:       f.backend,
		DataDir:       f.dataDir,
		CardsFile:     f.cardsFile,
		TemplatesFile: f.templatesFile,
		SQLitePath:    f.sqlitePath,
		LogLevel:      f.logLevel,
		LogFormat:     f.logFormat,
	}
}

// resolveConfig merges defaults, config files, environment and the given
// flag overrides, then validates the result.
func resolveConfig(flags *cliconfig.Config) (*cliconfig.Config, error) {
	cfg, err := cliconfig.LoadAll(globalFlags.configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cliconfig.MergeConfig(cfg, flags, cliconfig.SourceFlag)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the operational logger described by cfg.
func newLogger(cfg *cliconfig.Config, out io.Writer) *slog.Logger {
	return logging.FromStrings(cfg.LogLevel, cfg.LogFormat, out)
}

// openStore opens the configured backend.
func openStore(ctx context.Context, cfg *cliconfig.Config, log *slog.Logger) (store.Store, error) {
	backend, err := store.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case store.BackendSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, log)
	case store.BackendMemory:
		// Seed from the JSON files once; later changes stay in memory.
		src := file.New(cfg.FileStoreConfig())
		cards, err := src.List(ctx)
		if err != nil {
			return nil, err
		}
		templates, err := src.ListTemplates(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("memory store seeded", "cards", len(cards), "templates", len(templates))
		return memory.New(cards, templates), nil
	default:
		s := file.New(cfg.FileStoreConfig())
		s.SetLogger(log)
		return s, nil
	}
}
