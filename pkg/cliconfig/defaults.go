package cliconfig

import (
	"time"

	"github.com/osaxon/nc-tech-test/pkg/store/file"
)

// Default values.
const (
	DefaultAddr         = ":9090"
	DefaultBackend      = "file"
	DefaultDataDir      = "data"
	DefaultSQLitePath   = "data/cards.db"
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		Addr:         DefaultAddr,
		Backend:      DefaultBackend,
		DataDir:      DefaultDataDir,
		SQLitePath:   DefaultSQLitePath,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources:      make(map[string]string),
	}

	for _, key := range []string{
		"addr", "backend", "dataDir", "sqlitePath",
		"readTimeout", "writeTimeout", "logLevel", "logFormat",
	} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// FileStoreConfig returns the file backend settings.
func (c *Config) FileStoreConfig() file.Config {
	return file.Config{
		DataDir:       c.DataDir,
		CardsFile:     c.CardsFile,
		TemplatesFile: c.TemplatesFile,
	}
}

// ReadTimeoutDuration returns the read timeout as a time.Duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a time.Duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}
