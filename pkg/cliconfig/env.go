package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvAddr          = "CARDS_ADDR"
	EnvBackend       = "CARDS_BACKEND"
	EnvDataDir       = "CARDS_DATA_DIR"
	EnvCardsFile     = "CARDS_CARDS_FILE"
	EnvTemplatesFile = "CARDS_TEMPLATES_FILE"
	EnvSQLitePath    = "CARDS_SQLITE_PATH"
	EnvReadTimeout   = "CARDS_READ_TIMEOUT"
	EnvWriteTimeout  = "CARDS_WRITE_TIMEOUT"
	EnvLogLevel      = "CARDS_LOG_LEVEL"
	EnvLogFormat     = "CARDS_LOG_FORMAT"
	EnvConfig        = "CARDS_CONFIG"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; unparsable
// numbers are ignored.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setString := func(env, key string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setInt := func(env, key string, dst *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
				cfg.Sources[key] = SourceEnv
			}
		}
	}

	setString(EnvAddr, "addr", &cfg.Addr)
	setString(EnvBackend, "backend", &cfg.Backend)
	setString(EnvDataDir, "dataDir", &cfg.DataDir)
	setString(EnvCardsFile, "cardsFile", &cfg.CardsFile)
	setString(EnvTemplatesFile, "templatesFile", &cfg.TemplatesFile)
	setString(EnvSQLitePath, "sqlitePath", &cfg.SQLitePath)
	setString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setString(EnvLogFormat, "logFormat", &cfg.LogFormat)
	setInt(EnvReadTimeout, "readTimeout", &cfg.ReadTimeout)
	setInt(EnvWriteTimeout, "writeTimeout", &cfg.WriteTimeout)
}
