// Package cliconfig provides configuration types and loading for the cardsd CLI.
package cliconfig

// Config represents the complete configuration for cardsd.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (CARDS_*)
// 3. Config file (--config, or .cardsd.yaml / .cardsd.toml in the current directory,
// or ~/.config/cardsd/config.yaml)
// 4. Default values (lowest priority)
type Config struct {
	// Server settings
	Addr         string `yaml:"addr" toml:"addr" json:"addr"`
	ReadTimeout  int    `yaml:"readTimeout" toml:"readTimeout" json:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout" toml:"writeTimeout" json:"writeTimeout"`

	// Storage settings
	Backend       string `yaml:"backend" toml:"backend" json:"backend"`
	DataDir       string `yaml:"dataDir" toml:"dataDir" json:"dataDir"`
	CardsFile     string `yaml:"cardsFile,omitempty" toml:"cardsFile,omitempty" json:"cardsFile,omitempty"`
	TemplatesFile string `yaml:"templatesFile,omitempty" toml:"templatesFile,omitempty" json:"templatesFile,omitempty"`
	SQLitePath    string `yaml:"sqlitePath" toml:"sqlitePath" json:"sqlitePath"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" toml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" toml:"logFormat" json:"logFormat"`

	// ConfigFile is the file the config was read from, if any.
	ConfigFile string `yaml:"-" toml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" toml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)
