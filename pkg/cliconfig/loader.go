package cliconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "cardsd"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".cardsd.yaml", ".cardsd.yml", ".cardsd.toml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml", "config.toml"}

// FindLocalConfig searches the current directory for a local config file.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findFirst(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	return findFirst(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func findFirst(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a Config from a YAML, JSON or TOML file, chosen by
// extension. Anything other than .toml is parsed as YAML, which also
// accepts JSON.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return nil, tomlConfigError(path, data, err)
		}
	} else if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &ConfigError{Path: path, Message: err.Error()}
		}
	}

	cfg.ConfigFile = path
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

func tomlConfigError(path string, data []byte, err error) error {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		line, col := FindLineColumn(data, int64(perr.Position.Start))
		if perr.Position.Line > 0 {
			line = perr.Position.Line
		}
		return &ConfigError{
			Path:    path,
			Line:    line,
			Column:  col,
			Message: perr.Message,
		}
	}
	return &ConfigError{Path: path, Message: err.Error()}
}

// FindLineColumn finds the line and column number for a byte offset.
func FindLineColumn(data []byte, offset int64) (line, col int) {
	line = 1
	col = 1
	for i := int64(0); i < offset && int(i) < len(data); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return e.Path + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + "): " + e.Message
	}
	return e.Path + ": " + e.Message
}

// LoadAll loads configuration from all sources and merges them.
// When path is set (directly or through CARDS_CONFIG) only that file is read
// and a failure to read it is an error; otherwise the global then local files
// are merged if present.
// Precedence: env > explicit or local config > global config > defaults.
// Flags are applied by the caller.
func LoadAll(path string) (*Config, error) {
	cfg := NewDefault()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	} else {
		if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
			globalCfg, err := LoadConfigFile(globalPath)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}
		if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
			localCfg, err := LoadConfigFile(localPath)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, localCfg, SourceLocal)
		}
	}

	LoadEnvConfig(cfg)
	return cfg, nil
}
