package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osaxon/nc-tech-test/pkg/logging"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

const maxTimeout = 3600

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if _, err := store.ParseBackend(c.Backend); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	if c.ReadTimeout < 0 || c.ReadTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("readTimeout %d is out of range (0-%d)", c.ReadTimeout, maxTimeout))
	}
	if c.WriteTimeout < 0 || c.WriteTimeout > maxTimeout {
		errs = append(errs, fmt.Errorf("writeTimeout %d is out of range (0-%d)", c.WriteTimeout, maxTimeout))
	}
	if c.LogLevel != "" && !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", string(logging.FormatText), string(logging.FormatJSON):
	default:
		errs = append(errs, fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat))
	}

	return errors.Join(errs...)
}
