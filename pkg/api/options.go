// Option functions for configuring API.

package api

import (
	"log/slog"
	"time"
)

// Default server settings.
const (
	DefaultAddr         = ":9090"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second

	// MaxBodyBytes bounds the size of a create request body.
	MaxBodyBytes = 1 << 20
)

// Option configures an API.
type Option func(*API)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(a *API) {
		if addr != "" {
			a.addr = addr
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithReadTimeout sets the server read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(a *API) {
		if d > 0 {
			a.readTimeout = d
		}
	}
}

// WithWriteTimeout sets the server write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(a *API) {
		if d > 0 {
			a.writeTimeout = d
		}
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(version string) Option {
	return func(a *API) {
		a.version = version
	}
}
