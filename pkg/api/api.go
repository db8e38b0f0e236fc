package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/osaxon/nc-tech-test/pkg/logging"
	"github.com/osaxon/nc-tech-test/pkg/store"
	"github.com/osaxon/nc-tech-test/pkg/validation"
)

// API exposes the cards REST interface over a card and template store.
type API struct {
	cards     store.CardStore
	templates store.TemplateStore
	validator *validation.CardValidator

	// mu serializes read-modify-write sequences on the card store.
	mu sync.Mutex

	addr         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	version      string
	startTime    time.Time
	log          *slog.Logger

	handler    http.Handler
	httpServer *http.Server
}

// New creates an API backed by the given stores.
func New(cards store.CardStore, templates store.TemplateStore, opts ...Option) *API {
	a := &API{
		cards:        cards,
		templates:    templates,
		validator:    validation.MustCardValidator(validation.ModeCreate),
		addr:         DefaultAddr,
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		startTime:    time.Now(),
		log:          logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	// Outermost first: request id, then access log, then panic recovery.
	a.handler = requestIDMiddleware(a.loggingMiddleware(a.recoveryMiddleware(mux)))

	a.httpServer = &http.Server{
		Addr:              a.addr,
		Handler:           a.handler,
		ReadTimeout:       a.readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
	return a
}

// Handler returns the fully wrapped HTTP handler.
func (a *API) Handler() http.Handler {
	return a.handler
}

// Addr returns the configured listen address.
func (a *API) Addr() string {
	return a.addr
}

// ListenAndServe listens on the configured address and blocks until the
// server stops. It returns nil after a graceful Shutdown.
func (a *API) ListenAndServe() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	return a.Serve(ln)
}

// Serve accepts connections on ln until the server stops.
func (a *API) Serve(ln net.Listener) error {
	a.startTime = time.Now()
	a.log.Info("starting cards API", "addr", ln.Addr().String())
	if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests until
// ctx expires.
func (a *API) Shutdown(ctx context.Context) error {
	a.log.Info("stopping cards API")
	return a.httpServer.Shutdown(ctx)
}

// Uptime returns the API uptime in seconds.
func (a *API) Uptime() int {
	return int(time.Since(a.startTime).Seconds())
}
