package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osaxon/nc-tech-test/pkg/api"
	"github.com/osaxon/nc-tech-test/pkg/cliconfig"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

// serveFlags holds the serve-only flags.
type serveFlags struct {
	addr         string
	readTimeout  int
	writeTimeout int
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the cards HTTP API in the foreground",
	Long: `Run the cards HTTP API until interrupted.

Routes:
  GET    /cards             list formatted cards (optional ?filter=<expr>)
  POST   /cards             create a card
  GET    /cards/{cardId}    fetch one formatted card
  DELETE /cards/{cardId}    delete a card
  GET    /health            liveness probe`,
	Example: `  # Serve the JSON files in ./data on :9090
  cardsd serve

  # Serve from SQLite on another port
  cardsd serve --backend sqlite --sqlite-path /var/lib/cardsd/cards.db --addr :8080

  # Use a config file with JSON logs
  cardsd serve --config cardsd.yaml --log-format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := globalFlags.toConfig()
		flags.Addr = serveFlagVals.addr
		flags.ReadTimeout = serveFlagVals.readTimeout
		flags.WriteTimeout = serveFlagVals.writeTimeout

		cfg, err := resolveConfig(flags)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg)
	},
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func runServe(ctx context.Context, cfg *cliconfig.Config) error {
	log := newLogger(cfg, os.Stderr)

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("error closing store", "error", err)
		}
	}()

	server := api.New(st, st,
		api.WithAddr(cfg.Addr),
		api.WithLogger(log),
		api.WithReadTimeout(cfg.ReadTimeoutDuration()),
		api.WithWriteTimeout(cfg.WriteTimeoutDuration()),
		api.WithVersion(Version),
	)

	log.Info("configuration loaded",
		"backend", cfg.Backend,
		"data_dir", cfg.DataDir,
		"sqlite_path", cfg.SQLitePath,
		"config_file", cfg.ConfigFile,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.addr, "addr", "a", "", "Listen address (default \":9090\")")
	serveCmd.Flags().IntVar(&f.readTimeout, "read-timeout", 0, "Read timeout in seconds (default 30)")
	serveCmd.Flags().IntVar(&f.writeTimeout, "write-timeout", 0, "Write timeout in seconds (default 30)")
}
