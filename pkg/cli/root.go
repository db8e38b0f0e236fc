package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osaxon/nc-tech-test/pkg/cli/internal/output"
)

var (
	// Persistent flags available to all subcommands
	globalFlags globalFlagVals
	jsonOutput  bool
	noColor     bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// DotEnvFile is loaded from the working directory before any command runs.
const DotEnvFile = ".env"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cardsd",
	Short: "cardsd serves greeting card data over HTTP",
	Long: `cardsd stores greeting cards and their page templates and serves them
through a small JSON API.

Data lives either in two JSON files (cards.json, templates.json) or in an
embedded SQLite database. Configuration can be provided via flags, CARDS_*
environment variables, a .env file, or a YAML/TOML configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			output.DisableColor()
		}
		return loadDotEnv(DotEnvFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if code := Run(); code != 0 {
		os.Exit(code)
	}
}

// Run executes the root command and returns the process exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&globalFlags.configFile, "config", "c", "", "Path to a YAML, JSON or TOML config file (env: CARDS_CONFIG)")
	f.StringVar(&globalFlags.backend, "backend", "", "Storage backend: file, sqlite or memory (default \"file\")")
	f.StringVar(&globalFlags.dataDir, "data-dir", "", "Directory holding cards.json and templates.json (default \"data\")")
	f.StringVar(&globalFlags.cardsFile, "cards-file", "", "Cards document, relative to --data-dir unless absolute")
	f.StringVar(&globalFlags.templatesFile, "templates-file", "", "Templates document, relative to --data-dir unless absolute")
	f.StringVar(&globalFlags.sqlitePath, "sqlite-path", "", "SQLite database path (default \"data/cards.db\")")
	f.StringVar(&globalFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	f.StringVar(&globalFlags.logFormat, "log-format", "", "Log format: text or json (default \"text\")")
	f.BoolVar(&noColor, "no-color", false, "Disable colored output")
}
