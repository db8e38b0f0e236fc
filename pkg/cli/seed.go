package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/cli/internal/output"
	"github.com/osaxon/nc-tech-test/pkg/store/sqlite"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the JSON data files into the SQLite database",
	Long: `Read cards.json and templates.json and replace the contents of the SQLite
database with them, whatever --backend is set to. The dataset is validated first; use --force to import
data that fails validation.`,
	Example: `  # Import ./data into ./data/cards.db
  cardsd seed

  # Import elsewhere
  cardsd seed --data-dir fixtures --sqlite-path /tmp/cards.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(globalFlags.toConfig())
		if err != nil {
			return err
		}

		fileCfg := cfg.FileStoreConfig()
		report, err := readDataset(fileCfg.CardsPath(), fileCfg.TemplatesPath())
		if err != nil {
			return err
		}
		if !report.Result.Valid {
			printReport(cmd, report)
			if !seedForce {
				return fmt.Errorf("%w: %d error(s); use --force to import anyway", ErrValidationFailed, len(report.Result.Errors))
			}
			output.Warn(cmd.ErrOrStderr(), "importing a dataset with %d validation error(s)", len(report.Result.Errors))
		}

		cards, templates, err := decodeDataset(fileCfg.CardsPath(), fileCfg.TemplatesPath())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := sqlite.Open(ctx, cfg.SQLitePath, newLogger(cfg, cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.ReplaceAll(ctx, cards); err != nil {
			return err
		}
		if err := db.ImportTemplates(ctx, templates); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), output.Success("Seeded %d cards and %d templates into %s", len(cards), len(templates), db.Path()))
		return nil
	},
}

func decodeDataset(cardsPath, templatesPath string) ([]card.Card, []card.Template, error) {
	var cards []card.Card
	if err := decodeFile(cardsPath, &cards); err != nil {
		return nil, nil, err
	}
	var templates []card.Template
	if err := decodeFile(templatesPath, &templates); err != nil {
		return nil, nil, err
	}
	return cards, templates, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Import even if validation fails")
	rootCmd.AddCommand(seedCmd)
}
