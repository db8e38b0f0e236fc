package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osaxon/nc-tech-test/pkg/cli/internal/output"
	"github.com/osaxon/nc-tech-test/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the JSON data files for errors",
	Long: `Validate the configured cards and templates files without starting the server.

This command checks:
  - JSON syntax of both files
  - Card shape (required fields and types)
  - Card id format (cardNNN) and uniqueness
  - Cover pages that reference unknown templates

Exits non-zero when any error is found.`,
	Example: `  # Validate ./data/cards.json and ./data/templates.json
  cardsd validate

  # Validate another directory, machine readable
  cardsd validate --data-dir /srv/cards --json`,
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

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := output.JSON(out, report); err != nil {
				return err
			}
		} else {
			printReport(cmd, report)
		}

		if !report.Result.Valid {
			return fmt.Errorf("%w: %d error(s)", ErrValidationFailed, len(report.Result.Errors))
		}
		return nil
	},
}

// readDataset loads both data files and validates them together.
func readDataset(cardsPath, templatesPath string) (*validation.DatasetReport, error) {
	cardsData, err := os.ReadFile(cardsPath)
	if err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	templatesData, err := os.ReadFile(templatesPath)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	report, err := validation.ValidateDataset(cardsData, templatesData)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func printReport(cmd *cobra.Command, report *validation.DatasetReport) {
	out := cmd.OutOrStdout()
	if report.Result.Valid {
		fmt.Fprintln(out, output.Success("✓ %d cards and %d templates are valid", report.Cards, report.Templates))
		return
	}
	for _, e := range report.Result.Errors {
		fmt.Fprintln(out, output.Failure("✗ %s", e.Error()))
	}
}

func init() {
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(validateCmd)
}
