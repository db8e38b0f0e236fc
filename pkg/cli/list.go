package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osaxon/nc-tech-test/pkg/api/types"
	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/cli/internal/output"
	"github.com/osaxon/nc-tech-test/pkg/logging"
)

var listFilter string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print formatted cards",
	Long: `Print every card as the API would format it: title, cover image and id.

With --filter, only cards matching the expression are shown. Expressions see
id, title, template_id, sizes, basePrice and pages.`,
	Example: `  # Table of all cards
  cardsd list

  # Cards over 180 as JSON
  cardsd list --filter 'basePrice > 180' --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(globalFlags.toConfig())
		if err != nil {
			return err
		}

		filter, err := card.NewFilter(listFilter)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openStore(ctx, cfg, logging.Nop())
		if err != nil {
			return err
		}
		defer st.Close()

		cards, err := st.List(ctx)
		if err != nil {
			return err
		}
		if cards, err = filter.Apply(cards); err != nil {
			return err
		}
		templates, err := st.ListTemplates(ctx)
		if err != nil {
			return err
		}

		resp := types.NewCardsResponse(card.FormatCardsResponse(cards, templates))
		out := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(out, resp)
		}
		return printCardTable(out, resp.Cards)
	},
}

// printCardTable writes cards as an aligned table with a colored header row.
func printCardTable(w io.Writer, cards []card.FormattedCard) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No cards found")
		return err
	}

	var buf bytes.Buffer
	tw := output.Table(&buf)
	fmt.Fprintln(tw, "ID\tTITLE\tIMAGE")
	for _, c := range cards {
		image := c.ImageURL
		if image == "" {
			image = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.CardID, c.Title, image)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Color after alignment so escape codes do not skew column widths.
	header, rest, _ := strings.Cut(buf.String(), "\n")
	_, err := fmt.Fprintf(w, "%s\n%s", output.Header(header), rest)
	return err
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only list cards matching this expression")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}
