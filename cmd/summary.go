package cmd

import (
	"fmt"

	"github.com/KaramelBytes/autoeda-cli/internal/summary"
	"github.com/KaramelBytes/autoeda-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sumCSV    csvFlags
	sumFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file.csv>",
	Short: "Show shape, column list and describe statistics for a CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, _, err := loadTable(args[0], sumCSV)
		if err != nil {
			return err
		}
		s, err := summary.Describe(t)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch sumFormat {
		case "", "markdown", "md":
			fmt.Fprint(out, s.Markdown())
		case "json":
			b, err := utils.PrettyJSON(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json)", sumFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumFormat, "format", "markdown", "output format: markdown|json")
	summaryCmd.Flags().StringVar(&sumCSV.Delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	summaryCmd.Flags().StringVar(&sumCSV.Decimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	summaryCmd.Flags().StringVar(&sumCSV.Thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
}
