package cmd

import (
	"fmt"

	"github.com/KaramelBytes/autoeda-cli/internal/summary"
	"github.com/spf13/cobra"
)

var tgtCSV csvFlags

var targetCmd = &cobra.Command{
	Use:   "target <file.csv>",
	Short: "Suggest the prediction target column of a CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, _, err := loadTable(args[0], tgtCSV)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary.SuggestTarget(t.Names()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetCmd)
	targetCmd.Flags().StringVar(&tgtCSV.Delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
}
