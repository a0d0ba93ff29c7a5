package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/KaramelBytes/autoeda-cli/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	tbOutDir    string
	tbReportDir string
	tbCSV       csvFlags
	tbQuiet     bool
)

var transformBatchCmd = &cobra.Command{
	Use:   "transform-batch <files...>",
	Short: "Transform multiple CSV files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := utils.ExpandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		for _, dir := range []string{tbOutDir, tbReportDir} {
			if dir == "" {
				continue
			}
			if err := utils.EnsureDir(dir); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		var bar *progressbar.ProgressBar
		if !tbQuiet {
			bar = newBatchBar(out, len(files))
		}
		for _, path := range files {
			if bar != nil {
				bar.Describe(fmt.Sprintf("[cyan]%s[reset]", filepath.Base(path)))
			}
			t, c, err := loadTable(path, tbCSV)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res, err := modeAll.run(t, pipelineOptions(c, t.Name()))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			dest := defaultOutputPath(path, tbOutDir)
			if err := writeTable(dest, res.Table); err != nil {
				return err
			}
			if tbReportDir != "" {
				rp := utils.UniquePath(tbReportDir, utils.StripExt(path)+".report", ".md")
				if err := emitReport(res.Report, outputOptions{ReportPath: rp, Quiet: true}); err != nil {
					return err
				}
			}
			slog.Info("transformed file", "input", path, "output", dest,
				"transformed", len(res.Report.Entries), "failed", len(res.Report.Failures))
			if bar != nil {
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}
		}
		if !tbQuiet {
			fmt.Fprintf(out, "✓ Transformed %d file(s)\n", len(files))
		}
		return nil
	},
}

func newBatchBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Transforming datasets...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func init() {
	rootCmd.AddCommand(transformBatchCmd)
	transformBatchCmd.Flags().StringVar(&tbOutDir, "out-dir", "", "directory for transformed CSVs (default: next to each input)")
	transformBatchCmd.Flags().StringVar(&tbReportDir, "report-dir", "", "directory for Markdown reports (omit to skip)")
	transformBatchCmd.Flags().StringVar(&tbCSV.Delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	transformBatchCmd.Flags().StringVar(&tbCSV.Decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	transformBatchCmd.Flags().StringVar(&tbCSV.Thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	transformBatchCmd.Flags().BoolVar(&tbQuiet, "quiet", false, "suppress progress and non-essential output")
}
