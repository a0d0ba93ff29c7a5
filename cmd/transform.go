package cmd

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/eda"
	"github.com/spf13/cobra"
)

type runMode int

const (
	modeAll runMode = iota
	modeScale
	modeEncode
)

func (m runMode) run(t dataset.Table, opt eda.Options) (*eda.Result, error) {
	switch m {
	case modeScale:
		return eda.SelectAndScale(t, opt)
	case modeEncode:
		return eda.SelectAndEncode(t, opt)
	default:
		return eda.Run(t, opt)
	}
}

// transformFlags are bound once per command.
type transformFlags struct {
	csv         csvFlags
	output      string
	reportPath  string
	format      string
	previewRows int
	lowMax      int
	dryRun      bool
	quiet       bool
}

func (f *transformFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output CSV path (default <input>.transformed.csv next to the input)")
	fl.StringVar(&f.reportPath, "report", "", "save the report to this path (.json for JSON, otherwise Markdown)")
	fl.StringVar(&f.format, "format", "styled", "terminal report format: styled|text|markdown|json")
	fl.IntVar(&f.previewRows, "preview-rows", -1, "rows kept in before/after previews (overrides config; 0 disables)")
	fl.IntVar(&f.lowMax, "low-max", 0, "largest cardinality encoded one-hot (overrides config)")
	fl.BoolVar(&f.dryRun, "dry-run", false, "report decisions without writing the output CSV")
	fl.BoolVar(&f.quiet, "quiet", false, "suppress report output")
	fl.StringVar(&f.csv.Delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	fl.StringVar(&f.csv.Decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	fl.StringVar(&f.csv.Thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
}

func newTransformCmd(use, short string, mode runMode) *cobra.Command {
	f := &transformFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], mode, f)
		},
	}
	f.bind(cmd)
	return cmd
}

func runTransform(cmd *cobra.Command, path string, mode runMode, f *transformFlags) error {
	t, c, err := loadTable(path, f.csv)
	if err != nil {
		return err
	}
	opt := pipelineOptions(c, t.Name())
	if f.previewRows >= 0 {
		opt.PreviewRows = f.previewRows
	}
	if f.lowMax > 0 {
		opt.Encode.LowMax = f.lowMax
	}
	res, err := mode.run(t, opt)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := emitReport(res.Report, outputOptions{Format: f.format, ReportPath: f.reportPath, Quiet: f.quiet, Writer: out}); err != nil {
		return err
	}
	if f.dryRun {
		return nil
	}
	dest := f.output
	if dest == "" {
		dest = defaultOutputPath(path, "")
	}
	if err := writeTable(dest, res.Table); err != nil {
		return err
	}
	slog.Debug("wrote transformed table", "path", dest, "columns", res.Table.Width(), "rows", res.Table.Rows())
	if !f.quiet {
		fmt.Fprintf(out, "✓ Wrote %s (%d columns, %d rows)\n", dest, res.Table.Width(), res.Table.Rows())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newTransformCmd("transform <file.csv>", "Scale numeric columns and encode categorical columns", modeAll))
	rootCmd.AddCommand(newTransformCmd("scale <file.csv>", "Scale numeric columns only", modeScale))
	rootCmd.AddCommand(newTransformCmd("encode <file.csv>", "Encode categorical columns only", modeEncode))
}
