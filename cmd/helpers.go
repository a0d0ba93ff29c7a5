package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cfgpkg "github.com/KaramelBytes/autoeda-cli/internal/config"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/eda"
	"github.com/KaramelBytes/autoeda-cli/internal/parser"
	"github.com/KaramelBytes/autoeda-cli/internal/report"
	"github.com/KaramelBytes/autoeda-cli/internal/utils"
)

// csvFlags are the decoding overrides shared by every command that reads a file.
type csvFlags struct {
	Delimiter string
	Decimal   string
	Thousands string
}

// datasetOptions merges config and flag separators into decoding options.
func datasetOptions(c *cfgpkg.Global, f csvFlags) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	if len(c.MissingTokens) > 0 {
		opt.MissingTokens = c.MissingTokens
	}
	delim := firstNonEmpty(f.Delimiter, c.Delimiter)
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	dec := firstNonEmpty(f.Decimal, c.Decimal)
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	th := firstNonEmpty(f.Thousands, c.Thousands)
	switch strings.ToLower(th) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", th)
	}
	return opt, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// pipelineOptions builds eda options from config.
func pipelineOptions(c *cfgpkg.Global, source string) eda.Options {
	opt := eda.DefaultOptions()
	opt.Source = source
	if c.PreviewRows >= 0 {
		opt.PreviewRows = c.PreviewRows
	}
	if c.LowCardinalityMax > 0 {
		opt.Encode.LowMax = c.LowCardinalityMax
	}
	if c.IdentifierSuffixes != nil {
		opt.Profile.IdentifierSuffixes = c.IdentifierSuffixes
	}
	if c.SkewTolerance >= 0 {
		opt.Scale.Tolerance = c.SkewTolerance
	}
	return opt
}

// loadTable reads path with the configured decoding options.
func loadTable(path string, f csvFlags) (dataset.Table, *cfgpkg.Global, error) {
	c, err := currentConfig()
	if err != nil {
		return dataset.Table{}, nil, err
	}
	opt, err := datasetOptions(c, f)
	if err != nil {
		return dataset.Table{}, nil, err
	}
	t, err := parser.ParseFile(path, opt)
	if err != nil {
		return dataset.Table{}, nil, err
	}
	return t, c, nil
}

// defaultOutputPath places <name>.transformed.csv next to the input without
// overwriting an existing file.
func defaultOutputPath(input, dir string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return utils.UniquePath(dir, utils.StripExt(input)+".transformed", ".csv")
}

// writeTable writes t as CSV to path atomically.
func writeTable(path string, t dataset.Table) error {
	var b strings.Builder
	if err := dataset.WriteCSV(&b, t); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type outputOptions struct {
	Format     string // styled|text|markdown|json
	ReportPath string
	Quiet      bool
	Writer     io.Writer
}

// emitReport prints rep in the requested format and optionally saves it.
// The saved format follows the file extension (.json, otherwise Markdown).
func emitReport(rep *report.Report, opts outputOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	if !opts.Quiet {
		switch opts.Format {
		case "", "styled":
			fmt.Fprint(w, renderStyled(rep))
		case "text":
			fmt.Fprint(w, rep.Text())
		case "markdown", "md":
			fmt.Fprintln(w, rep.Markdown())
		case "json":
			b, err := rep.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
		default:
			return fmt.Errorf("unsupported --format: %s (use styled|text|markdown|json)", opts.Format)
		}
	}

	if opts.ReportPath == "" {
		return nil
	}
	var data []byte
	if strings.EqualFold(filepath.Ext(opts.ReportPath), ".json") {
		b, err := rep.JSON()
		if err != nil {
			return err
		}
		data = b
	} else {
		data = []byte(rep.Markdown())
	}
	if err := utils.SafeWriteFile(opts.ReportPath, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !opts.Quiet {
		fmt.Fprintf(w, "💾 Saved report to %s\n", opts.ReportPath)
	}
	return nil
}
