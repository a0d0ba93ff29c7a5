// Package summary produces describe-style statistics and a target-column
// suggestion for a loaded table.
package summary

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/profile"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// TargetNames are the column names recognized as a prediction target.
var TargetNames = []string{"target", "label", "y"}

// Summary is the shape of a table plus per-column statistics.
type Summary struct {
	Name     string            `json:"name"`
	Rows     int               `json:"rows"`
	Columns  []string          `json:"columns"`
	Profiles []profile.Profile `json:"profiles"`
	// Stats holds the describe table; the first row is the header.
	Stats [][]string `json:"stats"`
}

// Frame converts t into a gota DataFrame. Missing cells become NaN elements.
func Frame(t dataset.Table) dataframe.DataFrame {
	cols := t.Columns()
	ss := make([]series.Series, len(cols))
	for i, c := range cols {
		vals := make([]string, c.Len())
		for r := range vals {
			vals[r] = c.Cell(r)
			if isMissing(c, r) {
				vals[r] = "NaN"
			}
		}
		typ := series.String
		if c.Kind == dataset.KindNumeric {
			typ = series.Float
		}
		ss[i] = series.New(vals, typ, c.Name)
	}
	return dataframe.New(ss...)
}

func isMissing(c dataset.Column, r int) bool {
	if c.Kind == dataset.KindNumeric {
		_, ok := c.Num.At(r)
		return !ok
	}
	_, ok := c.Cat.At(r)
	return !ok
}

// Describe computes summary statistics for every column of t.
func Describe(t dataset.Table) (*Summary, error) {
	if t.Width() == 0 {
		return nil, fmt.Errorf("describe: table has no columns")
	}
	df := Frame(t)
	if df.Err != nil {
		return nil, fmt.Errorf("build frame: %w", df.Err)
	}
	desc := df.Describe()
	if desc.Err != nil {
		return nil, fmt.Errorf("describe: %w", desc.Err)
	}
	return &Summary{
		Name:     t.Name(),
		Rows:     df.Nrow(),
		Columns:  df.Names(),
		Profiles: profile.Build(t),
		Stats:    desc.Records(),
	}, nil
}

// SuggestTarget returns the first column named like a target (case-insensitive),
// otherwise the last column. It returns "" for an empty list.
func SuggestTarget(names []string) string {
	if len(names) == 0 {
		return ""
	}
	for _, n := range names {
		for _, want := range TargetNames {
			if strings.EqualFold(strings.TrimSpace(n), want) {
				return n
			}
		}
	}
	return names[len(names)-1]
}

// Markdown renders the summary with the same bracketed sections as transform reports.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(s.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, p := range s.Profiles {
		b.WriteString(fmt.Sprintf("- %s: %s (unique %d, missing %d)\n", p.Name, p.Kind, p.Cardinality, p.Missing))
	}
	if len(s.Stats) > 0 {
		b.WriteString("\n[STATISTICS]\n")
		for i, row := range s.Stats {
			b.WriteString("| ")
			b.WriteString(strings.Join(row, " | "))
			b.WriteString(" |\n")
			if i == 0 {
				b.WriteString("|")
				for range row {
					b.WriteString("---|")
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
