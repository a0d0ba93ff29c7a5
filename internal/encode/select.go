package encode

import (
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
)

// Options controls encoding.
type Options struct {
	// LowMax is the upper cardinality bound of the one-hot class.
	LowMax int
}

func DefaultOptions() Options { return Options{LowMax: DefaultLowMax} }

// Decision records the encoding chosen for one column.
type Decision struct {
	Column      string
	Class       Class
	Encoder     Encoder
	Cardinality int
}

// Fit picks and fits the encoder for a text column. A nil Encoder with no
// error means the column stays unchanged (cardinality 0 or 1).
func Fit(c dataset.Column, opt Options) (Decision, error) {
	if c.Kind != dataset.KindText {
		return Decision{}, common.TransformFailed(c.Name, fmt.Errorf("column is %s, not categorical", c.Kind))
	}
	lowMax := opt.LowMax
	if lowMax == 0 {
		lowMax = DefaultLowMax
	}
	counts := Count(c.Cat)
	d := Decision{Column: c.Name, Cardinality: len(counts), Class: Classify(len(counts), lowMax)}
	switch d.Class {
	case ClassBinary:
		d.Encoder = LabelEncoder{Classes: Sorted(counts)}
	case ClassLow:
		cats := Sorted(counts)
		names := make([]string, len(cats))
		seen := make(map[string]bool, len(cats))
		for i, cat := range cats {
			names[i] = IndicatorName(c.Name, cat)
			if seen[names[i]] {
				return d, common.TransformFailed(c.Name, fmt.Errorf("indicator %q produced twice", names[i]))
			}
			seen[names[i]] = true
		}
		d.Encoder = OneHotEncoder{Categories: cats, Columns: names}
	case ClassHigh:
		d.Encoder = FrequencyEncoder{Counts: counts}
	}
	return d, nil
}

// SelectAndEncode encodes the named columns of t and returns a new table.
// Columns with cardinality 0 or 1 are left unchanged and get no decision.
// Per-column problems are returned in errs; those columns pass through unchanged.
func SelectAndEncode(t dataset.Table, names []string, opt Options) (dataset.Table, []Decision, []error) {
	var (
		decisions []Decision
		errs      []error
	)
	out := t
	for _, name := range names {
		c, ok := out.Column(name)
		if !ok {
			errs = append(errs, common.TransformFailed(name, fmt.Errorf("column not found")))
			continue
		}
		d, err := Fit(c, opt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if d.Encoder == nil {
			slog.Debug("encoding skipped", "column", name, "cardinality", d.Cardinality)
			continue
		}
		repl := d.Encoder.Apply(c)
		if err := checkCollisions(out, name, repl); err != nil {
			errs = append(errs, err)
			continue
		}
		next, err := out.Replace(name, repl...)
		if err != nil {
			errs = append(errs, common.TransformFailed(name, err))
			continue
		}
		out = next
		decisions = append(decisions, d)
		slog.Debug("encoded column", "column", name, "class", d.Class.String(), "strategy", d.Encoder.Strategy(), "cardinality", d.Cardinality)
	}
	return out, decisions, errs
}

func checkCollisions(t dataset.Table, src string, repl []dataset.Column) error {
	for _, c := range repl {
		if c.Name == src {
			continue
		}
		if _, exists := t.Column(c.Name); exists {
			return common.TransformFailed(src, fmt.Errorf("indicator %q collides with an existing column", c.Name))
		}
	}
	return nil
}
