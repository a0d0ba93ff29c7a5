package scaling

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// DefaultTolerance is the relative margin a later method must beat the
// current best by. Every candidate is a positive affine map, so their skew
// scores agree up to rounding and smaller gaps are noise.
const DefaultTolerance = 1e-9

// Options controls selection.
type Options struct {
	Tolerance float64
}

func DefaultOptions() Options { return Options{Tolerance: DefaultTolerance} }

// Score is the absolute skewness a method produced on a column.
type Score struct {
	Method Method
	Skew   float64
}

// Decision records the method chosen for one column.
type Decision struct {
	Column string
	Scaler Scaler
	Skew   float64
	Scores []Score
}

// Skewness is the population (biased) skewness m3 / m2^1.5. It is 0 for
// constant input.
func Skewness(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m2 := stat.Moment(2, vals, nil)
	if m2 == 0 {
		return 0
	}
	return stat.Moment(3, vals, nil) / math.Pow(m2, 1.5)
}

// Select fits every method on vals and returns the one with the smallest
// absolute skewness, together with all scores in evaluation order.
func Select(vals []float64, opt Options) (Scaler, []Score, error) {
	if len(vals) < 2 {
		return nil, nil, errTooFewValues
	}
	if stat.Moment(2, vals, nil) == 0 {
		return nil, nil, errZeroVariance
	}
	tol := opt.Tolerance
	if tol < 0 || math.IsNaN(tol) {
		tol = 0
	}

	var (
		best     Scaler
		bestSkew float64
		scores   = make([]Score, 0, len(Methods))
		lastErr  error
	)
	for _, m := range Methods {
		s, err := Fit(m, vals)
		if err != nil {
			lastErr = fmt.Errorf("fit %s: %w", m, err)
			continue
		}
		sk := math.Abs(Skewness(Transform(s, vals)))
		if math.IsNaN(sk) || math.IsInf(sk, 0) {
			lastErr = fmt.Errorf("fit %s: non-finite skewness", m)
			continue
		}
		scores = append(scores, Score{Method: m, Skew: sk})
		if best == nil || sk < bestSkew-tol*math.Max(1, bestSkew) {
			best, bestSkew = s, sk
		}
	}
	if best == nil {
		return nil, scores, lastErr
	}
	return best, scores, nil
}

// ScaleColumn selects a method for c, re-fits it on the column's present
// values and maps the whole column. Missing entries stay missing in place.
func ScaleColumn(c dataset.Column, opt Options) (dataset.Column, Decision, error) {
	if c.Kind != dataset.KindNumeric {
		return c, Decision{}, common.TransformFailed(c.Name, fmt.Errorf("column is %s, not numeric", c.Kind))
	}
	present := c.Num.Present()
	chosen, scores, err := Select(present, opt)
	if err != nil {
		if err == errTooFewValues || err == errZeroVariance {
			return c, Decision{}, common.ColumnDegenerate(c.Name, err.Error())
		}
		return c, Decision{}, common.TransformFailed(c.Name, err)
	}
	fitted, err := Fit(chosen.Method(), present)
	if err != nil {
		return c, Decision{}, common.TransformFailed(c.Name, err)
	}
	d := Decision{Column: c.Name, Scaler: fitted, Scores: scores}
	for _, s := range scores {
		if s.Method == fitted.Method() {
			d.Skew = s.Skew
		}
	}
	return dataset.NumericColumn(c.Name, c.Num.Map(fitted.Apply)), d, nil
}

// SelectAndScale scales the named columns of t and returns a new table.
// Per-column problems are returned in errs; those columns pass through unchanged.
func SelectAndScale(t dataset.Table, names []string, opt Options) (dataset.Table, []Decision, []error) {
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
		scaled, d, err := ScaleColumn(c, opt)
		if err != nil {
			slog.Debug("scaling skipped", "column", name, "error", err)
			errs = append(errs, err)
			continue
		}
		next, err := out.Replace(name, scaled)
		if err != nil {
			errs = append(errs, common.TransformFailed(name, err))
			continue
		}
		out = next
		decisions = append(decisions, d)
		slog.Debug("scaled column", "column", name, "method", d.Scaler.Method().String(), "skew", d.Skew)
	}
	return out, decisions, errs
}
