// Package scaling picks, per numeric column, the rescaling method whose output
// has the smallest absolute skewness, and applies it.
package scaling

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Method names a scaling strategy. Methods is the fixed evaluation order.
type Method int

const (
	MethodStandardize Method = iota
	MethodMinMax
	MethodRobust
)

// Methods lists the candidates in evaluation order; ties go to the earlier one.
var Methods = []Method{MethodStandardize, MethodMinMax, MethodRobust}

func (m Method) String() string {
	switch m {
	case MethodStandardize:
		return "standardize"
	case MethodMinMax:
		return "min-max"
	case MethodRobust:
		return "robust"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Scaler is a fitted scaling method. The set of implementations is closed:
// Standardize, MinMax and Robust.
type Scaler interface {
	Method() Method
	Apply(x float64) float64
	Params() map[string]float64
	sealed()
}

// Standardize subtracts the mean and divides by the population standard deviation.
type Standardize struct{ Mean, Std float64 }

func (Standardize) Method() Method            { return MethodStandardize }
func (s Standardize) Apply(x float64) float64 { return (x - s.Mean) / s.Std }
func (s Standardize) Params() map[string]float64 {
	return map[string]float64{"mean": s.Mean, "std": s.Std}
}
func (Standardize) sealed() {}

// MinMax rescales to [0, 1].
type MinMax struct{ Min, Max float64 }

func (MinMax) Method() Method            { return MethodMinMax }
func (s MinMax) Apply(x float64) float64 { return (x - s.Min) / (s.Max - s.Min) }
func (s MinMax) Params() map[string]float64 {
	return map[string]float64{"min": s.Min, "max": s.Max}
}
func (MinMax) sealed() {}

// Robust subtracts the median and divides by the interquartile range.
// A zero IQR is stored as 1 so the transform stays a pure shift.
type Robust struct{ Median, IQR float64 }

func (Robust) Method() Method            { return MethodRobust }
func (s Robust) Apply(x float64) float64 { return (x - s.Median) / s.IQR }
func (s Robust) Params() map[string]float64 {
	return map[string]float64{"median": s.Median, "iqr": s.IQR}
}
func (Robust) sealed() {}

var (
	errTooFewValues = errors.New("fewer than 2 non-missing values")
	errZeroVariance = errors.New("zero variance")
)

// Fit estimates the parameters of method m on vals, which must not contain
// missing entries.
func Fit(m Method, vals []float64) (Scaler, error) {
	if len(vals) < 2 {
		return nil, errTooFewValues
	}
	switch m {
	case MethodStandardize:
		mean, std := stat.PopMeanStdDev(vals, nil)
		if std == 0 {
			return nil, errZeroVariance
		}
		return Standardize{Mean: mean, Std: std}, nil
	case MethodMinMax:
		lo, hi := floats.Min(vals), floats.Max(vals)
		if lo == hi {
			return nil, errZeroVariance
		}
		return MinMax{Min: lo, Max: hi}, nil
	case MethodRobust:
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		iqr := quantile(sorted, 0.75) - quantile(sorted, 0.25)
		if iqr == 0 {
			iqr = 1
		}
		return Robust{Median: quantile(sorted, 0.5), IQR: iqr}, nil
	default:
		return nil, fmt.Errorf("unknown scaling method %d", int(m))
	}
}

// Transform applies s to every value in vals.
func Transform(s Scaler, vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, x := range vals {
		out[i] = s.Apply(x)
	}
	return out
}

// quantile interpolates linearly between the closest ranks of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
