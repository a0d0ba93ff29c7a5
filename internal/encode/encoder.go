// Package encode classifies categorical columns by cardinality and replaces
// them with numeric encodings.
package encode

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
)

// MissingLabel names the category that missing cells form.
const MissingLabel = "missing"

// DefaultLowMax is the largest cardinality encoded one-hot.
const DefaultLowMax = 10

// Class is the cardinality class of a categorical column.
type Class int

const (
	ClassNone Class = iota
	ClassBinary
	ClassLow
	ClassHigh
)

func (c Class) String() string {
	switch c {
	case ClassBinary:
		return "binary"
	case ClassLow:
		return "low"
	case ClassHigh:
		return "high"
	default:
		return "none"
	}
}

// Classify maps a cardinality to its class. lowMax below 3 is raised to 3.
func Classify(cardinality, lowMax int) Class {
	if lowMax < 3 {
		lowMax = 3
	}
	switch {
	case cardinality == 2:
		return ClassBinary
	case cardinality >= 3 && cardinality <= lowMax:
		return ClassLow
	case cardinality > lowMax:
		return ClassHigh
	default:
		return ClassNone
	}
}

// Category is one distinct value of a categorical column. Missing cells
// form their own category with Missing set and an empty Value.
type Category struct {
	Value   string
	Missing bool
}

func (c Category) String() string {
	if c.Missing {
		return MissingLabel
	}
	return c.Value
}

// sortKey orders categories by string form; the missing category sorts as "".
func (c Category) sortKey() string {
	if c.Missing {
		return ""
	}
	return c.Value
}

// Encoder is a fitted encoding. The set of implementations is closed:
// LabelEncoder, OneHotEncoder and FrequencyEncoder.
type Encoder interface {
	Strategy() string
	// Apply produces the replacement column(s) for src.
	Apply(src dataset.Column) []dataset.Column
	// Mapping renders the fitted table for reporting.
	Mapping() map[string]string
	sealed()
}

// LabelEncoder maps the two categories of a binary column to 0 and 1.
type LabelEncoder struct {
	Classes []Category
}

func (LabelEncoder) Strategy() string { return "label" }

func (e LabelEncoder) Apply(src dataset.Column) []dataset.Column {
	code := make(map[Category]float64, len(e.Classes))
	for i, c := range e.Classes {
		code[c] = float64(i)
	}
	vals := make([]float64, src.Len())
	for i := range vals {
		vals[i] = code[categoryAt(src.Cat, i)]
	}
	return []dataset.Column{dataset.NumericColumn(src.Name, dataset.Floats(vals...))}
}

func (e LabelEncoder) Mapping() map[string]string {
	m := make(map[string]string, len(e.Classes))
	for i, c := range e.Classes {
		m[c.String()] = fmt.Sprint(i)
	}
	return m
}

func (LabelEncoder) sealed() {}

// OneHotEncoder expands a column into one 0/1 indicator per category.
// Columns[i] is the indicator name for Categories[i].
type OneHotEncoder struct {
	Categories []Category
	Columns    []string
}

func (OneHotEncoder) Strategy() string { return "one-hot" }

func (e OneHotEncoder) Apply(src dataset.Column) []dataset.Column {
	n := src.Len()
	ind := make([][]float64, len(e.Categories))
	pos := make(map[Category]int, len(e.Categories))
	for i, c := range e.Categories {
		ind[i] = make([]float64, n)
		pos[c] = i
	}
	for r := 0; r < n; r++ {
		if k, ok := pos[categoryAt(src.Cat, r)]; ok {
			ind[k][r] = 1
		}
	}
	out := make([]dataset.Column, len(e.Categories))
	for i := range e.Categories {
		out[i] = dataset.NumericColumn(e.Columns[i], dataset.Floats(ind[i]...))
	}
	return out
}

func (e OneHotEncoder) Mapping() map[string]string {
	m := make(map[string]string, len(e.Categories))
	for i, c := range e.Categories {
		m[c.String()] = e.Columns[i]
	}
	return m
}

func (OneHotEncoder) sealed() {}

// FrequencyEncoder replaces each value with its occurrence count in the column.
type FrequencyEncoder struct {
	Counts map[Category]int
}

func (FrequencyEncoder) Strategy() string { return "frequency" }

func (e FrequencyEncoder) Apply(src dataset.Column) []dataset.Column {
	vals := make([]float64, src.Len())
	for i := range vals {
		vals[i] = float64(e.Counts[categoryAt(src.Cat, i)])
	}
	return []dataset.Column{dataset.NumericColumn(src.Name, dataset.Floats(vals...))}
}

func (e FrequencyEncoder) Mapping() map[string]string {
	m := make(map[string]string, len(e.Counts))
	for c, n := range e.Counts {
		m[c.String()] = fmt.Sprint(n)
	}
	return m
}

func (FrequencyEncoder) sealed() {}

func categoryAt(l dataset.Labels, i int) Category {
	s, ok := l.At(i)
	if !ok {
		return Category{Missing: true}
	}
	return Category{Value: s}
}

// Count tallies every category of a text column, missing included.
func Count(l dataset.Labels) map[Category]int {
	counts := make(map[Category]int)
	for i := 0; i < l.Len(); i++ {
		counts[categoryAt(l, i)]++
	}
	return counts
}

// Sorted returns the categories of counts ordered by string form. The missing
// category sorts as the empty string and ahead of a present empty value.
func Sorted(counts map[Category]int) []Category {
	out := make([]Category, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].sortKey(), out[j].sortKey()
		if a != b {
			return a < b
		}
		return out[i].Missing && !out[j].Missing
	})
	return out
}

// IndicatorName is the one-hot column name for category c of column col.
func IndicatorName(col string, c Category) string {
	return col + "_" + c.String()
}
