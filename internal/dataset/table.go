// Package dataset holds the in-memory tabular model the transform core operates on.
//
// Tables are immutable values: every transform builds a new Table and never
// touches the columns of its input. Numeric and text cells carry an explicit
// validity mask so missing entries are excluded from statistics while keeping
// their row position.
package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the declared type of a column.
type Kind int

const (
	KindNumeric Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "categorical"
}

// Vector is a numeric column with a validity mask.
type Vector struct {
	vals  []float64
	valid []bool
}

// NewVector copies vals and valid into a Vector. A nil valid marks every
// entry present except NaN.
func NewVector(vals []float64, valid []bool) Vector {
	v := Vector{vals: make([]float64, len(vals)), valid: make([]bool, len(vals))}
	copy(v.vals, vals)
	for i, x := range vals {
		if valid == nil {
			v.valid[i] = !math.IsNaN(x)
		} else {
			v.valid[i] = valid[i] && !math.IsNaN(x)
		}
	}
	return v
}

// Floats builds a fully present Vector; NaN entries are treated as missing.
func Floats(vals ...float64) Vector { return NewVector(vals, nil) }

func (v Vector) Len() int { return len(v.vals) }

// At returns the value at row i and whether it is present.
func (v Vector) At(i int) (float64, bool) { return v.vals[i], v.valid[i] }

// Present returns the non-missing values in row order.
func (v Vector) Present() []float64 {
	out := make([]float64, 0, len(v.vals))
	for i, x := range v.vals {
		if v.valid[i] {
			out = append(out, x)
		}
	}
	return out
}

// Missing counts missing entries.
func (v Vector) Missing() int {
	n := 0
	for _, ok := range v.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Map applies fn to present entries; missing entries stay missing.
func (v Vector) Map(fn func(float64) float64) Vector {
	out := Vector{vals: make([]float64, len(v.vals)), valid: make([]bool, len(v.vals))}
	copy(out.valid, v.valid)
	for i, x := range v.vals {
		if v.valid[i] {
			out.vals[i] = fn(x)
		} else {
			out.vals[i] = math.NaN()
		}
	}
	return out
}

// Labels is a text column with a validity mask.
type Labels struct {
	vals  []string
	valid []bool
}

// NewLabels copies vals and valid into Labels. A nil valid marks every entry present.
func NewLabels(vals []string, valid []bool) Labels {
	l := Labels{vals: make([]string, len(vals)), valid: make([]bool, len(vals))}
	copy(l.vals, vals)
	for i := range vals {
		l.valid[i] = valid == nil || valid[i]
	}
	return l
}

// Strings builds fully present Labels.
func Strings(vals ...string) Labels { return NewLabels(vals, nil) }

func (l Labels) Len() int { return len(l.vals) }

func (l Labels) At(i int) (string, bool) { return l.vals[i], l.valid[i] }

func (l Labels) Missing() int {
	n := 0
	for _, ok := range l.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Column is a named, typed sequence of cells. Num is populated for numeric
// columns, Cat for text columns.
type Column struct {
	Name string
	Kind Kind
	Num  Vector
	Cat  Labels
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, v Vector) Column {
	return Column{Name: name, Kind: KindNumeric, Num: v}
}

// TextColumn builds a text column.
func TextColumn(name string, l Labels) Column {
	return Column{Name: name, Kind: KindText, Cat: l}
}

// Len is the number of rows in the column.
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return c.Num.Len()
	}
	return c.Cat.Len()
}

// Missing is the number of missing cells.
func (c Column) Missing() int {
	if c.Kind == KindNumeric {
		return c.Num.Missing()
	}
	return c.Cat.Missing()
}

// Cell renders row i as text; missing cells render as "".
func (c Column) Cell(i int) string {
	if c.Kind == KindNumeric {
		x, ok := c.Num.At(i)
		if !ok {
			return ""
		}
		return FormatFloat(x)
	}
	s, ok := c.Cat.At(i)
	if !ok {
		return ""
	}
	return s
}

// Head renders the first n cells.
func (c Column) Head(n int) []string {
	if n > c.Len() {
		n = c.Len()
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = c.Cell(i)
	}
	return out
}

// FormatFloat renders x with the shortest representation that round-trips.
func FormatFloat(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }

// Table is an ordered set of equally long, uniquely named columns.
type Table struct {
	name  string
	rows  int
	cols  []Column
	index map[string]int
}

// New validates cols and builds a Table.
func New(name string, cols ...Column) (Table, error) {
	t := Table{name: name, cols: make([]Column, len(cols)), index: make(map[string]int, len(cols))}
	copy(t.cols, cols)
	for i, c := range cols {
		if _, dup := t.index[c.Name]; dup {
			return Table{}, fmt.Errorf("duplicate column %q", c.Name)
		}
		t.index[c.Name] = i
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return Table{}, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), t.rows)
		}
	}
	return t, nil
}

// MustNew is New for fixtures; it panics on invalid input.
func MustNew(name string, cols ...Column) Table {
	t, err := New(name, cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Table) Name() string { return t.name }
func (t Table) Rows() int    { return t.rows }
func (t Table) Width() int   { return len(t.cols) }

// Columns returns a copy of the column slice.
func (t Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Names returns column names in order.
func (t Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by name.
func (t Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Replace returns a new table where the named column is substituted by
// repl, in the same position. repl may hold zero or more columns.
func (t Table) Replace(name string, repl ...Column) (Table, error) {
	i, ok := t.index[name]
	if !ok {
		return Table{}, fmt.Errorf("no column %q", name)
	}
	cols := make([]Column, 0, len(t.cols)-1+len(repl))
	cols = append(cols, t.cols[:i]...)
	cols = append(cols, repl...)
	cols = append(cols, t.cols[i+1:]...)
	out, err := New(t.name, cols...)
	if err != nil {
		return Table{}, err
	}
	if len(out.cols) == 0 {
		out.rows = t.rows
	}
	return out, nil
}
