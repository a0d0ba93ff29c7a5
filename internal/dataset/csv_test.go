package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csvRows = []string{
	"Group;Concentration;Score;LocaleNumber;Category;Note",
	"A;0,5;10,0;1.000,0;alpha;first",
	"A;0,6;11,0;1.100,0;alpha;",
	"A;NA;9,5;0.900,0;beta;third",
	"B;0,7;10,5;1.050,0;alpha;fourth",
}

func TestReadCSVInfersKindsAndMissing(t *testing.T) {
	opt := DefaultOptions()
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'
	tbl, err := ReadCSV(strings.NewReader(strings.Join(csvRows, "\n")), "metrics.csv", opt)
	require.NoError(t, err)

	assert.Equal(t, "metrics.csv", tbl.Name())
	assert.Equal(t, 4, tbl.Rows())
	assert.Equal(t, []string{"Group", "Concentration", "Score", "LocaleNumber", "Category", "Note"}, tbl.Names())

	conc, ok := tbl.Column("Concentration")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, conc.Kind)
	assert.Equal(t, 1, conc.Missing())
	assert.Equal(t, []float64{0.5, 0.6, 0.7}, conc.Num.Present())

	loc, _ := tbl.Column("LocaleNumber")
	assert.Equal(t, []float64{1000, 1100, 900, 1050}, loc.Num.Present())

	note, _ := tbl.Column("Note")
	assert.Equal(t, KindText, note.Kind)
	assert.Equal(t, 1, note.Missing())
	_, present := note.Cat.At(1)
	assert.False(t, present)
}

func TestReadCSVSniffsDelimiterAndStripsBOM(t *testing.T) {
	src := "\xef\xbb\xbfid\tprice\n1\t10\n2\t12\n"
	tbl, err := ReadCSV(strings.NewReader(src), "bom.csv", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "price"}, tbl.Names())
	price, _ := tbl.Column("price")
	assert.Equal(t, []float64{10, 12}, price.Num.Present())
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"header only", "a,b\n"},
		{"duplicate header", "a,a\n1,2\n"},
		{"too many fields", "a,b\n1,2,3\n"},
		{"bad quote", "a,b\n\"1,2\n3,\"4\"x\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(c.in), "bad.csv", DefaultOptions())
			require.Error(t, err)
			assert.True(t, common.IsInputFormat(err), "got %v", err)
		})
	}
}

func TestReadCSVPadsShortRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\n1\n2,x\n"), "short.csv", DefaultOptions())
	require.NoError(t, err)
	b, _ := tbl.Column("b")
	assert.Equal(t, KindText, b.Kind)
	assert.Equal(t, 1, b.Missing())
}

func TestParseNumericRejectsSpecialWords(t *testing.T) {
	for _, s := range []string{"inf", "-Infinity", "NaN", "abc", "%"} {
		_, ok := parseNumeric(s, DefaultOptions())
		assert.False(t, ok, s)
	}
	x, ok := parseNumeric("12.5%", DefaultOptions())
	require.True(t, ok)
	assert.InDelta(t, 12.5, x, 1e-12)
}

func TestWriteCSVRoundTripKeepsOrderAndMissing(t *testing.T) {
	tbl := MustNew("out",
		NumericColumn("x", NewVector([]float64{1.5, 0, -2}, []bool{true, false, true})),
		TextColumn("city", Strings("A", "B", "C")),
	)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "x,city\n1.5,A\n,B\n-2,C\n", buf.String())
}

func TestTableReplaceIsImmutable(t *testing.T) {
	src := MustNew("t",
		TextColumn("a", Strings("x", "y")),
		NumericColumn("b", Floats(1, 2)),
		TextColumn("c", Strings("p", "q")),
	)
	out, err := src.Replace("b", NumericColumn("b_1", Floats(0, 1)), NumericColumn("b_2", Floats(1, 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b_1", "b_2", "c"}, out.Names())
	assert.Equal(t, []string{"a", "b", "c"}, src.Names())

	_, err = src.Replace("a", TextColumn("c", Strings("z", "z")))
	assert.Error(t, err, "duplicate names must be rejected")
}

func TestVectorMapKeepsMissingInPlace(t *testing.T) {
	v := NewVector([]float64{1, math.NaN(), 3}, nil)
	got := v.Map(func(x float64) float64 { return x * 10 })
	a, ok := got.At(0)
	assert.True(t, ok)
	assert.Equal(t, 10.0, a)
	_, ok = got.At(1)
	assert.False(t, ok)
	assert.Equal(t, []float64{10, 30}, got.Present())
}
