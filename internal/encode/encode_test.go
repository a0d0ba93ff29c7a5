package encode

import (
	"fmt"
	"testing"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(t *testing.T, tbl dataset.Table, name string) []string {
	t.Helper()
	c, ok := tbl.Column(name)
	require.True(t, ok, "missing column %s", name)
	return c.Head(c.Len())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		card int
		want Class
	}{
		{0, ClassNone},
		{1, ClassNone},
		{2, ClassBinary},
		{3, ClassLow},
		{10, ClassLow},
		{11, ClassHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.card, DefaultLowMax), "cardinality %d", tc.card)
	}
	assert.Equal(t, ClassHigh, Classify(5, 4))
}

func TestOneHotCity(t *testing.T) {
	tbl := dataset.MustNew("t",
		dataset.NumericColumn("x", dataset.Floats(1, 2, 3, 4, 5, 6)),
		dataset.TextColumn("city", dataset.Strings("A", "A", "B", "C", "C", "C")),
		dataset.NumericColumn("y", dataset.Floats(0, 0, 0, 1, 1, 1)),
	)
	out, decisions, errs := SelectAndEncode(tbl, []string{"city"}, DefaultOptions())
	require.Empty(t, errs)
	require.Len(t, decisions, 1)

	d := decisions[0]
	assert.Equal(t, ClassLow, d.Class)
	assert.Equal(t, 3, d.Cardinality)
	oh, ok := d.Encoder.(OneHotEncoder)
	require.True(t, ok)
	assert.Equal(t, []string{"city_A", "city_B", "city_C"}, oh.Columns)

	assert.Equal(t, []string{"x", "city_A", "city_B", "city_C", "y"}, out.Names())
	assert.Equal(t, []string{"1", "1", "0", "0", "0", "0"}, column(t, out, "city_A"))
	assert.Equal(t, []string{"0", "0", "1", "0", "0", "0"}, column(t, out, "city_B"))
	assert.Equal(t, []string{"0", "0", "0", "1", "1", "1"}, column(t, out, "city_C"))
}

func TestOneHotRowsSumToOne(t *testing.T) {
	l := dataset.NewLabels([]string{"red", "", "blue", "green", "red", ""}, []bool{true, false, true, true, true, false})
	tbl := dataset.MustNew("t", dataset.TextColumn("colour", l))
	out, decisions, errs := SelectAndEncode(tbl, []string{"colour"}, DefaultOptions())
	require.Empty(t, errs)
	require.Len(t, decisions, 1)
	assert.Equal(t, 4, decisions[0].Cardinality)
	assert.Equal(t, []string{"colour_missing", "colour_blue", "colour_green", "colour_red"}, out.Names())

	cols := out.Columns()
	for r := 0; r < out.Rows(); r++ {
		var sum float64
		for _, c := range cols {
			x, ok := c.Num.At(r)
			require.True(t, ok)
			sum += x
		}
		assert.Equal(t, 1.0, sum, "row %d", r)
	}
}

func TestBinaryLabelEncoding(t *testing.T) {
	tbl := dataset.MustNew("t", dataset.TextColumn("smoker", dataset.Strings("yes", "no", "no", "yes")))
	out, decisions, errs := SelectAndEncode(tbl, []string{"smoker"}, DefaultOptions())
	require.Empty(t, errs)
	require.Len(t, decisions, 1)
	assert.Equal(t, ClassBinary, decisions[0].Class)
	assert.Equal(t, map[string]string{"no": "0", "yes": "1"}, decisions[0].Encoder.Mapping())
	assert.Equal(t, []string{"1", "0", "0", "1"}, column(t, out, "smoker"))

	c, _ := out.Column("smoker")
	assert.Equal(t, dataset.KindNumeric, c.Kind)
}

func TestBinaryWithMissingCategory(t *testing.T) {
	l := dataset.NewLabels([]string{"x", "", "x"}, []bool{true, false, true})
	tbl := dataset.MustNew("t", dataset.TextColumn("flag", l))
	out, decisions, errs := SelectAndEncode(tbl, []string{"flag"}, DefaultOptions())
	require.Empty(t, errs)
	require.Len(t, decisions, 1)
	assert.Equal(t, 2, decisions[0].Cardinality)
	assert.Equal(t, []string{"1", "0", "1"}, column(t, out, "flag"))
}

func TestFrequencyCountryCode(t *testing.T) {
	vals := []string{"US", "US", "US", "US"}
	for i := 0; i < 14; i++ {
		vals = append(vals, fmt.Sprintf("C%02d", i))
	}
	tbl := dataset.MustNew("t", dataset.TextColumn("country_code", dataset.Strings(vals...)))
	out, decisions, errs := SelectAndEncode(tbl, []string{"country_code"}, DefaultOptions())
	require.Empty(t, errs)
	require.Len(t, decisions, 1)
	assert.Equal(t, ClassHigh, decisions[0].Class)
	assert.Equal(t, 15, decisions[0].Cardinality)

	got := column(t, out, "country_code")
	for i, s := range got {
		if i < 4 {
			assert.Equal(t, "4", s)
		} else {
			assert.Equal(t, "1", s)
		}
	}
}

func TestDecisionIgnoresRowOrder(t *testing.T) {
	a := dataset.TextColumn("c", dataset.Strings("b", "a", "c", "a"))
	b := dataset.TextColumn("c", dataset.Strings("a", "c", "a", "b"))
	da, err := Fit(a, DefaultOptions())
	require.NoError(t, err)
	db, err := Fit(b, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestLowCardinalityLeftUnchanged(t *testing.T) {
	tbl := dataset.MustNew("t",
		dataset.TextColumn("const", dataset.Strings("k", "k", "k")),
		dataset.TextColumn("empty", dataset.NewLabels([]string{"", "", ""}, []bool{false, false, false})),
	)
	out, decisions, errs := SelectAndEncode(tbl, []string{"const", "empty"}, DefaultOptions())
	assert.Empty(t, errs)
	assert.Empty(t, decisions)
	assert.Equal(t, []string{"k", "k", "k"}, column(t, out, "const"))
	assert.Equal(t, tbl.Names(), out.Names())
}

func TestIndicatorCollisionFailsColumnOnly(t *testing.T) {
	tbl := dataset.MustNew("t",
		dataset.TextColumn("city", dataset.Strings("A", "B", "C")),
		dataset.NumericColumn("city_A", dataset.Floats(9, 9, 9)),
		dataset.TextColumn("size", dataset.Strings("s", "m", "l")),
	)
	out, decisions, errs := SelectAndEncode(tbl, []string{"city", "size"}, DefaultOptions())
	require.Len(t, errs, 1)
	assert.True(t, common.IsTransformFailed(errs[0]))
	require.Len(t, decisions, 1)
	assert.Equal(t, "size", decisions[0].Column)
	assert.Equal(t, []string{"city", "city_A", "size_l", "size_m", "size_s"}, out.Names())
	assert.Equal(t, []string{"A", "B", "C"}, column(t, out, "city"))
}

func TestMissingLabelClashIsReported(t *testing.T) {
	l := dataset.NewLabels([]string{"missing", "", "a"}, []bool{true, false, true})
	_, err := Fit(dataset.TextColumn("c", l), DefaultOptions())
	require.Error(t, err)
	assert.True(t, common.IsTransformFailed(err))
}
