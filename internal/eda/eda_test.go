package eda

import (
	"fmt"
	"testing"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() dataset.Table {
	codes := []string{"US", "US", "US", "US"}
	for i := 0; i < 14; i++ {
		codes = append(codes, fmt.Sprintf("C%02d", i))
	}
	n := len(codes)
	price := make([]float64, n)
	ids := make([]float64, n)
	city := make([]string, n)
	flat := make([]float64, n)
	for i := range price {
		price[i] = float64(10 + i%4)
		ids[i] = float64(i + 1)
		city[i] = []string{"A", "B", "C"}[i%3]
		flat[i] = 5
	}
	price[n-1] = 500
	return dataset.MustNew("shop",
		dataset.NumericColumn("customer_id", dataset.Floats(ids...)),
		dataset.NumericColumn("price", dataset.Floats(price...)),
		dataset.TextColumn("city", dataset.Strings(city...)),
		dataset.TextColumn("country_code", dataset.Strings(codes...)),
		dataset.NumericColumn("flat", dataset.Floats(flat...)),
	)
}

func TestRunPartitionsAndTransforms(t *testing.T) {
	in := fixture()
	res, err := Run(in, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"price"}, res.Plan.Scale)
	assert.Equal(t, []string{"city", "country_code"}, res.Plan.Encode)
	assert.Equal(t, []string{"customer_id", "flat"}, res.Plan.Untouched)

	assert.Equal(t, []string{"customer_id", "price", "city_A", "city_B", "city_C", "country_code", "flat"}, res.Table.Names())
	assert.Equal(t, in.Rows(), res.Table.Rows())

	strategies := map[string]string{}
	for _, e := range res.Report.Entries {
		strategies[e.Column] = e.Strategy
	}
	assert.Equal(t, map[string]string{"price": "standardize", "city": "one-hot", "country_code": "frequency"}, strategies)
	assert.Len(t, res.Report.Untouched, 2)

	id, _ := res.Table.Column("customer_id")
	src, _ := in.Column("customer_id")
	assert.Equal(t, src.Head(in.Rows()), id.Head(in.Rows()))
}

func TestSelectAndScaleOnlyScales(t *testing.T) {
	res, err := SelectAndScale(fixture(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, fixture().Names(), res.Table.Names())
	city, _ := res.Table.Column("city")
	assert.Equal(t, dataset.KindText, city.Kind)
	require.Len(t, res.Report.Entries, 1)
	assert.Equal(t, "price", res.Report.Entries[0].Column)
}

func TestSelectAndEncodeOnlyEncodes(t *testing.T) {
	in := fixture()
	res, err := SelectAndEncode(in, DefaultOptions())
	require.NoError(t, err)
	price, _ := res.Table.Column("price")
	src, _ := in.Column("price")
	assert.Equal(t, src.Head(in.Rows()), price.Head(in.Rows()))
	assert.Len(t, res.Report.Entries, 2)
}

func TestDegenerateColumnIsReportedNotFatal(t *testing.T) {
	in := dataset.MustNew("t",
		dataset.NumericColumn("a", dataset.NewVector([]float64{1, 2, 3, 0}, []bool{true, true, true, false})),
		dataset.NumericColumn("b", dataset.NewVector([]float64{0, 0, 0, 9}, []bool{false, false, false, true})),
	)
	opt := DefaultOptions()
	opt.Profile.IdentifierSuffixes = []string{}
	res, err := Run(in, opt)
	require.NoError(t, err)
	assert.Empty(t, res.Report.Failures)
	assert.Len(t, res.Report.Entries, 1)
	a, _ := res.Table.Column("a")
	_, ok := a.Num.At(3)
	assert.False(t, ok, "missing cell stays missing")
}

// Scaling is not self-exempting: a second pass scales the scaled columns again.
func TestRerunReclassifiesScaledColumns(t *testing.T) {
	first, err := Run(fixture(), DefaultOptions())
	require.NoError(t, err)
	second, err := Run(first.Table, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"price"}, second.Plan.Scale)
	assert.Empty(t, second.Plan.Encode)
	assert.Contains(t, second.Plan.Untouched, "city_A")
	assert.Contains(t, second.Plan.Untouched, "country_code")
	assert.Equal(t, first.Table.Names(), second.Table.Names())
}

func TestEmptyTableIsInputFormat(t *testing.T) {
	_, err := Run(dataset.MustNew("none"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, common.IsInputFormat(err))

	_, err = Run(dataset.MustNew("rows", dataset.NumericColumn("x", dataset.Floats())), DefaultOptions())
	require.Error(t, err)
	assert.True(t, common.IsInputFormat(err))
}

func TestGuardRecoversPanic(t *testing.T) {
	err := guard("x", func() { panic("bad") })
	require.Error(t, err)
	assert.True(t, common.IsTransformFailed(err))
	assert.NoError(t, guard("x", func() {}))
}
