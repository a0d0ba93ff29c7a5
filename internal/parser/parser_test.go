package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	"github.com/KaramelBytes/autoeda-cli/internal/dataset"
	"github.com/KaramelBytes/autoeda-cli/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "hop_harvest.CSV")
	content := "plot,alpha_acids,moisture\n" +
		"A1,12.5%,74\n" +
		"A1,11.8%,NA\n" +
		"B3,10.2%,68\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	tbl, err := parser.ParseFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "hop_harvest.CSV", tbl.Name())
	assert.Equal(t, 3, tbl.Rows())

	acids, ok := tbl.Column("alpha_acids")
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, acids.Kind)
	moisture, _ := tbl.Column("moisture")
	assert.Equal(t, 1, moisture.Missing())
	plot, _ := tbl.Column("plot")
	assert.Equal(t, dataset.KindText, plot.Kind)
}

func TestParseFileRejectsOtherFormats(t *testing.T) {
	for _, name := range []string{"notes.txt", "sheet.xlsx", "data.tsv", "noext"} {
		_, err := parser.ParseFile(filepath.Join(t.TempDir(), name), dataset.DefaultOptions())
		require.Error(t, err, name)
		assert.True(t, common.IsInputFormat(err), name)
		assert.ErrorIs(t, err, parser.ErrUnsupported)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := parser.ParseFile(filepath.Join(t.TempDir(), "gone.csv"), dataset.DefaultOptions())
	require.Error(t, err)
	assert.False(t, common.IsInputFormat(err))
}
