package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandInputsDedupesAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.csv", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x\n1\n"), 0o644))
	}
	got := ExpandInputs([]string{
		filepath.Join(dir, "*.csv"),
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "nope.csv"),
	})
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, got)
}

func TestUniquePathAddsSuffix(t *testing.T) {
	dir := t.TempDir()
	first := UniquePath(dir, "sales", ".csv")
	assert.Equal(t, filepath.Join(dir, "sales.csv"), first)
	require.NoError(t, SafeWriteFile(first, []byte("x")))
	assert.Equal(t, filepath.Join(dir, "sales__2.csv"), UniquePath(dir, "sales", ".csv"))
	assert.Equal(t, "sales", StripExt("/tmp/in/sales.csv"))
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
