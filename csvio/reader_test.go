package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadColumn(t *testing.T) {
	path := writeCSV(t, "channel_id,channel_url\nUCone,https://example.com/one\n,https://example.com/two\nUCthree,\n")

	got, err := ReadColumn(path, "channel_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"UCone", "UCthree"}, got, "empty cells are dropped")
}

func TestReadColumnMissing(t *testing.T) {
	path := writeCSV(t, "channel_url\nhttps://example.com/one\n")

	_, err := ReadColumn(path, "channel_id")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "channel_id", missing.Column)
	assert.Equal(t, path, missing.Path)
}

func TestReadColumnIfPresent(t *testing.T) {
	path := writeCSV(t, "channel_url\nhttps://example.com/one\n")

	got, err := ReadColumnIfPresent(path, "channel_id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadColumnEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	got, err := ReadColumnIfPresent(path, "channel_id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadColumnRaggedRows(t *testing.T) {
	path := writeCSV(t, "a,b\n1\n2,3\n")

	got, err := ReadColumn(path, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, got, "short rows simply lack the column")
}
