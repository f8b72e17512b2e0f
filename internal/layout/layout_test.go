package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutStartsWithBacktick(t *testing.T) {
	flat := Default.Flat()
	require.NotEmpty(t, flat)
	assert.Equal(t, "`", flat[0])
	assert.Equal(t, len(flat), Default.Len())
}

func TestNewLowercasesSymbols(t *testing.T) {
	l, err := New([][]string{{"A", "b"}, {"C"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, l.Flat())
	assert.True(t, l.Contains("A"))
	assert.True(t, l.Contains("c"))
	assert.False(t, l.Contains("F5"))
}

func TestNewRejectsEmptyRow(t *testing.T) {
	_, err := New([][]string{{"a"}, {}})
	require.ErrorIs(t, err, ErrEmptyRow)
}

func TestEmptyLayout(t *testing.T) {
	l, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Flat())
	assert.False(t, l.Contains("a"))

	var zero Layout
	assert.False(t, zero.Contains("a"))
}

func TestRowsReturnsCopy(t *testing.T) {
	l := MustNew([][]string{{"a", "b"}})
	rows := l.Rows()
	rows[0][0] = "z"
	assert.Equal(t, "a", l.Flat()[0])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dvorak.toml")
	content := "rows = [\"',.py\", \"aoeu\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"'", ",", ".", "p", "y"}, {"a", "o", "e", "u"}}, l.Rows())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestNewRejectsKeysEqualAfterLowercasing(t *testing.T) {
	_, err := New([][]string{{"a", "A"}})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestNewRejectsDuplicateAcrossRows(t *testing.T) {
	_, err := FromStrings([]string{"qwe", "asq"})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.toml")
	require.NoError(t, os.WriteFile(path, []byte("rows = [\"aA\", \"a\"]\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	require.NoError(t, os.WriteFile(path, []byte("row = [\"abc\"]\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "row")
}
