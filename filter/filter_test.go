package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllAdmitsEverything(t *testing.T) {
	f := All()
	assert.True(t, f.ShouldParse("BDT"))
	assert.True(t, f.ShouldParse("anything"))
}

func TestNewEmptyIsConfigError(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
}

func TestNewAllowList(t *testing.T) {
	f, err := New([]string{"BDT", "EDT"})
	require.NoError(t, err)
	assert.True(t, f.ShouldParse("BDT"))
	assert.False(t, f.ShouldParse("TLE"))
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(path, []byte("sf_names = [\"BDT\", \"EDT\"]\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.True(t, f.ShouldParse("BDT"))
	assert.False(t, f.ShouldParse("NOP"))
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(path, []byte("sf_names = [\"BDT\"]\nbogus = true\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsEmptyList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(path, []byte("sf_names = []\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadReportsAllViolationsTogether(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "filter.toml")
	require.NoError(t, os.WriteFile(path, []byte("sf_names = []\nbogus = true\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "bogus")
	assert.Contains(t, ce.Error(), "sf_names must not be empty")
}
