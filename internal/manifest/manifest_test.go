package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), m)
}

func TestLoadOverlaysOnlySetKeys(t *testing.T) {
	dir := t.TempDir()
	content := "python_version = \"3.11\"\ndata_bundles = [\"spine_template\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "3.11", m.PythonVersion)
	assert.Equal(t, []string{"spine_template"}, m.DataBundles)
	assert.Equal(t, Default().MinMacOSMajor, m.MinMacOSMajor)
	assert.Equal(t, Default().BootstrapURL, m.BootstrapURL)
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("python_version = ["), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
