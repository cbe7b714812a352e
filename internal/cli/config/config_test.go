package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := &Config{APIBaseURL: "https://pest.example.com/api"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.APIBaseURL, loaded.APIBaseURL)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFindConfigFile_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	path := filepath.Join(root, ConfigFileName)
	require.NoError(t, Save(path, &Config{APIBaseURL: "http://localhost:8000/api"}))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	defer os.Chdir(originalDir)

	found, err := FindConfigFile()
	require.NoError(t, err)

	// Getwd resolves symlinks (e.g. a symlinked temp dir), so compare resolved paths
	wantPath, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	foundPath, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, wantPath, foundPath)
}

func TestLoadFromCurrentDir_MissingFileIsNotAnError(t *testing.T) {
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(originalDir)

	cfg, found, err := LoadFromCurrentDir()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, cfg)
}
