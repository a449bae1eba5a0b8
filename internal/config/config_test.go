package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Load_Applies_Defaults_When_Nothing_Else_Present(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-such-xdg"))

	cfg, err := Load(dir, "", Config{})
	require.NoError(t, err)
	require.Equal(t, 10, cfg.WorkerCapMultiplier)
	require.Equal(t, "/tmp", cfg.ListenDir)
}

func Test_Load_Project_Config_Overrides_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-such-xdg"))

	writeJSONC(t, filepath.Join(dir, FileName), `{
		// project docs live here
		"doc_root": "./docs",
		"cache_capacity": 16,
	}`)

	cfg, err := Load(dir, "", Config{})
	require.NoError(t, err)
	require.Equal(t, "./docs", cfg.DocRoot)
	require.Equal(t, 16, cfg.CacheCapacity)
}

func Test_Load_CLI_Overrides_Win_Over_File(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-such-xdg"))

	writeJSONC(t, filepath.Join(dir, FileName), `{"doc_root": "./docs"}`)

	cfg, err := Load(dir, "", Config{DocRoot: "./override"})
	require.NoError(t, err)
	require.Equal(t, "./override", cfg.DocRoot)
}

func Test_Load_Explicit_Config_Path_Must_Exist(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "no-such-xdg"))

	_, err := Load(dir, filepath.Join(dir, "missing.json"), Config{})
	require.Error(t, err)
}

func writeJSONC(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
