package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "json", cfg.Source.WriteEncoding)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Setenv("COMPRAS_SOURCE_ENDPOINT", "https://example.test/records")
	t.Setenv("COMPRAS_CSV_DELIMITER", ";")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/records", cfg.Source.Endpoint)
	assert.Equal(t, ';', cfg.Delimiter())
}

func TestInitializeConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "source:\n  endpoint: https://file.test/records\n  timeout_seconds: 5\nreport:\n  output_dir: out\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://file.test/records", cfg.Source.Endpoint)
	assert.Equal(t, 5, cfg.Source.TimeoutSeconds)
	assert.Equal(t, "out", cfg.Report.OutputDir)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("COMPRAS_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("COMPRAS_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("COMPRAS_TEST_MISSING", "fallback"))
}
