package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no makeready.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "makeready.db", cfg.Store.Path)
	assert.Equal(t, "prefer_analysis", cfg.Engine.AttachmentPolicy)
	assert.Equal(t, "prefer_analysis", cfg.Engine.AttributePolicy)
	assert.False(t, cfg.Engine.MidspanPointFallback)
	assert.Equal(t, 4, cfg.Engine.Concurrency)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
engine:
  attachment_policy: highlight_differences
  concurrency: 8
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "makeready.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "highlight_differences", cfg.Engine.AttachmentPolicy)
	assert.Equal(t, 8, cfg.Engine.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, "makeready.db", cfg.Store.Path)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
engine:
  attachment_policy: prefer_survey
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "makeready.yaml"), []byte(yaml), 0644))

	t.Setenv("MAKEREADY_LOG_LEVEL", "warn")
	t.Setenv("MAKEREADY_ENGINE_ATTACHMENT_POLICY", "highlight_differences")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "highlight_differences", cfg.Engine.AttachmentPolicy)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("MAKEREADY_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config that passes validation.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Path = "makeready.db"
	cfg.Engine.AttachmentPolicy = "prefer_analysis"
	cfg.Engine.AttributePolicy = "prefer_analysis"
	cfg.Engine.Concurrency = 4
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateProcess(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("process"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_MissingStorePath(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Path = ""

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.path is required")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidatePolicyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Engine.AttachmentPolicy = "bogus"
	err := cfg.Validate("process")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "attachment_policy")

	cfg.Engine.AttachmentPolicy = "prefer_survey"
	cfg.Engine.Concurrency = 0
	err = cfg.Validate("process")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency must be between 1 and 64")

	cfg.Engine.Concurrency = 64
	assert.NoError(t, cfg.Validate("process"))
}
