package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
	assert.Equal(t, ".", cfg.Workspace.Root)
	assert.Equal(t, ".vscode/sitemap-generator.json", cfg.Workspace.SettingsFile)
	assert.False(t, cfg.Publish.Enabled)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, []string{"**/.git/**", "**/node_modules/**", "**/*.tmp"}, cfg.Watch.Ignore)
	assert.Equal(t, 500, cfg.Watch.QueueSize)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WORKSPACE_ROOT", "/srv/site")
	t.Setenv("WATCH_DEBOUNCE", "1s")
	t.Setenv("WATCH_IGNORE", "**/dist/**")
	t.Setenv("PUBLISH_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/site", cfg.Workspace.Root)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, []string{"**/dist/**"}, cfg.Watch.Ignore)
	assert.True(t, cfg.Publish.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PUBLISH_PREFIX=sites/example\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PUBLISH_PREFIX") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "sites/example", cfg.Publish.Prefix)
}
