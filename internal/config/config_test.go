package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "memory", cfg.Storage.MemoryDir)
	assert.Equal(t, "config", cfg.Storage.ConfigDir)
	assert.Equal(t, "exports", cfg.Storage.ExportDir)

	assert.Equal(t, 25, cfg.Context.CrossSessionWindow)
	assert.Equal(t, 50, cfg.Context.PersonalityWindow)

	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gpt-4", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.Host)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("MEMORY_DIR", "/var/lib/confidant/memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "ollama", cfg.LLM.DefaultProvider)
	assert.Equal(t, "/var/lib/confidant/memory", cfg.Storage.MemoryDir)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
context:
  cross_session_window: 10
llm:
  default_provider: anthropic
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Context.CrossSessionWindow)
	assert.Equal(t, "anthropic", cfg.LLM.DefaultProvider)
	// untouched keys keep their defaults
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 50, cfg.Context.PersonalityWindow)
}
