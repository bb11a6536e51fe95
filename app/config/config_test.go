package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvToken, "secret")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvBaseURL, "")

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.LLM.Token)
	assert.Equal(t, DefaultBaseURL, cfg.LLM.BaseURL)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, float32(0.3), cfg.LLM.Temperature)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"exit", "quit"}, cfg.Session.ExitWords)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ZeroTemperatureIsKept(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvToken, "secret")

	path := writeFile(t, dir, "config.yaml", `
llm:
  temperature: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.LLM.Temperature)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvToken, "")

	_, err := Load("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to validate config")
}

func TestLoad_YAMLAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvModel, "command-r-plus")
	t.Setenv(EnvBaseURL, "")

	path := writeFile(t, dir, "config.yaml", `
log:
  level: info
llm:
  token: from-file
  model: command-light
  timeout: 5s
session:
  exit_words: [bye]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.Token)
	assert.Equal(t, "command-r-plus", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"bye"}, cfg.Session.ExitWords)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvToken, "")
	require.NoError(t, os.Unsetenv(EnvToken))

	writeFile(t, dir, ".env", EnvToken+"=dotenv-secret\n")
	t.Cleanup(func() { _ = os.Unsetenv(EnvToken) })

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.LLM.Token)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvToken, "secret")

	path := writeFile(t, dir, "config.yaml", "llm: [not, a, map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvToken, "secret")

	path := writeFile(t, dir, "config.yaml", "log:\n  level: loud\n")

	_, err := Load(path)
	require.Error(t, err)
}
