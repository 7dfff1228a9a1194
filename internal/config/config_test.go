package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("NOTEKEEPER_DSN", "postgres://localhost/nk")
	t.Setenv("NOTEKEEPER_JWT_KEY", "secret")
	t.Setenv("NOTEKEEPER_OPENAI_API_KEY", "sk-test")
	t.Setenv("NOTEKEEPER_AI_TIMEOUT", "30s")

	c, err := Load(New(), "", true)
	require.NoError(t, err)
	require.Equal(t, ":8080", c.Addr)
	require.Equal(t, "postgres://localhost/nk", c.DSN)
	require.Equal(t, "secret", c.JWT.Key)
	require.Equal(t, "sk-test", c.OpenAI.APIKey)
	require.Equal(t, "gpt-4o-mini", c.OpenAI.Model)
	require.Equal(t, 30*time.Second, c.AI.Timeout)
	require.Equal(t, 5*time.Second, c.Shutdown.Timeout)
	require.False(t, c.Log.Dev)
	require.Zero(t, c.AI.Quota.Tokens)
	require.Equal(t, 24*time.Hour, c.AI.Quota.Window)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notekeeper.yaml")
	body := []byte(`
dsn: postgres://file/nk
jwt:
  key: from-file
openai:
  model: gpt-4o
cors:
  origins: ["http://localhost:3000"]
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv("NOTEKEEPER_JWT_KEY", "from-env")

	c, err := Load(New(), path, false)
	require.NoError(t, err)
	require.Equal(t, "postgres://file/nk", c.DSN)
	require.Equal(t, "from-env", c.JWT.Key, "environment wins over the file")
	require.Equal(t, "gpt-4o", c.OpenAI.Model)
	require.Equal(t, []string{"http://localhost:3000"}, c.CORS.Origins)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("NOTEKEEPER_DSN", "")
	t.Setenv("NOTEKEEPER_JWT_KEY", "")

	_, err := Load(New(), "", true)
	require.Error(t, err)
	require.ErrorContains(t, err, "dsn is required")
	require.ErrorContains(t, err, "jwt.key is required")
	require.ErrorContains(t, err, "openai.api_key is required")

	t.Setenv("NOTEKEEPER_DSN", "postgres://localhost/nk")
	t.Setenv("NOTEKEEPER_JWT_KEY", "k")
	t.Setenv("NOTEKEEPER_AI_QUOTA_TOKENS", "1000")
	t.Setenv("NOTEKEEPER_AI_QUOTA_WINDOW", "0s")
	_, err = Load(New(), "", false)
	require.ErrorContains(t, err, "ai.quota.window must be positive")

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.Error(t, err)
}
