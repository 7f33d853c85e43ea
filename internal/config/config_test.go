package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  rest:
    base_url: https://example.supabase.co
    service_key: sk-test
auth:
  jwt_secret: shh
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8087", c.Server.ListenAddress)
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "rest", c.Backend.Type)
	assert.Equal(t, 15*time.Second, c.Backend.REST.Timeout)
	assert.Equal(t, 3, c.Backend.REST.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, c.Backend.REST.Backoff)
	assert.Equal(t, 6, c.View.PageSize)
	assert.Equal(t, 5, c.View.RecentLimit)
}

func TestLoadExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: ":9999"
backend:
  type: postgres
  postgres:
    dsn: postgres://jetdash@localhost/jetdash?sslmode=disable
auth:
  jwt_secret: shh
view:
  page_size: 12
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.Server.ListenAddress)
	assert.Equal(t, "postgres", c.Backend.Type)
	assert.Equal(t, 12, c.View.PageSize)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "auth:\n  jwt_secret: shh\n"))
	assert.ErrorContains(t, err, "base_url")

	_, err = Load(writeConfig(t, `
backend:
  type: postgres
auth:
  jwt_secret: shh
`))
	assert.ErrorContains(t, err, "dsn")

	_, err = Load(writeConfig(t, `
backend:
  rest:
    base_url: https://example.supabase.co
`))
	assert.ErrorContains(t, err, "jwt_secret")

	_, err = Load(writeConfig(t, `
backend:
  type: dynamo
auth:
  jwt_secret: shh
`))
	assert.ErrorContains(t, err, "unsupported backend type")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
