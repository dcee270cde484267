package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("SEND_EMAIL", "")
	t.Setenv("PORT", "")

	path := writeConfig(t, `
app:
  name: pbf-marketplace
logging:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, TransportSMTP, cfg.Notifications.Transport)
	assert.False(t, cfg.Notifications.SendEmail)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DefaultFarmers(), cfg.Directory.Farmers)
}

func TestLoadFromFile_FarmersAndEnvOverrides(t *testing.T) {
	t.Setenv("SEND_EMAIL", "true")
	t.Setenv("EMAIL_USER", "market@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("PORT", "8081")

	path := writeConfig(t, `
directory:
  farmers:
    - name: Ana Lopez
      email: ana@example.com
      product: onion
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Notifications.SendEmail)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "market@example.com", cfg.Integrations.SMTP.Username)
	assert.Equal(t, "market@example.com", cfg.Notifications.FromEmail)
	require.Len(t, cfg.Directory.Farmers, 1)
	assert.Equal(t, "onion", cfg.Directory.Farmers[0].Product)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("SEND_EMAIL", "")
	t.Setenv("REDIS_ADDR", "localhost:6390")

	path := writeConfig(t, `
storage:
  backend: redis
  redis:
    address: ${REDIS_ADDR}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6390", cfg.Storage.Redis.Address)
	assert.Equal(t, "pbf:requirements", cfg.Storage.Redis.KeyPrefix)
}

func TestLoadFromFile_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		body string
	}{
		{
			name: "live smtp without credentials",
			env:  map[string]string{"SEND_EMAIL": "true", "EMAIL_USER": "", "EMAIL_PASSWORD": ""},
			body: "app:\n  name: x\n",
		},
		{
			name: "unknown storage backend",
			env:  map[string]string{"SEND_EMAIL": ""},
			body: "storage:\n  backend: cassandra\n",
		},
		{
			name: "postgres without host",
			env:  map[string]string{"SEND_EMAIL": ""},
			body: "storage:\n  backend: postgres\n",
		},
		{
			name: "sns without topic",
			env:  map[string]string{"SEND_EMAIL": "true"},
			body: "notifications:\n  transport: sns\n",
		},
		{
			name: "farmer without product",
			env:  map[string]string{"SEND_EMAIL": ""},
			body: "directory:\n  farmers:\n    - name: Someone\n      email: a@b.c\n",
		},
		{
			name: "kafka enabled without brokers",
			env:  map[string]string{"SEND_EMAIL": ""},
			body: "events:\n  kafka:\n    enabled: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "1.5s", GetDuration(1500).String())
}

func TestLoadFromFile_RegistryPathSkipsDefaultFarmers(t *testing.T) {
	t.Setenv("SEND_EMAIL", "")

	path := writeConfig(t, `
directory:
  registry_path: configs/farmers.json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "configs/farmers.json", cfg.Directory.RegistryPath)
	assert.Empty(t, cfg.Directory.Farmers)
}
