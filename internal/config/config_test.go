package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lthoerner/imei-info/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9090"
logger:
  level: DEBUG
  format: text
imei_info:
  api_key: file-key
  service_id: 4
cache:
  backend: memory
  ttl_seconds: 60
`)
	t.Setenv("API_KEY", "")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, config.DefaultServerReadTimeoutSeconds, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, config.LogLevelDebug, cfg.Logger.Level)
	assert.Equal(t, config.LogFormatText, cfg.Logger.Format)
	assert.Equal(t, "file-key", cfg.IMEIInfo.APIKey)
	assert.Equal(t, uint32(4), cfg.IMEIInfo.ServiceID)
	assert.Equal(t, config.DefaultIMEIInfoBaseURL, cfg.IMEIInfo.BaseURL)
	assert.Equal(t, config.CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, int64(60), int64(cfg.Cache.TTL().Seconds()))
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "imei_info:\n  api_key: file-key\n")

	t.Setenv("API_KEY", "env-key")
	t.Setenv("IMEI_INFO_SERVICE_ID", "76")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("LOG_MASK_IDENTIFIERS", "true")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.IMEIInfo.APIKey)
	assert.Equal(t, uint32(76), cfg.IMEIInfo.ServiceID)
	assert.Equal(t, ":7000", cfg.Server.Port)
	assert.True(t, cfg.Logger.MaskIdentifiers)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated\n")
	_, err := config.LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "Defaults are valid", mutate: func(*config.Config) {}},
		{
			name:    "Empty port",
			mutate:  func(c *config.Config) { c.Server.Port = ":" },
			wantErr: "server.port",
		},
		{
			name:    "Unknown log level",
			mutate:  func(c *config.Config) { c.Logger.Level = "trace" },
			wantErr: "logger.level",
		},
		{
			name:    "Relative base URL",
			mutate:  func(c *config.Config) { c.IMEIInfo.BaseURL = "dash.imei.info" },
			wantErr: "imei_info.base_url",
		},
		{
			name:    "Zero client timeout",
			mutate:  func(c *config.Config) { c.IMEIInfo.ClientTimeoutSeconds = 0 },
			wantErr: "imei_info.client_timeout_seconds",
		},
		{
			name:    "Zero failure threshold",
			mutate:  func(c *config.Config) { c.CircuitBreaker.FailureThreshold = 0 },
			wantErr: "circuit_breaker.failure_threshold",
		},
		{
			name:    "Unknown cache backend",
			mutate:  func(c *config.Config) { c.Cache.Backend = "memcached" },
			wantErr: "cache.backend",
		},
		{
			name: "Redis without address",
			mutate: func(c *config.Config) {
				c.Cache.Backend = config.CacheBackendRedis
				c.Cache.Redis.Addr = ""
			},
			wantErr: "cache.redis.addr",
		},
		{
			name: "Disabled cache ignores ttl",
			mutate: func(c *config.Config) {
				c.Cache.TTLSeconds = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
