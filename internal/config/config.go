// Package config implements application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envOverrides lists the environment variables that take precedence over the config file.
type envOverrides struct {
	APIKey          string  `envconfig:"API_KEY"`
	BaseURL         string  `envconfig:"IMEI_INFO_BASE_URL"`
	ServiceID       *uint32 `envconfig:"IMEI_INFO_SERVICE_ID"`
	LogLevel        string  `envconfig:"LOG_LEVEL"`
	LogFormat       string  `envconfig:"LOG_FORMAT"`
	MaskIdentifiers *bool   `envconfig:"LOG_MASK_IDENTIFIERS"`
	CacheBackend    string  `envconfig:"CACHE_BACKEND"`
	RedisAddr       string  `envconfig:"REDIS_ADDR"`
	RedisPassword   string  `envconfig:"REDIS_PASSWORD"`
	HTTPPort        string  `envconfig:"HTTP_PORT"`
}

// Default returns a configuration populated with default values only.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                     DefaultServerPort,
			ReadTimeoutSeconds:       DefaultServerReadTimeoutSeconds,
			WriteTimeoutSeconds:      DefaultServerWriteTimeoutSeconds,
			IdleTimeoutSeconds:       DefaultServerIdleTimeoutSeconds,
			ReadHeaderTimeoutSeconds: DefaultServerReadHeaderTimeoutSeconds,
			ShutdownTimeoutSeconds:   DefaultServerShutdownTimeoutSeconds,
		},
		Logger: LoggerConfig{
			Level:  DefaultLoggerLevel,
			Format: DefaultLoggerFormat,
		},
		IMEIInfo: IMEIInfoConfig{
			BaseURL:              DefaultIMEIInfoBaseURL,
			ServiceID:            DefaultIMEIInfoServiceID,
			ClientTimeoutSeconds: DefaultIMEIInfoClientTimeoutSeconds,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxRequests:      DefaultBreakerMaxRequests,
			IntervalSeconds:  DefaultBreakerIntervalSeconds,
			TimeoutSeconds:   DefaultBreakerTimeoutSeconds,
			FailureThreshold: DefaultBreakerFailureThreshold,
		},
		Cache: CacheConfig{
			Backend:    DefaultCacheBackend,
			TTLSeconds: DefaultCacheTTLSeconds,
			Redis: RedisConfig{
				Addr: DefaultRedisAddr,
			},
		},
	}
}

// LoadConfig loads the configuration from a YAML file, applies environment
// overrides and validates the result.
//
// An empty filePath means DefaultConfigFilePath; a missing default file is not an error.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	switch {
	case err == nil:
		// Keys absent from the file keep their defaults.
		if err := yaml.Unmarshal(fileBytes, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && filePath == "":
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Logger.Level = LogLevel(strings.ToLower(string(cfg.Logger.Level)))
	cfg.Logger.Format = LogFormat(strings.ToLower(string(cfg.Logger.Format)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if env.APIKey != "" {
		cfg.IMEIInfo.APIKey = env.APIKey
	}
	if env.BaseURL != "" {
		cfg.IMEIInfo.BaseURL = env.BaseURL
	}
	if env.ServiceID != nil {
		cfg.IMEIInfo.ServiceID = *env.ServiceID
	}
	if env.LogLevel != "" {
		cfg.Logger.Level = LogLevel(env.LogLevel)
	}
	if env.LogFormat != "" {
		cfg.Logger.Format = LogFormat(env.LogFormat)
	}
	if env.MaskIdentifiers != nil {
		cfg.Logger.MaskIdentifiers = *env.MaskIdentifiers
	}
	if env.CacheBackend != "" {
		cfg.Cache.Backend = CacheBackend(strings.ToLower(env.CacheBackend))
	}
	if env.RedisAddr != "" {
		cfg.Cache.Redis.Addr = env.RedisAddr
	}
	if env.RedisPassword != "" {
		cfg.Cache.Redis.Password = env.RedisPassword
	}
	if env.HTTPPort != "" {
		cfg.Server.Port = env.HTTPPort
		if !strings.Contains(cfg.Server.Port, ":") {
			cfg.Server.Port = ":" + cfg.Server.Port
		}
	}
	return nil
}
