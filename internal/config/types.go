package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default config values.
const (
	DefaultConfigFilePath                 = "config.yml"
	DefaultServerPort                     = ":8080"
	DefaultServerReadTimeoutSeconds       = 30
	DefaultServerWriteTimeoutSeconds      = 30
	DefaultServerIdleTimeoutSeconds       = 60
	DefaultServerReadHeaderTimeoutSeconds = 30
	DefaultServerShutdownTimeoutSeconds   = 10
	DefaultLoggerLevel                    = LogLevelInfo
	DefaultLoggerFormat                   = LogFormatJSON
	DefaultIMEIInfoBaseURL                = "https://dash.imei.info"
	DefaultIMEIInfoServiceID              = 0
	DefaultIMEIInfoClientTimeoutSeconds   = 20
	DefaultBreakerMaxRequests             = 1
	DefaultBreakerIntervalSeconds         = 60
	DefaultBreakerTimeoutSeconds          = 30
	DefaultBreakerFailureThreshold        = 5
	DefaultCacheBackend                   = CacheBackendNone
	DefaultCacheTTLSeconds                = 24 * 60 * 60
	DefaultRedisAddr                      = "localhost:6379"
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// CacheBackend selects where lookup results are cached.
type CacheBackend string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Defines the supported cache backends.
const (
	CacheBackendNone   CacheBackend = "none"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Logger         LoggerConfig         `yaml:"logger"`
	IMEIInfo       IMEIInfoConfig       `yaml:"imei_info"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
	Cache          CacheConfig          `yaml:"cache"`
}

// ServerConfig holds all configuration related to the HTTP server.
type ServerConfig struct {
	Port                     string `yaml:"port"`
	ReadTimeoutSeconds       int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `yaml:"idle_timeout_seconds"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int    `yaml:"shutdown_timeout_seconds"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
	// MaskIdentifiers hides IMEI serial numbers in log output.
	MaskIdentifiers bool `yaml:"mask_identifiers"`
}

// IMEIInfoConfig holds all configuration related to the IMEI.info lookup client.
type IMEIInfoConfig struct {
	BaseURL              string `yaml:"base_url"`
	APIKey               string `yaml:"api_key"`
	ServiceID            uint32 `yaml:"service_id"`
	ClientTimeoutSeconds int    `yaml:"client_timeout_seconds"`
}

// ClientTimeout returns the request timeout as a duration.
func (c IMEIInfoConfig) ClientTimeout() time.Duration {
	return time.Duration(c.ClientTimeoutSeconds) * time.Second
}

// CircuitBreakerConfig holds the circuit breaker settings for the lookup client.
type CircuitBreakerConfig struct {
	MaxRequests      uint32 `yaml:"max_requests"`
	IntervalSeconds  int    `yaml:"interval_seconds"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	FailureThreshold uint32 `yaml:"failure_threshold"`
}

// CacheConfig holds the lookup result cache settings.
type CacheConfig struct {
	Backend    CacheBackend `yaml:"backend"`
	TTLSeconds int          `yaml:"ttl_seconds"`
	Redis      RedisConfig  `yaml:"redis"`
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RedisConfig holds the connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" || (strings.HasPrefix(c.Server.Port, ":") && len(c.Server.Port) == 1) {
		return errors.New("server port (config key: server.port) cannot be empty or just ':'")
	}
	if c.Server.ReadTimeoutSeconds < 0 {
		return errors.New("server read timeout seconds (config key: server.read_timeout_seconds) cannot be negative")
	}
	if c.Server.WriteTimeoutSeconds < 0 {
		return errors.New("server write timeout seconds (config key: server.write_timeout_seconds) cannot be negative")
	}
	if c.Server.IdleTimeoutSeconds < 0 {
		return errors.New("server idle timeout seconds (config key: server.idle_timeout_seconds) cannot be negative")
	}
	if c.Server.ReadHeaderTimeoutSeconds < 0 {
		return errors.New(
			"server read header timeout seconds (config key: server.read_header_timeout_seconds) cannot be negative",
		)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return errors.New("server shutdown timeout seconds (config key: server.shutdown_timeout_seconds) must be greater than 0")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(string(c.Logger.Level))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(string(c.Logger.Format))] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text",
			c.Logger.Format,
		)
	}

	if c.IMEIInfo.BaseURL == "" {
		return errors.New("IMEI.info base URL (config key: imei_info.base_url) cannot be empty")
	}
	if u, err := url.Parse(c.IMEIInfo.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("IMEI.info base URL (config key: imei_info.base_url) '%s' is not an absolute URL", c.IMEIInfo.BaseURL)
	}
	if c.IMEIInfo.ClientTimeoutSeconds <= 0 {
		return errors.New("IMEI.info client timeout seconds (config key: imei_info.client_timeout_seconds) must be greater than 0")
	}

	if c.CircuitBreaker.MaxRequests == 0 {
		return errors.New("circuit breaker max requests (config key: circuit_breaker.max_requests) must be greater than 0")
	}
	if c.CircuitBreaker.IntervalSeconds < 0 {
		return errors.New("circuit breaker interval seconds (config key: circuit_breaker.interval_seconds) cannot be negative")
	}
	if c.CircuitBreaker.TimeoutSeconds <= 0 {
		return errors.New("circuit breaker timeout seconds (config key: circuit_breaker.timeout_seconds) must be greater than 0")
	}
	if c.CircuitBreaker.FailureThreshold == 0 {
		return errors.New("circuit breaker failure threshold (config key: circuit_breaker.failure_threshold) must be greater than 0")
	}

	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New("redis address (config key: cache.redis.addr) cannot be empty when cache.backend is redis")
		}
		if c.Cache.Redis.DB < 0 {
			return errors.New("redis db (config key: cache.redis.db) cannot be negative")
		}
	default:
		return fmt.Errorf(
			"invalid cache backend (config key: cache.backend): '%s', must be one of: none, memory, redis",
			c.Cache.Backend,
		)
	}
	if c.Cache.Backend != CacheBackendNone && c.Cache.TTLSeconds <= 0 {
		return errors.New("cache ttl seconds (config key: cache.ttl_seconds) must be greater than 0")
	}

	return nil
}
