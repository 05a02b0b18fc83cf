package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// Config holds the solrdesk configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Store    StoreConfig    `yaml:"store"`
	Search   SearchConfig   `yaml:"search"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds BFF authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// UpstreamConfig points at the remote index API.
type UpstreamConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	RetryMax    int    `yaml:"retry_max"` // GET retries; -1 disables
	RetryWaitMs int    `yaml:"retry_wait_ms"`
	PingOnStart bool   `yaml:"ping_on_start"`
}

// StoreConfig holds preferences store settings.
type StoreConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
	PrefsTTLHours    int      `yaml:"preferences_ttl_hours"` // 0 keeps preferences forever
}

// SearchConfig holds aggregation settings.
type SearchConfig struct {
	PageSize           int `yaml:"page_size"`
	SessionTTLMin      int `yaml:"session_ttl_min"`
	MaxParallelFetches int `yaml:"max_parallel_fetches"`
}

// CacheConfig holds TTLs of the in-process catalog caches.
type CacheConfig struct {
	CollectionsTTLSec  int `yaml:"collections_ttl_sec"`
	TranslationsTTLSec int `yaml:"translations_ttl_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Upstream.TimeoutSec <= 0 {
		c.Upstream.TimeoutSec = 15
	}
	if c.Upstream.RetryMax < 0 {
		c.Upstream.RetryMax = 0
	} else if c.Upstream.RetryMax == 0 {
		c.Upstream.RetryMax = 2
	}
	if c.Upstream.RetryWaitMs <= 0 {
		c.Upstream.RetryWaitMs = 500
	}
	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(c.Upstream.BaseURL), "/")
	if c.Store.Driver == "" {
		c.Store.Driver = DriverMemory
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	if c.Store.PrefsTTLHours < 0 {
		c.Store.PrefsTTLHours = 0
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "solrdesk:"
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 9
	}
	if c.Search.SessionTTLMin <= 0 {
		c.Search.SessionTTLMin = 30
	}
	if c.Search.MaxParallelFetches <= 0 {
		c.Search.MaxParallelFetches = 4
	}
	if c.Cache.CollectionsTTLSec <= 0 {
		c.Cache.CollectionsTTLSec = 60
	}
	if c.Cache.TranslationsTTLSec <= 0 {
		c.Cache.TranslationsTTLSec = 300
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("upstream.base_url must be an absolute http(s) URL, got %q", c.Upstream.BaseURL)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis, DriverValkey:
		if len(c.Store.Addrs) == 0 {
			return fmt.Errorf("store.addrs is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be memory, redis or valkey, got %q", c.Store.Driver)
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive, got %d", c.Search.PageSize)
	}
	return nil
}

// UpstreamTimeout returns the per-request timeout of the index API client.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSec) * time.Second
}

// UpstreamRetryWait returns the minimum backoff between GET retries.
func (c *Config) UpstreamRetryWait() time.Duration {
	return time.Duration(c.Upstream.RetryWaitMs) * time.Millisecond
}

// PreferencesTTL returns the expiration of saved preferences, 0 for none.
func (c *Config) PreferencesTTL() time.Duration {
	return time.Duration(c.Store.PrefsTTLHours) * time.Hour
}

// SessionTTL returns the idle lifetime of a search session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Search.SessionTTLMin) * time.Minute
}

// CollectionsTTL returns the lifetime of the cached collections list.
func (c *Config) CollectionsTTL() time.Duration {
	return time.Duration(c.Cache.CollectionsTTLSec) * time.Second
}

// TranslationsTTL returns the lifetime of the cached translations catalog.
func (c *Config) TranslationsTTL() time.Duration {
	return time.Duration(c.Cache.TranslationsTTLSec) * time.Second
}

// findConfigPath locates the config file: ./config first, then the project root.
func findConfigPath(env string) string {
	filename := env + ".yaml"

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
