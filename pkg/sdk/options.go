package solrdesk

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	upstreamURL string
	timeout     time.Duration
	retryMax    int

	driver     string // "memory", "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool
	keyPrefix  string
	prefsTTL   time.Duration

	pageSize        int
	maxParallel     int
	sessionTTL      time.Duration
	collectionsTTL  time.Duration
	translationsTTL time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		timeout:         15 * time.Second,
		retryMax:        2,
		driver:          "memory",
		keyPrefix:       "solrdesk:",
		maxParallel:     4,
		sessionTTL:      30 * time.Minute,
		collectionsTTL:  time.Minute,
		translationsTTL: 5 * time.Minute,
	}
}

// WithUpstream sets the base URL of the index API. Required.
func WithUpstream(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.upstreamURL = baseURL
	})
}

// WithTimeout bounds every index API request. Default: 15s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRetries sets how many times idempotent reads are retried. Default: 2.
// Searches and writes are never retried.
func WithRetries(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.retryMax = n
	})
}

// WithValkey keeps preferences in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis keeps preferences in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix sets the key prefix of persisted preferences. Default: "solrdesk:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPreferencesTTL expires saved preferences that were not updated within ttl.
// Default: 0 (never).
func WithPreferencesTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.prefsTTL = ttl
	})
}

// WithPageSize sets the number of documents per local page. Default: 9.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithMaxParallel bounds concurrent per-collection fetches. Default: 4.
func WithMaxParallel(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxParallel = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
