package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Upstream: UpstreamConfig{BaseURL: "http://solr-api:8080/"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Store.Driver != DriverMemory {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverMemory)
	}
	if cfg.Store.KeyPrefix != "solrdesk:" {
		t.Errorf("store.key_prefix = %q", cfg.Store.KeyPrefix)
	}
	if cfg.Search.PageSize != 9 {
		t.Errorf("search.page_size = %d, want 9", cfg.Search.PageSize)
	}
	if cfg.Search.MaxParallelFetches != 4 {
		t.Errorf("search.max_parallel_fetches = %d, want 4", cfg.Search.MaxParallelFetches)
	}
	if cfg.Upstream.RetryMax != 2 {
		t.Errorf("upstream.retry_max = %d, want 2", cfg.Upstream.RetryMax)
	}
	if cfg.Upstream.BaseURL != "http://solr-api:8080" {
		t.Errorf("upstream.base_url = %q, trailing slash not trimmed", cfg.Upstream.BaseURL)
	}
	if got := cfg.SessionTTL(); got != 30*time.Minute {
		t.Errorf("SessionTTL() = %v, want 30m", got)
	}
	if got := cfg.UpstreamTimeout(); got != 15*time.Second {
		t.Errorf("UpstreamTimeout() = %v, want 15s", got)
	}
	if got := cfg.PreferencesTTL(); got != 0 {
		t.Errorf("PreferencesTTL() = %v, want 0", got)
	}
}

func TestApplyDefaults_WriteTimeoutCoversUpstream(t *testing.T) {
	cfg := validConfig()

	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("http.write_timeout_sec = %d, want 30", cfg.HTTP.WriteTimeoutSec)
	}
	// a slow upstream must surface as a JSON error, not a cut connection
	if write := time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second; write <= cfg.UpstreamTimeout() {
		t.Errorf("write timeout %v does not exceed upstream timeout %v", write, cfg.UpstreamTimeout())
	}
}

func TestParse_PreferencesTTL(t *testing.T) {
	cfg, err := Parse([]byte(`
http:
  port: 8090
upstream:
  base_url: http://localhost:8080
store:
  preferences_ttl_hours: 48
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.PreferencesTTL(); got != 48*time.Hour {
		t.Errorf("PreferencesTTL() = %v, want 48h", got)
	}
}

func TestApplyDefaults_NegativeRetryDisables(t *testing.T) {
	cfg := Config{Upstream: UpstreamConfig{RetryMax: -1}}
	cfg.ApplyDefaults()
	if cfg.Upstream.RetryMax != 0 {
		t.Errorf("retry_max = %d, want 0", cfg.Upstream.RetryMax)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"missing base url", func(c *Config) { c.Upstream.BaseURL = "" }, "upstream.base_url is required"},
		{"relative base url", func(c *Config) { c.Upstream.BaseURL = "solr-api/v1" }, "absolute http(s) URL"},
		{"ftp base url", func(c *Config) { c.Upstream.BaseURL = "ftp://solr-api" }, "absolute http(s) URL"},
		{"redis without addrs", func(c *Config) { c.Store.Driver = DriverRedis }, "store.addrs is required"},
		{"valkey with addrs", func(c *Config) {
			c.Store.Driver = DriverValkey
			c.Store.Addrs = []string{"localhost:6379"}
		}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "store.driver"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("SOLRDESK_UPSTREAM", "https://index.example.com")
	t.Setenv("SOLRDESK_KEY", "")

	cfg, err := Parse([]byte(`
http:
  port: 8090
upstream:
  base_url: ${SOLRDESK_UPSTREAM}
auth:
  api_keys: ["${SOLRDESK_KEY:-dev-key}"]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Upstream.BaseURL != "https://index.example.com" {
		t.Errorf("base_url = %q", cfg.Upstream.BaseURL)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "dev-key" {
		t.Errorf("api_keys = %v, want [dev-key]", cfg.Auth.APIKeys)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 8090\n")); err == nil {
		t.Fatal("expected validation error for missing upstream")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("http.port not loaded")
	}
}
