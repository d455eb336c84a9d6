package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidCutoff(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Wordlist: WordlistConfig{Cutoff: 1.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for cutoff above 1")
	}
}

func TestValidate_InvalidResults(t *testing.T) {
	for _, results := range []string{"ten", "0", "-3"} {
		t.Run(results, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}}
			cfg.Settings.Results = results

			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for results=%q", results)
			}
		})
	}
}

func TestValidate_Keyword(t *testing.T) {
	tests := []struct {
		keyword string
		wantErr bool
	}{
		{"def", false},
		{"", false},
		{"d f", true},
		{"def!", true},
	}
	for _, tc := range tests {
		t.Run("keyword="+tc.keyword, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Lookup: LookupConfig{Keyword: tc.keyword}}
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Dictionary.TimeoutSec != 10 {
		t.Errorf("expected Dictionary.TimeoutSec=10, got %d", cfg.Dictionary.TimeoutSec)
	}
	if cfg.Cache.KeyPrefix != "wordex:fetch:" {
		t.Errorf("expected KeyPrefix='wordex:fetch:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Cache.TTLSec != 86400 {
		t.Errorf("expected TTLSec=86400, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Lookup.Keyword != "def" {
		t.Errorf("expected Keyword='def', got %q", cfg.Lookup.Keyword)
	}
	if cfg.Lookup.Suggestions != 5 {
		t.Errorf("expected Suggestions=5, got %d", cfg.Lookup.Suggestions)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Cache:  CacheConfig{KeyPrefix: "custom:", TTLSec: 60},
		Lookup: LookupConfig{Keyword: "wd", Suggestions: 3},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Cache.KeyPrefix != "custom:" || cfg.Cache.TTLSec != 60 {
		t.Errorf("cache overridden: %+v", cfg.Cache)
	}
	if cfg.Lookup.Keyword != "wd" || cfg.Lookup.Suggestions != 3 {
		t.Errorf("lookup overridden: %+v", cfg.Lookup)
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("WORDEX_TEST_API_KEY", "secret")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := []byte(`
http:
  port: ${WORDEX_TEST_PORT:-9090}
settings:
  api_key: ${WORDEX_TEST_API_KEY}
  results: "7"
  use_canonical: true
cache:
  redis:
    addrs: ["localhost:6379"]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Settings.APIKey != "secret" || cfg.Settings.Results != "7" || !cfg.Settings.UseCanonical {
		t.Errorf("unexpected settings: %+v", cfg.Settings)
	}
	if len(cfg.Cache.Redis.Addrs) != 1 || cfg.Cache.Redis.Addrs[0] != "localhost:6379" {
		t.Errorf("unexpected redis addrs: %v", cfg.Cache.Redis.Addrs)
	}
	if cfg.Lookup.Keyword != "def" {
		t.Errorf("defaults not applied: keyword=%q", cfg.Lookup.Keyword)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("WORDEX_SET", "value")

	tests := []struct {
		in, want string
	}{
		{"a: ${WORDEX_SET}", "a: value"},
		{"a: ${WORDEX_UNSET_VAR:-fallback}", "a: fallback"},
		{"a: ${WORDEX_SET:-fallback}", "a: value"},
		{"a: ${WORDEX_UNSET_VAR}", "a: "},
	}
	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
