package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/wordex/internal/domain"
)

// Config holds the wordex configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	// Settings are the defaults merged under every invocation's settings.
	Settings domain.Settings `yaml:"settings"`
	Cache    CacheConfig     `yaml:"cache"`
	Wordlist WordlistConfig  `yaml:"wordlist"`
	Lookup   LookupConfig    `yaml:"lookup"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	// DiagnosticFile receives Error-level entries as JSON. Empty disables it.
	DiagnosticFile string `yaml:"diagnostic_file"`
	MaxSizeMB      int    `yaml:"max_size_mb"`
	MaxBackups     int    `yaml:"max_backups"`
}

// AuthConfig holds API authentication settings.
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

// DictionaryConfig holds remote dictionary settings.
type DictionaryConfig struct {
	BaseURL      string `yaml:"base_url"`
	UrbanBaseURL string `yaml:"urban_base_url"`
	TimeoutSec   int    `yaml:"timeout_sec"`
	// HealthAPIKey enables the dictionary health check.
	HealthAPIKey string `yaml:"health_api_key"`
}

// CacheConfig holds fetch cache settings. The shared store is enabled when
// Redis.Addrs is set.
type CacheConfig struct {
	Redis            RedisConfig `yaml:"redis"`
	TTLSec           int         `yaml:"ttl_sec"`
	KeyPrefix        string      `yaml:"key_prefix"`
	ReadinessTimeout int         `yaml:"readiness_timeout_sec"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
}

// WordlistConfig holds word list settings.
type WordlistConfig struct {
	SourceURL  string  `yaml:"source_url"`
	Cutoff     float64 `yaml:"cutoff"`
	TimeoutSec int     `yaml:"timeout_sec"`
}

// LookupConfig holds lookup settings.
type LookupConfig struct {
	Keyword        string `yaml:"keyword"`
	PrefetchOnMenu bool   `yaml:"prefetch_on_menu"`
	Suggestions    int    `yaml:"suggestions"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the YAML file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
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

// Default returns a configuration with every default applied, for runs without a config file.
func Default() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
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
	if c.Dictionary.TimeoutSec <= 0 {
		c.Dictionary.TimeoutSec = 10
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "wordex:fetch:"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 86400
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Wordlist.TimeoutSec <= 0 {
		c.Wordlist.TimeoutSec = 60
	}
	if c.Lookup.Keyword == "" {
		c.Lookup.Keyword = "def"
	}
	if c.Lookup.Suggestions <= 0 {
		c.Lookup.Suggestions = 5
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Wordlist.Cutoff < 0 || c.Wordlist.Cutoff > 1 {
		return fmt.Errorf("wordlist.cutoff must be between 0 and 1, got %v", c.Wordlist.Cutoff)
	}
	if strings.TrimSpace(c.Settings.Results) != "" {
		if _, err := c.Settings.Limit(); err != nil {
			return fmt.Errorf("settings.results: %w", err)
		}
	}
	if strings.ContainsAny(c.Lookup.Keyword, " !") {
		return fmt.Errorf("lookup.keyword must not contain spaces or '!', got %q", c.Lookup.Keyword)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
