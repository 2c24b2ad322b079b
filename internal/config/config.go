package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the recommender configuration.
type Config struct {
	HTTP      HTTPConfig               `yaml:"http"`
	Logging   LoggingConfig            `yaml:"logging"`
	Auth      AuthConfig               `yaml:"auth"`
	RateLimit RateLimitConfig          `yaml:"rate_limit"`
	Database  DatabaseConfig           `yaml:"database"`
	Catalogs  map[string]CatalogConfig `yaml:"catalogs"`
	Curated   CuratedConfig            `yaml:"curated"`
	SMTP      SMTPConfig               `yaml:"smtp"`
	Import    ImportConfig             `yaml:"import"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
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

// RateLimitConfig limits the skin analysis and email endpoints per client IP.
type RateLimitConfig struct {
	Requests  int `yaml:"requests"`
	WindowSec int `yaml:"window_sec"`
}

// DatabaseConfig holds catalog store connection settings. No addrs means no store.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// Enabled reports whether a store is configured.
func (d DatabaseConfig) Enabled() bool { return len(d.Addrs) > 0 }

// Catalog source types.
const (
	SourceCSV     = "csv"
	SourceParquet = "parquet"
	SourceRedis   = "redis"
)

// CatalogConfig describes where one catalog kind is loaded from.
type CatalogConfig struct {
	Source         string `yaml:"source"` // csv, parquet, redis
	Path           string `yaml:"path"`
	SimilarityTopK int    `yaml:"similarity_top_k"`
	FilterTopK     int    `yaml:"filter_top_k"`
}

// CuratedConfig points at the matcher table. Empty path uses the embedded table.
type CuratedConfig struct {
	Path string `yaml:"path"`
}

// SMTPConfig holds outbound mail settings. No host disables email delivery.
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	From       string `yaml:"from"`
	FromName   string `yaml:"from_name"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	UseTLS     bool   `yaml:"use_tls"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Enabled reports whether email delivery is configured.
func (s SMTPConfig) Enabled() bool { return s.Host != "" }

// ImportConfig holds catalog ingestion settings.
type ImportConfig struct {
	PricePolicy string `yaml:"price_policy"` // cents (default), whole
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 30
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 60
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "beauty:"
	}
	for kind, cat := range c.Catalogs {
		if cat.Source == "" {
			cat.Source = SourceCSV
		}
		if cat.SimilarityTopK <= 0 {
			cat.SimilarityTopK = 5
		}
		if cat.FilterTopK <= 0 {
			cat.FilterTopK = 10
		}
		c.Catalogs[kind] = cat
	}
	if c.SMTP.Port <= 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.TimeoutSec <= 0 {
		c.SMTP.TimeoutSec = 30
	}
	if c.Import.PricePolicy == "" {
		c.Import.PricePolicy = "cents"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	for _, kind := range sortedKeys(c.Catalogs) {
		cat := c.Catalogs[kind]
		switch kind {
		case "skincare", "cosmetic", "makeup":
		default:
			return fmt.Errorf("catalogs.%s: unknown catalog kind", kind)
		}
		switch cat.Source {
		case SourceCSV, SourceParquet:
			if cat.Path == "" {
				return fmt.Errorf("catalogs.%s.path is required for source %q", kind, cat.Source)
			}
		case SourceRedis:
			if !c.Database.Enabled() {
				return fmt.Errorf("catalogs.%s: source \"redis\" requires database.addrs", kind)
			}
		default:
			return fmt.Errorf("catalogs.%s.source must be csv, parquet or redis, got %q", kind, cat.Source)
		}
	}
	if c.SMTP.Enabled() {
		if c.SMTP.From == "" {
			return fmt.Errorf("smtp.from is required when smtp.host is set")
		}
		if c.SMTP.Port > 65535 {
			return fmt.Errorf("smtp.port must be between 1 and 65535, got %d", c.SMTP.Port)
		}
	}
	switch c.Import.PricePolicy {
	case "cents", "whole":
	default:
		return fmt.Errorf("import.price_policy must be \"cents\" or \"whole\", got %q", c.Import.PricePolicy)
	}
	return nil
}

func sortedKeys(m map[string]CatalogConfig) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
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
