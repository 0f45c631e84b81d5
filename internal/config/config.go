// Package config loads and validates the StockLens application
// configuration from environment variables (STOCKLENS_* prefix) with an
// optional YAML file underlay. Environment values always win over file
// values; defaults fill whatever neither provides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for all environment variables.
const envPrefix = "STOCKLENS"

// configFileEnv names the environment variable pointing at a YAML config
// file. When unset, config.yaml in the working directory is used if present.
const configFileEnv = "STOCKLENS_CONFIG_FILE"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Provider ProviderConfig `yaml:"provider" envconfig:"PROVIDER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"25"`
}

// ProviderConfig contains the upstream financial-data provider settings.
// APIKeys is the credential rotation pool: an ordered, immutable sequence
// of tokens loaded once at startup (comma-separated in the environment).
// An empty pool is a configuration error surfaced when the first client is
// constructed, never a runtime retry condition.
type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://www.alphavantage.co/query" validate:"url"`
	APIKeys    []string      `yaml:"api_keys" envconfig:"API_KEYS"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s" validate:"gt=0"`
	OutputSize string        `yaml:"output_size" envconfig:"OUTPUT_SIZE" default:"compact" validate:"oneof=compact full"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/stocklens.log"`
}

// CacheConfig controls the transient in-memory response cache. The cache
// only memoizes fetches for the per-resource TTL hints; nothing is
// persisted.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"ENABLED" default:"true"`
}

// Load loads configuration from the environment with an optional YAML
// file underlay, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := configFilePath(); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the YAML file to underlay, or "" when none exists.
func configFilePath() string {
	if path := os.Getenv(configFileEnv); path != "" {
		return path
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills zero-valued env fields from the file config. Environment
// values (and envconfig defaults) take precedence.
func merge(fileCfg, envCfg Config) Config {
	if len(envCfg.Provider.APIKeys) == 0 {
		envCfg.Provider.APIKeys = fileCfg.Provider.APIKeys
	}
	if fileCfg.Server.Port != 0 && os.Getenv(envPrefix+"_SERVER_PORT") == "" {
		envCfg.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Provider.BaseURL != "" && os.Getenv(envPrefix+"_PROVIDER_BASE_URL") == "" {
		envCfg.Provider.BaseURL = fileCfg.Provider.BaseURL
	}
	if fileCfg.Logging.Level != "" && os.Getenv(envPrefix+"_LOGGING_LEVEL") == "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	return envCfg
}

// Validate checks structural constraints on the configuration. Note that
// an empty credential pool passes here: the pool invariant belongs to the
// provider client, which rejects construction without credentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for i, key := range c.Provider.APIKeys {
		if key == "" {
			return fmt.Errorf("provider api_keys[%d] is empty", i)
		}
	}
	return nil
}

// Keys returns the ordered credential pool.
func (p *ProviderConfig) Keys() []string {
	return p.APIKeys
}
