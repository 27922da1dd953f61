package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for environment overrides, e.g. HR_SERVER_PORT.
const envPrefix = "HR"

// Config is the complete application configuration. Values come from an
// optional YAML file overridden by environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Upload    UploadConfig    `yaml:"upload" envconfig:"UPLOAD"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/hrpulse.log"`
}

// UploadConfig bounds workbook uploads.
type UploadConfig struct {
	MaxSizeMB  int      `yaml:"max_size_mb" envconfig:"MAX_SIZE_MB" default:"32" validate:"min=1"`
	Extensions []string `yaml:"extensions" envconfig:"EXTENSIONS" default:".xlsx,.xlsm" validate:"min=1"`
}

// MaxSizeBytes returns the upload limit in bytes.
func (u UploadConfig) MaxSizeBytes() int64 {
	return int64(u.MaxSizeMB) << 20
}

// RateLimitConfig contains request rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// Load builds the configuration: defaults, then the YAML file named by
// HR_CONFIG_FILE (or config.yaml if present), then environment
// overrides.
func Load() (*Config, error) {
	var cfg Config

	// envconfig applies struct defaults and environment overrides in a
	// single pass, so the file is merged afterwards, skipping any
	// setting the environment already pinned.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := configFilePath(); path != "" {
		file, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := cfg.merge(file); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv(envPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

// fileConfig mirrors Config with pointer fields so settings absent from
// the YAML file can be told apart from explicit zero values. Durations
// are strings like "30s" parsed during merge.
type fileConfig struct {
	Server struct {
		Port            *int    `yaml:"port"`
		ReadTimeout     *string `yaml:"read_timeout"`
		WriteTimeout    *string `yaml:"write_timeout"`
		IdleTimeout     *string `yaml:"idle_timeout"`
		ShutdownTimeout *string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level    *string `yaml:"level"`
		Output   *string `yaml:"output"`
		FilePath *string `yaml:"file_path"`
	} `yaml:"logging"`
	Upload struct {
		MaxSizeMB  *int     `yaml:"max_size_mb"`
		Extensions []string `yaml:"extensions"`
	} `yaml:"upload"`
	RateLimit struct {
		Enabled *bool    `yaml:"enabled"`
		RPS     *float64 `yaml:"rps"`
		Burst   *int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// merge copies file values over c for every setting whose environment
// variable is unset: environment wins over the file, the file wins over
// struct defaults.
func (c *Config) merge(file *fileConfig) error {
	if v := file.Server.Port; v != nil && !envSet("SERVER_PORT") {
		c.Server.Port = *v
	}
	if err := mergeDuration(&c.Server.ReadTimeout, file.Server.ReadTimeout, "SERVER_READ_TIMEOUT"); err != nil {
		return err
	}
	if err := mergeDuration(&c.Server.WriteTimeout, file.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT"); err != nil {
		return err
	}
	if err := mergeDuration(&c.Server.IdleTimeout, file.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT"); err != nil {
		return err
	}
	if err := mergeDuration(&c.Server.ShutdownTimeout, file.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}

	if v := file.Logging.Level; v != nil && !envSet("LOGGING_LEVEL") {
		c.Logging.Level = *v
	}
	if v := file.Logging.Output; v != nil && !envSet("LOGGING_OUTPUT") {
		c.Logging.Output = *v
	}
	if v := file.Logging.FilePath; v != nil && !envSet("LOGGING_FILE_PATH") {
		c.Logging.FilePath = *v
	}

	if v := file.Upload.MaxSizeMB; v != nil && !envSet("UPLOAD_MAX_SIZE_MB") {
		c.Upload.MaxSizeMB = *v
	}
	if v := file.Upload.Extensions; len(v) > 0 && !envSet("UPLOAD_EXTENSIONS") {
		c.Upload.Extensions = v
	}

	if v := file.RateLimit.Enabled; v != nil && !envSet("RATE_LIMIT_ENABLED") {
		c.RateLimit.Enabled = *v
	}
	if v := file.RateLimit.RPS; v != nil && !envSet("RATE_LIMIT_RPS") {
		c.RateLimit.RPS = *v
	}
	if v := file.RateLimit.Burst; v != nil && !envSet("RATE_LIMIT_BURST") {
		c.RateLimit.Burst = *v
	}
	return nil
}

func mergeDuration(dst *time.Duration, raw *string, envName string) error {
	if raw == nil || envSet(envName) {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", *raw, err)
	}
	*dst = d
	return nil
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + name)
	return ok
}

var validate = validator.New()

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %f", c.RateLimit.RPS)
	}
	return nil
}
