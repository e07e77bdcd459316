package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrEmptyConfig is returned for a zero length config file
var ErrEmptyConfig = errors.New("config file is empty")

// Config is the runtime configuration for every command.
// JSON files decode through the same path, JSON being valid YAML.
type Config struct {
	StorePath string `json:"store_path" yaml:"store_path" validate:"required"`
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	Output    string `json:"output" yaml:"output" validate:"oneof=badger memory"`
	BatchSize int    `json:"batch_size" yaml:"batch_size" validate:"gte=1,lte=10000"`
	Workers   int    `json:"workers" yaml:"workers" validate:"gte=1,lte=256"`
	Addr      string `json:"addr" yaml:"addr" validate:"required,hostname_port"`
	LogLevel  string `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	OTel      string `json:"otel" yaml:"otel" validate:"omitempty,oneof=none honeycomb otlp"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		StorePath: "./scribe_db",
		InputDir:  "./sequences",
		Output:    "badger",
		BatchSize: 500,
		Workers:   4,
		Addr:      "localhost:8090",
		LogLevel:  "info",
		OTel:      "none",
	}
}

// Load builds the effective configuration:
// defaults, then the file if one is named, then the environment.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		fromFile, err := LoadConfigFileName(filename)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFileName pulls a given filename config off local disk
// Validation is performed on the file before opening
func LoadConfigFileName(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := validateLoad(file); err != nil {
		slog.Error("Validation failed", slog.Any("error", err))
		return nil, err
	}

	return LoadConfig(file)
}

func validateLoad(file *os.File) error {
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	if info.Size() == 0 {
		slog.Error("file is empty", slog.String("file", file.Name()))
		return ErrEmptyConfig
	}

	return nil
}

// LoadConfig decodes over the defaults, so a file only needs the keys it changes
func LoadConfig(file *os.File) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		slog.Error("could not decode file", slog.String("file", file.Name()))
		return nil, fmt.Errorf("decode %s: %w", file.Name(), err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from SCRIBE_* environment variables
func (c *Config) ApplyEnv() {
	if v := FillEnvVar("SCRIBE_STORE_PATH"); v != "ENOENT" {
		c.StorePath = v
	}
	if v := FillEnvVar("SCRIBE_INPUT_DIR"); v != "ENOENT" {
		c.InputDir = v
	}
	if v := FillEnvVar("SCRIBE_OUTPUT"); v != "ENOENT" {
		c.Output = v
	}
	if v := FillEnvVar("SCRIBE_ADDR"); v != "ENOENT" {
		c.Addr = v
	}
	if v := FillEnvVar("SCRIBE_LOG_LEVEL"); v != "ENOENT" {
		c.LogLevel = v
	}
	if v := FillEnvVar("SCRIBE_OTEL"); v != "ENOENT" {
		c.OTel = v
	}
	c.BatchSize = FillEnvVarInt("SCRIBE_BATCH_SIZE", c.BatchSize)
	c.Workers = FillEnvVarInt("SCRIBE_WORKERS", c.Workers)
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, unknown values are Info
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
