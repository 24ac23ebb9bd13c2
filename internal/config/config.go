// Package config loads runtime settings for the order form binaries from
// defaults, an optional YAML file and ORDERFORM_* environment variables, in
// that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config holds the settings shared by the serve, order and stub-api commands.
type Config struct {
	Addr           string        `yaml:"addr" env:"ORDERFORM_ADDR"`
	Endpoint       string        `yaml:"endpoint" env:"ORDERFORM_ENDPOINT"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"ORDERFORM_REQUEST_TIMEOUT"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace" env:"ORDERFORM_SHUTDOWN_GRACE"`

	LogLevel  string `yaml:"log_level" env:"ORDERFORM_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"ORDERFORM_LOG_FORMAT"`

	Theme        string `yaml:"theme" env:"ORDERFORM_THEME"`
	ThemeVariant string `yaml:"theme_variant" env:"ORDERFORM_THEME_VARIANT"`
	TemplatesDir string `yaml:"templates_dir" env:"ORDERFORM_TEMPLATES_DIR"`
	CatalogPath  string `yaml:"catalog_path" env:"ORDERFORM_CATALOG"`

	StubAddr   string   `yaml:"stub_addr" env:"ORDERFORM_STUB_ADDR"`
	OutOfStock []string `yaml:"out_of_stock" env:"ORDERFORM_OUT_OF_STOCK" envSeparator:","`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		Endpoint:      gateway.DefaultEndpoint,
		ShutdownGrace: 5 * time.Second,
		LogLevel:      "info",
		LogFormat:     "json",
		StubAddr:      ":9009",
	}
}

// Load builds the configuration. path may be empty to skip the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return fmt.Errorf("%w: endpoint %q must be an absolute URL", ErrInvalid, c.Endpoint)
	}
	if c.RequestTimeout < 0 || c.ShutdownGrace < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_format %q must be json or console", ErrInvalid, c.LogFormat)
	}
	for _, size := range c.OutOfStock {
		switch model.Size(strings.TrimSpace(size)) {
		case model.SizeS, model.SizeM, model.SizeL:
		default:
			return fmt.Errorf("%w: out_of_stock size %q must be S, M or L", ErrInvalid, size)
		}
	}
	return nil
}

// OutOfStockSizes returns the configured sizes as model values.
func (c Config) OutOfStockSizes() []model.Size {
	if len(c.OutOfStock) == 0 {
		return nil
	}
	sizes := make([]model.Size, 0, len(c.OutOfStock))
	for _, raw := range c.OutOfStock {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			sizes = append(sizes, model.Size(trimmed))
		}
	}
	return sizes
}
