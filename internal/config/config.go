// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package config handles the configuration of weather2wear. Values can come
// from a config file (TOML, YAML or JSON), from WEATHER2WEAR_* environment
// variables or from the defaults defined in the struct tags.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const configEnv = "WEATHER2WEAR"

// Config represents the application's configuration structure.
type Config struct {
	ListenAddr string     `fig:"listen_addr" default:"localhost:8080"`
	Locale     string     `fig:"locale"`
	LogLevel   slog.Level `fig:"loglevel" default:"0"`
	PageTitle  string     `fig:"page_title" default:"Weather 2 Wear"`

	Weather struct {
		Endpoint string `fig:"endpoint" default:"https://qpfmxgvcalf556dxkuuwki3nri0drjzb.lambda-url.us-west-1.on.aws/"`
		// Base URL the icon codes from the forecast are resolved against
		IconBaseURL       string  `fig:"icon_base_url" default:"https://openweathermap.org/img/wn"`
		RequestsPerSecond float64 `fig:"requests_per_second" default:"1"`
		Burst             int     `fig:"burst" default:"3"`
	} `fig:"weather"`

	Outfit struct {
		Endpoint string `fig:"endpoint" default:"https://igg7yuddu27z2bmtbroylfsarm0jxzrb.lambda-url.us-west-1.on.aws/"`
	} `fig:"outfit"`

	Timeouts struct {
		Request  time.Duration `fig:"request" default:"10s"`
		Shutdown time.Duration `fig:"shutdown" default:"5s"`
	} `fig:"timeouts"`
}

// NewFromFile reads the configuration from the given file in the given path
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// New returns the configuration based on defaults and environment overrides
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate normalizes the configuration and rejects invalid values
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if err := validateEndpoint(c.Weather.Endpoint); err != nil {
		return fmt.Errorf("invalid weather endpoint: %w", err)
	}
	if err := validateEndpoint(c.Outfit.Endpoint); err != nil {
		return fmt.Errorf("invalid outfit endpoint: %w", err)
	}
	if err := validateEndpoint(c.Weather.IconBaseURL); err != nil {
		return fmt.Errorf("invalid icon base URL: %w", err)
	}
	c.Weather.IconBaseURL = strings.TrimRight(c.Weather.IconBaseURL, "/")
	if c.Weather.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid weather requests per second: %f", c.Weather.RequestsPerSecond)
	}
	if c.Weather.Burst < 1 {
		return fmt.Errorf("invalid weather burst: %d", c.Weather.Burst)
	}
	if c.Timeouts.Request <= 0 {
		return fmt.Errorf("invalid request timeout: %s", c.Timeouts.Request)
	}

	return nil
}

func validateEndpoint(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host in URL: %q", endpoint)
	}
	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
