// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/mish/internal/history"
	"github.com/marcelocantos/mish/internal/pipeline"
)

// Config holds the global mish configuration.
type Config struct {
	Prompt      string         `yaml:"prompt"`
	HistorySize int            `yaml:"history_size" validate:"gte=1,lte=100000"`
	Color       string         `yaml:"color" validate:"oneof=auto always never"`
	Verbose     bool           `yaml:"verbose"`
	Redirect    RedirectConfig `yaml:"redirect"`
	Audit       AuditConfig    `yaml:"audit"`
}

// RedirectConfig selects the redirection parsing policy.
type RedirectConfig struct {
	// Scope is "any" (every stage may redirect) or "ends" (< only on the
	// first stage, > and >> only on the last).
	Scope string `yaml:"scope" validate:"oneof=any ends"`

	// Malformed is "degrade" (drop a trailing operator and run) or
	// "reject" (report a syntax error and skip the clause).
	Malformed string `yaml:"malformed" validate:"oneof=degrade reject"`
}

// AuditConfig controls audit log settings.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Prompt:      "sh> ",
		HistorySize: history.DefaultCapacity,
		Color:       ColorAuto,
		Redirect: RedirectConfig{
			Scope:     "any",
			Malformed: "degrade",
		},
		Audit: AuditConfig{
			Path: filepath.Join(home, ".local", "share", "mish", "audit.jsonl"),
		},
	}
}

// Load reads the config from the standard location (~/.config/mish/config.yaml).
// If the file doesn't exist, returns the default config.
func Load(fs afero.Fs) (*Config, error) {
	return LoadFrom(fs, ConfigPath())
}

// LoadFrom reads the config from the given path on fs.
func LoadFrom(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Audit.Path = expandHome(cfg.Audit.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	return validate.Struct(c)
}

// ParseOptions returns the parser policy selected by the redirect settings.
func (c *Config) ParseOptions() pipeline.ParseOptions {
	return pipeline.ParseOptions{
		RejectMalformed: c.Redirect.Malformed == "reject",
		StrictRedirects: c.Redirect.Scope == "ends",
	}
}

// UseColor resolves the color setting. isTerminal reports whether
// diagnostics go to a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal && os.Getenv("NO_COLOR") == ""
	}
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mish", "config.yaml")
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[1:])
}
