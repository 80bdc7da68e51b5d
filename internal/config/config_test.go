// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelocantos/mish/internal/pipeline"
)

const path = "/home/user/.config/mish/config.yaml"

func load(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(yaml), 0644))
	return LoadFrom(fs, path)
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(afero.NewMemMapFs(), path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "sh> ", cfg.Prompt)
	assert.Equal(t, 100, cfg.HistorySize)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, pipeline.ParseOptions{}, cfg.ParseOptions())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(t, `
prompt: "$ "
history_size: 5
color: never
verbose: true
redirect:
  scope: ends
  malformed: reject
audit:
  enabled: true
  path: ~/logs/mish.jsonl
`)
	require.NoError(t, err)
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 5, cfg.HistorySize)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, pipeline.ParseOptions{RejectMalformed: true, StrictRedirects: true}, cfg.ParseOptions())
	assert.True(t, cfg.Audit.Enabled)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "logs", "mish.jsonl"), cfg.Audit.Path)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := load(t, "verbose: true\n")
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "sh> ", cfg.Prompt)
	assert.Equal(t, "any", cfg.Redirect.Scope)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"history too small", "history_size: 0\n", "history_size"},
		{"history too large", "history_size: 1000000\n", "history_size"},
		{"bad color", "color: sometimes\n", "color"},
		{"bad scope", "redirect:\n  scope: middle\n", "scope"},
		{"bad malformed", "redirect:\n  malformed: ignore\n", "malformed"},
		{"audit without path", "audit:\n  enabled: true\n  path: \"\"\n", "required_if"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.yaml)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := load(t, "prompt: [unterminated\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	cfg := DefaultConfig()
	assert.True(t, cfg.UseColor(true))
	assert.False(t, cfg.UseColor(false))

	cfg.Color = ColorAlways
	assert.True(t, cfg.UseColor(false))

	cfg.Color = ColorNever
	assert.False(t, cfg.UseColor(true))

	cfg.Color = ColorAuto
	t.Setenv("NO_COLOR", "1")
	assert.False(t, cfg.UseColor(true))
}
