// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/language"
)

const (
	// DefaultSettingsKey is the drawing dictionary key of the delete preference
	DefaultSettingsKey = "textpaste"
	// DefaultLanguage is used when no language is configured
	DefaultLanguage = "en"
)

// DefaultFiles are the config file names Find looks for, in order
var DefaultFiles = []string{".textpaste.yaml", ".textpaste.yml", ".textpaste.json", ".textpaste.hcl"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📡 TelemetryArgs configures the command started notification
type TelemetryArgs struct {
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Drawing     string        `json:"drawing,omitempty" yaml:"drawing,omitempty"`           // Drawing file to work on
	Language    string        `json:"language,omitempty" yaml:"language,omitempty"`         // Prompt language (BCP 47)
	SettingsKey string        `json:"settings_key,omitempty" yaml:"settings_key,omitempty"` // Dictionary key of the delete preference
	Layers      []string      `json:"layers,omitempty" yaml:"layers,omitempty"`             // Layer globs shown by list
	Telemetry   TelemetryArgs `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`
}

// Default returns a validated configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// relative drawing paths are relative to the config file
	if cfg.Drawing != "" && !filepath.IsAbs(cfg.Drawing) {
		cfg.Drawing = filepath.Join(filepath.Dir(path), cfg.Drawing)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔎 Find loads the first default config file in dir. Without one the
// defaults are returned.
func Find(ctx context.Context, dir string) (*Config, error) {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Errorf("checking config file: %w", err)
		}
		return Load(ctx, path)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if _, err := language.Parse(cfg.Language); err != nil {
		return errors.Errorf("language %q: %w", cfg.Language, err)
	}

	cfg.SettingsKey = strings.TrimSpace(cfg.SettingsKey)
	if cfg.SettingsKey == "" {
		cfg.SettingsKey = DefaultSettingsKey
	}

	for _, pattern := range cfg.Layers {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid layer pattern %q", pattern)
		}
	}

	if cfg.Drawing != "" {
		cfg.Drawing = filepath.Clean(cfg.Drawing)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	drawing := cfg.Drawing
	if drawing == "" {
		drawing = "<no drawing>"
	}
	return fmt.Sprintf("%s [%s] key=%s", drawing, cfg.Language, cfg.SettingsKey)
}
