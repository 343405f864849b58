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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
	Register(&JSONParser{})
}

// 🔧 YAMLParser parses .yaml and .yml config files. Unknown keys are errors.
type YAMLParser struct{}

func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	return decodeStrict(ctx, "YAML", data, func(r io.Reader, cfg *Config) error {
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		// a file holding only comments has no document
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	})
}

// 🔧 JSONParser parses .json config files. Unknown keys and anything after
// the top-level object are errors.
type JSONParser struct{}

func (p *JSONParser) CanParse(filename string) bool {
	return hasExt(filename, ".json")
}

func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	return decodeStrict(ctx, "JSON", data, func(r io.Reader, cfg *Config) error {
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return err
		}
		if decoder.More() {
			return errors.New("unexpected data after the config object")
		}
		return nil
	})
}

// decodeStrict runs decode over data. A blank file is an empty config.
func decodeStrict(ctx context.Context, format string, data []byte, decode func(io.Reader, *Config) error) (*Config, error) {
	cfg := &Config{}
	if len(bytes.TrimSpace(data)) == 0 {
		zerolog.Ctx(ctx).Debug().Str("format", format).Msg("blank config file")
		return cfg, nil
	}
	if err := decode(bytes.NewReader(data), cfg); err != nil {
		return nil, errors.Errorf("parsing %s: %w", format, err)
	}
	return cfg, nil
}

func hasExt(filename string, exts ...string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(strings.TrimSpace(filename))))
}
