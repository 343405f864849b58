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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("TEXTPASTE_PLANS", "/srv/plans")

	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: ".textpaste.yaml",
			config: `
drawing: plans/level-2.yaml
language: ru
settings_key: mpTxtCopyPaste
layers:
  - "A-ANNO-*"
  - "**/TEXT"
telemetry:
  disabled: true
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, filepath.Join(dir, "plans/level-2.yaml"), cfg.Drawing, "drawing should be relative to the config")
				assert.Equal(t, "ru", cfg.Language, "language should match")
				assert.Equal(t, "mpTxtCopyPaste", cfg.SettingsKey, "settings key should match")
				assert.Equal(t, []string{"A-ANNO-*", "**/TEXT"}, cfg.Layers, "layers should match")
				assert.True(t, cfg.Telemetry.Disabled, "telemetry should be disabled")
			},
		},
		{
			name:   "yaml_empty_file",
			file:   "config.yml",
			config: ``,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, DefaultLanguage, cfg.Language, "language should have default value")
				assert.Equal(t, DefaultSettingsKey, cfg.SettingsKey, "settings key should have default value")
				assert.Empty(t, cfg.Drawing)
			},
		},
		{
			name:   "json",
			file:   "config.json",
			config: `{"drawing": "/abs/plan.json", "language": "en-GB", "telemetry": {"disabled": false}}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/abs/plan.json", cfg.Drawing, "absolute drawing should be kept")
				assert.Equal(t, "en-GB", cfg.Language)
				assert.False(t, cfg.Telemetry.Disabled)
			},
		},
		{
			name: "hcl_with_env",
			file: "config.hcl",
			config: `
drawing      = "${env.TEXTPASTE_PLANS}/a.yaml"
settings_key = "custom"
layers       = ["DIM*"]

telemetry {
  disabled = true
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/srv/plans/a.yaml", cfg.Drawing)
				assert.Equal(t, "custom", cfg.SettingsKey)
				assert.Equal(t, []string{"DIM*"}, cfg.Layers)
				assert.True(t, cfg.Telemetry.Disabled)
				assert.Equal(t, DefaultLanguage, cfg.Language)
			},
		},
		{
			name:   "hcl_minimal",
			file:   "config.hcl",
			config: `language = "ru"`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "ru", cfg.Language)
				assert.False(t, cfg.Telemetry.Disabled)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        "config.yaml",
			config:      "drawing: a.yaml\nrepo: github.com/x/y\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			file:        "config.json",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "json_trailing_data",
			file:        "config.json",
			config:      `{"language": "en"} {"language": "ru"}`,
			wantErr:     true,
			errContains: "unexpected data after the config object",
		},
		{
			name:   "json_blank_file",
			file:   "config.json",
			config: "  \n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, DefaultLanguage, cfg.Language)
				assert.Equal(t, DefaultSettingsKey, cfg.SettingsKey)
			},
		},
		{
			name:   "yaml_comments_only",
			file:   "config.YAML",
			config: "# nothing configured yet\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, DefaultLanguage, cfg.Language)
			},
		},
		{
			name:        "hcl_unknown_attribute",
			file:        "config.hcl",
			config:      `force = true`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "bad_language",
			file:        "config.yaml",
			config:      "language: \"??\"\n",
			wantErr:     true,
			errContains: "language",
		},
		{
			name:        "bad_layer_glob",
			file:        "config.yaml",
			config:      "layers: [\"[unclosed\"]\n",
			wantErr:     true,
			errContains: "invalid layer pattern",
		},
		{
			name:        "unknown_extension",
			file:        "config.toml",
			config:      "language = 'en'\n",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestFind(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	t.Run("no_config_means_defaults", func(t *testing.T) {
		cfg, err := Find(ctx, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("yaml_wins_over_hcl", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".textpaste.hcl"), []byte(`language = "ru"`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".textpaste.yaml"), []byte("language: en\n"), 0644))

		cfg, err := Find(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Language)
	})

	t.Run("broken_config_is_an_error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".textpaste.json"), []byte(`{`), 0644))

		_, err := Find(ctx, dir)
		assert.Error(t, err)
	})
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "with_drawing",
			cfg:  &Config{Drawing: "plan.yaml", Language: "ru", SettingsKey: "textpaste"},
			want: "plan.yaml [ru] key=textpaste",
		},
		{
			name: "defaults",
			cfg:  Default(),
			want: "<no drawing> [en] key=textpaste",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String(), "String() should match")
		})
	}
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("a.yaml"))
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"))
	assert.IsType(t, &JSONParser{}, GetParser("A.JSON"))
	assert.IsType(t, &YAMLParser{}, GetParser("dir.v2/Plan.Yml "))
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"))
	assert.Nil(t, GetParser("a.ini"))
	assert.Nil(t, GetParser("yaml"))
}
