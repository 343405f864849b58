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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion(t *testing.T) {
	out := FormatVersion(&VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Modified:  true,
	})
	assert.Contains(t, out, "Version:   v1.2.3")
	assert.Contains(t, out, "Revision:  abc123 (modified)")
	assert.Contains(t, out, "Platform:  linux/amd64")
}

func TestVersionCommandJSON(t *testing.T) {
	cmd, _ := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version", "--json"})

	require.NoError(t, cmd.Execute())

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Version)
}

func TestRootListCommand(t *testing.T) {
	dir := t.TempDir()
	drawingPath := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(drawingPath, []byte(`{"entities": [
		{"handle": "A1", "kind": "text", "layer": "NOTES", "text": "hello"},
		{"handle": "A2", "kind": "mtext", "layer": "OTHER", "text": "skip me"}
	]}`), 0644))
	configPath := filepath.Join(dir, "textpaste.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("drawing: plan.json\nlayers: [NOTES]\ntelemetry:\n  disabled: true\n"), 0644))

	cmd, o := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"list", "--config", configPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, drawingPath, o.Config.Drawing)
	assert.Contains(t, out.String(), "hello")
	assert.NotContains(t, out.String(), "skip me")
}

func TestRootMissingDrawing(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "textpaste.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("language: en\n"), 0644))

	cmd, _ := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "--config", configPath})

	assert.Error(t, cmd.Execute())
}
