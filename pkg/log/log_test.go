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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_entity_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogEntityOperation(context.Background(), EntityOperation{
					Handle: "1A",
					Kind:   "mtext",
					Action: ActionWritten,
					Text:   "Room 101",
				})
			},
			wantLogs: []string{
				`✓ 1A           mtext       written   "Room 101"`,
			},
		},
		{
			name: "session",
			op: func(t *testing.T, logger *Logger) {
				ctx := context.Background()
				logger.StartSession(ctx, SessionInfo{ID: "s1", Drawing: "plan.yaml"})
				logger.LogEntityOperation(ctx, EntityOperation{Handle: "A", Kind: "text", Action: ActionRead, Text: "x"})
				logger.LogEntityOperation(ctx, EntityOperation{Handle: "B", Kind: "text", Action: ActionWritten, Text: "x"})
				logger.LogEntityOperation(ctx, EntityOperation{Handle: "C", Kind: "mtext", Action: ActionWritten, Text: "x"})
				logger.EndSession(ctx)
			},
			wantLogs: []string{
				"[pasting in plan.yaml]",
				`• A            text        read      "x"`,
				`✓ B            text        written   "x"`,
				`✓ C            mtext       written   "x"`,
				"◆ 2 written • 0 skipped",
			},
		},
		{
			name: "end_without_start",
			op: func(t *testing.T, logger *Logger) {
				logger.EndSession(context.Background())
				logger.Info("still here")
			},
			wantLogs: []string{
				"ℹ️  still here",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("paste text between annotations")
			},
			wantLogs: []string{
				"textpaste • paste text between annotations",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	missing := FromContext(context.Background())
	require.NotNil(t, missing, "a missing logger falls back to a discarding one")
	assert.NotPanics(t, func() {
		missing.Info("nobody hears this")
	})
}

func TestEntityOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   EntityOperation
		want string
	}{
		{
			name: "cleared_cell",
			op:   EntityOperation{Handle: "T1", Kind: "table", Action: ActionCleared, Detail: "cell (0, 0)", Text: "X"},
			want: `    ⟳ T1           table       cleared   "X" cell (0, 0)`,
		},
		{
			name: "erased_source",
			op:   EntityOperation{Handle: "A", Kind: "text", Action: ActionErased, Text: "alpha"},
			want: `    ✗ A            text        erased    "alpha"`,
		},
		{
			name: "skipped_leader",
			op:   EntityOperation{Handle: "L", Kind: "leader", Action: ActionSkipped, Detail: "no embedded text"},
			want: `    - L            leader      skipped   "" no embedded text`,
		},
		{
			name: "read_dimension",
			op:   EntityOperation{Handle: "D", Kind: "dimension", Action: ActionRead, Text: "12,35"},
			want: `    • D            dimension   read      "12,35"`,
		},
		{
			name: "long_text_truncated",
			op:   EntityOperation{Handle: "M", Kind: "mtext", Action: ActionRead, Text: strings.Repeat("a", 50)},
			want: `    • M            mtext       read      "` + strings.Repeat("a", 39) + `…"`,
		},
	}

	logger := New(io.Discard, zerolog.Disabled)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.formatEntityOperation(tt.op))
		})
	}
}

func TestOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.Disabled)
	ctx := context.Background()

	logger.StartSession(ctx, SessionInfo{ID: "s", Drawing: "d.json"})
	logger.LogEntityOperation(ctx, EntityOperation{Handle: "A", Action: ActionRead})
	assert.Len(t, logger.Operations(), 1)

	logger.EndSession(ctx)
	assert.Empty(t, logger.Operations())
}
