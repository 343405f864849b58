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

// Package telemetry sends fire-and-forget usage notifications.
package telemetry

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// 📡 Notifier is told when a command starts
type Notifier interface {
	CommandStarted(ctx context.Context, command string)
}

// Log records command starts as structured log events
type Log struct {
	logger zerolog.Logger

	mu     sync.Mutex
	counts map[string]int
}

// NewLog creates a notifier writing to logger
func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger, counts: make(map[string]int)}
}

func (l *Log) CommandStarted(ctx context.Context, command string) {
	l.mu.Lock()
	l.counts[command]++
	n := l.counts[command]
	l.mu.Unlock()

	l.logger.Info().
		Str("event", "command_started").
		Str("command", command).
		Int("count", n).
		Str("os", runtime.GOOS).
		Msg("telemetry")
}

// Count returns how often command was reported
func (l *Log) Count(command string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[command]
}

// Noop drops every notification
type Noop struct{}

func (Noop) CommandStarted(ctx context.Context, command string) {}

// New returns the notifier to use. Debug runs never send telemetry.
func New(logger zerolog.Logger, disabled, debug bool) Notifier {
	if disabled || debug {
		return Noop{}
	}
	return NewLog(logger)
}
