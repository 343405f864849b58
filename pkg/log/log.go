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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	entityIndent = 4  // spaces to indent entity entries
	handleWidth  = 12 // width for the entity handle
	kindWidth    = 11 // width for the entity kind
	actionWidth  = 9  // width for the action
	textWidth    = 40 // longest text shown before truncation
)

// Action is what happened to an entity during a paste session
type Action string

const (
	ActionRead    Action = "read"
	ActionWritten Action = "written"
	ActionErased  Action = "erased"
	ActionCleared Action = "cleared"
	ActionSkipped Action = "skipped"
)

// 🎯 EntityOperation represents an entity touched by a paste session
type EntityOperation struct {
	Handle string // Entity handle
	Kind   string // Entity kind (text/mtext/leader/dimension/table)
	Action Action // What happened to it
	Detail string // Cell reference or skip reason
	Text   string // Text value read or written
}

// 📦 SessionInfo describes a paste session for logging
type SessionInfo struct {
	ID      string // Session id
	Drawing string // Drawing file path
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	current    *SessionInfo
	operations []EntityOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔇 Discard returns a logger that prints nothing
func Discard() *Logger {
	return &Logger{zlog: zerolog.Nop(), console: io.Discard}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or a discarding logger if none was set
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntityOperation formats an entity operation for display
func (l *Logger) formatEntityOperation(op EntityOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Action {
	case ActionErased:
		symbol = '✗'
		symbolColor = color.FgRed
	case ActionWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case ActionCleared:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case ActionRead:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "table":
		kindColor = color.FgMagenta
	case "dimension":
		kindColor = color.FgYellow
	default:
		kindColor = color.FgBlue
	}

	text := op.Text
	if r := []rune(text); len(r) > textWidth {
		text = string(r[:textWidth-1]) + "…"
	}
	detail := op.Detail
	if detail != "" {
		detail = " " + color.New(color.Faint).Sprint(detail)
	}

	return fmt.Sprintf("%s%s %s %s %s %q%s",
		fmt.Sprintf("%*s", entityIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", handleWidth, op.Handle),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", actionWidth, op.Action),
		text,
		detail)
}

// 📝 LogEntityOperation logs an entity operation
func (l *Logger) LogEntityOperation(ctx context.Context, op EntityOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatEntityOperation(op))

	l.zlog.Info().
		Str("handle", op.Handle).
		Str("kind", op.Kind).
		Str("action", string(op.Action)).
		Str("detail", op.Detail).
		Str("text", op.Text).
		Msg("entity operation")
}

// Operations returns the operations logged since the current session started
func (l *Logger) Operations() []EntityOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]EntityOperation(nil), l.operations...)
}

// 📝 StartSession starts logging a new paste session
func (l *Logger) StartSession(ctx context.Context, info SessionInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &info
	l.operations = nil

	fmt.Fprintf(l.console, "[pasting in %s]\n",
		color.New(color.FgCyan).Sprint(info.Drawing))

	l.zlog.Info().
		Str("session", info.ID).
		Str("drawing", info.Drawing).
		Msg("starting paste session")
}

// 📝 EndSession ends the current paste session and prints a summary line
func (l *Logger) EndSession(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}

	counts := make(map[Action]int)
	for _, op := range l.operations {
		counts[op.Action]++
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d written", counts[ActionWritten]),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d skipped", counts[ActionSkipped]))

	l.zlog.Info().
		Str("session", l.current.ID).
		Int("written", counts[ActionWritten]).
		Int("skipped", counts[ActionSkipped]).
		Int("erased", counts[ActionErased]).
		Msg("paste session complete")

	l.current = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("textpaste")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
