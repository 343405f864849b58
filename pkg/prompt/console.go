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

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/pkg/drawing"
)

var cancelWords = []string{"cancel", "esc", "отмена"}

// 🖥️ Console is a line based Prompter. Entities are picked by typing their
// handle, points as "x,y" or "x,y,z". An empty line declines, "cancel" or end
// of input aborts.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	lookup Lookup

	ask  *pterm.PrefixPrinter
	info *pterm.PrefixPrinter
	warn *pterm.PrefixPrinter
}

// NewConsole creates a console prompter. lookup may be nil, in which case
// picks are not checked against EntityOptions.AllowedKinds.
func NewConsole(in io.Reader, out io.Writer, lookup Lookup) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		lookup: lookup,
		ask:    pterm.Info.WithPrefix(pterm.Prefix{Text: "?", Style: pterm.NewStyle(pterm.FgCyan)}).WithWriter(out),
		info:   pterm.Info.WithWriter(out),
		warn:   pterm.Warning.WithWriter(out),
	}
}

// readLine asks message and returns the trimmed answer. ok is false when the
// user cancelled, input ended or ctx is done.
func (c *Console) readLine(ctx context.Context, message string) (string, bool, error) {
	if ctx.Err() != nil {
		return "", false, nil
	}
	c.ask.Print(message + ": ")
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		if err := c.in.Err(); err != nil {
			return "", false, errors.Errorf("reading console input: %w", err)
		}
		return "", false, nil
	}
	line := strings.TrimSpace(c.in.Text())
	for _, w := range cancelWords {
		if strings.EqualFold(line, w) {
			return "", false, nil
		}
	}
	return line, true, nil
}

// GetEntity asks for an entity handle or one of opts.Keywords
func (c *Console) GetEntity(ctx context.Context, opts EntityOptions) (EntityResult, error) {
	message := opts.Message
	if len(opts.Keywords) > 0 {
		message = fmt.Sprintf("%s [%s]", message, strings.Join(opts.Keywords, "/"))
	}

	line, ok, err := c.readLine(ctx, message)
	if err != nil || !ok {
		return EntityResult{Status: StatusCancel}, err
	}
	if line == "" {
		return EntityResult{Status: StatusNone}, nil
	}
	if kw, ok := matchKeyword(opts.Keywords, line); ok {
		return EntityResult{Status: StatusKeyword, Keyword: kw}, nil
	}

	res := pick(c.lookup, opts, drawing.Handle(line))
	zerolog.Ctx(ctx).Debug().Str("input", line).Stringer("status", res.Status).Msg("entity picked")
	return res, nil
}

// GetPoint asks for a point until one parses, the user declines or cancels
func (c *Console) GetPoint(ctx context.Context, message string) (PointResult, error) {
	for {
		line, ok, err := c.readLine(ctx, message)
		if err != nil || !ok {
			return PointResult{Status: StatusCancel}, err
		}
		if line == "" {
			return PointResult{Status: StatusNone}, nil
		}
		p, err := ParsePoint(line)
		if err != nil {
			c.warn.Println(err.Error())
			continue
		}
		return PointResult{Status: StatusOK, Point: p}, nil
	}
}

// Confirm asks a yes/no question until it is answered or cancelled
func (c *Console) Confirm(ctx context.Context, message string) (ConfirmResult, error) {
	for {
		line, ok, err := c.readLine(ctx, message+" [y/n]")
		if err != nil || !ok {
			return ConfirmResult{Status: StatusCancel}, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "д", "да":
			return ConfirmResult{Status: StatusOK, Yes: true}, nil
		case "n", "no", "н", "нет":
			return ConfirmResult{Status: StatusOK}, nil
		}
	}
}

// Message prints an informational line
func (c *Console) Message(ctx context.Context, message string) {
	c.info.Println(message)
}

// ParsePoint parses "x,y" or "x,y,z"
func ParsePoint(s string) (drawing.Point3d, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return drawing.Point3d{}, errors.Errorf("point %q: want x,y or x,y,z", s)
	}
	coords := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return drawing.Point3d{}, errors.Errorf("point %q: %w", s, err)
		}
		coords[i] = v
	}
	return drawing.Point3d{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
