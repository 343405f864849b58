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
	"bytes"
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/textpaste/pkg/drawing"
)

// Step is one scripted answer. Exactly one field is set.
type Step struct {
	Pick    string    `yaml:"pick,omitempty"`
	Keyword string    `yaml:"keyword,omitempty"`
	Point   []float64 `yaml:"point,omitempty"`
	Confirm *bool     `yaml:"confirm,omitempty"`
	None    bool      `yaml:"none,omitempty"`
	Reject  bool      `yaml:"reject,omitempty"`
	Cancel  bool      `yaml:"cancel,omitempty"`
}

func (s Step) kind() string {
	var kinds []string
	if s.Pick != "" {
		kinds = append(kinds, "pick")
	}
	if s.Keyword != "" {
		kinds = append(kinds, "keyword")
	}
	if s.Point != nil {
		kinds = append(kinds, "point")
	}
	if s.Confirm != nil {
		kinds = append(kinds, "confirm")
	}
	if s.None {
		kinds = append(kinds, "none")
	}
	if s.Reject {
		kinds = append(kinds, "reject")
	}
	if s.Cancel {
		kinds = append(kinds, "cancel")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

type scriptFile struct {
	Steps []Step `yaml:"steps"`
}

// 📜 Script is a Prompter that replays recorded answers in order. Once the
// answers run out every prompt is cancelled.
type Script struct {
	steps    []Step
	next     int
	lookup   Lookup
	messages []string
}

// NewScript validates steps and creates a scripted prompter. lookup may be nil.
func NewScript(steps []Step, lookup Lookup) (*Script, error) {
	for i, s := range steps {
		if s.kind() == "" {
			return nil, errors.Errorf("step %d: exactly one answer must be set", i+1)
		}
		if s.Point != nil {
			if _, err := pointOf(s.Point); err != nil {
				return nil, errors.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return &Script{steps: steps, lookup: lookup}, nil
}

// 📂 LoadScript reads a YAML (or JSON) answer script
func LoadScript(ctx context.Context, path string, lookup Lookup) (*Script, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading prompt script")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading script: %w", err)
	}

	var f scriptFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing script: %w", err)
	}
	return NewScript(f.Steps, lookup)
}

// Remaining returns the number of unused answers
func (s *Script) Remaining() int {
	return len(s.steps) - s.next
}

// Messages returns every message shown so far
func (s *Script) Messages() []string {
	return append([]string(nil), s.messages...)
}

func (s *Script) pop(ctx context.Context, want ...string) (Step, bool, error) {
	if ctx.Err() != nil || s.next >= len(s.steps) {
		return Step{}, false, nil
	}
	step := s.steps[s.next]
	s.next++

	kind := step.kind()
	if kind == "cancel" {
		return step, false, nil
	}
	for _, w := range want {
		if kind == w {
			return step, true, nil
		}
	}
	return Step{}, false, errors.Errorf("step %d: got %s answer, want one of %v", s.next, kind, want)
}

func (s *Script) GetEntity(ctx context.Context, opts EntityOptions) (EntityResult, error) {
	step, ok, err := s.pop(ctx, "pick", "keyword", "none", "reject")
	if err != nil || !ok {
		return EntityResult{Status: StatusCancel}, err
	}

	switch step.kind() {
	case "keyword":
		kw, ok := matchKeyword(opts.Keywords, step.Keyword)
		if !ok {
			return EntityResult{Status: StatusCancel}, errors.Errorf("step %d: keyword %q not offered by %q", s.next, step.Keyword, opts.Message)
		}
		return EntityResult{Status: StatusKeyword, Keyword: kw}, nil
	case "none":
		return EntityResult{Status: StatusNone}, nil
	case "reject":
		return EntityResult{Status: StatusRejected}, nil
	default:
		return pick(s.lookup, opts, drawing.Handle(step.Pick)), nil
	}
}

func (s *Script) GetPoint(ctx context.Context, message string) (PointResult, error) {
	step, ok, err := s.pop(ctx, "point", "none")
	if err != nil || !ok {
		return PointResult{Status: StatusCancel}, err
	}
	if step.kind() == "none" {
		return PointResult{Status: StatusNone}, nil
	}
	p, _ := pointOf(step.Point)
	return PointResult{Status: StatusOK, Point: p}, nil
}

func (s *Script) Confirm(ctx context.Context, message string) (ConfirmResult, error) {
	step, ok, err := s.pop(ctx, "confirm")
	if err != nil || !ok {
		return ConfirmResult{Status: StatusCancel}, err
	}
	return ConfirmResult{Status: StatusOK, Yes: *step.Confirm}, nil
}

func (s *Script) Message(ctx context.Context, message string) {
	s.messages = append(s.messages, message)
	zerolog.Ctx(ctx).Debug().Str("message", message).Msg("script prompt message")
}

func pointOf(v []float64) (drawing.Point3d, error) {
	switch len(v) {
	case 2:
		return drawing.Point3d{X: v[0], Y: v[1]}, nil
	case 3:
		return drawing.Point3d{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return drawing.Point3d{}, errors.Errorf("point needs 2 or 3 coordinates, got %d", len(v))
	}
}
