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

// Package prompt provides the blocking user prompts a paste session runs on:
// entity picks with keywords, point picks, yes/no questions and messages.
package prompt

import (
	"context"
	"slices"
	"strings"

	"github.com/walteh/textpaste/pkg/drawing"
)

// Status is the outcome of a prompt
type Status int

const (
	StatusOK       Status = iota // a value was picked
	StatusNone                   // the user declined to pick anything
	StatusKeyword                // the user typed one of the offered keywords
	StatusRejected               // the pick was not acceptable, ask again
	StatusCancel                 // the user aborted
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNone:
		return "none"
	case StatusKeyword:
		return "keyword"
	case StatusRejected:
		return "rejected"
	case StatusCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// EntityOptions configures an entity pick
type EntityOptions struct {
	Message       string
	Keywords      []string
	AllowNone     bool
	RejectMessage string
	AllowedKinds  []drawing.Kind
}

// EntityResult is the outcome of an entity pick
type EntityResult struct {
	Status  Status
	Handle  drawing.Handle
	Keyword string
}

// PointResult is the outcome of a point pick
type PointResult struct {
	Status Status
	Point  drawing.Point3d
}

// ConfirmResult is the outcome of a yes/no question. Yes is only meaningful
// with StatusOK.
type ConfirmResult struct {
	Status Status
	Yes    bool
}

// 🎯 Prompter asks the user for input. Every call blocks until answered.
type Prompter interface {
	GetEntity(ctx context.Context, opts EntityOptions) (EntityResult, error)
	GetPoint(ctx context.Context, message string) (PointResult, error)
	Confirm(ctx context.Context, message string) (ConfirmResult, error)
	Message(ctx context.Context, message string)
}

// Lookup resolves handles for prompters that check picks against AllowedKinds
type Lookup interface {
	Entity(h drawing.Handle) (drawing.Entity, bool)
}

// pick classifies a picked handle against the allowed kinds
func pick(lookup Lookup, opts EntityOptions, h drawing.Handle) EntityResult {
	if lookup == nil || len(opts.AllowedKinds) == 0 {
		return EntityResult{Status: StatusOK, Handle: h}
	}
	e, ok := lookup.Entity(h)
	if !ok || !slices.Contains(opts.AllowedKinds, e.Kind()) {
		return EntityResult{Status: StatusRejected, Handle: h}
	}
	return EntityResult{Status: StatusOK, Handle: h}
}

// matchKeyword returns the keyword that input abbreviates, ignoring case
func matchKeyword(keywords []string, input string) (string, bool) {
	if input == "" {
		return "", false
	}
	for _, kw := range keywords {
		if strings.HasPrefix(strings.ToLower(kw), strings.ToLower(input)) {
			return kw, true
		}
	}
	return "", false
}
