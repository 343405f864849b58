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

package transfer

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/pkg/drawing"
	"github.com/walteh/textpaste/pkg/log"
)

// Capability is a set of things an accessor can do with one entity kind
type Capability uint8

const (
	// Readable kinds can be a paste source
	Readable Capability = 1 << iota
	// Writable kinds can be a paste destination
	Writable
	// Clearable kinds have their picked content cleared in place when the
	// source is deleted; every other kind is erased
	Clearable
)

// Has reports whether c includes all of o
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

var capabilities = map[drawing.Kind]Capability{
	drawing.KindText:      Readable | Writable,
	drawing.KindMText:     Readable | Writable,
	drawing.KindLeader:    Readable | Writable,
	drawing.KindDimension: Readable,
	drawing.KindTable:     Readable | Writable | Clearable,
}

var kindOrder = []drawing.Kind{
	drawing.KindText,
	drawing.KindMText,
	drawing.KindLeader,
	drawing.KindTable,
	drawing.KindDimension,
}

// CapabilitiesOf returns what can be done with entities of kind k
func CapabilitiesOf(k drawing.Kind) Capability {
	return capabilities[k]
}

func kindsWith(c Capability) []drawing.Kind {
	var out []drawing.Kind
	for _, k := range kindOrder {
		if CapabilitiesOf(k).Has(c) {
			out = append(out, k)
		}
	}
	return out
}

// SourceKinds are the kinds a source pick accepts
func SourceKinds() []drawing.Kind { return kindsWith(Readable) }

// DestinationKinds are the kinds a destination pick accepts
func DestinationKinds() []drawing.Kind { return kindsWith(Writable) }

// WriteOutcome tells what a write did
type WriteOutcome int

const (
	// Written means the destination now holds the value
	Written WriteOutcome = iota
	// SkippedNoContent means a leader had no embedded text to write into
	SkippedNoContent
	// NotCompleted means the cell pick for a table was declined or cancelled
	NotCompleted
)

func (o WriteOutcome) String() string {
	switch o {
	case Written:
		return "written"
	case SkippedNoContent:
		return "skipped_no_content"
	case NotCompleted:
		return "not_completed"
	default:
		return "unknown"
	}
}

// 📝 Accessor reads and writes the text of every supported entity kind
type Accessor struct {
	cells *CellLocator
}

// NewAccessor creates an accessor that addresses table cells through cells
func NewAccessor(cells *CellLocator) *Accessor {
	return &Accessor{cells: cells}
}

// Extract returns the text of e. With clear set, Clearable kinds have the
// extracted content emptied; erasing other kinds is left to the caller.
// A table cell pick that is not completed extracts "".
func (a *Accessor) Extract(ctx context.Context, e drawing.Entity, clear bool) (string, error) {
	switch v := e.(type) {
	case *drawing.Text:
		return v.Value, nil
	case *drawing.MText:
		return v.Contents, nil
	case *drawing.Leader:
		if m := v.MText(); m != nil {
			return m.Contents, nil
		}
		return "", nil
	case *drawing.Dimension:
		if v.Override != "" {
			return v.Override, nil
		}
		return FormatMeasurement(v.Measurement, v.Precision, v.DecimalSeparator()), nil
	case *drawing.Table:
		return a.extractCell(ctx, v, clear)
	default:
		return "", errors.Errorf("reading %s %s: %w", e.Kind(), e.Handle(), ErrUnsupportedEntity)
	}
}

func (a *Accessor) extractCell(ctx context.Context, t *drawing.Table, clear bool) (string, error) {
	ref, ok, err := a.cells.Locate(ctx, t)
	if err != nil || !ok {
		return "", err
	}
	value, err := t.CellText(ref.Row, ref.Column)
	if err != nil {
		return "", errors.Errorf("reading table %s: %w", t.Handle(), err)
	}
	if !clear {
		return value, nil
	}

	if err := t.SetCellText(ref.Row, ref.Column, ""); err != nil {
		return "", errors.Errorf("clearing table %s: %w", t.Handle(), err)
	}
	t.RecomputeTableBlock()
	log.FromContext(ctx).LogEntityOperation(ctx, log.EntityOperation{
		Handle: string(t.Handle()),
		Kind:   t.Kind().String(),
		Action: log.ActionCleared,
		Detail: ref.String(),
		Text:   value,
	})
	return value, nil
}

// Write replaces the text of e with value
func (a *Accessor) Write(ctx context.Context, e drawing.Entity, value string) (WriteOutcome, error) {
	switch v := e.(type) {
	case *drawing.Text:
		v.Value = value
		return Written, nil
	case *drawing.MText:
		v.Contents = value
		return Written, nil
	case *drawing.Leader:
		// the leader hands out a detached copy: fetch, mutate, assign back
		m := v.MText()
		if m == nil {
			return SkippedNoContent, nil
		}
		m.Contents = value
		v.SetMText(m)
		return Written, nil
	case *drawing.Table:
		ref, ok, err := a.cells.Locate(ctx, v)
		if err != nil {
			return NotCompleted, err
		}
		if !ok {
			return NotCompleted, nil
		}
		if err := v.SetCellText(ref.Row, ref.Column, value); err != nil {
			return NotCompleted, errors.Errorf("writing table %s: %w", v.Handle(), err)
		}
		v.RecomputeTableBlock()
		zerolog.Ctx(ctx).Debug().Str("table", string(v.Handle())).Stringer("cell", ref).Msg("cell written")
		return Written, nil
	default:
		return NotCompleted, errors.Errorf("writing %s %s: %w", e.Kind(), e.Handle(), ErrUnsupportedEntity)
	}
}

// 📏 FormatMeasurement rounds m half away from zero to precision decimals,
// trims trailing zeros and uses sep as the decimal separator. Infinities and
// NaN are spelled out unrounded.
func FormatMeasurement(m float64, precision int, sep string) string {
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return strconv.FormatFloat(m, 'f', -1, 64)
	}
	if precision < 0 {
		precision = 0
	}
	s := decimal.NewFromFloat(m).Round(int32(precision)).String()
	return strings.Replace(s, ".", sep, 1)
}
