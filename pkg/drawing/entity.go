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

package drawing

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Handle identifies an entity inside a drawing
type Handle string

// 📐 Kind is the closed set of annotation kinds a drawing can hold
type Kind int

const (
	KindUnknown   Kind = iota
	KindText           // single-line text
	KindMText          // formatted multi-line text
	KindLeader         // leader callout with an embedded mtext
	KindDimension      // measured dimension
	KindTable          // table of cells
)

// String returns the drawing file name of the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMText:
		return "mtext"
	case KindLeader:
		return "leader"
	case KindDimension:
		return "dimension"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// 🔍 ParseKind parses a kind name as written in drawing files
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "dbtext":
		return KindText, nil
	case "mtext":
		return KindMText, nil
	case "leader", "mleader":
		return KindLeader, nil
	case "dimension", "dim":
		return KindDimension, nil
	case "table":
		return KindTable, nil
	default:
		return KindUnknown, errors.Errorf("unknown entity kind %q", s)
	}
}

// 🧩 Entity is an annotation object stored in a document
type Entity interface {
	Handle() Handle
	Kind() Kind
	Layer() string

	clone() Entity
}

type header struct {
	handle Handle
	layer  string
}

func (h header) Handle() Handle { return h.handle }
func (h header) Layer() string  { return h.layer }

// 📝 Text is a single-line text entity
type Text struct {
	header
	Value    string
	Position Point3d
	Height   float64
}

// NewText creates a text entity
func NewText(handle Handle, layer, value string) *Text {
	return &Text{header: header{handle: handle, layer: layer}, Value: value, Height: 2.5}
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) clone() Entity {
	c := *t
	return &c
}

// 📄 MText is a formatted multi-line text entity
type MText struct {
	header
	Contents string
	Location Point3d
	Width    float64
}

// NewMText creates an mtext entity
func NewMText(handle Handle, layer, contents string) *MText {
	return &MText{header: header{handle: handle, layer: layer}, Contents: contents}
}

func (m *MText) Kind() Kind { return KindMText }

func (m *MText) clone() Entity {
	c := *m
	return &c
}

// ➡️ Leader is a leader callout. Its text lives in an embedded mtext that is
// only reachable as a detached copy: changes must be assigned back with
// SetMText to become part of the leader.
type Leader struct {
	header
	ArrowHead Point3d
	mtext     *MText
}

// NewLeader creates a leader; content may be nil for a leader without text
func NewLeader(handle Handle, layer string, content *MText) *Leader {
	l := &Leader{header: header{handle: handle, layer: layer}}
	l.SetMText(content)
	return l
}

func (l *Leader) Kind() Kind { return KindLeader }

// MText returns a copy of the embedded text, or nil when the leader has none.
func (l *Leader) MText() *MText {
	if l.mtext == nil {
		return nil
	}
	c := *l.mtext
	return &c
}

// SetMText replaces the embedded text with a copy of m.
func (l *Leader) SetMText(m *MText) {
	if m == nil {
		l.mtext = nil
		return
	}
	c := *m
	c.handle = ""
	c.layer = l.layer
	l.mtext = &c
}

func (l *Leader) clone() Entity {
	c := *l
	c.mtext = l.MText()
	return &c
}

// 📏 Dimension is a measured dimension. It is read-only for text transfer.
type Dimension struct {
	header
	Measurement float64
	// Override replaces the measured value in the displayed text when set
	Override string
	// Precision is the number of decimal places the measurement is shown with
	Precision int
	// Separator is the decimal separator, "." when empty
	Separator string
}

// NewDimension creates a dimension entity
func NewDimension(handle Handle, layer string, measurement float64, precision int, separator string) *Dimension {
	return &Dimension{
		header:      header{handle: handle, layer: layer},
		Measurement: measurement,
		Precision:   precision,
		Separator:   separator,
	}
}

func (d *Dimension) Kind() Kind { return KindDimension }

// DecimalSeparator returns the configured separator, defaulting to "."
func (d *Dimension) DecimalSeparator() string {
	if d.Separator == "" {
		return "."
	}
	return d.Separator
}

func (d *Dimension) clone() Entity {
	c := *d
	return &c
}
