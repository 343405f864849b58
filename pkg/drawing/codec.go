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
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Codec reads and writes drawing files of one format
type Codec interface {
	// CanHandle checks if this codec handles the given file
	CanHandle(filename string) bool
	Decode(data []byte) (*File, error)
	Encode(f *File) ([]byte, error)
}

var codecs []Codec

// 📝 RegisterCodec registers a drawing file codec
func RegisterCodec(c Codec) {
	codecs = append(codecs, c)
}

// 🎯 CodecFor returns a codec that can handle the given file
func CodecFor(filename string) Codec {
	for _, c := range codecs {
		if c.CanHandle(filename) {
			return c
		}
	}
	return nil
}

func init() {
	RegisterCodec(&jsonCodec{})
	RegisterCodec(&yamlCodec{})
}

// 📄 File is the on-disk drawing format
type File struct {
	Entities []EntityRecord    `json:"entities" yaml:"entities"`
	XData    map[string]string `json:"xdata,omitempty" yaml:"xdata,omitempty"`
}

// EntityRecord is one entity in a drawing file. Which fields apply depends on Kind.
type EntityRecord struct {
	Handle string `json:"handle" yaml:"handle"`
	Kind   string `json:"kind" yaml:"kind"`
	Layer  string `json:"layer,omitempty" yaml:"layer,omitempty"`

	// text value, mtext contents or dimension override
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	Position []float64 `json:"position,omitempty" yaml:"position,omitempty"`

	// leader
	Content *EntityRecord `json:"content,omitempty" yaml:"content,omitempty"`

	// dimension
	Measurement float64 `json:"measurement,omitempty" yaml:"measurement,omitempty"`
	Precision   int     `json:"precision,omitempty" yaml:"precision,omitempty"`
	Separator   string  `json:"separator,omitempty" yaml:"separator,omitempty"`

	// table
	Normal       []float64  `json:"normal,omitempty" yaml:"normal,omitempty"`
	Direction    []float64  `json:"direction,omitempty" yaml:"direction,omitempty"`
	RowHeights   []float64  `json:"row_heights,omitempty" yaml:"row_heights,omitempty"`
	ColumnWidths []float64  `json:"column_widths,omitempty" yaml:"column_widths,omitempty"`
	Cells        [][]string `json:"cells,omitempty" yaml:"cells,omitempty"`
}

type jsonCodec struct{}

func (c *jsonCodec) CanHandle(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func (c *jsonCodec) Decode(data []byte) (*File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &f, nil
}

func (c *jsonCodec) Encode(f *File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, errors.Errorf("encoding JSON: %w", err)
	}
	return append(data, '\n'), nil
}

type yamlCodec struct{}

func (c *yamlCodec) CanHandle(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (c *yamlCodec) Decode(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &f, nil
}

func (c *yamlCodec) Encode(f *File) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// 📂 Load reads a drawing file; the format is picked by extension
func Load(ctx context.Context, path string) (*Document, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading drawing")

	codec := CodecFor(path)
	if codec == nil {
		return nil, errors.Errorf("no codec for drawing file %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading drawing file: %w", err)
	}

	f, err := codec.Decode(data)
	if err != nil {
		return nil, errors.Errorf("decoding drawing file: %w", err)
	}

	return FromFile(f)
}

// 💾 Save writes the drawing atomically through a temp file
func Save(ctx context.Context, path string, doc *Document) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("entities", doc.Len()).Msg("saving drawing")

	codec := CodecFor(path)
	if codec == nil {
		return errors.Errorf("no codec for drawing file %q", path)
	}

	data, err := codec.Encode(ToFile(doc))
	if err != nil {
		return errors.Errorf("encoding drawing file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// FromFile builds a document from its file representation
func FromFile(f *File) (*Document, error) {
	doc := NewDocument()
	for i, rec := range f.Entities {
		e, err := rec.entity()
		if err != nil {
			return nil, errors.Errorf("entity %d (%s): %w", i, rec.Handle, err)
		}
		if err := doc.Add(e); err != nil {
			return nil, err
		}
	}
	for k, v := range f.XData {
		doc.xdata[k] = v
	}
	return doc, nil
}

// ToFile converts a document to its file representation
func ToFile(doc *Document) *File {
	f := &File{}
	for _, e := range doc.Entities() {
		f.Entities = append(f.Entities, recordOf(e))
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if len(doc.xdata) > 0 {
		f.XData = make(map[string]string, len(doc.xdata))
		for k, v := range doc.xdata {
			f.XData[k] = v
		}
	}
	return f
}

func (rec EntityRecord) entity() (Entity, error) {
	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	h := Handle(rec.Handle)
	pos, err := pointOf(rec.Position)
	if err != nil {
		return nil, errors.Errorf("position: %w", err)
	}

	switch kind {
	case KindText:
		t := NewText(h, rec.Layer, rec.Text)
		t.Position = pos
		return t, nil
	case KindMText:
		m := NewMText(h, rec.Layer, rec.Text)
		m.Location = pos
		return m, nil
	case KindLeader:
		var content *MText
		if rec.Content != nil {
			content = NewMText("", rec.Layer, rec.Content.Text)
		}
		l := NewLeader(h, rec.Layer, content)
		l.ArrowHead = pos
		return l, nil
	case KindDimension:
		if math.IsInf(rec.Measurement, 0) || math.IsNaN(rec.Measurement) {
			return nil, errors.Errorf("measurement %v is not a finite number", rec.Measurement)
		}
		d := NewDimension(h, rec.Layer, rec.Measurement, rec.Precision, rec.Separator)
		d.Override = rec.Text
		return d, nil
	case KindTable:
		return rec.table(h, pos)
	default:
		return nil, errors.Errorf("unsupported kind %s", kind)
	}
}

func (rec EntityRecord) table(h Handle, origin Point3d) (*Table, error) {
	t := NewTable(h, rec.Layer, origin, rec.RowHeights, rec.ColumnWidths)
	if rec.Normal != nil {
		n, err := pointOf(rec.Normal)
		if err != nil {
			return nil, errors.Errorf("normal: %w", err)
		}
		t.Normal = Vector3d(n)
	}
	if rec.Direction != nil {
		d, err := pointOf(rec.Direction)
		if err != nil {
			return nil, errors.Errorf("direction: %w", err)
		}
		t.Direction = Vector3d(d)
	}
	if len(rec.Cells) > t.Rows() {
		return nil, errors.Errorf("%d cell rows for %d table rows", len(rec.Cells), t.Rows())
	}
	for r, row := range rec.Cells {
		if len(row) > t.Columns() {
			return nil, errors.Errorf("row %d has %d cells for %d columns", r, len(row), t.Columns())
		}
		for c, v := range row {
			t.cells[r][c].Value = v
		}
	}
	return t, nil
}

func recordOf(e Entity) EntityRecord {
	rec := EntityRecord{
		Handle: string(e.Handle()),
		Kind:   e.Kind().String(),
		Layer:  e.Layer(),
	}
	switch v := e.(type) {
	case *Text:
		rec.Text = v.Value
		rec.Position = sliceOf(v.Position)
	case *MText:
		rec.Text = v.Contents
		rec.Position = sliceOf(v.Location)
	case *Leader:
		rec.Position = sliceOf(v.ArrowHead)
		if m := v.MText(); m != nil {
			rec.Content = &EntityRecord{Kind: KindMText.String(), Text: m.Contents}
		}
	case *Dimension:
		rec.Text = v.Override
		rec.Measurement = v.Measurement
		rec.Precision = v.Precision
		rec.Separator = v.Separator
	case *Table:
		rec.Position = sliceOf(v.Origin)
		rec.Normal = sliceOf(Point3d(v.Normal))
		rec.Direction = sliceOf(Point3d(v.Direction))
		rec.RowHeights = v.RowHeights()
		rec.ColumnWidths = v.ColumnWidths()
		for _, row := range v.cells {
			values := make([]string, len(row))
			for i, c := range row {
				values[i] = c.Value
			}
			rec.Cells = append(rec.Cells, values)
		}
	}
	return rec
}

func pointOf(v []float64) (Point3d, error) {
	switch len(v) {
	case 0:
		return Point3d{}, nil
	case 2:
		return Point3d{X: v[0], Y: v[1]}, nil
	case 3:
		return Point3d{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return Point3d{}, errors.Errorf("want 2 or 3 coordinates, got %d", len(v))
	}
}

func sliceOf(p Point3d) []float64 {
	return []float64{p.X, p.Y, p.Z}
}
