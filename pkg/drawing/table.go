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
	"math"

	"gitlab.com/tozd/go/errors"
)

// 🎯 TableHitType classifies the result of a table hit test
type TableHitType int

const (
	TableHitNone     TableHitType = iota // the probe missed the table
	TableHitCell                         // the probe landed inside a cell
	TableHitGridLine                     // the probe landed on a row or column border
)

func (t TableHitType) String() string {
	switch t {
	case TableHitCell:
		return "cell"
	case TableHitGridLine:
		return "grid_line"
	default:
		return "none"
	}
}

// GridLineTolerance is the distance from a border within which a hit counts as a grid line hit.
const GridLineTolerance = 1e-6

// TableHitTestInfo is the result of Table.HitTest
type TableHitTestInfo struct {
	Type   TableHitType
	Row    int
	Column int
}

// Cell is one text-bearing cell of a table
type Cell struct {
	Value string
}

// 📊 Table is a grid of cells laid out on a plane. Origin is the top-left
// corner; rows grow against the plane's Y direction, columns along Direction.
type Table struct {
	header
	Origin    Point3d
	Normal    Vector3d
	Direction Vector3d

	rowHeights   []float64
	columnWidths []float64
	cells        [][]Cell
	blockVersion int
}

// NewTable creates an empty table lying in the world XY plane
func NewTable(handle Handle, layer string, origin Point3d, rowHeights, columnWidths []float64) *Table {
	t := &Table{
		header:       header{handle: handle, layer: layer},
		Origin:       origin,
		Normal:       ZAxis,
		Direction:    XAxis,
		rowHeights:   append([]float64(nil), rowHeights...),
		columnWidths: append([]float64(nil), columnWidths...),
	}
	t.cells = make([][]Cell, len(rowHeights))
	for i := range t.cells {
		t.cells[i] = make([]Cell, len(columnWidths))
	}
	return t
}

func (t *Table) Kind() Kind { return KindTable }

func (t *Table) Rows() int    { return len(t.rowHeights) }
func (t *Table) Columns() int { return len(t.columnWidths) }

func (t *Table) RowHeights() []float64   { return append([]float64(nil), t.rowHeights...) }
func (t *Table) ColumnWidths() []float64 { return append([]float64(nil), t.columnWidths...) }

// BlockVersion counts how often the rendered block was recomputed
func (t *Table) BlockVersion() int { return t.blockVersion }

func (t *Table) inRange(row, col int) bool {
	return row >= 0 && row < t.Rows() && col >= 0 && col < t.Columns()
}

// CellText returns the text of the cell at (row, col)
func (t *Table) CellText(row, col int) (string, error) {
	if !t.inRange(row, col) {
		return "", errors.Errorf("cell (%d, %d) out of range %dx%d", row, col, t.Rows(), t.Columns())
	}
	return t.cells[row][col].Value, nil
}

// SetCellText replaces the text of the cell at (row, col)
func (t *Table) SetCellText(row, col int, value string) error {
	if !t.inRange(row, col) {
		return errors.Errorf("cell (%d, %d) out of range %dx%d", row, col, t.Rows(), t.Columns())
	}
	t.cells[row][col].Value = value
	return nil
}

// RecomputeTableBlock regenerates the rendered block of the table after cell edits.
func (t *Table) RecomputeTableBlock() {
	t.blockVersion++
}

// axes returns the orthonormal frame of the table plane.
func (t *Table) axes() (x, y, n Vector3d) {
	n = t.Normal.Normalize()
	if n.IsZero() {
		n = ZAxis
	}
	dir := t.Direction
	if dir.IsZero() {
		dir = XAxis
	}
	// drop any out-of-plane component of the direction
	x = dir.Sub(n.Scale(dir.Dot(n))).Normalize()
	if x.IsZero() {
		x = YAxis.Cross(n).Normalize()
	}
	y = n.Cross(x)
	return x, y, n
}

// 🎯 HitTest projects point along dir onto the table plane and reports what it lands on.
func (t *Table) HitTest(point Point3d, dir Vector3d) TableHitTestInfo {
	miss := TableHitTestInfo{Type: TableHitNone, Row: -1, Column: -1}
	if t.Rows() == 0 || t.Columns() == 0 {
		return miss
	}

	x, y, n := t.axes()
	d := dir.Normalize()
	denom := d.Dot(n)
	if math.Abs(denom) < epsilon {
		return miss
	}

	along := t.Origin.Sub(point).Dot(n) / denom
	local := point.Add(d.Scale(along)).Sub(t.Origin)
	u := local.Dot(x)
	v := -local.Dot(y)

	col, colEdge, ok := locateSpan(u, t.columnWidths)
	if !ok {
		return miss
	}
	row, rowEdge, ok := locateSpan(v, t.rowHeights)
	if !ok {
		return miss
	}
	if colEdge || rowEdge {
		return TableHitTestInfo{Type: TableHitGridLine, Row: row, Column: col}
	}
	return TableHitTestInfo{Type: TableHitCell, Row: row, Column: col}
}

// locateSpan finds the span containing offset. edge reports an offset on a border.
func locateSpan(offset float64, sizes []float64) (index int, edge bool, ok bool) {
	start := 0.0
	for i, size := range sizes {
		end := start + size
		if math.Abs(offset-start) <= GridLineTolerance {
			return i, true, true
		}
		if offset > start && offset < end-GridLineTolerance {
			return i, false, true
		}
		start = end
	}
	if math.Abs(offset-start) <= GridLineTolerance {
		return len(sizes) - 1, true, true
	}
	return -1, false, false
}

func (t *Table) clone() Entity {
	c := *t
	c.rowHeights = t.RowHeights()
	c.columnWidths = t.ColumnWidths()
	c.cells = make([][]Cell, len(t.cells))
	for i, row := range t.cells {
		c.cells[i] = append([]Cell(nil), row...)
	}
	return &c
}
