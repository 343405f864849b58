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
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/pkg/drawing"
	"github.com/walteh/textpaste/pkg/messages"
	"github.com/walteh/textpaste/pkg/prompt"
)

// CellRef addresses one cell of a table
type CellRef struct {
	Row    int
	Column int
}

func (c CellRef) String() string {
	return fmt.Sprintf("cell (%d, %d)", c.Row, c.Column)
}

// 🎯 LocateAt resolves point to the cell it lies on, probing along the table
// normal. Grid line hits and misses do not locate a cell.
func LocateAt(t *drawing.Table, point drawing.Point3d) (CellRef, bool) {
	hit := t.HitTest(point, t.Normal)
	if hit.Type != drawing.TableHitCell {
		return CellRef{}, false
	}
	return CellRef{Row: hit.Row, Column: hit.Column}, true
}

// 📍 CellLocator asks the user to pick a cell of a table
type CellLocator struct {
	prompter prompt.Prompter
	msgs     *messages.Catalog
}

// NewCellLocator creates a cell locator prompting through p
func NewCellLocator(p prompt.Prompter, msgs *messages.Catalog) *CellLocator {
	return &CellLocator{prompter: p, msgs: msgs}
}

// Locate prompts for points until one lands on a cell of t. ok is false when
// the user declined or cancelled the point prompt.
func (l *CellLocator) Locate(ctx context.Context, t *drawing.Table) (CellRef, bool, error) {
	logger := zerolog.Ctx(ctx)

	for {
		res, err := l.prompter.GetPoint(ctx, l.msgs.Get(messages.PickCell))
		if err != nil {
			return CellRef{}, false, errors.Errorf("prompting for table cell: %w", err)
		}
		if res.Status != prompt.StatusOK {
			logger.Debug().Str("table", string(t.Handle())).Stringer("status", res.Status).Msg("cell pick not completed")
			return CellRef{}, false, nil
		}

		if ref, ok := LocateAt(t, res.Point); ok {
			logger.Debug().Str("table", string(t.Handle())).Int("row", ref.Row).Int("column", ref.Column).Msg("cell located")
			return ref, true, nil
		}
		l.prompter.Message(ctx, l.msgs.Get(messages.NoCell))
	}
}
