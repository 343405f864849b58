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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// OpenMode says how an entity is opened inside a transaction
type OpenMode int

const (
	ForRead OpenMode = iota
	ForWrite
)

type openedObject struct {
	entity Entity
	mode   OpenMode
}

// 🔒 Transaction hands out working copies of entities. Changes to objects
// opened for write, erasures and graphics flushes reach the document only
// on Commit.
type Transaction struct {
	doc    *Document
	opened map[Handle]*openedObject
	erased map[Handle]bool
	flush  []Handle
	done   bool
}

// GetObject opens the entity with the given handle. Opening the same handle
// twice returns the same working copy; a later ForWrite upgrades the mode.
func (tx *Transaction) GetObject(h Handle, mode OpenMode) (Entity, error) {
	if tx.done {
		return nil, errors.WithStack(ErrTransactionDone)
	}
	if tx.erased[h] {
		return nil, errors.Errorf("opening %s: %w", h, ErrErased)
	}
	if o, ok := tx.opened[h]; ok {
		if mode == ForWrite {
			o.mode = ForWrite
		}
		return o.entity, nil
	}

	e, ok := tx.doc.Entity(h)
	if !ok {
		return nil, errors.Errorf("opening %s: %w", h, ErrNotFound)
	}
	tx.opened[h] = &openedObject{entity: e, mode: mode}
	return e, nil
}

// Erase removes an entity opened for write from the drawing
func (tx *Transaction) Erase(h Handle) error {
	if tx.done {
		return errors.WithStack(ErrTransactionDone)
	}
	o, ok := tx.opened[h]
	if !ok || o.mode != ForWrite {
		return errors.Errorf("erasing %s: %w", h, ErrNotOpenForWrite)
	}
	tx.erased[h] = true
	return nil
}

// IsErased reports whether h was erased in this transaction
func (tx *Transaction) IsErased(h Handle) bool {
	return tx.erased[h]
}

// QueueForGraphicsFlush asks for the entity's on-screen representation to be
// regenerated once the transaction commits
func (tx *Transaction) QueueForGraphicsFlush(h Handle) {
	for _, queued := range tx.flush {
		if queued == h {
			return
		}
	}
	tx.flush = append(tx.flush, h)
}

// Commit applies the transaction to the document
func (tx *Transaction) Commit(ctx context.Context) error {
	if tx.done {
		return errors.WithStack(ErrTransactionDone)
	}
	tx.done = true
	tx.doc.apply(ctx, tx)

	zerolog.Ctx(ctx).Debug().
		Int("opened", len(tx.opened)).
		Int("erased", len(tx.erased)).
		Int("flushed", len(tx.flush)).
		Msg("transaction committed")
	return nil
}

// Abort discards the transaction. Aborting a finished transaction is a no-op.
func (tx *Transaction) Abort(ctx context.Context) {
	if tx.done {
		return
	}
	tx.done = true
	tx.doc.release(tx)
	zerolog.Ctx(ctx).Debug().Msg("transaction aborted")
}
