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
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrNotFound         = errors.Base("entity not found")
	ErrErased           = errors.Base("entity was erased")
	ErrDuplicateHandle  = errors.Base("duplicate handle")
	ErrNotOpenForWrite  = errors.Base("entity not open for write")
	ErrTransactionDone  = errors.Base("transaction already finished")
	ErrTransactionInUse = errors.Base("another transaction is active")
)

// RegenListener is told about every entity whose graphics were flushed on commit
type RegenListener func(ctx context.Context, e Entity)

// 🗂️ Document is an in-memory drawing: an ordered set of entities plus a
// document-scoped string dictionary.
type Document struct {
	mu        sync.Mutex
	entities  map[Handle]Entity
	order     []Handle
	xdata     map[string]string
	listeners []RegenListener
	active    *Transaction
}

// NewDocument creates an empty drawing
func NewDocument() *Document {
	return &Document{
		entities: make(map[Handle]Entity),
		xdata:    make(map[string]string),
	}
}

// Add appends entities to the drawing
func (d *Document) Add(entities ...Entity) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, e := range entities {
		if e.Handle() == "" {
			return errors.Errorf("adding %s entity: empty handle", e.Kind())
		}
		if _, ok := d.entities[e.Handle()]; ok {
			return errors.Errorf("adding %s: %w", e.Handle(), ErrDuplicateHandle)
		}
		d.entities[e.Handle()] = e.clone()
		d.order = append(d.order, e.Handle())
	}
	return nil
}

// Entity returns a snapshot of the committed entity with the given handle
func (d *Document) Entity(h Handle) (Entity, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entities[h]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// Entities returns snapshots of all committed entities in drawing order
func (d *Document) Entities() []Entity {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Entity, 0, len(d.order))
	for _, h := range d.order {
		out = append(out, d.entities[h].clone())
	}
	return out
}

// Len returns the number of committed entities
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order)
}

// OnRegen registers a listener for graphics flushes
func (d *Document) OnRegen(fn RegenListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// GetString reads a value from the document dictionary
func (d *Document) GetString(ctx context.Context, key string) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.xdata[key]
	return v, ok, nil
}

// SetString stores a value in the document dictionary
func (d *Document) SetString(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("empty dictionary key")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.xdata[key] = value
	zerolog.Ctx(ctx).Debug().Str("key", key).Str("value", value).Msg("stored document value")
	return nil
}

// StartTransaction opens the single transaction a document allows at a time
func (d *Document) StartTransaction(ctx context.Context) (*Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		return nil, errors.WithStack(ErrTransactionInUse)
	}
	tx := &Transaction{
		doc:    d,
		opened: make(map[Handle]*openedObject),
		erased: make(map[Handle]bool),
	}
	d.active = tx
	zerolog.Ctx(ctx).Trace().Msg("transaction started")
	return tx, nil
}

func (d *Document) apply(ctx context.Context, tx *Transaction) {
	d.mu.Lock()
	for h, o := range tx.opened {
		if o.mode == ForWrite && !tx.erased[h] {
			d.entities[h] = o.entity
		}
	}
	if len(tx.erased) > 0 {
		kept := d.order[:0]
		for _, h := range d.order {
			if tx.erased[h] {
				delete(d.entities, h)
				continue
			}
			kept = append(kept, h)
		}
		d.order = kept
	}
	listeners := append([]RegenListener(nil), d.listeners...)
	var flushed []Entity
	for _, h := range tx.flush {
		if e, ok := d.entities[h]; ok {
			flushed = append(flushed, e.clone())
		}
	}
	d.active = nil
	d.mu.Unlock()

	for _, e := range flushed {
		for _, fn := range listeners {
			fn(ctx, e)
		}
	}
}

func (d *Document) release(tx *Transaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == tx {
		d.active = nil
	}
}
