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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func newDoc(t *testing.T) *Document {
	doc := NewDocument()
	require.NoError(t, doc.Add(
		NewText("A", "0", "alpha"),
		NewMText("B", "0", "bravo"),
		NewLeader("L", "notes", NewMText("", "", "callout")),
	))
	return doc
}

func TestTransactionCommitAppliesWrites(t *testing.T) {
	ctx := testContext(t)
	doc := newDoc(t)

	tx, err := doc.StartTransaction(ctx)
	require.NoError(t, err)

	e, err := tx.GetObject("B", ForWrite)
	require.NoError(t, err)
	e.(*MText).Contents = "changed"

	// reads inside the transaction see the working copy
	again, err := tx.GetObject("B", ForRead)
	require.NoError(t, err)
	assert.Equal(t, "changed", again.(*MText).Contents)

	// the document does not, until commit
	committed, _ := doc.Entity("B")
	assert.Equal(t, "bravo", committed.(*MText).Contents)

	require.NoError(t, tx.Commit(ctx))
	committed, _ = doc.Entity("B")
	assert.Equal(t, "changed", committed.(*MText).Contents)
}

func TestTransactionReadModeIsNotApplied(t *testing.T) {
	ctx := testContext(t)
	doc := newDoc(t)

	tx, err := doc.StartTransaction(ctx)
	require.NoError(t, err)
	e, err := tx.GetObject("A", ForRead)
	require.NoError(t, err)
	e.(*Text).Value = "scribbled"
	require.NoError(t, tx.Commit(ctx))

	committed, _ := doc.Entity("A")
	assert.Equal(t, "alpha", committed.(*Text).Value, "objects opened for read are never written back")
}

func TestTransactionAbortDiscards(t *testing.T) {
	ctx := testContext(t)
	doc := newDoc(t)

	tx, err := doc.StartTransaction(ctx)
	require.NoError(t, err)
	e, err := tx.GetObject("A", ForWrite)
	require.NoError(t, err)
	e.(*Text).Value = "gone"
	assert.True(t, errors.Is(tx.Erase("B"), ErrNotOpenForWrite), "B was never opened")

	tx.Abort(ctx)

	committed, ok := doc.Entity("A")
	require.True(t, ok)
	assert.Equal(t, "alpha", committed.(*Text).Value)
	_, ok = doc.Entity("B")
	assert.True(t, ok)
}

func TestTransactionErase(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name    string
		open    OpenMode
		commit  bool
		wantErr error
		exists  bool
	}{
		{name: "erase_then_commit", open: ForWrite, commit: true, exists: false},
		{name: "erase_then_abort", open: ForWrite, commit: false, exists: true},
		{name: "erase_read_only", open: ForRead, commit: true, wantErr: ErrNotOpenForWrite, exists: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t)
			tx, err := doc.StartTransaction(ctx)
			require.NoError(t, err)

			_, err = tx.GetObject("A", tt.open)
			require.NoError(t, err)

			err = tx.Erase("A")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.True(t, tx.IsErased("A"))
				_, err = tx.GetObject("A", ForRead)
				assert.True(t, errors.Is(err, ErrErased), "erased objects can no longer be opened")
			}

			if tt.commit {
				require.NoError(t, tx.Commit(ctx))
			} else {
				tx.Abort(ctx)
			}

			_, ok := doc.Entity("A")
			assert.Equal(t, tt.exists, ok)
			assert.Equal(t, map[bool]int{true: 3, false: 2}[tt.exists], doc.Len())
		})
	}
}

func TestTransactionLifecycle(t *testing.T) {
	ctx := testContext(t)
	doc := newDoc(t)

	tx, err := doc.StartTransaction(ctx)
	require.NoError(t, err)

	_, err = doc.StartTransaction(ctx)
	assert.True(t, errors.Is(err, ErrTransactionInUse))

	_, err = tx.GetObject("missing", ForRead)
	assert.True(t, errors.Is(err, ErrNotFound))

	tx.Abort(ctx)
	tx.Abort(ctx)

	_, err = tx.GetObject("A", ForRead)
	assert.True(t, errors.Is(err, ErrTransactionDone))
	assert.True(t, errors.Is(tx.Commit(ctx), ErrTransactionDone))

	next, err := doc.StartTransaction(ctx)
	require.NoError(t, err, "an aborted transaction frees the document")
	require.NoError(t, next.Commit(ctx))
}

func TestTransactionGraphicsFlush(t *testing.T) {
	ctx := testContext(t)
	doc := newDoc(t)

	var regenerated []Handle
	doc.OnRegen(func(ctx context.Context, e Entity) {
		regenerated = append(regenerated, e.Handle())
	})

	tx, err := doc.StartTransaction(ctx)
	require.NoError(t, err)
	_, err = tx.GetObject("A", ForWrite)
	require.NoError(t, err)
	require.NoError(t, tx.Erase("A"))

	tx.QueueForGraphicsFlush("B")
	tx.QueueForGraphicsFlush("L")
	tx.QueueForGraphicsFlush("B")
	tx.QueueForGraphicsFlush("A")
	assert.Empty(t, regenerated, "nothing is regenerated before commit")

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, []Handle{"B", "L"}, regenerated, "erased entities are not regenerated")
}

func TestDocumentAdd(t *testing.T) {
	doc := newDoc(t)

	err := doc.Add(NewText("A", "0", "dup"))
	assert.True(t, errors.Is(err, ErrDuplicateHandle))

	assert.Error(t, doc.Add(NewText("", "0", "anonymous")))

	kinds := []Kind{}
	for _, e := range doc.Entities() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []Kind{KindText, KindMText, KindLeader}, kinds, "entities keep insertion order")
}

func TestDocumentSettings(t *testing.T) {
	ctx := testContext(t)
	doc := NewDocument()

	_, ok, err := doc.GetString(ctx, "textpaste")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, doc.SetString(ctx, "textpaste", "True"))
	v, ok, err := doc.GetString(ctx, "textpaste")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "True", v)

	assert.Error(t, doc.SetString(ctx, "", "x"))
}

func TestLeaderContentIsDetached(t *testing.T) {
	l := NewLeader("L", "notes", NewMText("M", "other", "before"))

	m := l.MText()
	require.NotNil(t, m)
	assert.Equal(t, Handle(""), m.Handle(), "embedded text has no handle of its own")
	assert.Equal(t, "notes", m.Layer(), "embedded text follows the leader layer")

	m.Contents = "after"
	assert.Equal(t, "before", l.MText().Contents, "mutating the copy does not touch the leader")

	l.SetMText(m)
	assert.Equal(t, "after", l.MText().Contents)

	assert.Nil(t, NewLeader("E", "0", nil).MText())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "text", want: KindText},
		{in: "DBText", want: KindText},
		{in: "mtext", want: KindMText},
		{in: "MLeader", want: KindLeader},
		{in: " dim ", want: KindDimension},
		{in: "table", want: KindTable},
		{in: "hatch", want: KindUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
