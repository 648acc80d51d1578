package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/travelgrid/internal/model"
)

// memKV is a map-backed store.KV for tests.
type memKV struct {
	data   map[string][]byte
	getErr error
	closed bool
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Close() error { m.closed = true; return nil }

func newTestBackend(kv *memKV) *Backend {
	b := New(kv, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	n := 0
	b.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	return b
}

func TestBackend_ListEmpty(t *testing.T) {
	b := newTestBackend(newMemKV())

	items, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBackend_CorruptDataIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data[DefaultNamespace] = []byte("{not json")
	b := newTestBackend(kv)

	items, err := b.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBackend_AddKeepsOrder(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(newMemKV())

	for _, title := range []string{"A", "B", "C"} {
		_, err := b.Add(ctx, model.Fields{Title: title})
		require.NoError(t, err)
	}

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "id-1", items[0].ID)
	assert.Equal(t, "C", items[2].Title)
}

func TestBackend_StoredFormat(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	b := newTestBackend(kv)

	_, err := b.Add(ctx, model.Fields{Title: "Sevilha", Country: "Espanha", Year: 2022})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id":"id-1","titulo":"Sevilha","pais":"Espanha","ano":2022}]`,
		string(kv.data[DefaultNamespace]))
}

func TestBackend_UpdateReplaces(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(newMemKV())

	id, err := b.Add(ctx, model.Fields{Title: "X", Category: "Praia", Country: "Brasil"})
	require.NoError(t, err)

	require.NoError(t, b.Update(ctx, id, model.Fields{Title: "Y"}))

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.Item{ID: id, Fields: model.Fields{Title: "Y"}}, items[0])
}

func TestBackend_UpdateUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	b := newTestBackend(kv)

	_, err := b.Add(ctx, model.Fields{Title: "X"})
	require.NoError(t, err)
	before := string(kv.data[DefaultNamespace])

	require.NoError(t, b.Update(ctx, "missing", model.Fields{Title: "Y"}))
	assert.Equal(t, before, string(kv.data[DefaultNamespace]))
}

func TestBackend_RemoveTwice(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(newMemKV())

	id, err := b.Add(ctx, model.Fields{Title: "X"})
	require.NoError(t, err)
	_, err = b.Add(ctx, model.Fields{Title: "Z"})
	require.NoError(t, err)

	require.NoError(t, b.Remove(ctx, id))
	require.NoError(t, b.Remove(ctx, id))

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Z", items[0].Title)
}

func TestBackend_StorageError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = assert.AnError
	b := newTestBackend(kv)

	_, err := b.List(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBackend_CloseClosesStorage(t *testing.T) {
	kv := newMemKV()
	b := newTestBackend(kv)

	require.NoError(t, b.Close())
	assert.True(t, kv.closed)
}
