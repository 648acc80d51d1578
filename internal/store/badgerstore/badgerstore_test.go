package badgerstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	b, err := s.Get(ctx, "tg_items")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.Set(ctx, "tg_items", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "tg_items", []byte(`[{"id":"x"}]`)))

	b, err = s.Get(ctx, "tg_items")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x"}]`, string(b))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	b, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(b))
}
