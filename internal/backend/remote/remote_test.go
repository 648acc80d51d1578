package remote

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/travelgrid/internal/backend/remote/fakestore"
	"github.com/Makepad-fr/travelgrid/internal/model"
)

func TestCollectionURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://x.firebaseio.com", "https://x.firebaseio.com/items"},
		{"https://x.firebaseio.com/", "https://x.firebaseio.com/items"},
		{"https://x.firebaseio.com/items", "https://x.firebaseio.com/items"},
		{" https://x.firebaseio.com/items/ ", "https://x.firebaseio.com/items"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CollectionURL(tt.in), tt.in)
	}
}

func TestBackend_ListNull(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()

	items, err := New(srv.URL, Options{}).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestBackend_AddThenList(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	in := model.Fields{Title: "Sevilha", Category: "Cidade", Country: "Espanha", Year: 2022}
	id, err := b.Add(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, in, items[0].Fields)

	assert.Equal(t, []string{"POST /items.json", "GET /items.json"}, srv.Requests())
}

func TestBackend_ListOrdersByKey(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	for _, title := range []string{"A", "B", "C"} {
		_, err := b.Add(ctx, model.Fields{Title: title})
		require.NoError(t, err)
	}
	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{items[0].Title, items[1].Title, items[2].Title})
}

func TestBackend_UpdateMerges(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	id, err := b.Add(ctx, model.Fields{Title: "X", Category: "Praia", Country: "Brasil"})
	require.NoError(t, err)

	require.NoError(t, b.Update(ctx, id, model.Fields{Title: "Y"}))

	rec, ok := srv.Record(id)
	require.True(t, ok)
	assert.Equal(t, "Y", rec["titulo"])
	assert.Equal(t, "Praia", rec["categoria"])
	assert.Equal(t, "Brasil", rec["pais"])
	assert.Contains(t, srv.Requests(), "PATCH /items/"+id+".json")
}

func TestBackend_OverwriteClearsBlankFields(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	id, err := b.Add(ctx, model.Fields{Title: "X", Description: "D", Country: "Brasil", Year: 2020})
	require.NoError(t, err)

	require.NoError(t, b.Overwrite(ctx, id, model.Fields{Title: "X", Country: "Brasil"}))

	items, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.Fields{Title: "X", Country: "Brasil"}, items[0].Fields)
}

func TestBackend_EmptyIDNeverHitsCollection(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	_, err := b.Add(ctx, model.Fields{Title: "X"})
	require.NoError(t, err)

	require.NoError(t, b.Remove(ctx, ""))
	require.NoError(t, b.Update(ctx, "", model.Fields{Title: "Y"}))
	require.NoError(t, b.Overwrite(ctx, "", model.Fields{Title: "Y"}))

	assert.Equal(t, []string{"POST /items.json"}, srv.Requests())
	assert.Equal(t, 1, srv.Len())
}

func TestBackend_Remove(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})

	id, err := b.Add(ctx, model.Fields{Title: "X"})
	require.NoError(t, err)

	require.NoError(t, b.Remove(ctx, id))
	require.NoError(t, b.Remove(ctx, id))
	assert.Equal(t, 0, srv.Len())
}

func TestBackend_NonSuccessIsBackendError(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	ctx := context.Background()
	b := New(srv.URL, Options{})
	srv.FailWith(http.StatusUnauthorized)

	_, err := b.List(ctx)
	var be *model.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusUnauthorized, be.StatusCode)
	assert.Equal(t, "fetch items", be.Op)

	_, err = b.Add(ctx, model.Fields{Title: "X"})
	assert.ErrorIs(t, err, model.ErrBackend)
	assert.ErrorIs(t, b.Remove(ctx, "a"), model.ErrBackend)
	assert.ErrorIs(t, b.Update(ctx, "a", model.Fields{Title: "Y"}), model.ErrBackend)
}

func TestBackend_Unreachable(t *testing.T) {
	srv := fakestore.New()
	url := srv.URL
	srv.Close()

	_, err := New(url, Options{}).List(context.Background())
	var be *model.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 0, be.StatusCode)
}

func TestBackend_RateLimitHonoursContext(t *testing.T) {
	srv := fakestore.New()
	defer srv.Close()
	b := New(srv.URL, Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	_, err := b.List(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.List(ctx)
	assert.ErrorIs(t, err, model.ErrBackend)
	assert.Len(t, srv.Requests(), 1)
}
