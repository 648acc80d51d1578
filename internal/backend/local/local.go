package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Makepad-fr/travelgrid/internal/backend"
	"github.com/Makepad-fr/travelgrid/internal/model"
	"github.com/Makepad-fr/travelgrid/internal/store"
)

// DefaultNamespace is the key the whole list is stored under.
const DefaultNamespace = "tg_items"

var _ backend.Backend = (*Backend)(nil)

// Backend keeps an ordered list of items as one JSON value in a KV storage.
type Backend struct {
	mu        sync.Mutex
	kv        store.KV
	namespace string
	log       *slog.Logger
	newID     func() string
}

// New returns a local backend writing under namespace in kv.
// It takes ownership of kv; Close closes it.
func New(kv store.KV, namespace string, log *slog.Logger) *Backend {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		kv:        kv,
		namespace: namespace,
		log:       log,
		newID:     uuid.NewString,
	}
}

// Name reports backend.NameLocal.
func (b *Backend) Name() string { return backend.NameLocal }

// all reads the stored list. Missing or unreadable JSON is an empty list.
func (b *Backend) all(ctx context.Context) ([]model.Item, error) {
	raw, err := b.kv.Get(ctx, b.namespace)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", b.namespace, err)
	}
	if len(raw) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		b.log.Warn("local store holds invalid JSON, treating as empty",
			"key", b.namespace, "err", err)
		return []model.Item{}, nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (b *Backend) save(ctx context.Context, items []model.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := b.kv.Set(ctx, b.namespace, raw); err != nil {
		return fmt.Errorf("save %s: %w", b.namespace, err)
	}
	return nil
}

func (b *Backend) List(ctx context.Context) ([]model.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.all(ctx)
}

func (b *Backend) Add(ctx context.Context, f model.Fields) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.all(ctx)
	if err != nil {
		return "", err
	}
	id := b.newID()
	items = append(items, f.WithID(id))
	if err := b.save(ctx, items); err != nil {
		return "", err
	}
	return id, nil
}

func (b *Backend) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.all(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return b.save(ctx, kept)
}

// Update overwrites every field of the matching entry. Fields left zero in f
// are cleared, unlike the remote backend which merges.
func (b *Backend) Update(ctx context.Context, id string, f model.Fields) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	items, err := b.all(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i] = f.WithID(id)
			return b.save(ctx, items)
		}
	}
	return nil
}

// Overwrite is Update: the local list always replaces whole records.
func (b *Backend) Overwrite(ctx context.Context, id string, f model.Fields) error {
	return b.Update(ctx, id, f)
}

func (b *Backend) Close() error { return b.kv.Close() }
