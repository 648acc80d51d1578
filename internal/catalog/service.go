package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Makepad-fr/travelgrid/internal/backend"
	"github.com/Makepad-fr/travelgrid/internal/model"
)

// Service is the one CRUD contract the UI and CLI use, whatever backend sits
// underneath. The backend is picked once, when the Service is built.
type Service struct {
	backend backend.Backend
	log     *slog.Logger

	seedMu sync.Mutex
}

// NewService wraps an already opened backend.
func NewService(b backend.Backend, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{backend: b, log: log.With("backend", b.Name())}
}

// Backend reports which backend is active ("remote" or "local").
func (s *Service) Backend() string { return s.backend.Name() }

// FetchItems returns every stored item.
func (s *Service) FetchItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.backend.List(ctx)
	if err != nil {
		s.log.Error("fetch items", "err", err)
		return nil, err
	}
	return items, nil
}

// AddItem stores f as a new item and returns the id the backend assigned.
func (s *Service) AddItem(ctx context.Context, f model.Fields) (string, error) {
	id, err := s.backend.Add(ctx, f)
	if err != nil {
		s.log.Error("add item", "err", err)
		return "", err
	}
	s.log.Info("item added", "id", id, "title", f.Title)
	return id, nil
}

// RemoveItem deletes id. Removing an id that is not there is not an error;
// neither is an empty id, which never names a stored item.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	if id == "" {
		s.log.Warn("remove item: empty id ignored")
		return nil
	}
	if err := s.backend.Remove(ctx, id); err != nil {
		s.log.Error("remove item", "id", id, "err", err)
		return err
	}
	s.log.Info("item removed", "id", id)
	return nil
}

// UpdateItem changes id. The remote backend merges f into the stored record;
// the local backend replaces the record with f.
func (s *Service) UpdateItem(ctx context.Context, id string, f model.Fields) error {
	if id == "" {
		s.log.Warn("update item: empty id ignored")
		return nil
	}
	if err := s.backend.Update(ctx, id, f); err != nil {
		s.log.Error("update item", "id", id, "err", err)
		return err
	}
	s.log.Info("item updated", "id", id)
	return nil
}

// OverwriteItem sets every field of id to f on either backend; fields left
// blank in f are cleared. This is what an edit form submits.
func (s *Service) OverwriteItem(ctx context.Context, id string, f model.Fields) error {
	if id == "" {
		s.log.Warn("overwrite item: empty id ignored")
		return nil
	}
	if err := s.backend.Overwrite(ctx, id, f); err != nil {
		s.log.Error("overwrite item", "id", id, "err", err)
		return err
	}
	s.log.Info("item overwritten", "id", id)
	return nil
}

// SeedIfEmpty inserts the sample destinations when the store has no items
// and reports whether it did. Concurrent calls on one Service are serialised;
// other writers can still observe a partly seeded store.
func (s *Service) SeedIfEmpty(ctx context.Context) (bool, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	existing, err := s.FetchItems(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, f := range Samples() {
		if _, err := s.AddItem(ctx, f); err != nil {
			return false, fmt.Errorf("seed %q: %w", f.Title, err)
		}
	}
	s.log.Info("store seeded", "count", len(Samples()))
	return true, nil
}

// Close releases the backend.
func (s *Service) Close() error { return s.backend.Close() }
