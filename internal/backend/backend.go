package backend

import (
	"context"

	"github.com/Makepad-fr/travelgrid/internal/model"
)

// Names reported by Backend.Name.
const (
	NameRemote = "remote"
	NameLocal  = "local"
)

// Backend is the persistence contract shared by the remote document store and
// the local list. Implementations: remote.Backend, local.Backend.
type Backend interface {
	// Name is NameRemote or NameLocal.
	Name() string

	// List returns every stored item.
	List(ctx context.Context) ([]model.Item, error)

	// Add stores a new record and returns its generated id.
	Add(ctx context.Context, f model.Fields) (string, error)

	// Remove deletes the record with id. Unknown ids are not an error.
	Remove(ctx context.Context, id string) error

	// Update changes the record with id. Remote merges, local replaces.
	Update(ctx context.Context, id string, f model.Fields) error

	// Overwrite sets every field of the record with id to f, clearing the
	// ones f leaves zero.
	Overwrite(ctx context.Context, id string, f model.Fields) error

	// Close releases whatever the backend opened.
	Close() error
}
