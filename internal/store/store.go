// Package store defines the key-value storage the local backend keeps its
// item list in. It plays the role browser localStorage plays for a web page:
// string keys, opaque values, nothing else.
package store

import "context"

// KV is a minimal persistent key-value storage.
// Get returns (nil, nil) when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
