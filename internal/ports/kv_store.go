package ports

import "context"

// Port: a local persistent key-value store. Values are opaque serialized
// documents read and written whole; there are no partial updates.
type KVStore interface {
	// Return the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Replace the value for key.
	Set(ctx context.Context, key string, value []byte) error
}
