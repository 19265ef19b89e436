// Package store provides the key-value persistence collaborator used by
// the game manager. The interface mirrors a browser localStorage:
// string keys, string values, whole values read and written on every
// access, no partial updates. Implementations are safe for use from a
// single caller; the manager is the only writer.
package store

// Store is a synchronous string key-value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set upserts the value for key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all present keys in unspecified order.
	Keys() ([]string, error)
}
