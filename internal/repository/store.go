package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RecordStore persists named blobs. Every write replaces the whole value
// stored under the key; there are no partial or indexed queries.
type RecordStore interface {
	// Load returns the value stored under key. found is false when the key
	// was never written or has been removed.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	// Save overwrites the value stored under key.
	Save(ctx context.Context, key string, data []byte) error
	// Remove deletes the value stored under key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ErrInvalidKey is returned by stores for keys they cannot address.
var ErrInvalidKey = errors.New("invalid record key")

// ValidateKey rejects keys that are empty or would escape a flat namespace.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`), key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
