// Package cache stores rendered report artifacts.
//
// # Backends
//
// Every backend implements [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared entries for several server instances
//   - [MongoCache]: long-lived entries in a MongoDB collection
//
// A miss is reported as (nil, false, nil). Errors are reserved for backend
// failures; callers in this module treat them as misses.
//
// # Keys
//
// Keys are produced by a [Keyer] so that the same input and options always
// map to the same entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{Format: "svg"})
//
// Use [NewScopedKeyer] to keep tenants or environments apart in a shared
// backend.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
	// keyed by content hash, so entries never go stale; the TTL only bounds
	// storage.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or
	// expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Title    string `json:"title,omitempty"`
	Source   string `json:"source,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the input
	// with the given content hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
