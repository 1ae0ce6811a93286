// Package cache provides caching for computed layouts and rendered
// artifacts. The same interface backs the CLI's file cache and the no-op
// cache used when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default TTLs per content kind. Layouts are pure functions of the input
// tree and settings, so they never go stale; the long TTL just bounds disk
// usage. Artifacts embed style defaults that may change between releases.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts carries every setting that affects layout geometry.
// Two computations with equal tree hashes and equal opts produce identical
// layouts, so they may share a cache entry.
type LayoutKeyOpts struct {
	Layered           bool
	ParentChildMargin float64
	PeerMargin        float64
}

// ArtifactKeyOpts carries every setting that affects rendered output.
type ArtifactKeyOpts struct {
	Format   string // "svg", "png", "dot"
	Detailed bool   // coordinate/metadata labels baked into the artifact
}

// Keyer generates cache keys for the content kinds the pipeline stores.
type Keyer interface {
	// LayoutKey keys a computed layout by the input tree's content hash and
	// the layout settings.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout's content hash and
	// the render settings.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a kind prefix followed by a
// SHA-256 over the identifying inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts.Layered, opts.ParentChildMargin, opts.PeerMargin)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Detailed)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
