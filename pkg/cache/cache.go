// Package cache provides content-addressed caching for computed layouts.
//
// The pipeline caches only derived artifacts: a layout document is a pure
// function of (graph content, layout options), so cache keys hash both. The
// source documents themselves are never stored.
//
// Three backends are provided:
//   - [NewFileCache]: directory of JSON entries for CLI usage
//   - [NewRedisCache]: shared cache for serve deployments
//   - [NewNullCache]: caching disabled
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the storage backend contract. Get reports (data, found, error);
// a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// Keyer builds cache keys for the pipeline's cacheable artifacts.
type Keyer interface {
	// LayoutKey keys a computed layout by graph content hash and the
	// options that shaped it.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the layout options that affect cache identity.
type LayoutKeyOpts struct {
	Algorithm string  `json:"algorithm"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Seed      uint64  `json:"seed"`
	Ticks     int     `json:"ticks"`
	Overlap   bool    `json:"overlap"`
	Center    bool    `json:"center"`
}

// DefaultKeyer hashes key parts with SHA-256 under a type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces when
// one backend is shared by several tenants or deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}
