// Package cache stores rendered diagrams so repeated exports of an unchanged
// box index skip the Graphviz run.
//
// Keys are derived from the rendered source and its output options with
// [RenderKey]; entries carry an optional expiry.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a rendered diagram stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data for key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RenderOpts are the output options that change a rendered artifact.
type RenderOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// RenderKey returns the key for source rendered with opts.
func RenderKey(source string, opts RenderOpts) string {
	return hashKey("render", Hash([]byte(source)), opts)
}
