// Package cache stores rendered chart artifacts between runs.
//
// # Backends
//
//   - [FileCache]: one JSON entry per key under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from a hash of the task input plus the options that
// affect the output, so any change to either produces a fresh key:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(taskJSON), cache.ArtifactKeyOpts{Format: "svg", Scale: "hour"})
//
// [NewScopedKeyer] prefixes every key, keeping callers that share one
// backend out of each other's way.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a composed layout of the tasks hashed to tasksHash.
	LayoutKey(tasksHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output format of that layout.
	ArtifactKey(tasksHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Scale       string `json:"scale"`
	RangeStart  int    `json:"range_start"`
	RangeEnd    int    `json:"range_end"`
	Assignee    string `json:"assignee,omitempty"`
	Color       string `json:"color,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	MinDuration string `json:"min_duration,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	LayoutKeyOpts
	Format      string  `json:"format"`
	ColumnWidth float64 `json:"column_width,omitempty"`
	RowHeight   float64 `json:"row_height,omitempty"`
	LabelWidth  float64 `json:"label_width,omitempty"`
	Title       string  `json:"title,omitempty"`
	TrackLabels bool    `json:"track_labels,omitempty"`
	Background  string  `json:"background,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(tasksHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tasksHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(tasksHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tasksHash, opts)
}
