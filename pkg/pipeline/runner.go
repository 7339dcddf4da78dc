package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/observability"
	"github.com/matzehuels/ganttline/pkg/render/sink"
	"github.com/matzehuels/ganttline/pkg/task"
	"github.com/matzehuels/ganttline/pkg/taskio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ArtifactTTL is the lifetime of rendered artifacts; zero means
	// cache.TTLArtifact.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// HashTasks returns the content hash the cache keys are derived from.
func HashTasks(tasks []*task.Task) (string, error) {
	var buf bytes.Buffer
	if err := taskio.Encode(&buf, tasks, taskio.JSON); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// Execute runs the layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, tasks []*task.Task, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashTasks(tasks)
	if err != nil {
		return nil, fmt.Errorf("hash tasks: %w", err)
	}
	result := &Result{
		TasksHash: hash,
		Stats:     Stats{TaskCount: len(tasks)},
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, err := r.Layout(ctx, tasks, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LaneCount = len(l.Lanes)
	result.Stats.RowCount = l.TotalRows

	opts.Logger.Info("computed layout",
		"view", l.View,
		"lanes", len(l.Lanes),
		"rows", l.TotalRows,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout composes tasks, reporting the pass to the pipeline hooks.
func (r *Runner) Layout(ctx context.Context, tasks []*task.Task, opts Options) (layout.Layout, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Scale, len(tasks))

	start := time.Now()
	l, err := Compose(tasks, opts)
	hooks.OnLayoutComplete(ctx, opts.Scale, len(l.Lanes), l.TotalRows, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}
	opts.Logger.Debug("composed", "summary", Summary(l))
	return l, nil
}

// LayoutJSONWithCacheInfo returns the layout as a JSON document, with caching,
// and whether it came from the cache.
func (r *Runner) LayoutJSONWithCacheInfo(ctx context.Context, tasks []*task.Task, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	hash, err := HashTasks(tasks)
	if err != nil {
		return nil, false, fmt.Errorf("hash tasks: %w", err)
	}

	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())
	if data, ok := r.lookup(ctx, key, "layout", opts); ok {
		return data, true, nil
	}

	l, err := r.Layout(ctx, tasks, opts)
	if err != nil {
		return nil, false, err
	}
	data, err := sink.RenderJSON(l)
	if err != nil {
		return nil, false, fmt.Errorf("encode layout: %w", err)
	}
	r.store(ctx, key, "layout", data, cache.TTLLayout, opts)
	return data, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every format came from the cache. Only formats missing from the cache are
// rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, tasksHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(tasksHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.lookup(ctx, key, "artifact", opts); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	for _, format := range missing {
		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(tasksHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, "artifact", data, r.artifactTTL(), opts)
	}
	hooks.OnRenderComplete(ctx, missing, time.Since(start), nil)

	return artifacts, false, nil
}

// Render generates artifacts without consulting the cache, reporting the pass
// to the pipeline hooks.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// lookup reads key unless opts.Refresh is set. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, opts Options) ([]byte, bool) {
	hooks := observability.Cache()
	if opts.Refresh {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// store writes key. A failed write is logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, opts Options) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) artifactTTL() time.Duration {
	if r.ArtifactTTL > 0 {
		return r.ArtifactTTL
	}
	return cache.TTLArtifact
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
