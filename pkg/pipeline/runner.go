package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/export"
	"github.com/matzehuels/tidytree/pkg/layout"
	"github.com/matzehuels/tidytree/pkg/observability"
	"github.com/matzehuels/tidytree/pkg/render"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete load → layout → render pipeline with caching.
// treeData is the JSON-encoded input tree; source names it for logs.
func (r *Runner) Execute(ctx context.Context, treeData []byte, source string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	root, err := r.Load(ctx, treeData, source)
	if err != nil {
		return nil, err
	}
	result.Tree = root
	result.TreeHash = cache.Hash(treeData)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = tree.Count(root)
	result.Stats.Depth = tree.Depth(root)

	r.Logger.Info("loaded tree",
		"source", source,
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, root, result.TreeHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"blocks", len(l.Blocks),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load parses and validates a JSON-encoded tree.
func (r *Runner) Load(ctx context.Context, treeData []byte, source string) (*tree.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	root, err := tree.UnmarshalTree(treeData)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, source, tree.Count(root), time.Since(start), nil)
	return root, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether the result came from cache. treeHash keys the cache entry; pass
// the hash of the exact bytes the tree was parsed from.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, root *tree.Node, treeHash string, opts Options) (export.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return export.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested).
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := export.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err := r.computeLayout(ctx, root, opts)
	if err != nil {
		return export.Layout{}, false, err
	}

	if data, err := export.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, root *tree.Node, treeHash string, opts Options) (export.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, root, treeHash, opts)
	return l, err
}

func (r *Runner) computeLayout(ctx context.Context, root *tree.Node, opts Options) (export.Layout, error) {
	hooks := observability.Pipeline()
	nodeCount := tree.Count(root)
	hooks.OnLayoutStart(ctx, nodeCount)
	start := time.Now()

	lopts := opts.LayoutOptions()
	res, err := layout.Compute(root, lopts)
	hooks.OnLayoutComplete(ctx, nodeCount, time.Since(start), err)
	if err != nil {
		return export.Layout{}, err
	}
	return export.FromResult(res, lopts), nil
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l export.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := export.Marshal(l)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache.
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	// Render all formats.
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.renderFormat(ctx, l, layoutData, format, opts)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data

		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l export.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) renderFormat(ctx context.Context, l export.Layout, layoutData []byte, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data = layoutData
	case FormatDOT:
		data = []byte(render.ToDOT(l, render.Options{Detailed: opts.Detailed}))
	case FormatSVG:
		data, err = render.RenderSVG(ctx, render.ToDOT(l, render.Options{Detailed: opts.Detailed}))
	case FormatPNG:
		data, err = render.RenderPNG(ctx, render.ToDOT(l, render.Options{Detailed: opts.Detailed}))
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
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
