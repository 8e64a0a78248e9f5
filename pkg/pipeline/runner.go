package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/doctree"
	pkgio "github.com/matzehuels/doctree/pkg/io"
	"github.com/matzehuels/doctree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute decodes data and runs the remaining stages on it.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnDecodeStart(ctx, opts.Source, len(data))
	doc, err := pkgio.ParseJSON(data)
	decodeTime := time.Since(start)
	hooks.OnDecodeComplete(ctx, opts.Source, decodeTime, err)
	if err != nil {
		return nil, err
	}

	result, err := r.ExecuteDocument(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = decodeTime
	return result, nil
}

// ExecuteDocument runs the explore and render stages on an already decoded
// document.
func (r *Runner) ExecuteDocument(ctx context.Context, doc *pkgio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	result := &Result{
		InputHash: cache.Hash(doc.Raw),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.InputBytes = doc.Size()

	// Stage 1: Explore
	exploreStart := time.Now()
	hooks.OnExploreStart(ctx, opts.Source)
	report, err := doctree.New(doctree.Options{MaxDepth: opts.MaxDepth}).
		BuildReport(doc.Value, doctree.ReportOptions{Title: opts.Title, Source: opts.Source})
	result.Stats.ExploreTime = time.Since(exploreStart)
	if err != nil {
		hooks.OnExploreComplete(ctx, opts.Source, 0, 0, result.Stats.ExploreTime, err)
		return nil, err
	}
	hooks.OnExploreComplete(ctx, opts.Source, report.Lines.Len(), len(report.NodeErrors()), result.Stats.ExploreTime, nil)

	result.Report = report
	result.Stats.Lines = report.Lines.Len()
	result.Stats.Nodes = report.Levels.Total()
	result.Stats.Levels = report.Levels.Len()
	result.Stats.NodeErrors = len(report.NodeErrors())

	opts.Logger.Info("built report",
		"lines", result.Stats.Lines,
		"nodes", result.Stats.Nodes,
		"levels", result.Stats.Levels,
		"duration", result.Stats.ExploreTime)
	for _, ne := range report.NodeErrors() {
		opts.Logger.Warn("node exploration failed", "item", ne.Index, "id", ne.ID, "err", ne.Err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, info, err := r.RenderWithCacheInfo(ctx, result.InputHash, report, doc, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving formats from
// the cache where possible and caching the rest. Cache failures are logged
// and treated as misses.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, inputHash string, report *doctree.Report, doc *pkgio.Document, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, CacheInfo{}, err
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var info CacheInfo
	var missing []string

	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, format)
			artifacts[format] = data
			info.Hits = append(info.Hits, format)
			continue
		}
		cacheHooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	info.RenderHit = len(missing) == 0
	if info.RenderHit {
		return artifacts, info, nil
	}

	rendered, err := Render(report, doc.Value, missing, opts)
	if err != nil {
		return nil, info, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	return artifacts, info, nil
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
