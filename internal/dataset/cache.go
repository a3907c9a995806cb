package dataset

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"jobinsight/internal/infrastructure"
	"jobinsight/pkg/contracts/domain"
)

// LoadFunc loads the table stored at path
type LoadFunc func(ctx context.Context, path string) (*domain.JobTable, error)

// StatFunc returns the current signature of the file at path
type StatFunc func(path string) (domain.SourceSignature, error)

// Cache keeps loaded tables keyed by path. An entry is served only while the
// file's modification time and size still match the signature recorded at
// load time; otherwise it is dropped and the file is read again.
type Cache struct {
	entries *lru.Cache
	group   singleflight.Group
	load    LoadFunc
	stat    StatFunc
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
}

// NewCache creates a cache holding at most size tables
func NewCache(size int, load LoadFunc, logger *slog.Logger, metrics *infrastructure.DashboardMetrics) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: entries,
		load:    load,
		stat:    Stat,
		logger:  infrastructure.WithComponent(logger, "dataset_cache"),
		metrics: metrics,
	}, nil
}

// Get returns the table for path, loading it when absent or stale.
// Concurrent misses for the same path share a single load.
func (c *Cache) Get(ctx context.Context, path string) (*domain.JobTable, error) {
	sig, err := c.stat(path)
	if err != nil {
		if c.entries.Contains(path) {
			c.entries.Remove(path)
			c.metrics.RecordCacheInvalidation(ctx, "unavailable")
		}
		return nil, err
	}

	if v, ok := c.entries.Get(path); ok {
		table := v.(*domain.JobTable)
		if table.Source.Matches(sig) {
			c.metrics.RecordCacheHit(ctx)
			return table, nil
		}
		c.entries.Remove(path)
		c.metrics.RecordCacheInvalidation(ctx, "changed")
		c.logger.InfoContext(ctx, "dataset changed on disk, reloading",
			slog.String("path", path),
			slog.Time("cached_mod_time", table.Source.ModTime),
			slog.Time("current_mod_time", sig.ModTime))
	}

	c.metrics.RecordCacheMiss(ctx)

	// The shared load outlives any single caller; each caller stops waiting
	// when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(path, func() (interface{}, error) {
		table, err := c.load(loadCtx, path)
		if err != nil {
			return nil, err
		}
		c.entries.Add(path, table)
		return table, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.DebugContext(ctx, "joined in-flight dataset load", slog.String("path", path))
		}
		return res.Val.(*domain.JobTable), nil
	}
}

// Invalidate drops the entry for path and reports whether one existed
func (c *Cache) Invalidate(ctx context.Context, path string) bool {
	present := c.entries.Contains(path)
	if present {
		c.entries.Remove(path)
		c.metrics.RecordCacheInvalidation(ctx, "explicit")
		c.logger.InfoContext(ctx, "dataset cache entry invalidated", slog.String("path", path))
	}
	return present
}

// Purge drops every entry
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached tables
func (c *Cache) Len() int {
	return c.entries.Len()
}
