package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"freightcalc/metrics"
)

// RateProvider hands out the rate table quotes are evaluated against.
type RateProvider interface {
	Current(ctx context.Context) (*RateTable, error)
}

// SnapshotStore keeps the last good rate table.
type SnapshotStore interface {
	RateSource
	Save(ctx context.Context, table *RateTable) error
}

// StaticRates always returns the same table.
type StaticRates struct {
	Table *RateTable
}

func (s StaticRates) Current(context.Context) (*RateTable, error) {
	if s.Table == nil {
		return nil, ErrNoRateTable
	}
	return s.Table, nil
}

// RateCacheOptions configures a RateCache. Source and Snapshot are both
// optional but at least one should be set.
type RateCacheOptions struct {
	Source   RateSource
	Snapshot SnapshotStore
	// TTL is how long a loaded table is served before a reload. Defaults to 30m.
	TTL time.Duration
	// RetryAfter is how long a stale table is served after a failed reload
	// before the next attempt. Defaults to 1m.
	RetryAfter time.Duration
	// LoadTimeout bounds one shared reload. Defaults to 30s.
	LoadTimeout time.Duration
	Logger      *zap.Logger
}

type cacheEntry struct {
	table     *RateTable
	expiresAt time.Time
}

// RateCache serves an immutable rate table and reloads it when it expires.
// Concurrent reloads collapse into one upstream fetch, and a failed reload
// keeps the previous table in service.
type RateCache struct {
	source     RateSource
	snapshot   SnapshotStore
	ttl         time.Duration
	retryAfter  time.Duration
	loadTimeout time.Duration
	log         *zap.Logger
	now        func() time.Time

	entry atomic.Pointer[cacheEntry]
	group singleflight.Group
}

func NewRateCache(opts RateCacheOptions) *RateCache {
	c := &RateCache{
		source:      opts.Source,
		snapshot:    opts.Snapshot,
		ttl:         opts.TTL,
		retryAfter:  opts.RetryAfter,
		loadTimeout: opts.LoadTimeout,
		log:         orGlobal(opts.Logger),
		now:         time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = 30 * time.Minute
	}
	if c.retryAfter <= 0 {
		c.retryAfter = time.Minute
	}
	if c.loadTimeout <= 0 {
		c.loadTimeout = 30 * time.Second
	}
	return c
}

// Current returns the cached table, reloading it first when it has expired.
func (c *RateCache) Current(ctx context.Context) (*RateTable, error) {
	e := c.entry.Load()
	if e != nil && c.now().Before(e.expiresAt) {
		return e.table, nil
	}
	table, err := c.Refresh(ctx)
	if err != nil {
		if e != nil {
			c.log.Warn("rate reload failed, serving stale table",
				zap.Time("loaded_at", e.table.LoadedAt), zap.Error(err))
			c.entry.Store(&cacheEntry{table: e.table, expiresAt: c.now().Add(c.retryAfter)})
			return e.table, nil
		}
		return nil, err
	}
	return table, nil
}

// Refresh reloads the table now, regardless of expiry. The shared reload
// runs detached from ctx, so a caller that gives up does not fail the other
// callers waiting on the same reload.
func (c *RateCache) Refresh(ctx context.Context) (*RateTable, error) {
	ch := c.group.DoChan("refresh", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		return c.load(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug("rate refresh shared with a concurrent caller")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*RateTable), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *RateCache) load(ctx context.Context) (*RateTable, error) {
	var errs []error

	if c.source != nil {
		table, err := c.fetch(ctx, c.source)
		if err == nil && table.Empty() {
			err = fmt.Errorf("%s source returned no routes", c.source.Name())
		}
		if err == nil {
			c.install(table)
			if c.snapshot != nil {
				if err := c.snapshot.Save(ctx, table); err != nil {
					c.log.Warn("failed to store rate snapshot", zap.Error(err))
				}
			}
			return table, nil
		}
		c.log.Warn("rate source failed", zap.String("source", c.source.Name()), zap.Error(err))
		errs = append(errs, err)
	}

	if c.snapshot != nil {
		table, err := c.fetch(ctx, c.snapshot)
		if err == nil {
			c.install(table)
			return table, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, ErrNoRateTable
	}
	return nil, fmt.Errorf("%w: %w", ErrNoRateTable, errors.Join(errs...))
}

func (c *RateCache) fetch(ctx context.Context, src RateSource) (*RateTable, error) {
	start := c.now()
	table, err := src.Fetch(ctx)
	metrics.RecordRefresh(src.Name(), err, c.now().Sub(start))
	return table, err
}

func (c *RateCache) install(table *RateTable) {
	c.entry.Store(&cacheEntry{table: table, expiresAt: c.now().Add(c.ttl)})
	for _, mode := range Modes {
		metrics.SetRoutes(string(mode), table.RouteCount(mode))
	}
	c.log.Info("rate table loaded",
		zap.String("source", table.Source),
		zap.Int("air_routes", table.RouteCount(ModeAir)),
		zap.Int("sea_routes", table.RouteCount(ModeSea)),
		zap.Bool("destination_aware", table.DestinationAware()),
	)
}
