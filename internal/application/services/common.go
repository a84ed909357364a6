package services

import (
	"context"
	"sync"
	"time"

	"github.com/reactiverse/core/internal/infrastructure/logger"
	"github.com/reactiverse/core/internal/infrastructure/validation"
	"github.com/reactiverse/core/internal/ports"
)

// idClock hands out strictly increasing instants so two records created in
// the same millisecond by this process never share a timestamp id.
type idClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newIDClock() *idClock {
	return &idClock{now: time.Now}
}

func (c *idClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}

// views wraps the optional view cache. Cache failures are logged and never
// fail the surrounding action.
//
// A fill that read storage before a revalidation must not write its result
// afterwards, or the stale view would outlive the write for a whole TTL.
// load returns the current generation; revalidate bumps it and store drops
// values read under an older one. Both run under mu so a store can never land
// between the bump and the invalidation.
type views struct {
	cache  ports.ViewCache
	ttl    time.Duration
	logger *logger.Logger

	mu  sync.Mutex
	gen uint64
}

func newViews(cache ports.ViewCache, ttl time.Duration, log *logger.Logger) *views {
	return &views{cache: cache, ttl: ttl, logger: log}
}

func (v *views) generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

// load reports a cache hit and the generation to pass to store on a miss.
func (v *views) load(ctx context.Context, key string, dest interface{}) (bool, uint64) {
	gen := v.generation()
	if v.cache == nil {
		return false, gen
	}
	hit, err := v.cache.Get(ctx, key, dest)
	if err != nil {
		v.logger.Warnw("View cache read failed", "key", key, "error", err)
		return false, gen
	}
	return hit, gen
}

func (v *views) store(ctx context.Context, key string, value interface{}, gen uint64) {
	if v.cache == nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		v.logger.Debugw("Dropped stale view fill", "key", key)
		return
	}
	if err := v.cache.Set(ctx, key, value, v.ttl); err != nil {
		v.logger.Warnw("View cache write failed", "key", key, "error", err)
	}
}

func (v *views) revalidate(ctx context.Context, keys ...string) {
	if v.cache == nil || len(keys) == 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.gen++
	if err := v.cache.Invalidate(ctx, keys...); err != nil {
		v.logger.Warnw("View revalidation failed", "keys", keys, "error", err)
	}
}

// checkRequest runs schema validation. A non-nil result is the envelope to
// return to the caller.
func checkRequest(v *validation.Validator, log *logger.Logger, action string, req interface{}) *ports.ActionResult {
	fieldErrs, err := v.Check(req)
	if err != nil {
		return storageFailure(log, action, err)
	}
	if fieldErrs != nil {
		return ports.Invalid(fieldErrs)
	}
	return nil
}

// storageFailure logs err and returns the opaque general failure envelope.
func storageFailure(log *logger.Logger, action string, err error, fields ...interface{}) *ports.ActionResult {
	kv := append([]interface{}{"action", action}, fields...)
	log.WithError(err).Errorw("Action failed", kv...)
	return ports.Failed(ports.OutcomeStorage, ports.MsgGenericFailure)
}
