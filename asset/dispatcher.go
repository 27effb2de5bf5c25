// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"errors"
	"sync"

	"github.com/gogpu/resource"
	"github.com/gogpu/resource/cache"
	"github.com/gogpu/resource/internal/jobs"
)

// Errors.
var (
	// ErrNilCallback is returned by Request when no callback is given.
	ErrNilCallback = errors.New("asset: request callback must not be nil")

	// ErrClosed is returned by Request after Close.
	ErrClosed = errors.New("asset: dispatcher is closed")
)

// Dispatcher resolves asset requests through per-type handlers and caches
// the results with reference counting.
//
// Dispatcher is safe for concurrent use. Request bookkeeping and handler
// execution serialize on one lock; asynchronous requests therefore run
// off the caller's goroutine but loads do not overlap each other.
type Dispatcher struct {
	registry *Registry
	pool     *jobs.Pool

	mu      sync.Mutex
	cache   *cache.RefCache[Asset]
	pending map[string]pendingRequest
	closed  bool
}

// pendingRequest carries per-request parameters into the load running
// under the cache lock.
type pendingRequest struct {
	typ  Type
	pkg  string
	name string
	ctx  context.Context
}

// NewDispatcher creates a dispatcher with no registered handlers.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	o := defaultDispatcherOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dispatcher{
		registry: NewRegistry(),
		pending:  make(map[string]pendingRequest),
	}

	c, err := cache.New[Asset]("asset", &dispatchLoader{d: d},
		cache.WithCapacity(o.capacity), cache.WithIndexCapacity(o.indexCapacity))
	if err != nil {
		return nil, err
	}
	d.cache = c
	d.pool = jobs.NewPool(o.workers)

	resource.Logger().Info("asset dispatcher created",
		"capacity", o.capacity, "workers", d.pool.Workers())
	return d, nil
}

// Handlers returns the handler registry. Register one handler per asset
// type at startup, before requests for that type arrive.
func (d *Dispatcher) Handlers() *Registry { return d.registry }

// Request resolves an asset and delivers the outcome through the
// request's callback, exactly once.
//
// If the asset is already loaded, the callback runs synchronously on the
// calling goroutine before Request returns, with the reference count
// incremented and the generation bumped. Otherwise the load is queued on
// the worker pool, or runs inline when info.Synchronous is set.
//
// Request itself only fails for malformed use of the API (nil callback,
// closed dispatcher); every asset-level failure is reported through the
// callback as a Result kind.
func (d *Dispatcher) Request(ctx context.Context, info RequestInfo) error {
	if info.Callback == nil {
		return ErrNilCallback
	}
	if info.Name == "" {
		info.Callback(ResultInvalidName, nil, info.Listener)
		return nil
	}
	if info.Package == "" {
		info.Callback(ResultInvalidPackage, nil, info.Listener)
		return nil
	}
	if !info.Type.Valid() {
		info.Callback(ResultInvalidType, nil, info.Listener)
		return nil
	}

	full := FullName(info.Package, info.Name)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	_, loaded := d.cache.Lookup(full)
	d.mu.Unlock()

	// The already-loaded short-circuit completes before any background
	// work is considered.
	if loaded || info.Synchronous {
		d.complete(ctx, info, full)
		return nil
	}

	queued := d.pool.Submit(func() { d.complete(ctx, info, full) })
	if !queued {
		// Pool is shutting down; complete inline so the callback
		// still fires exactly once.
		d.complete(ctx, info, full)
	}
	return nil
}

// complete performs the lookup-or-load for one request and invokes its
// callback. It is the single place a request's callback fires.
func (d *Dispatcher) complete(ctx context.Context, info RequestInfo, full string) {
	if ctx != nil && ctx.Err() != nil {
		info.Callback(ResultCanceled, nil, info.Listener)
		return
	}

	var (
		out    *Asset
		result Result
	)

	d.mu.Lock()
	if _, loaded := d.cache.Lookup(full); loaded {
		// Hit: add a reference and bump the generation so hot-reload
		// consumers observe the repeat request.
		s, err := d.cache.Acquire(full, info.AutoRelease)
		if err == nil {
			gen, serr := d.cache.Swap(s.Handle(), func(*Asset) error { return nil })
			if serr == nil {
				s.Payload.Generation = gen
			}
			s.Payload.ID = s.Handle()
			out = &s.Payload
			result = ResultSuccess
		} else {
			result = resultFromError(err)
		}
	} else {
		d.pending[full] = pendingRequest{typ: info.Type, pkg: info.Package, name: info.Name, ctx: ctx}
		s, err := d.cache.Acquire(full, info.AutoRelease)
		delete(d.pending, full)
		if err == nil {
			s.Payload.ID = s.Handle()
			s.Payload.Generation = s.Generation()
			out = &s.Payload
			result = ResultSuccess
		} else {
			result = resultFromError(err)
		}
	}
	d.mu.Unlock()

	// The callback runs outside the lock: it may issue further requests.
	info.Callback(result, out, info.Listener)
}

// resultFromError maps load failures to callback result kinds.
func resultFromError(err error) Result {
	var noHandler *NoHandlerError
	switch {
	case errors.As(err, &noHandler):
		return ResultNoHandler
	case errors.Is(err, ErrParse):
		return ResultParseFailed
	case errors.Is(err, ErrUpload):
		return ResultGPUUploadFailed
	default:
		return ResultInternalFailure
	}
}

// Release drops one reference to an asset. With force set, the asset is
// unloaded immediately regardless of reference count or the auto-release
// policy; force is meant for shutdown and hot-reload paths.
func (d *Dispatcher) Release(pkg, name string, force bool) {
	full := FullName(pkg, name)

	d.mu.Lock()
	defer d.mu.Unlock()
	if force {
		_ = d.cache.Evict(full)
		return
	}
	d.cache.Release(full)
}

// Refs returns the outstanding reference count for an asset.
func (d *Dispatcher) Refs(pkg, name string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.Refs(FullName(pkg, name))
}

// Stats returns the dispatcher's cache statistics.
func (d *Dispatcher) Stats() cache.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.Stats()
}

// Close drains the worker pool and forcibly unloads every asset. Requests
// queued before Close still complete (their callbacks fire); requests
// after Close fail with ErrClosed.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.pool.Close()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.ReleaseAll()
}

// dispatchLoader adapts the handler registry to the cache's Loader
// interface. Per-request parameters travel through d.pending, keyed by
// fully-qualified name; d.mu is held across both.
type dispatchLoader struct {
	d *Dispatcher
}

// Load selects the handler for the pending request and lets it populate
// the asset.
func (l *dispatchLoader) Load(full string, dst *Asset) error {
	req, ok := l.d.pending[full]
	if !ok {
		return errors.New("asset: no pending request for " + full)
	}
	h, ok := l.d.registry.Get(req.typ)
	if !ok {
		return &NoHandlerError{Type: req.typ}
	}
	dst.Type = req.typ
	dst.Package = req.pkg
	dst.Name = req.name
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Request(ctx, dst)
}

// Unload hands the asset back to its handler and drops the payload.
func (l *dispatchLoader) Unload(full string, a *Asset) error {
	if h, ok := l.d.registry.Get(a.Type); ok {
		h.Release(a)
	}
	a.Data = nil
	a.Size = 0
	return nil
}
