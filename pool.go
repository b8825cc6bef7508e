package glcmd

import "log/slog"

// Pool owns the storage all of its recorders encode into.
//
// A linear pool (the default) appends every recorder to one shared command
// log and data buffer; the whole pool is reset at once. A pool created
// with WithIndividualReset gives every recorder its own pair, so recorders
// can be reset one by one at the cost of more allocations.
//
// Pool methods and the recorders of one pool must be used from one
// goroutine at a time. Overlapping access is detected and panics with
// ErrStorageInUse instead of blocking.
type Pool struct {
	opts  poolOptions
	store *storage
}

// NewPool creates an empty pool.
//
// Example:
//
//	pool := glcmd.NewPool(
//	    glcmd.WithIndividualReset(),
//	    glcmd.WithLimits(glcmd.Limits{MaxViewports: 8}),
//	)
//	defer pool.Destroy()
func NewPool(opts ...PoolOption) *Pool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}

	mode := StorageLinear
	if o.individualReset {
		mode = StorageIndividual
	}
	p := &Pool{
		opts:  o,
		store: newStorage(mode, o.commandCap, o.dataCap),
	}
	p.logger().Debug("glcmd: pool created",
		"mode", mode, "max_viewports", o.limits.MaxViewports)
	return p
}

// Mode returns the storage layout of the pool.
func (p *Pool) Mode() StorageMode {
	return p.store.mode()
}

// Limits returns the device limits recorders of this pool validate against.
func (p *Pool) Limits() Limits {
	return p.opts.limits
}

// NewRecorder allocates one recorder.
func (p *Pool) NewRecorder() *Recorder {
	r := newRecorder(p)
	p.logger().Debug("glcmd: recorder allocated", "buffer", r.id)
	return r
}

// Allocate allocates n recorders.
func (p *Pool) Allocate(n int) []*Recorder {
	out := make([]*Recorder, n)
	for i := range out {
		out[i] = p.NewRecorder()
	}
	return out
}

// Free returns the storage of the given recorders to the pool. In
// individual mode their buffer pairs are dropped; in linear mode there is
// nothing to give back. Freeing a recorder twice is a no-op.
func (p *Pool) Free(recorders ...*Recorder) {
	for _, r := range recorders {
		if r == nil || r.released {
			continue
		}
		if r.pool != p {
			panic("glcmd: recorder freed to a pool that did not allocate it")
		}
		r.released = true
		if r.individualReset {
			p.store.free(r.id)
		}
		p.logger().Debug("glcmd: recorder freed", "buffer", r.id)
	}
}

// Reset clears every command log and data buffer of the pool.
// releaseResources is a hint to give the memory back instead of keeping
// it for reuse.
//
// Recorders that began recording before the reset cannot be submitted;
// their Submission returns ErrStaleRecording.
func (p *Pool) Reset(releaseResources bool) {
	p.store.resetAll(releaseResources)
	p.logger().Debug("glcmd: pool reset", "release", releaseResources)
}

// Buffers returns the number of live command log / data buffer pairs.
// A linear pool always has exactly one.
func (p *Pool) Buffers() int {
	return p.store.buffers()
}

// Destroy releases all storage. The pool and its recorders must not be
// used afterwards; any access panics with ErrPoolDestroyed.
func (p *Pool) Destroy() {
	p.store.destroy()
	p.logger().Debug("glcmd: pool destroyed")
}

func (p *Pool) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return Logger()
}
