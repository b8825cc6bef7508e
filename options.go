package glcmd

import "log/slog"

// PoolOption configures a Pool during creation.
//
// Example:
//
//	// Pool whose buffers are reset together
//	pool := glcmd.NewPool()
//
//	// Pool whose buffers reset independently
//	pool := glcmd.NewPool(glcmd.WithIndividualReset())
type PoolOption func(*poolOptions)

// poolOptions holds optional configuration for Pool creation.
type poolOptions struct {
	individualReset bool
	limits          Limits
	framebuffer     FramebufferID
	logger          *slog.Logger
	commandCap      int
	dataCap         int
}

// defaultPoolOptions returns the default pool options.
func defaultPoolOptions() poolOptions {
	return poolOptions{
		limits:     DefaultLimits(),
		commandCap: 256,
		dataCap:    1024,
	}
}

// WithIndividualReset backs every recorder with its own command log and
// data buffer so recorders can be reset independently.
func WithIndividualReset() PoolOption {
	return func(o *poolOptions) {
		o.individualReset = true
	}
}

// WithLimits sets the device limits recorders validate against.
// Limits that fail Validate are ignored.
func WithLimits(l Limits) PoolOption {
	return func(o *poolOptions) {
		if l.Validate() == nil {
			o.limits = l
		}
	}
}

// WithFramebuffer sets the internal framebuffer object recorders bind when
// clearing images outside a render pass.
func WithFramebuffer(fb FramebufferID) PoolOption {
	return func(o *poolOptions) {
		o.framebuffer = fb
	}
}

// WithLogger sets the diagnostics sink for the pool and its recorders.
// Without it the package logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) PoolOption {
	return func(o *poolOptions) {
		o.logger = l
	}
}

// WithCapacity pre-allocates room for the given number of commands and
// payload bytes in each command log / data buffer pair.
func WithCapacity(commands, bytes int) PoolOption {
	return func(o *poolOptions) {
		if commands > 0 {
			o.commandCap = commands
		}
		if bytes > 0 {
			o.dataCap = bytes
		}
	}
}
