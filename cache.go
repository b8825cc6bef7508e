package glcmd

import (
	"github.com/gogpu/gputypes"
)

// known is a cached value that is unknown until first set.
type known[T comparable] struct {
	value T
	ok    bool
}

func (k *known[T]) set(v T) {
	k.value = v
	k.ok = true
}

func (k *known[T]) unset() {
	var zero T
	k.value = zero
	k.ok = false
}

func (k known[T]) get() (T, bool) {
	return k.value, k.ok
}

// is reports whether the cached value is known and equal to v.
func (k known[T]) is(v T) bool {
	return k.ok && k.value == v
}

// stencilRefs holds the front and back stencil reference values.
type stencilRefs struct {
	front, back StencilValue
}

// framebufferBinding is the last framebuffer bound through a command.
type framebufferBinding struct {
	target      FramebufferTarget
	framebuffer FramebufferID
}

// stateCache is the last known context state of one recorder. Every field
// starts unknown; redundant state changes are elided by comparing against
// what was actually recorded, never against context defaults.
type stateCache struct {
	// Active primitive topology, set by the current pipeline.
	topology known[gputypes.PrimitiveTopology]
	// Active index format, set by the current index buffer.
	indexFormat known[gputypes.IndexFormat]
	// Stencil reference values, kept until the pipeline stencil state
	// is assembled.
	stencilRef  known[stencilRefs]
	blendColor  known[gputypes.Color]
	framebuffer known[framebufferBinding]
	// Vertices per patch for tessellation pipelines.
	patchSize known[int32]
	program   known[ProgramID]
	// Blend per attachment slot, grown to the highest slot referenced.
	blendTargets []known[BlendDesc]
	// Attributes enabled by the last pipeline bind.
	attributes []AttributeDesc

	// errorState indicates that invalid commands have been recorded.
	errorState bool
	// err is the first validation failure.
	err error
}

// reset forgets all state, keeping allocated capacity.
func (c *stateCache) reset() {
	clear(c.blendTargets)
	*c = stateCache{
		blendTargets: c.blendTargets[:0],
		attributes:   c.attributes[:0],
	}
}

// flag raises the sticky error flag, remembering the first failure.
func (c *stateCache) flag(err error) {
	if !c.errorState {
		c.err = err
	}
	c.errorState = true
}

// updatePatchSize caches the pipeline patch size and reports whether a
// set-patch-size command is needed. A zero size makes the cache unknown
// again without emitting anything.
func (c *stateCache) updatePatchSize(size int32) bool {
	if size == 0 {
		c.patchSize.unset()
		return false
	}
	if c.patchSize.is(size) {
		return false
	}
	c.patchSize.set(size)
	return true
}

// updateProgram reports whether binding p changes the active program.
func (c *stateCache) updateProgram(p ProgramID) bool {
	if c.program.is(p) {
		return false
	}
	c.program.set(p)
	return true
}

// updateBlendColor reports whether col changes the blend constant.
func (c *stateCache) updateBlendColor(col gputypes.Color) bool {
	if c.blendColor.is(col) {
		return false
	}
	c.blendColor.set(col)
	return true
}

// growBlendTargets makes room for slots [0, n), new slots unknown.
func (c *stateCache) growBlendTargets(n int) {
	for len(c.blendTargets) < n {
		c.blendTargets = append(c.blendTargets, known[BlendDesc]{})
	}
}

// updateBlendSlot reports whether desc differs from what slot holds.
// The slot must already be covered by growBlendTargets.
func (c *stateCache) updateBlendSlot(slot uint32, desc BlendDesc) bool {
	if c.blendTargets[slot].is(desc) {
		return false
	}
	c.blendTargets[slot].set(desc)
	return true
}

// blendSlots returns the number of slots the cache covers.
func (c *stateCache) blendSlots() int {
	return len(c.blendTargets)
}

// hasAttribute reports whether attrs declares an attribute at location.
func hasAttribute(attrs []AttributeDesc, location uint32) bool {
	for _, a := range attrs {
		if a.Location == location {
			return true
		}
	}
	return false
}
