package glcmd

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
)

// RecorderState is the lifecycle state of a Recorder.
type RecorderState uint8

const (
	// RecorderInitial means the recorder was created or reset.
	RecorderInitial RecorderState = iota
	// RecorderRecording means Begin was called and commands are accepted.
	RecorderRecording
	// RecorderFinished means Finish was called.
	RecorderFinished
)

// String returns the string representation of RecorderState.
func (s RecorderState) String() string {
	switch s {
	case RecorderInitial:
		return "Initial"
	case RecorderRecording:
		return "Recording"
	case RecorderFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Recorder encodes one command buffer into the storage of its pool.
//
// Commands are appended to the tail of the command log the recorder is
// assigned; variable-length payloads (viewports, scissors) go to the data
// buffer and are referenced by Slice. A per-recorder state cache drops
// state changes that would not change the context.
//
// Validation failures (drawing without a pipeline, zero viewports, …)
// do not stop recording. The offending command is skipped, a warning is
// logged and a sticky error flag is raised; a flagged recorder must not be
// submitted. Check HasError or use Submission, which refuses it.
//
// Lifecycle:
//
//	Initial -> Begin() -> Recording -> Finish() -> Finished
//	Reset() -> Initial (individually resettable pools only)
//
// Thread Safety:
// Recorder is NOT safe for concurrent use, and recorders of one pool must
// not record concurrently with each other.
type Recorder struct {
	pool  *Pool
	store *storage

	// id is the buffer id in the owning pool. Only relevant if individual
	// resets are allowed.
	id              uint64
	individualReset bool

	// buf covers the log entries this recorder appended.
	buf   Slice
	cache stateCache

	limits Limits
	fbo    FramebufferID

	state    RecorderState
	epoch    uint64
	released bool
}

func newRecorder(p *Pool) *Recorder {
	id, individual := p.store.allocate()
	return &Recorder{
		pool:            p,
		store:           p.store,
		id:              id,
		individualReset: individual,
		limits:          p.opts.limits,
		fbo:             p.opts.framebuffer,
		epoch:           p.store.currentEpoch(),
	}
}

// ID returns the buffer id inside the owning pool. All recorders of a
// linear pool report zero.
func (r *Recorder) ID() uint64 {
	return r.id
}

// IndividualReset reports whether the recorder can be reset on its own.
func (r *Recorder) IndividualReset() bool {
	return r.individualReset
}

// State returns the lifecycle state.
func (r *Recorder) State() RecorderState {
	return r.state
}

// HasError reports whether an invalid command was recorded since the last
// reset.
func (r *Recorder) HasError() bool {
	return r.cache.errorState
}

// Err returns the first validation failure since the last reset, or nil.
// The error wraps ErrValidation and the specific cause.
func (r *Recorder) Err() error {
	return r.cache.err
}

// Coverage returns the range of log entries this recorder appended.
func (r *Recorder) Coverage() Slice {
	return r.buf
}

// StorageLen returns the number of commands and data bytes in the log and
// data buffer backing this recorder. For linear pools these are shared
// with every other recorder of the pool.
func (r *Recorder) StorageLen() (commands, dataBytes int) {
	cmds, data := r.store.view(r.id)
	return len(cmds), len(data)
}

func (r *Recorder) logger() *slog.Logger {
	return r.pool.logger()
}

// softReset clears the coverage and the state cache without touching pool
// storage.
func (r *Recorder) softReset() {
	r.buf = EmptySlice()
	r.cache.reset()
}

// fail records a validation failure of op.
func (r *Recorder) fail(op string, cause error) {
	err := fmt.Errorf("%w: %s: %w", ErrValidation, op, cause)
	r.cache.flag(err)
	r.logger().Warn("glcmd: invalid command skipped",
		"op", op, "buffer", r.id, "err", cause)
}

// recording reports whether op may record; otherwise it flags the recorder.
func (r *Recorder) recording(op string) bool {
	if r.state != RecorderRecording {
		r.fail(op, fmt.Errorf("%w (state %s)", ErrNotRecording, r.state))
		return false
	}
	return true
}

func (r *Recorder) pushCmd(cmd Command) {
	r.buf.Append(r.store.appendCommand(r.id, cmd))
}

// addRaw copies data into the data buffer.
func (r *Recorder) addRaw(data []byte) Slice {
	return r.store.appendBytes(r.id, data)
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

// Begin starts recording. Individually resettable recorders are reset
// implicitly. Otherwise only the coverage and state cache are cleared; the
// pool's shared log is left alone, so in linear pools at most one recorder
// may be recording at a time.
func (r *Recorder) Begin() {
	if r.individualReset {
		r.reset(false)
	} else {
		r.softReset()
	}
	r.epoch = r.store.currentEpoch()
	r.state = RecorderRecording
	r.logger().Debug("glcmd: begin recording", "buffer", r.id, "mode", r.pool.Mode())
}

// Finish ends recording. It does not touch storage.
func (r *Recorder) Finish() {
	if !r.recording("finish") {
		return
	}
	r.state = RecorderFinished
}

// Reset empties the command log and data buffer of the recorder and clears
// its state. releaseResources is a hint to give the memory back instead of
// keeping it for the next recording.
//
// Reset returns ErrIndividualResetNotAllowed, changing nothing, when the
// pool does not allow individual resets.
func (r *Recorder) Reset(releaseResources bool) error {
	if !r.individualReset {
		r.logger().Error("glcmd: associated pool must allow individual resets", "buffer", r.id)
		return ErrIndividualResetNotAllowed
	}
	r.reset(releaseResources)
	r.state = RecorderInitial
	return nil
}

func (r *Recorder) reset(releaseResources bool) {
	r.softReset()
	r.store.resetBuffer(r.id, releaseResources)
}

// Release returns the recorder's storage slot to the pool.
// The recorder must not be used afterwards.
func (r *Recorder) Release() {
	r.pool.Free(r)
}

// Submission returns the recorded commands and the data buffer their
// Slices point into, ready for an Executor.
//
// It fails if the recorder is not finished, if an invalid command was
// recorded, or if the pool was reset after recording began. The returned
// slices alias pool storage and are valid until the storage is next reset.
func (r *Recorder) Submission() (Submission, error) {
	if r.state != RecorderFinished {
		return Submission{}, fmt.Errorf("%w (state %s)", ErrNotFinished, r.state)
	}
	if r.cache.errorState {
		return Submission{}, fmt.Errorf("%w: %w", ErrRecordingInvalid, r.cache.err)
	}
	if r.store.currentEpoch() != r.epoch {
		return Submission{}, ErrStaleRecording
	}
	cmds, data := r.store.view(r.id)
	return Submission{
		Commands: cmds[r.buf.Offset:r.buf.End():r.buf.End()],
		Data:     data,
	}, nil
}

// --------------------------------------------------------------------------
// Render pass and clears
// --------------------------------------------------------------------------

// PipelineBarrier records nothing: the GL executor synchronizes implicitly.
func (r *Recorder) PipelineBarrier(_, _ PipelineStage) {}

// BeginRenderPass records a clear for every color clear value. Depth and
// stencil clears are not supported; the color clears before the first
// depth/stencil value are still recorded.
func (r *Recorder) BeginRenderPass(_ RenderPassID, _ FramebufferID, _ Rect, clears []ClearValue) error {
	if !r.recording("begin_render_pass") {
		return nil
	}
	for _, cv := range clears {
		if cv.Color == nil {
			return notSupported("begin_render_pass: depth/stencil clear")
		}
		r.pushCmd(ClearColorCommand{Value: *cv.Color})
	}
	return nil
}

// EndRenderPass records nothing.
func (r *Recorder) EndRenderPass() {}

// ClearColorImage clears the first layer of image by attaching it to the
// pool's internal framebuffer.
func (r *Recorder) ClearColorImage(image Image, value ClearColor) {
	if !r.recording("clear_color_image") {
		return
	}
	view := image.View()
	r.pushCmd(BindFramebufferCommand{Target: FramebufferTargetDraw, Framebuffer: r.fbo})
	r.cache.framebuffer.set(framebufferBinding{target: FramebufferTargetDraw, framebuffer: r.fbo})
	r.pushCmd(BindTargetViewCommand{Target: FramebufferTargetDraw, Attachment: AttachmentColor0, View: view})
	r.pushCmd(SetDrawColorBuffersCommand{Count: 1})
	r.pushCmd(ClearColorCommand{Value: value})
}

// --------------------------------------------------------------------------
// Buffers
// --------------------------------------------------------------------------

// BindIndexBuffer binds the index buffer and caches its index format for
// later indexed draws.
func (r *Recorder) BindIndexBuffer(view IndexBufferView) {
	if !r.recording("bind_index_buffer") {
		return
	}
	if view.Offset > 0 {
		r.logger().Warn("glcmd: non-zero index buffer offset currently not handled",
			"buffer", r.id, "offset", view.Offset)
	}
	r.cache.indexFormat.set(view.Format)
	r.pushCmd(BindIndexBufferCommand{Buffer: view.Buffer})
}

// BindVertexBuffers binds each buffer in order.
func (r *Recorder) BindVertexBuffers(buffers ...BufferID) {
	if !r.recording("bind_vertex_buffers") {
		return
	}
	for _, b := range buffers {
		r.pushCmd(BindVertexBufferCommand{Buffer: b})
	}
}

// --------------------------------------------------------------------------
// Fixed-function state
// --------------------------------------------------------------------------

// SetViewports records all viewports as one command. Viewport rectangles
// and depth ranges are set by separate GL calls, so each is kept in its own
// contiguous run of the data buffer.
//
// An empty list or more viewports than the device supports flags the
// recorder and records nothing.
func (r *Recorder) SetViewports(viewports []Viewport) {
	const op = "set_viewports"
	if !r.recording(op) {
		return
	}
	switch n := len(viewports); {
	case n == 0:
		r.fail(op, ErrNoViewports)
		return
	case n > r.limits.MaxViewports:
		r.fail(op, fmt.Errorf("%w (%d > %d)", ErrTooManyViewports, n, r.limits.MaxViewports))
		return
	}

	var rects, depths Slice
	for _, vp := range viewports {
		rect := [4]float32{float32(vp.Rect.X), float32(vp.Rect.Y), float32(vp.Rect.W), float32(vp.Rect.H)}
		rects.Append(appendTyped(r, rect[:]))
	}
	for _, vp := range viewports {
		depth := [2]float64{float64(vp.Depth.Near), float64(vp.Depth.Far)}
		depths.Append(appendTyped(r, depth[:]))
	}
	r.pushCmd(SetViewportsCommand{Rects: rects, DepthRanges: depths})
}

// SetScissors records all scissor rectangles as one command, validated
// like SetViewports.
func (r *Recorder) SetScissors(rects []Rect) {
	const op = "set_scissors"
	if !r.recording(op) {
		return
	}
	switch n := len(rects); {
	case n == 0:
		r.fail(op, ErrNoScissors)
		return
	case n > r.limits.MaxViewports:
		r.fail(op, fmt.Errorf("%w (%d > %d)", ErrTooManyScissors, n, r.limits.MaxViewports))
		return
	}

	var covered Slice
	for _, sc := range rects {
		v := [4]int32{sc.X, sc.Y, sc.W, sc.H}
		covered.Append(appendTyped(r, v[:]))
	}
	r.pushCmd(SetScissorsCommand{Rects: covered})
}

// SetStencilReference caches the stencil reference values. They are only
// recorded once the stencil state of a pipeline is assembled.
func (r *Recorder) SetStencilReference(front, back StencilValue) {
	if !r.recording("set_stencil_reference") {
		return
	}
	r.cache.stencilRef.set(stencilRefs{front: front, back: back})
}

// SetBlendConstants records the blend color unless it is already set.
func (r *Recorder) SetBlendConstants(color gputypes.Color) {
	if !r.recording("set_blend_constants") {
		return
	}
	if r.cache.updateBlendColor(color) {
		r.pushCmd(SetBlendColorCommand{Color: color})
	}
}

// --------------------------------------------------------------------------
// Pipelines
// --------------------------------------------------------------------------

// BindGraphicsPipeline records the state of pipeline that differs from
// what is already bound. The topology is cached for later draws and never
// recorded on its own.
func (r *Recorder) BindGraphicsPipeline(pipeline *GraphicsPipeline) {
	const op = "bind_graphics_pipeline"
	if !r.recording(op) {
		return
	}
	if pipeline == nil {
		r.fail(op, ErrNilPipeline)
		return
	}

	r.cache.topology.set(pipeline.Topology)

	if r.cache.updatePatchSize(pipeline.PatchSize) {
		r.pushCmd(SetPatchSizeCommand{Size: pipeline.PatchSize})
	}
	if r.cache.updateProgram(pipeline.Program) {
		r.pushCmd(BindProgramCommand{Program: pipeline.Program})
	}

	for _, prev := range r.cache.attributes {
		if !hasAttribute(pipeline.Attributes, prev.Location) {
			r.pushCmd(UnbindAttributeCommand{Attribute: prev})
		}
	}
	for _, attr := range pipeline.Attributes {
		r.pushCmd(BindAttributeCommand{Attribute: attr})
	}
	r.cache.attributes = append(r.cache.attributes[:0], pipeline.Attributes...)

	if n := len(pipeline.BlendTargets); n > 0 {
		r.cache.growBlendTargets(n)
		for slot, desc := range pipeline.BlendTargets {
			//nolint:gosec // slot count is bounded by the color attachment limit
			r.updateBlendSlot(uint32(slot), desc)
		}
	}
}

// BindBlendSlots records the blend state of the given color attachment
// slots, skipping slots that already hold the same state.
func (r *Recorder) BindBlendSlots(slots []BlendSlot) {
	if !r.recording("bind_blend_slots") {
		return
	}
	highest := -1
	for _, s := range slots {
		highest = max(highest, int(s.Slot))
	}
	r.cache.growBlendTargets(highest + 1)
	for _, s := range slots {
		r.updateBlendSlot(s.Slot, s.Desc)
	}
}

func (r *Recorder) updateBlendSlot(slot uint32, desc BlendDesc) {
	if r.cache.updateBlendSlot(slot, desc) {
		r.pushCmd(BindBlendSlotCommand{Slot: slot, Desc: desc})
	}
}

// BindGraphicsDescriptorSets records nothing; resource binding is resolved
// by the executor's handle table.
func (r *Recorder) BindGraphicsDescriptorSets(PipelineLayoutID, int, []DescriptorSetID) {}

// --------------------------------------------------------------------------
// Dispatch and draw
// --------------------------------------------------------------------------

// Dispatch records a compute dispatch.
func (r *Recorder) Dispatch(x, y, z uint32) {
	if !r.recording("dispatch") {
		return
	}
	r.pushCmd(DispatchCommand{X: x, Y: y, Z: z})
}

// DispatchIndirect records a compute dispatch whose grid is read from
// buffer at offset.
func (r *Recorder) DispatchIndirect(buffer BufferID, offset uint64) {
	if !r.recording("dispatch_indirect") {
		return
	}
	r.pushCmd(DispatchIndirectCommand{Buffer: buffer, Offset: offset})
}

// Draw records a non-indexed draw using the topology of the bound pipeline.
// Without a bound pipeline the recorder is flagged and nothing is recorded.
func (r *Recorder) Draw(vertices, instances Range) {
	const op = "draw"
	if !r.recording(op) {
		return
	}
	topology, ok := r.cache.topology.get()
	if !ok {
		r.fail(op, ErrNoPrimitive)
		return
	}
	r.pushCmd(DrawCommand{Topology: topology, Vertices: vertices, Instances: instances})
}

// DrawIndexed records an indexed draw. indices selects a range of the
// bound index buffer, in elements of its index format.
//
// Both an index buffer and a pipeline must be bound; otherwise the recorder
// is flagged and nothing is recorded.
func (r *Recorder) DrawIndexed(indices Range, baseVertex int32, instances Range) {
	const op = "draw_indexed"
	if !r.recording(op) {
		return
	}

	format, ok := r.cache.indexFormat.get()
	if !ok {
		r.fail(op, ErrNoIndexType)
		return
	}
	width, ok := indexWidth(format)
	if !ok {
		r.fail(op, fmt.Errorf("%w (format %v)", ErrNoIndexType, format))
		return
	}
	topology, ok := r.cache.topology.get()
	if !ok {
		r.fail(op, ErrNoPrimitive)
		return
	}

	r.pushCmd(DrawIndexedCommand{
		Topology:          topology,
		IndexFormat:       format,
		IndexCount:        indices.Len(),
		IndexBufferOffset: uint64(indices.Start) * width,
		BaseVertex:        baseVertex,
		Instances:         instances,
	})
}

// indexWidth returns the size in bytes of one index of format.
func indexWidth(format gputypes.IndexFormat) (uint64, bool) {
	switch format {
	case gputypes.IndexFormatUint16:
		return 2, true
	case gputypes.IndexFormatUint32:
		return 4, true
	default:
		return 0, false
	}
}
