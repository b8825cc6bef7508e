package glcmd

import "github.com/gogpu/gputypes"

// Encoder is the full command recording surface of a command buffer.
//
// Operations this backend cannot record yet stay part of the interface and
// return an error wrapping ErrNotSupported, so missing coverage shows up as
// data instead of a crash or a silently dropped command. Validation
// failures are not returned; they raise the recorder's sticky error flag.
type Encoder interface {
	Begin()
	Finish()
	Reset(releaseResources bool) error

	PipelineBarrier(src, dst PipelineStage)
	FillBuffer(buffer BufferID, offset, size uint64, data uint32) error
	UpdateBuffer(buffer BufferID, offset uint64, data []byte) error

	BeginRenderPass(pass RenderPassID, framebuffer FramebufferID, area Rect, clears []ClearValue) error
	NextSubpass() error
	EndRenderPass()

	ClearColorImage(image Image, value ClearColor)
	ClearDepthStencilImage(image Image, value ClearDepthStencil) error
	ClearAttachments(clears []AttachmentClear, rects []Rect) error
	ResolveImage(src, dst Image, regions []ImageRegion) error

	BindIndexBuffer(view IndexBufferView)
	BindVertexBuffers(buffers ...BufferID)
	SetViewports(viewports []Viewport)
	SetScissors(rects []Rect)
	SetStencilReference(front, back StencilValue)
	SetBlendConstants(color gputypes.Color)

	BindGraphicsPipeline(pipeline *GraphicsPipeline)
	BindBlendSlots(slots []BlendSlot)
	BindGraphicsDescriptorSets(layout PipelineLayoutID, firstSet int, sets []DescriptorSetID)
	BindComputePipeline(pipeline ComputePipelineID) error
	BindComputeDescriptorSets(layout PipelineLayoutID, firstSet int, sets []DescriptorSetID) error

	Dispatch(x, y, z uint32)
	DispatchIndirect(buffer BufferID, offset uint64)

	CopyBuffer(src, dst BufferID, regions []BufferCopy) error
	CopyImage(src, dst Image, regions []ImageRegion) error
	CopyBufferToImage(src BufferID, dst Image, regions []BufferImageCopy) error
	CopyImageToBuffer(src Image, dst BufferID, regions []BufferImageCopy) error

	Draw(vertices, instances Range)
	DrawIndexed(indices Range, baseVertex int32, instances Range)
	DrawIndirect(buffer BufferID, offset uint64, drawCount, stride uint32) error
	DrawIndexedIndirect(buffer BufferID, offset uint64, drawCount, stride uint32) error

	BeginQuery(query Query, flags QueryControl) error
	EndQuery(query Query) error
	ResetQueryPool(pool QueryPoolID, queries Range) error
	WriteTimestamp(stage PipelineStage, query Query) error

	PushGraphicsConstants(layout PipelineLayoutID, stages ShaderStageFlags, offset uint32, constants []uint32) error
	PushComputeConstants(layout PipelineLayoutID, offset uint32, constants []uint32) error
}

var _ Encoder = (*Recorder)(nil)

// Opaque handles only needed by operations that are not recorded.
type (
	RenderPassID      uint32
	PipelineLayoutID  uint32
	DescriptorSetID   uint32
	ComputePipelineID uint32
	QueryPoolID       uint32
)

// PipelineStage is a bit set of pipeline stages.
type PipelineStage uint32

// ShaderStageFlags is a bit set of shader stages.
type ShaderStageFlags uint32

// QueryControl modifies how a query is executed.
type QueryControl uint32

// Query names one query inside a query pool.
type Query struct {
	Pool QueryPoolID
	ID   uint32
}

// BlendSlot pairs a color attachment slot with its blend description.
type BlendSlot struct {
	Slot uint32
	Desc BlendDesc
}

// AttachmentClear clears one attachment inside a render pass.
type AttachmentClear struct {
	Attachment AttachmentPoint
	Value      ClearValue
}

// ImageRegion is a 3D region shared by image copy and resolve operations.
type ImageRegion struct {
	SrcOffset [3]int32
	DstOffset [3]int32
	Extent    [3]uint32
}

// BufferCopy is one region of a buffer to buffer copy.
type BufferCopy struct {
	SrcOffset, DstOffset, Size uint64
}

// BufferImageCopy is one region of a copy between a buffer and an image.
type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	Image             ImageRegion
}

// --------------------------------------------------------------------------
// Unsupported operations
// --------------------------------------------------------------------------

// FillBuffer is not supported.
func (r *Recorder) FillBuffer(BufferID, uint64, uint64, uint32) error {
	return notSupported("fill_buffer")
}

// UpdateBuffer is not supported.
func (r *Recorder) UpdateBuffer(BufferID, uint64, []byte) error {
	return notSupported("update_buffer")
}

// NextSubpass is not supported.
func (r *Recorder) NextSubpass() error {
	return notSupported("next_subpass")
}

// ClearDepthStencilImage is not supported.
func (r *Recorder) ClearDepthStencilImage(Image, ClearDepthStencil) error {
	return notSupported("clear_depth_stencil_image")
}

// ClearAttachments is not supported.
func (r *Recorder) ClearAttachments([]AttachmentClear, []Rect) error {
	return notSupported("clear_attachments")
}

// ResolveImage is not supported.
func (r *Recorder) ResolveImage(Image, Image, []ImageRegion) error {
	return notSupported("resolve_image")
}

// BindComputePipeline is not supported.
func (r *Recorder) BindComputePipeline(ComputePipelineID) error {
	return notSupported("bind_compute_pipeline")
}

// BindComputeDescriptorSets is not supported.
func (r *Recorder) BindComputeDescriptorSets(PipelineLayoutID, int, []DescriptorSetID) error {
	return notSupported("bind_compute_descriptor_sets")
}

// CopyBuffer is not supported.
func (r *Recorder) CopyBuffer(BufferID, BufferID, []BufferCopy) error {
	return notSupported("copy_buffer")
}

// CopyImage is not supported.
func (r *Recorder) CopyImage(Image, Image, []ImageRegion) error {
	return notSupported("copy_image")
}

// CopyBufferToImage is not supported.
func (r *Recorder) CopyBufferToImage(BufferID, Image, []BufferImageCopy) error {
	return notSupported("copy_buffer_to_image")
}

// CopyImageToBuffer is not supported.
func (r *Recorder) CopyImageToBuffer(Image, BufferID, []BufferImageCopy) error {
	return notSupported("copy_image_to_buffer")
}

// DrawIndirect is not supported.
func (r *Recorder) DrawIndirect(BufferID, uint64, uint32, uint32) error {
	return notSupported("draw_indirect")
}

// DrawIndexedIndirect is not supported.
func (r *Recorder) DrawIndexedIndirect(BufferID, uint64, uint32, uint32) error {
	return notSupported("draw_indexed_indirect")
}

// BeginQuery is not supported.
func (r *Recorder) BeginQuery(Query, QueryControl) error {
	return notSupported("begin_query")
}

// EndQuery is not supported.
func (r *Recorder) EndQuery(Query) error {
	return notSupported("end_query")
}

// ResetQueryPool is not supported.
func (r *Recorder) ResetQueryPool(QueryPoolID, Range) error {
	return notSupported("reset_query_pool")
}

// WriteTimestamp is not supported.
func (r *Recorder) WriteTimestamp(PipelineStage, Query) error {
	return notSupported("write_timestamp")
}

// PushGraphicsConstants is not supported.
func (r *Recorder) PushGraphicsConstants(PipelineLayoutID, ShaderStageFlags, uint32, []uint32) error {
	return notSupported("push_graphics_constants")
}

// PushComputeConstants is not supported.
func (r *Recorder) PushComputeConstants(PipelineLayoutID, uint32, []uint32) error {
	return notSupported("push_compute_constants")
}
