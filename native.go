package glcmd

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// --------------------------------------------------------------------------
// Handles
// --------------------------------------------------------------------------

// ProgramID names a linked shader program owned by the resource provider.
// The zero value is the "no program" name.
type ProgramID uint32

// FramebufferID names a framebuffer object. Zero is the default framebuffer.
type FramebufferID uint32

// BufferID names a buffer object.
type BufferID uint32

// FramebufferTarget selects the framebuffer binding point.
type FramebufferTarget uint8

const (
	// FramebufferTargetDraw binds for drawing.
	FramebufferTargetDraw FramebufferTarget = iota
	// FramebufferTargetRead binds for reading.
	FramebufferTargetRead
)

// String returns the binding point name.
func (t FramebufferTarget) String() string {
	switch t {
	case FramebufferTargetDraw:
		return "Draw"
	case FramebufferTargetRead:
		return "Read"
	default:
		return fmt.Sprintf("FramebufferTarget(%d)", uint8(t))
	}
}

// AttachmentPoint selects a framebuffer attachment.
// Values below AttachmentDepth are color attachment indices.
type AttachmentPoint uint8

const (
	// AttachmentColor0 is the first color attachment.
	AttachmentColor0 AttachmentPoint = 0
	// AttachmentDepth is the depth attachment.
	AttachmentDepth AttachmentPoint = 0xfe
	// AttachmentStencil is the stencil attachment.
	AttachmentStencil AttachmentPoint = 0xff
)

// String returns the attachment name.
func (a AttachmentPoint) String() string {
	switch a {
	case AttachmentDepth:
		return "Depth"
	case AttachmentStencil:
		return "Stencil"
	default:
		return fmt.Sprintf("Color%d", uint8(a))
	}
}

// ImageKind distinguishes surface-backed from texture-backed images.
type ImageKind uint8

const (
	// ImageSurface is a renderbuffer-like surface.
	ImageSurface ImageKind = iota
	// ImageTexture is a texture object.
	ImageTexture
)

// Image is an opaque image handle.
type Image struct {
	Kind ImageKind
	ID   uint32
}

// ImageView is a view into an image. Layer is only meaningful for textures.
type ImageView struct {
	Kind  ImageKind
	ID    uint32
	Layer uint32
}

// View returns the view of the first layer of the image.
func (img Image) View() ImageView {
	return ImageView{Kind: img.Kind, ID: img.ID}
}

// AttributeDesc describes one vertex attribute binding of a pipeline.
type AttributeDesc struct {
	// Location is the shader attribute location.
	Location uint32
	// Binding is the vertex buffer slot the attribute reads from.
	Binding uint32
	// Format is the attribute data format.
	Format gputypes.VertexFormat
	// Offset is the byte offset inside a vertex.
	Offset uint32
	// Stride is the byte distance between consecutive vertices.
	Stride uint32
}

// IndexBufferView binds a buffer as the index source for indexed draws.
type IndexBufferView struct {
	Buffer BufferID
	// Offset is not supported by the GL executor; non-zero values are
	// recorded with a warning.
	Offset uint64
	Format gputypes.IndexFormat
}

// BlendDesc is the blend configuration of one color attachment slot.
type BlendDesc struct {
	WriteMask gputypes.ColorWriteMask
	// Enabled reports whether Blend applies. A disabled slot writes
	// source colors unmodified.
	Enabled bool
	Blend   gputypes.BlendState
}

// GraphicsPipeline is the state a bound graphics pipeline contributes.
type GraphicsPipeline struct {
	Topology gputypes.PrimitiveTopology
	// PatchSize is the number of vertices per tessellation patch.
	// Zero means the pipeline does not tessellate.
	PatchSize    int32
	Program      ProgramID
	BlendTargets []BlendDesc
	Attributes   []AttributeDesc
}

// --------------------------------------------------------------------------
// Values
// --------------------------------------------------------------------------

// Range is a half-open [Start, End) range of vertices, indices or instances.
type Range struct {
	Start, End uint32
}

// Len returns End-Start, or zero for an inverted range.
func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Rect is an integer rectangle in framebuffer pixels.
type Rect struct {
	X, Y int32
	W, H int32
}

// DepthRange maps normalized device depth to window depth.
type DepthRange struct {
	Near, Far float32
}

// Viewport is a viewport rectangle with its depth range.
type Viewport struct {
	Rect  Rect
	Depth DepthRange
}

// ClearColorKind selects which ClearColor channel set is used.
type ClearColorKind uint8

const (
	// ClearFloat clears normalized and float attachments.
	ClearFloat ClearColorKind = iota
	// ClearInt clears signed integer attachments.
	ClearInt
	// ClearUint clears unsigned integer attachments.
	ClearUint
)

// ClearColor is a clear value for a color attachment.
type ClearColor struct {
	Kind  ClearColorKind
	Float gputypes.Color
	Int   [4]int32
	Uint  [4]uint32
}

// ClearFloatColor returns a float clear value.
func ClearFloatColor(c gputypes.Color) ClearColor {
	return ClearColor{Kind: ClearFloat, Float: c}
}

// ClearDepthStencil is a clear value for a depth/stencil attachment.
type ClearDepthStencil struct {
	Depth   float32
	Stencil uint32
}

// ClearValue is either a color or a depth/stencil clear value.
// A nil Color means DepthStencil is used.
type ClearValue struct {
	Color        *ClearColor
	DepthStencil ClearDepthStencil
}

// StencilValue is a stencil reference value.
type StencilValue = uint32
