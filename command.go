package glcmd

import "github.com/gogpu/gputypes"

// CommandType identifies the variant of a recorded command.
type CommandType uint8

const (
	// Compute commands
	CmdDispatch         CommandType = iota // Dispatch compute workgroups
	CmdDispatchIndirect                    // Dispatch with GPU-provided counts

	// Drawing commands
	CmdDraw        // Non-indexed draw
	CmdDrawIndexed // Indexed draw

	// Buffer binding commands
	CmdBindIndexBuffer  // Bind the element array buffer
	CmdBindVertexBuffer // Bind a vertex buffer

	// Fixed-function state commands
	CmdSetViewports        // Set viewport rectangles and depth ranges
	CmdSetScissors         // Set scissor rectangles
	CmdSetBlendColor       // Set the blend constant color
	CmdClearColor          // Clear the bound color buffers
	CmdBindFramebuffer     // Bind a framebuffer object
	CmdBindTargetView      // Attach an image view to the bound framebuffer
	CmdSetDrawColorBuffers // Select the number of draw buffers
	CmdSetPatchSize        // Set vertices per tessellation patch
	CmdBindProgram         // Bind a shader program
	CmdBindBlendSlot       // Set blend state of one color attachment
	CmdBindAttribute       // Enable and describe a vertex attribute
	CmdUnbindAttribute     // Disable a vertex attribute
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdDispatch:            "Dispatch",
	CmdDispatchIndirect:    "DispatchIndirect",
	CmdDraw:                "Draw",
	CmdDrawIndexed:         "DrawIndexed",
	CmdBindIndexBuffer:     "BindIndexBuffer",
	CmdBindVertexBuffer:    "BindVertexBuffer",
	CmdSetViewports:        "SetViewports",
	CmdSetScissors:         "SetScissors",
	CmdSetBlendColor:       "SetBlendColor",
	CmdClearColor:          "ClearColor",
	CmdBindFramebuffer:     "BindFramebuffer",
	CmdBindTargetView:      "BindTargetView",
	CmdSetDrawColorBuffers: "SetDrawColorBuffers",
	CmdSetPatchSize:        "SetPatchSize",
	CmdBindProgram:         "BindProgram",
	CmdBindBlendSlot:       "BindBlendSlot",
	CmdBindAttribute:       "BindAttribute",
	CmdUnbindAttribute:     "UnbindAttribute",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
// Commands are appended to a log once and never mutated.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// DispatchCommand dispatches a compute grid.
type DispatchCommand struct {
	X, Y, Z uint32
}

// Type implements Command.
func (DispatchCommand) Type() CommandType { return CmdDispatch }

// DispatchIndirectCommand dispatches a compute grid read from a buffer.
type DispatchIndirectCommand struct {
	Buffer BufferID
	Offset uint64
}

// Type implements Command.
func (DispatchIndirectCommand) Type() CommandType { return CmdDispatchIndirect }

// DrawCommand draws non-indexed primitives.
type DrawCommand struct {
	// Topology is the primitive topology of the pipeline bound at record time.
	Topology  gputypes.PrimitiveTopology
	Vertices  Range
	Instances Range
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// DrawIndexedCommand draws indexed primitives.
type DrawIndexedCommand struct {
	Topology    gputypes.PrimitiveTopology
	IndexFormat gputypes.IndexFormat
	IndexCount  uint32
	// IndexBufferOffset is the byte offset of the first index.
	IndexBufferOffset uint64
	BaseVertex        int32
	Instances         Range
}

// Type implements Command.
func (DrawIndexedCommand) Type() CommandType { return CmdDrawIndexed }

// BindIndexBufferCommand binds the element array buffer.
type BindIndexBufferCommand struct {
	Buffer BufferID
}

// Type implements Command.
func (BindIndexBufferCommand) Type() CommandType { return CmdBindIndexBuffer }

// BindVertexBufferCommand binds a vertex buffer.
type BindVertexBufferCommand struct {
	Buffer BufferID
}

// Type implements Command.
func (BindVertexBufferCommand) Type() CommandType { return CmdBindVertexBuffer }

// SetViewportsCommand sets all viewports starting at index zero.
//
// Rects covers four float32 per viewport (x, y, width, height).
// DepthRanges covers two float64 per viewport (near, far).
// Both are byte ranges into the data buffer; see DecodeViewports.
type SetViewportsCommand struct {
	Rects       Slice
	DepthRanges Slice
}

// Type implements Command.
func (SetViewportsCommand) Type() CommandType { return CmdSetViewports }

// Count returns the number of viewports the command sets.
func (c SetViewportsCommand) Count() int {
	return int(c.Rects.Size) / viewportRectBytes
}

// SetScissorsCommand sets all scissor rectangles starting at index zero.
//
// Rects covers four int32 per scissor (x, y, width, height) as a byte
// range into the data buffer; see DecodeScissors.
type SetScissorsCommand struct {
	Rects Slice
}

// Type implements Command.
func (SetScissorsCommand) Type() CommandType { return CmdSetScissors }

// Count returns the number of scissors the command sets.
func (c SetScissorsCommand) Count() int {
	return int(c.Rects.Size) / scissorRectBytes
}

// SetBlendColorCommand sets the blend constant color.
type SetBlendColorCommand struct {
	Color gputypes.Color
}

// Type implements Command.
func (SetBlendColorCommand) Type() CommandType { return CmdSetBlendColor }

// ClearColorCommand clears the enabled draw buffers.
type ClearColorCommand struct {
	Value ClearColor
}

// Type implements Command.
func (ClearColorCommand) Type() CommandType { return CmdClearColor }

// BindFramebufferCommand binds a framebuffer object.
type BindFramebufferCommand struct {
	Target      FramebufferTarget
	Framebuffer FramebufferID
}

// Type implements Command.
func (BindFramebufferCommand) Type() CommandType { return CmdBindFramebuffer }

// BindTargetViewCommand attaches an image view to the bound framebuffer.
type BindTargetViewCommand struct {
	Target     FramebufferTarget
	Attachment AttachmentPoint
	View       ImageView
}

// Type implements Command.
func (BindTargetViewCommand) Type() CommandType { return CmdBindTargetView }

// SetDrawColorBuffersCommand enables the first Count color attachments.
type SetDrawColorBuffersCommand struct {
	Count int
}

// Type implements Command.
func (SetDrawColorBuffersCommand) Type() CommandType { return CmdSetDrawColorBuffers }

// SetPatchSizeCommand sets the number of vertices per patch.
type SetPatchSizeCommand struct {
	Size int32
}

// Type implements Command.
func (SetPatchSizeCommand) Type() CommandType { return CmdSetPatchSize }

// BindProgramCommand binds a shader program.
type BindProgramCommand struct {
	Program ProgramID
}

// Type implements Command.
func (BindProgramCommand) Type() CommandType { return CmdBindProgram }

// BindBlendSlotCommand sets the blend state of one color attachment.
type BindBlendSlotCommand struct {
	Slot uint32
	Desc BlendDesc
}

// Type implements Command.
func (BindBlendSlotCommand) Type() CommandType { return CmdBindBlendSlot }

// BindAttributeCommand enables a vertex attribute.
type BindAttributeCommand struct {
	Attribute AttributeDesc
}

// Type implements Command.
func (BindAttributeCommand) Type() CommandType { return CmdBindAttribute }

// UnbindAttributeCommand disables a vertex attribute.
type UnbindAttributeCommand struct {
	Attribute AttributeDesc
}

// Type implements Command.
func (UnbindAttributeCommand) Type() CommandType { return CmdUnbindAttribute }
