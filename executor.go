package glcmd

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Submission is a finished recording ready to be executed: the commands a
// recorder appended and the data buffer their payload Slices point into.
type Submission struct {
	Commands []Command
	Data     []byte
}

// Len returns the number of commands.
func (s Submission) Len() int {
	return len(s.Commands)
}

// Executor receives recorded commands and issues them to a GL context (or
// anything else that wants to observe them: a trace, a test double).
//
// Executors are created via the registry using NewExecutor(name) and
// registered via RegisterExecutor() in their init() functions.
//
// Payload arguments (rects, depths) alias the submission's data buffer
// only for the duration of the call.
type Executor interface {
	// Begin is called once before the first command.
	Begin() error
	// End is called once after the last command.
	End() error

	Dispatch(x, y, z uint32)
	DispatchIndirect(buffer BufferID, offset uint64)

	Draw(topology gputypes.PrimitiveTopology, vertices, instances Range)
	// DrawIndexed draws count indices starting offset bytes into the bound
	// element array buffer.
	DrawIndexed(topology gputypes.PrimitiveTopology, format gputypes.IndexFormat,
		count uint32, offset uint64, baseVertex int32, instances Range)

	BindIndexBuffer(buffer BufferID)
	BindVertexBuffer(buffer BufferID)

	// SetViewports receives 4 floats (x, y, w, h) and 2 doubles
	// (near, far) per viewport, in the layout glViewportArrayv and
	// glDepthRangeArrayv expect.
	SetViewports(rects []float32, depths []float64)
	// SetScissors receives 4 ints (x, y, w, h) per scissor rectangle, in
	// the layout glScissorArrayv expects.
	SetScissors(rects []int32)

	SetBlendColor(color gputypes.Color)
	ClearColor(value ClearColor)
	BindFramebuffer(target FramebufferTarget, framebuffer FramebufferID)
	BindTargetView(target FramebufferTarget, attachment AttachmentPoint, view ImageView)
	SetDrawColorBuffers(count int)
	SetPatchSize(size int32)
	BindProgram(program ProgramID)
	BindBlendSlot(slot uint32, desc BlendDesc)
	BindAttribute(attribute AttributeDesc)
	UnbindAttribute(attribute AttributeDesc)
}

// Replay issues every command of s to exec in recording order, bracketed
// by Begin and End. It stops at the first payload that does not decode and
// checks ctx between commands.
func (s Submission) Replay(ctx context.Context, exec Executor) error {
	if err := exec.Begin(); err != nil {
		return fmt.Errorf("glcmd: executor begin: %w", err)
	}

	for i, cmd := range s.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.issue(exec, cmd); err != nil {
			return fmt.Errorf("glcmd: command %d (%s): %w", i, cmd.Type(), err)
		}
	}

	if err := exec.End(); err != nil {
		return fmt.Errorf("glcmd: executor end: %w", err)
	}
	return nil
}

func (s Submission) issue(exec Executor, cmd Command) error {
	switch c := cmd.(type) {
	case DispatchCommand:
		exec.Dispatch(c.X, c.Y, c.Z)
	case DispatchIndirectCommand:
		exec.DispatchIndirect(c.Buffer, c.Offset)
	case DrawCommand:
		exec.Draw(c.Topology, c.Vertices, c.Instances)
	case DrawIndexedCommand:
		exec.DrawIndexed(c.Topology, c.IndexFormat, c.IndexCount, c.IndexBufferOffset, c.BaseVertex, c.Instances)
	case BindIndexBufferCommand:
		exec.BindIndexBuffer(c.Buffer)
	case BindVertexBufferCommand:
		exec.BindVertexBuffer(c.Buffer)
	case SetViewportsCommand:
		rects, err := Float32s(s.Data, c.Rects)
		if err != nil {
			return err
		}
		depths, err := Float64s(s.Data, c.DepthRanges)
		if err != nil {
			return err
		}
		exec.SetViewports(rects, depths)
	case SetScissorsCommand:
		rects, err := Int32s(s.Data, c.Rects)
		if err != nil {
			return err
		}
		exec.SetScissors(rects)
	case SetBlendColorCommand:
		exec.SetBlendColor(c.Color)
	case ClearColorCommand:
		exec.ClearColor(c.Value)
	case BindFramebufferCommand:
		exec.BindFramebuffer(c.Target, c.Framebuffer)
	case BindTargetViewCommand:
		exec.BindTargetView(c.Target, c.Attachment, c.View)
	case SetDrawColorBuffersCommand:
		exec.SetDrawColorBuffers(c.Count)
	case SetPatchSizeCommand:
		exec.SetPatchSize(c.Size)
	case BindProgramCommand:
		exec.BindProgram(c.Program)
	case BindBlendSlotCommand:
		exec.BindBlendSlot(c.Slot, c.Desc)
	case BindAttributeCommand:
		exec.BindAttribute(c.Attribute)
	case UnbindAttributeCommand:
		exec.UnbindAttribute(c.Attribute)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}
