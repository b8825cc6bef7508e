// Package trace provides an executor that prints replayed commands as
// text, one line per command.
//
// It is the reference executor: it needs no GL context, so it serves for
// inspecting recordings and for comparing recordings in tests.
//
// # Example
//
//	// Import to register the executor
//	import _ "github.com/gogpu/glcmd/executors/trace"
//
//	// Create via registry (writes to stdout)
//	exec, _ := glcmd.NewExecutor("trace")
//
//	// Or create directly
//	var buf bytes.Buffer
//	exec := trace.New(&buf)
//
//	sub.Replay(ctx, exec)
package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/glcmd"
	"github.com/gogpu/gputypes"
)

func init() {
	glcmd.RegisterExecutor("trace", func() glcmd.Executor {
		return New(os.Stdout)
	})
}

// Executor writes a line for every replayed command.
type Executor struct {
	w     io.Writer
	index int
	err   error
}

var _ glcmd.Executor = (*Executor)(nil)

// New creates a trace executor writing to w.
func New(w io.Writer) *Executor {
	return &Executor{w: w}
}

// SetOutput redirects subsequent lines to w.
func (e *Executor) SetOutput(w io.Writer) {
	e.w = w
}

// Commands returns the number of commands traced since Begin.
func (e *Executor) Commands() int {
	return e.index
}

func (e *Executor) line(name, format string, args ...any) {
	if e.err != nil {
		return
	}
	prefix := fmt.Sprintf("%04d %s", e.index, name)
	e.index++
	if format != "" {
		prefix += " " + fmt.Sprintf(format, args...)
	}
	_, e.err = fmt.Fprintln(e.w, prefix)
}

// Begin resets the command counter.
func (e *Executor) Begin() error {
	e.index = 0
	e.err = nil
	return nil
}

// End returns the first write error, if any.
func (e *Executor) End() error {
	if e.err != nil {
		return fmt.Errorf("trace: %w", e.err)
	}
	return nil
}

func (e *Executor) Dispatch(x, y, z uint32) {
	e.line("Dispatch", "x=%d y=%d z=%d", x, y, z)
}

func (e *Executor) DispatchIndirect(buffer glcmd.BufferID, offset uint64) {
	e.line("DispatchIndirect", "buffer=%d offset=%d", buffer, offset)
}

func (e *Executor) Draw(topology gputypes.PrimitiveTopology, vertices, instances glcmd.Range) {
	e.line("Draw", "topology=%v vertices=%s instances=%s", topology, rangeString(vertices), rangeString(instances))
}

func (e *Executor) DrawIndexed(topology gputypes.PrimitiveTopology, format gputypes.IndexFormat,
	count uint32, offset uint64, baseVertex int32, instances glcmd.Range,
) {
	e.line("DrawIndexed", "topology=%v format=%v count=%d offset=%d base_vertex=%d instances=%s",
		topology, format, count, offset, baseVertex, rangeString(instances))
}

func (e *Executor) BindIndexBuffer(buffer glcmd.BufferID) {
	e.line("BindIndexBuffer", "buffer=%d", buffer)
}

func (e *Executor) BindVertexBuffer(buffer glcmd.BufferID) {
	e.line("BindVertexBuffer", "buffer=%d", buffer)
}

func (e *Executor) SetViewports(rects []float32, depths []float64) {
	e.line("SetViewports", "rects=%v depths=%v", rects, depths)
}

func (e *Executor) SetScissors(rects []int32) {
	e.line("SetScissors", "rects=%v", rects)
}

func (e *Executor) SetBlendColor(c gputypes.Color) {
	e.line("SetBlendColor", "rgba=(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

func (e *Executor) ClearColor(v glcmd.ClearColor) {
	switch v.Kind {
	case glcmd.ClearInt:
		e.line("ClearColor", "int=%v", v.Int)
	case glcmd.ClearUint:
		e.line("ClearColor", "uint=%v", v.Uint)
	default:
		e.line("ClearColor", "float=(%g, %g, %g, %g)", v.Float.R, v.Float.G, v.Float.B, v.Float.A)
	}
}

func (e *Executor) BindFramebuffer(target glcmd.FramebufferTarget, fb glcmd.FramebufferID) {
	e.line("BindFramebuffer", "target=%s framebuffer=%d", target, fb)
}

func (e *Executor) BindTargetView(target glcmd.FramebufferTarget, attachment glcmd.AttachmentPoint, view glcmd.ImageView) {
	e.line("BindTargetView", "target=%s attachment=%s image=%d layer=%d", target, attachment, view.ID, view.Layer)
}

func (e *Executor) SetDrawColorBuffers(count int) {
	e.line("SetDrawColorBuffers", "count=%d", count)
}

func (e *Executor) SetPatchSize(size int32) {
	e.line("SetPatchSize", "size=%d", size)
}

func (e *Executor) BindProgram(program glcmd.ProgramID) {
	e.line("BindProgram", "program=%d", program)
}

func (e *Executor) BindBlendSlot(slot uint32, desc glcmd.BlendDesc) {
	e.line("BindBlendSlot", "slot=%d enabled=%t mask=%v", slot, desc.Enabled, desc.WriteMask)
}

func (e *Executor) BindAttribute(a glcmd.AttributeDesc) {
	e.line("BindAttribute", "location=%d binding=%d format=%v offset=%d stride=%d",
		a.Location, a.Binding, a.Format, a.Offset, a.Stride)
}

func (e *Executor) UnbindAttribute(a glcmd.AttributeDesc) {
	e.line("UnbindAttribute", "location=%d", a.Location)
}

func rangeString(r glcmd.Range) string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
