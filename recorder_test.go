package glcmd

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// recorded returns the commands r appended, in order.
func recorded(t *testing.T, r *Recorder) []Command {
	t.Helper()
	cmds, _ := r.store.view(r.id)
	cov := r.Coverage()
	if int(cov.End()) > len(cmds) {
		t.Fatalf("coverage %v exceeds log of %d entries", cov, len(cmds))
	}
	return cmds[cov.Offset:cov.End()]
}

// countType returns the number of commands of type ct.
func countType(cmds []Command, ct CommandType) int {
	n := 0
	for _, c := range cmds {
		if c.Type() == ct {
			n++
		}
	}
	return n
}

func newTestRecorder(t *testing.T, opts ...PoolOption) (*Pool, *Recorder) {
	t.Helper()
	pool := NewPool(opts...)
	t.Cleanup(pool.Destroy)
	r := pool.NewRecorder()
	r.Begin()
	return pool, r
}

var trianglePipeline = &GraphicsPipeline{
	Topology: gputypes.PrimitiveTopologyTriangleList,
	Program:  1,
}

func TestRecorderStateString(t *testing.T) {
	tests := []struct {
		s    RecorderState
		want string
	}{
		{RecorderInitial, "Initial"},
		{RecorderRecording, "Recording"},
		{RecorderFinished, "Finished"},
		{RecorderState(9), "Unknown(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRecorderLifecycle(t *testing.T) {
	pool := NewPool(WithIndividualReset())
	t.Cleanup(pool.Destroy)
	r := pool.NewRecorder()

	if r.State() != RecorderInitial {
		t.Fatalf("new recorder state = %s", r.State())
	}
	r.Begin()
	if r.State() != RecorderRecording {
		t.Fatalf("after Begin state = %s", r.State())
	}
	r.Finish()
	if r.State() != RecorderFinished {
		t.Fatalf("after Finish state = %s", r.State())
	}
	if err := r.Reset(false); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if r.State() != RecorderInitial {
		t.Fatalf("after Reset state = %s", r.State())
	}
	r.Begin()
	if r.State() != RecorderRecording {
		t.Fatalf("Begin after Reset state = %s", r.State())
	}
}

func TestRecordOutsideRecordingFlags(t *testing.T) {
	pool := NewPool()
	t.Cleanup(pool.Destroy)
	r := pool.NewRecorder()

	r.Dispatch(1, 1, 1)

	if !r.HasError() {
		t.Fatal("recording before Begin should flag the recorder")
	}
	if !errors.Is(r.Err(), ErrNotRecording) || !errors.Is(r.Err(), ErrValidation) {
		t.Errorf("Err() = %v, want ErrValidation wrapping ErrNotRecording", r.Err())
	}
	if n, _ := r.StorageLen(); n != 0 {
		t.Errorf("log has %d entries, want 0", n)
	}

	// Begin starts clean.
	r.Begin()
	if r.HasError() {
		t.Error("Begin should clear the error flag")
	}
}

func TestLinearResetRejected(t *testing.T) {
	_, r := newTestRecorder(t)
	r.Dispatch(1, 2, 3)

	err := r.Reset(true)
	if !errors.Is(err, ErrIndividualResetNotAllowed) {
		t.Fatalf("Reset() error = %v, want ErrIndividualResetNotAllowed", err)
	}
	if n, _ := r.StorageLen(); n != 1 {
		t.Errorf("rejected reset changed the log: %d entries", n)
	}
	if r.State() != RecorderRecording {
		t.Errorf("rejected reset changed the state to %s", r.State())
	}
	if r.IndividualReset() {
		t.Error("linear recorder reports individual reset")
	}
}

func TestLinearPoolResetStartsAtZero(t *testing.T) {
	pool := NewPool()
	t.Cleanup(pool.Destroy)

	a := pool.NewRecorder()
	a.Begin()
	a.Dispatch(1, 1, 1)
	a.Dispatch(2, 2, 2)
	a.Finish()
	if cov := a.Coverage(); cov != (Slice{Offset: 0, Size: 2}) {
		t.Fatalf("A coverage = %v", cov)
	}

	pool.Reset(false)

	b := pool.NewRecorder()
	b.Begin()
	b.Dispatch(3, 3, 3)
	b.Finish()

	if cov := b.Coverage(); cov != (Slice{Offset: 0, Size: 1}) {
		t.Errorf("B coverage = %v, want [0, 1)", cov)
	}
	got := recorded(t, b)
	if got[0] != (DispatchCommand{X: 3, Y: 3, Z: 3}) {
		t.Errorf("B entry = %#v", got[0])
	}

	// A began before the reset and can no longer be submitted.
	if _, err := a.Submission(); !errors.Is(err, ErrStaleRecording) {
		t.Errorf("A Submission() error = %v, want ErrStaleRecording", err)
	}
	if _, err := b.Submission(); err != nil {
		t.Errorf("B Submission() error = %v", err)
	}
}

func TestLinearRecordersAppendInOrder(t *testing.T) {
	pool := NewPool()
	t.Cleanup(pool.Destroy)

	a := pool.NewRecorder()
	a.Begin()
	a.Dispatch(1, 1, 1)
	a.Finish()

	b := pool.NewRecorder()
	b.Begin()
	b.Dispatch(2, 2, 2)
	b.Finish()

	if b.Coverage() != (Slice{Offset: 1, Size: 1}) {
		t.Errorf("B coverage = %v, want [1, 2)", b.Coverage())
	}
}

func TestLinearInterleavedRecordingPanics(t *testing.T) {
	pool := NewPool()
	t.Cleanup(pool.Destroy)

	a := pool.NewRecorder()
	b := pool.NewRecorder()
	a.Begin()
	b.Begin()
	a.Dispatch(1, 1, 1)
	b.Dispatch(2, 2, 2)

	defer func() {
		if recover() == nil {
			t.Fatal("interleaved recording on linear storage should panic")
		}
	}()
	a.Dispatch(3, 3, 3)
}

func TestIndividualIDs(t *testing.T) {
	pool := NewPool(WithIndividualReset())
	t.Cleanup(pool.Destroy)

	recs := pool.Allocate(5)
	for i, r := range recs {
		if r.ID() != uint64(i) {
			t.Errorf("recorder %d id = %d", i, r.ID())
		}
		if !r.IndividualReset() {
			t.Errorf("recorder %d is not individually resettable", i)
		}
	}
}

func TestIndividualResetIsolated(t *testing.T) {
	pool := NewPool(WithIndividualReset())
	t.Cleanup(pool.Destroy)
	recs := pool.Allocate(2)

	for i, r := range recs {
		r.Begin()
		r.BindGraphicsPipeline(trianglePipeline)
		r.Draw(Range{Start: 0, End: uint32(3 * (i + 1))}, Range{End: 1})
		r.SetScissors([]Rect{{W: 10, H: 10}})
		r.Finish()
	}
	cmds1, data1 := recs[1].StorageLen()

	if err := recs[0].Reset(false); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if cmds, data := recs[0].StorageLen(); cmds != 0 || data != 0 {
		t.Errorf("recorder 0 after reset: %d commands, %d bytes", cmds, data)
	}
	if !recs[0].Coverage().IsEmpty() {
		t.Errorf("recorder 0 coverage = %v", recs[0].Coverage())
	}
	if cmds, data := recs[1].StorageLen(); cmds != cmds1 || data != data1 {
		t.Errorf("recorder 1 changed: %d/%d, want %d/%d", cmds, data, cmds1, data1)
	}
	got := recorded(t, recs[1])
	if d, ok := got[1].(DrawCommand); !ok || d.Vertices.End != 6 {
		t.Errorf("recorder 1 draw = %#v", got[1])
	}
}

func TestIndividualBeginResets(t *testing.T) {
	_, r := newTestRecorder(t, WithIndividualReset())
	r.Dispatch(1, 1, 1)
	r.Finish()

	r.Begin()
	if n, _ := r.StorageLen(); n != 0 {
		t.Errorf("Begin on individual recorder kept %d commands", n)
	}
	r.Dispatch(2, 2, 2)
	if r.Coverage() != (Slice{Offset: 0, Size: 1}) {
		t.Errorf("coverage = %v", r.Coverage())
	}
}

func TestProgramDedup(t *testing.T) {
	_, r := newTestRecorder(t)

	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1})
	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1})
	if n := countType(recorded(t, r), CmdBindProgram); n != 1 {
		t.Errorf("same program twice: %d binds, want 1", n)
	}

	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 2})
	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 3})
	if n := countType(recorded(t, r), CmdBindProgram); n != 3 {
		t.Errorf("distinct programs: %d binds, want 3", n)
	}
}

func TestPatchSizeDedup(t *testing.T) {
	_, r := newTestRecorder(t)

	for _, size := range []int32{3, 3, 4, 4, 0, 4} {
		r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1, PatchSize: size})
	}

	var sizes []int32
	for _, c := range recorded(t, r) {
		if p, ok := c.(SetPatchSizeCommand); ok {
			sizes = append(sizes, p.Size)
		}
	}
	want := []int32{3, 4, 4}
	if len(sizes) != len(want) {
		t.Fatalf("patch sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("patch sizes = %v, want %v", sizes, want)
		}
	}
}

func TestBlendColorDedup(t *testing.T) {
	_, r := newTestRecorder(t)
	red := gputypes.Color{R: 1, A: 1}
	blue := gputypes.Color{B: 1, A: 1}

	r.SetBlendConstants(red)
	r.SetBlendConstants(red)
	if n := countType(recorded(t, r), CmdSetBlendColor); n != 1 {
		t.Errorf("same color twice: %d commands, want 1", n)
	}

	r.SetBlendConstants(blue)
	r.SetBlendConstants(red)
	if n := countType(recorded(t, r), CmdSetBlendColor); n != 3 {
		t.Errorf("alternating colors: %d commands, want 3", n)
	}
}

func TestBindBlendSlotsSparse(t *testing.T) {
	_, r := newTestRecorder(t)
	desc := BlendDesc{WriteMask: gputypes.ColorWriteMaskAll, Enabled: true, Blend: gputypes.BlendStatePremultiplied()}
	slots := []BlendSlot{{Slot: 0, Desc: desc}, {Slot: 2, Desc: desc}, {Slot: 5, Desc: desc}}

	r.BindBlendSlots(slots)

	if got := r.cache.blendSlots(); got < 6 {
		t.Fatalf("cache covers %d slots, want >= 6", got)
	}
	for _, unknown := range []int{1, 3, 4} {
		if r.cache.blendTargets[unknown].ok {
			t.Errorf("slot %d should be unknown", unknown)
		}
	}
	if n := countType(recorded(t, r), CmdBindBlendSlot); n != 3 {
		t.Errorf("%d blend slot binds, want 3", n)
	}

	r.BindBlendSlots(slots)
	if n := countType(recorded(t, r), CmdBindBlendSlot); n != 3 {
		t.Errorf("re-bind emitted %d more commands, want 0", n-3)
	}
}

func TestPipelineBlendTargets(t *testing.T) {
	_, r := newTestRecorder(t)
	on := BlendDesc{WriteMask: gputypes.ColorWriteMaskAll, Enabled: true, Blend: gputypes.BlendStatePremultiplied()}
	off := BlendDesc{WriteMask: gputypes.ColorWriteMaskAll}

	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1, BlendTargets: []BlendDesc{on, off}})
	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1, BlendTargets: []BlendDesc{on, on}})

	var binds []BindBlendSlotCommand
	for _, c := range recorded(t, r) {
		if b, ok := c.(BindBlendSlotCommand); ok {
			binds = append(binds, b)
		}
	}
	if len(binds) != 3 {
		t.Fatalf("got %d blend slot binds, want 3: %+v", len(binds), binds)
	}
	if last := binds[2]; last.Slot != 1 || last.Desc != on {
		t.Errorf("last bind = %+v, want slot 1 enabled", last)
	}
}

func TestPipelineAttributes(t *testing.T) {
	_, r := newTestRecorder(t)
	pos := AttributeDesc{Location: 0, Format: gputypes.VertexFormatFloat32x2, Stride: 16}
	uv := AttributeDesc{Location: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 8, Stride: 16}
	color := AttributeDesc{Location: 2, Format: gputypes.VertexFormatFloat32x4, Stride: 16}

	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1, Attributes: []AttributeDesc{pos, uv}})
	first := len(recorded(t, r))
	r.BindGraphicsPipeline(&GraphicsPipeline{Program: 1, Attributes: []AttributeDesc{pos, color}})

	got := recorded(t, r)[first:]
	want := []Command{
		UnbindAttributeCommand{Attribute: uv},
		BindAttributeCommand{Attribute: pos},
		BindAttributeCommand{Attribute: color},
	}
	if len(got) != len(want) {
		t.Fatalf("second bind recorded %d commands, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestBindNilPipeline(t *testing.T) {
	_, r := newTestRecorder(t)
	r.BindGraphicsPipeline(nil)

	if !errors.Is(r.Err(), ErrNilPipeline) {
		t.Errorf("Err() = %v, want ErrNilPipeline", r.Err())
	}
}

func TestDrawRequiresPipeline(t *testing.T) {
	_, r := newTestRecorder(t)

	r.Draw(Range{End: 3}, Range{End: 1})

	if !r.HasError() {
		t.Fatal("draw without pipeline should flag the recorder")
	}
	if !errors.Is(r.Err(), ErrNoPrimitive) {
		t.Errorf("Err() = %v, want ErrNoPrimitive", r.Err())
	}
	if n := countType(recorded(t, r), CmdDraw); n != 0 {
		t.Errorf("%d draw commands recorded, want 0", n)
	}

	// The recorder stays usable.
	r.BindGraphicsPipeline(trianglePipeline)
	r.Draw(Range{End: 3}, Range{End: 1})
	if n := countType(recorded(t, r), CmdDraw); n != 1 {
		t.Errorf("%d draw commands after binding, want 1", n)
	}
	if !r.HasError() {
		t.Error("the error flag is sticky")
	}
}

func TestDrawCarriesTopology(t *testing.T) {
	_, r := newTestRecorder(t)
	r.BindGraphicsPipeline(trianglePipeline)
	r.Draw(Range{Start: 3, End: 9}, Range{Start: 0, End: 2})

	cmds := recorded(t, r)
	want := DrawCommand{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Vertices:  Range{Start: 3, End: 9},
		Instances: Range{Start: 0, End: 2},
	}
	if got := cmds[len(cmds)-1]; got != want {
		t.Errorf("draw = %#v, want %#v", got, want)
	}
	if r.HasError() {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestDrawIndexed(t *testing.T) {
	tests := []struct {
		name       string
		format     gputypes.IndexFormat
		wantOffset uint64
	}{
		{"uint16", gputypes.IndexFormatUint16, 20},
		{"uint32", gputypes.IndexFormatUint32, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := newTestRecorder(t)
			r.BindGraphicsPipeline(trianglePipeline)
			r.BindIndexBuffer(IndexBufferView{Buffer: 5, Format: tt.format})
			r.DrawIndexed(Range{Start: 10, End: 20}, 3, Range{End: 1})

			cmds := recorded(t, r)
			if n := countType(cmds, CmdDrawIndexed); n != 1 {
				t.Fatalf("%d indexed draws, want 1", n)
			}
			got := cmds[len(cmds)-1].(DrawIndexedCommand)
			if got.IndexCount != 10 {
				t.Errorf("IndexCount = %d, want 10", got.IndexCount)
			}
			if got.IndexBufferOffset != tt.wantOffset {
				t.Errorf("IndexBufferOffset = %d, want %d", got.IndexBufferOffset, tt.wantOffset)
			}
			if got.BaseVertex != 3 {
				t.Errorf("BaseVertex = %d, want 3", got.BaseVertex)
			}
			if got.IndexFormat != tt.format || got.Topology != gputypes.PrimitiveTopologyTriangleList {
				t.Errorf("format/topology = %v/%v", got.IndexFormat, got.Topology)
			}
		})
	}
}

func TestDrawIndexedValidation(t *testing.T) {
	t.Run("no index buffer", func(t *testing.T) {
		_, r := newTestRecorder(t)
		r.BindGraphicsPipeline(trianglePipeline)
		r.DrawIndexed(Range{End: 3}, 0, Range{End: 1})

		if !errors.Is(r.Err(), ErrNoIndexType) {
			t.Errorf("Err() = %v, want ErrNoIndexType", r.Err())
		}
		if n := countType(recorded(t, r), CmdDrawIndexed); n != 0 {
			t.Errorf("%d indexed draws recorded", n)
		}
	})
	t.Run("no pipeline", func(t *testing.T) {
		_, r := newTestRecorder(t)
		r.BindIndexBuffer(IndexBufferView{Buffer: 5, Format: gputypes.IndexFormatUint16})
		r.DrawIndexed(Range{End: 3}, 0, Range{End: 1})

		if !errors.Is(r.Err(), ErrNoPrimitive) {
			t.Errorf("Err() = %v, want ErrNoPrimitive", r.Err())
		}
		if n := countType(recorded(t, r), CmdDrawIndexed); n != 0 {
			t.Errorf("%d indexed draws recorded", n)
		}
	})
}

func TestBindIndexBufferAlwaysRecorded(t *testing.T) {
	_, r := newTestRecorder(t)
	view := IndexBufferView{Buffer: 5, Format: gputypes.IndexFormatUint16}
	r.BindIndexBuffer(view)
	r.BindIndexBuffer(view)

	if n := countType(recorded(t, r), CmdBindIndexBuffer); n != 2 {
		t.Errorf("%d index buffer binds, want 2", n)
	}
}

func TestSetViewports(t *testing.T) {
	_, r := newTestRecorder(t, WithLimits(Limits{MaxViewports: 4}))
	vps := []Viewport{
		{Rect: Rect{X: 0, Y: 0, W: 640, H: 480}, Depth: DepthRange{Near: 0, Far: 1}},
		{Rect: Rect{X: 10, Y: 20, W: 30, H: 40}, Depth: DepthRange{Near: 0.25, Far: 0.5}},
		{Rect: Rect{X: -5, Y: 7, W: 1, H: 2}, Depth: DepthRange{Near: 1, Far: 0}},
	}
	n := len(vps)

	r.SetViewports(vps)

	cmds := recorded(t, r)
	if len(cmds) != 1 {
		t.Fatalf("%d commands, want 1", len(cmds))
	}
	cmd := cmds[0].(SetViewportsCommand)
	if cmd.Count() != n {
		t.Errorf("Count() = %d, want %d", cmd.Count(), n)
	}

	_, data := r.store.view(r.id)
	rects, err := Float32s(data, cmd.Rects)
	if err != nil {
		t.Fatal(err)
	}
	depths, err := Float64s(data, cmd.DepthRanges)
	if err != nil {
		t.Fatal(err)
	}
	if len(rects) != 4*n || len(depths) != 2*n {
		t.Errorf("payload holds %d rect floats and %d depth doubles, want %d and %d",
			len(rects), len(depths), 4*n, 2*n)
	}
	if cmd.Rects.Size != uint32(4*4*n) || cmd.DepthRanges.Size != uint32(2*8*n) {
		t.Errorf("slice sizes = %d/%d bytes", cmd.Rects.Size, cmd.DepthRanges.Size)
	}

	got, err := DecodeViewports(data, cmd)
	if err != nil {
		t.Fatalf("DecodeViewports() error = %v", err)
	}
	for i := range vps {
		if got[i] != vps[i] {
			t.Errorf("viewport %d = %+v, want %+v", i, got[i], vps[i])
		}
	}
}

func TestSetViewportsRejected(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want error
	}{
		{"empty", 0, ErrNoViewports},
		{"over limit", 3, ErrTooManyViewports},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := newTestRecorder(t, WithLimits(Limits{MaxViewports: 2}))
			r.SetViewports(make([]Viewport, tt.n))

			if !errors.Is(r.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", r.Err(), tt.want)
			}
			if cmds, data := r.StorageLen(); cmds != 0 || data != 0 {
				t.Errorf("rejected call wrote %d commands, %d bytes", cmds, data)
			}
		})
	}
}

func TestSetScissors(t *testing.T) {
	_, r := newTestRecorder(t)
	rects := []Rect{{X: 1, Y: 2, W: 3, H: 4}, {X: -1, Y: 0, W: 100, H: 200}}

	r.SetScissors(rects)

	cmds := recorded(t, r)
	cmd := cmds[0].(SetScissorsCommand)
	if cmd.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cmd.Count())
	}
	_, data := r.store.view(r.id)
	got, err := DecodeScissors(data, cmd)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rects {
		if got[i] != rects[i] {
			t.Errorf("scissor %d = %+v, want %+v", i, got[i], rects[i])
		}
	}
}

func TestSetScissorsRejected(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want error
	}{
		{"empty", 0, ErrNoScissors},
		{"over limit", 2, ErrTooManyScissors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, r := newTestRecorder(t, WithLimits(Limits{MaxViewports: 1}))
			r.SetScissors(make([]Rect, tt.n))

			if !errors.Is(r.Err(), tt.want) {
				t.Errorf("Err() = %v, want %v", r.Err(), tt.want)
			}
			if n, _ := r.StorageLen(); n != 0 {
				t.Errorf("rejected call wrote %d commands", n)
			}
		})
	}
}

func TestStencilReferenceCachedOnly(t *testing.T) {
	_, r := newTestRecorder(t)
	r.SetStencilReference(1, 2)

	if n, _ := r.StorageLen(); n != 0 {
		t.Errorf("stencil reference recorded %d commands", n)
	}
	if v, ok := r.cache.stencilRef.get(); !ok || v != (stencilRefs{front: 1, back: 2}) {
		t.Errorf("cached stencil refs = %+v, %t", v, ok)
	}
}

func TestClearColorImage(t *testing.T) {
	_, r := newTestRecorder(t, WithFramebuffer(9))
	img := Image{Kind: ImageTexture, ID: 4}
	value := ClearFloatColor(gputypes.Color{R: 1, A: 1})

	r.ClearColorImage(img, value)

	want := []Command{
		BindFramebufferCommand{Target: FramebufferTargetDraw, Framebuffer: 9},
		BindTargetViewCommand{Target: FramebufferTargetDraw, Attachment: AttachmentColor0, View: img.View()},
		SetDrawColorBuffersCommand{Count: 1},
		ClearColorCommand{Value: value},
	}
	got := recorded(t, r)
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestBeginRenderPass(t *testing.T) {
	_, r := newTestRecorder(t)
	black := ClearFloatColor(gputypes.Color{A: 1})

	err := r.BeginRenderPass(1, 2, Rect{W: 10, H: 10}, []ClearValue{{Color: &black}, {Color: &black}})
	if err != nil {
		t.Fatalf("BeginRenderPass() error = %v", err)
	}
	if n := countType(recorded(t, r), CmdClearColor); n != 2 {
		t.Errorf("%d color clears, want 2", n)
	}

	err = r.BeginRenderPass(1, 2, Rect{}, []ClearValue{{DepthStencil: ClearDepthStencil{Depth: 1}}})
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("depth clear error = %v, want ErrNotSupported", err)
	}
	if r.HasError() {
		t.Error("unsupported operation must not raise the validation flag")
	}
}

func TestSubmission(t *testing.T) {
	_, r := newTestRecorder(t)
	r.BindGraphicsPipeline(trianglePipeline)
	r.SetViewports([]Viewport{{Rect: Rect{W: 1, H: 1}}})
	r.Draw(Range{End: 3}, Range{End: 1})

	if _, err := r.Submission(); !errors.Is(err, ErrNotFinished) {
		t.Errorf("Submission() before Finish error = %v, want ErrNotFinished", err)
	}

	r.Finish()
	sub, err := r.Submission()
	if err != nil {
		t.Fatalf("Submission() error = %v", err)
	}
	if sub.Len() != 3 {
		t.Errorf("Len() = %d, want 3", sub.Len())
	}
	if len(sub.Data) != 32 {
		t.Errorf("data buffer = %d bytes, want 32", len(sub.Data))
	}
}

func TestSubmissionRefusesFlagged(t *testing.T) {
	_, r := newTestRecorder(t)
	r.SetScissors(nil)
	r.Finish()

	_, err := r.Submission()
	if !errors.Is(err, ErrRecordingInvalid) {
		t.Fatalf("Submission() error = %v, want ErrRecordingInvalid", err)
	}
	if !errors.Is(err, ErrNoScissors) {
		t.Errorf("Submission() error %v should carry the cause", err)
	}
}

func TestDispatch(t *testing.T) {
	_, r := newTestRecorder(t)
	r.Dispatch(4, 5, 6)
	r.DispatchIndirect(7, 64)
	r.BindVertexBuffers(1, 2)

	want := []Command{
		DispatchCommand{X: 4, Y: 5, Z: 6},
		DispatchIndirectCommand{Buffer: 7, Offset: 64},
		BindVertexBufferCommand{Buffer: 1},
		BindVertexBufferCommand{Buffer: 2},
	}
	got := recorded(t, r)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}
