package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glcmd"
	"github.com/gogpu/glcmd/handles"
)

const quadWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec2<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos, 0.0, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.uv, 0.0, 1.0);
}
`

// scene holds the GL objects the demo frame references.
type scene struct {
	program  glcmd.ProgramID
	vertices glcmd.BufferID
	indices  glcmd.BufferID
	target   glcmd.Image
	pipeline *glcmd.GraphicsPipeline
}

func newScene(table *handles.Table) (*scene, error) {
	prog, err := table.CompileProgram("quad", quadWGSL)
	if err != nil {
		return nil, err
	}

	blend := gputypes.BlendStatePremultiplied()
	return &scene{
		program:  prog.ID,
		vertices: table.NewBuffer(),
		indices:  table.NewBuffer(),
		target:   glcmd.Image{Kind: glcmd.ImageTexture, ID: 1},
		pipeline: &glcmd.GraphicsPipeline{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			Program:  prog.ID,
			BlendTargets: []glcmd.BlendDesc{
				{WriteMask: gputypes.ColorWriteMaskAll, Enabled: true, Blend: blend},
			},
			Attributes: []glcmd.AttributeDesc{
				{Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0, Stride: 16},
				{Location: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 8, Stride: 16},
			},
		},
	}, nil
}

// record encodes one frame of the scene.
func (s *scene) record(rec *glcmd.Recorder, width, height int32) {
	rec.Begin()
	rec.ClearColorImage(s.target, glcmd.ClearFloatColor(gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}))
	rec.BindGraphicsPipeline(s.pipeline)
	rec.BindVertexBuffers(s.vertices)
	rec.BindIndexBuffer(glcmd.IndexBufferView{Buffer: s.indices, Format: gputypes.IndexFormatUint16})
	rec.SetViewports([]glcmd.Viewport{
		{Rect: glcmd.Rect{W: width, H: height}, Depth: glcmd.DepthRange{Near: 0, Far: 1}},
	})
	rec.SetScissors([]glcmd.Rect{{W: width, H: height}})
	rec.SetBlendConstants(gputypes.Color{R: 1, G: 1, B: 1, A: 1})
	rec.DrawIndexed(glcmd.Range{Start: 0, End: 6}, 0, glcmd.Range{Start: 0, End: 1})
	rec.Finish()
}

func run(ctx context.Context, stdout, stderr io.Writer, cfg config) error {
	logger := newLogger(stderr, cfg.Verbose)
	opts, err := cfg.poolOptions(logger)
	if err != nil {
		return err
	}

	exec, err := glcmd.NewExecutor(cfg.Executor)
	if err != nil {
		return err
	}
	if w, ok := exec.(interface{ SetOutput(io.Writer) }); ok {
		w.SetOutput(stdout)
	}

	sc, err := newScene(handles.NewTable())
	if err != nil {
		return err
	}

	pool := glcmd.NewPool(opts...)
	defer pool.Destroy()
	rec := pool.NewRecorder()
	defer rec.Release()

	for frame := range max(cfg.Frames, 1) {
		if pool.Mode() == glcmd.StorageLinear {
			pool.Reset(false)
		}
		sc.record(rec, 640, 480)

		sub, err := rec.Submission()
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		cmds, data := rec.StorageLen()
		fmt.Fprintf(stdout, "# frame %d: %d commands, %d data bytes (%s storage)\n",
			frame, cmds, data, pool.Mode())
		if err := sub.Replay(ctx, exec); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}
