// Package glcmd records GPU command buffers for deferred execution on an
// OpenGL context.
//
// # Overview
//
// GL has no native command buffers. glcmd records commands into
// pool-owned storage and a later execution stage replays them on the
// context's thread. Recording is cheap, validates its input, and drops
// redundant state changes through a per-recorder state cache.
//
// # Quick Start
//
//	pool := glcmd.NewPool()
//	defer pool.Destroy()
//
//	rec := pool.NewRecorder()
//	rec.Begin()
//	rec.BindGraphicsPipeline(&glcmd.GraphicsPipeline{
//	    Topology: gputypes.PrimitiveTopologyTriangleList,
//	    Program:  prog,
//	})
//	rec.SetViewports([]glcmd.Viewport{{Rect: glcmd.Rect{W: 640, H: 480}, Depth: glcmd.DepthRange{Far: 1}}})
//	rec.Draw(glcmd.Range{End: 3}, glcmd.Range{End: 1})
//	rec.Finish()
//
//	sub, err := rec.Submission()
//	if err != nil {
//	    return err // invalid commands were recorded
//	}
//	err = sub.Replay(ctx, exec)
//
// # Storage
//
// A Pool backs its recorders in one of two modes:
//   - Linear (default): one command log and data buffer shared by every
//     recorder. Cheap, but only the whole pool can be reset, and only one
//     recorder may be recording at a time.
//   - Individual (WithIndividualReset): a log and buffer per recorder, so
//     each recorder can be reset on its own.
//
// Variable-length payloads such as viewports and scissor rectangles live
// in the data buffer and are referenced from commands by Slice.
//
// # Validation
//
// Recording never aborts. An invalid command is skipped, logged at warn
// level and raises a sticky error flag; Submission refuses flagged
// recorders. Operations the backend cannot record yet return an error
// wrapping ErrNotSupported.
//
// # Execution
//
// Executors receive replayed commands. They register by name following
// the database/sql driver pattern; see RegisterExecutor and the trace
// executor in executors/trace.
package glcmd
