package glcmd

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"honnef.co/go/safeish"
)

// Element is a plain numeric type that can be stored in a data buffer.
type Element interface {
	constraints.Integer | constraints.Float
}

// Payload sizes in bytes.
const (
	viewportRectBytes  = 4 * 4 // x, y, w, h as float32
	viewportDepthBytes = 2 * 8 // near, far as float64
	scissorRectBytes   = 4 * 4 // x, y, w, h as int32
)

// appendTyped copies the native memory representation of elems into the
// data buffer of r. Which element type a Slice holds is part of the
// contract of the command that references it; nothing is stored at
// runtime.
func appendTyped[E Element](r *Recorder, elems []E) Slice {
	return r.addRaw(safeish.SliceCast[[]byte](elems))
}

// checkSlice reports an error if s does not fit in data or is not a whole
// number of elemSize-byte elements.
func checkSlice(data []byte, s Slice, elemSize int) error {
	if int(s.End()) > len(data) || s.End() < s.Offset {
		return fmt.Errorf("glcmd: slice %v out of range of %d byte data buffer", s, len(data))
	}
	if int(s.Size)%elemSize != 0 {
		return fmt.Errorf("glcmd: slice %v is not a multiple of %d bytes", s, elemSize)
	}
	return nil
}

// Bytes returns the bytes s covers in data without copying.
func Bytes(data []byte, s Slice) ([]byte, error) {
	if err := checkSlice(data, s, 1); err != nil {
		return nil, err
	}
	return data[s.Offset:s.End():s.End()], nil
}

// Float32s decodes the float32 elements s covers in data.
func Float32s(data []byte, s Slice) ([]float32, error) {
	if err := checkSlice(data, s, 4); err != nil {
		return nil, err
	}
	raw := data[s.Offset:s.End()]
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Float64s decodes the float64 elements s covers in data.
func Float64s(data []byte, s Slice) ([]float64, error) {
	if err := checkSlice(data, s, 8); err != nil {
		return nil, err
	}
	raw := data[s.Offset:s.End()]
	out := make([]float64, len(raw)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.NativeEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// Int32s decodes the int32 elements s covers in data.
func Int32s(data []byte, s Slice) ([]int32, error) {
	if err := checkSlice(data, s, 4); err != nil {
		return nil, err
	}
	raw := data[s.Offset:s.End()]
	out := make([]int32, len(raw)/4)
	for i := range out {
		//nolint:gosec // reinterpreting the stored bit pattern
		out[i] = int32(binary.NativeEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// DecodeViewports rebuilds the viewports a SetViewportsCommand references.
// Rectangles are stored as float32, so they round-trip exactly for
// coordinates up to 2^24.
func DecodeViewports(data []byte, cmd SetViewportsCommand) ([]Viewport, error) {
	rects, err := Float32s(data, cmd.Rects)
	if err != nil {
		return nil, fmt.Errorf("viewport rects: %w", err)
	}
	depths, err := Float64s(data, cmd.DepthRanges)
	if err != nil {
		return nil, fmt.Errorf("viewport depth ranges: %w", err)
	}
	if len(rects)/4 != len(depths)/2 {
		return nil, fmt.Errorf("glcmd: %d viewport rects but %d depth ranges", len(rects)/4, len(depths)/2)
	}

	out := make([]Viewport, len(rects)/4)
	for i := range out {
		r := rects[i*4 : i*4+4]
		d := depths[i*2 : i*2+2]
		out[i] = Viewport{
			Rect:  Rect{X: int32(r[0]), Y: int32(r[1]), W: int32(r[2]), H: int32(r[3])},
			Depth: DepthRange{Near: float32(d[0]), Far: float32(d[1])},
		}
	}
	return out, nil
}

// DecodeScissors rebuilds the rectangles a SetScissorsCommand references.
func DecodeScissors(data []byte, cmd SetScissorsCommand) ([]Rect, error) {
	v, err := Int32s(data, cmd.Rects)
	if err != nil {
		return nil, fmt.Errorf("scissor rects: %w", err)
	}
	if len(v)%4 != 0 {
		return nil, fmt.Errorf("glcmd: scissor payload of %d int32 is not a multiple of 4", len(v))
	}
	out := make([]Rect, len(v)/4)
	for i := range out {
		out[i] = Rect{X: v[i*4], Y: v[i*4+1], W: v[i*4+2], H: v[i*4+3]}
	}
	return out, nil
}
