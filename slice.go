package glcmd

import "fmt"

// Slice locates a contiguous run inside a backing sequence: entries of a
// command log or bytes of a data buffer. A Slice never owns the data it
// describes. The zero value is the empty Slice.
type Slice struct {
	Offset uint32
	Size   uint32
}

// EmptySlice returns the empty Slice.
func EmptySlice() Slice {
	return Slice{}
}

// IsEmpty reports whether the Slice covers nothing.
func (s Slice) IsEmpty() bool {
	return s.Size == 0
}

// End returns the offset one past the last covered element.
func (s Slice) End() uint32 {
	return s.Offset + s.Size
}

// Append grows s to also cover other.
//
// An empty s becomes other. Otherwise other must start exactly where s
// ends; anything else means two writers interleaved on the same storage,
// and Append panics.
func (s *Slice) Append(other Slice) {
	if s.Size == 0 {
		*s = other
		return
	}
	if s.End() != other.Offset {
		panic(fmt.Sprintf("glcmd: non-contiguous slice append: %v then %v", *s, other))
	}
	s.Size += other.Size
}

// String returns the Slice as [offset, end).
func (s Slice) String() string {
	return fmt.Sprintf("[%d, %d)", s.Offset, s.End())
}
