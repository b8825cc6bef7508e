package handles

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glcmd"
	"github.com/gogpu/naga"
)

// ErrUnknownProgram is returned when looking up a program name the table
// never allocated.
var ErrUnknownProgram = errors.New("handles: unknown program")

// Program is a shader program compiled for deferred creation.
type Program struct {
	ID    glcmd.ProgramID
	Label string
	// SPIRV is the compiled module, one little-endian word per element.
	SPIRV []uint32
}

// Table allocates GL object names. Names start at 1; 0 is reserved for
// the default framebuffer and "no object".
//
// Table is safe for concurrent use.
type Table struct {
	nextProgram     atomic.Uint32
	nextFramebuffer atomic.Uint32
	nextBuffer      atomic.Uint32

	mu       sync.RWMutex
	programs map[glcmd.ProgramID]*Program
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{programs: make(map[glcmd.ProgramID]*Program)}
}

// CompileProgram compiles WGSL source to SPIR-V and registers the result
// under a new program name.
func (t *Table) CompileProgram(label, wgsl string) (*Program, error) {
	spirv, err := compileSPIRV(wgsl)
	if err != nil {
		return nil, fmt.Errorf("handles: program %q: %w", label, err)
	}

	p := &Program{
		ID:    glcmd.ProgramID(t.nextProgram.Add(1)),
		Label: label,
		SPIRV: spirv,
	}

	t.mu.Lock()
	t.programs[p.ID] = p
	t.mu.Unlock()

	glcmd.Logger().Debug("handles: program compiled",
		"label", label, "program", p.ID, "words", len(spirv))
	return p, nil
}

// Program returns the program registered under id.
func (t *Table) Program(id glcmd.ProgramID) (*Program, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.programs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProgram, id)
	}
	return p, nil
}

// Programs returns the registered programs ordered by name.
func (t *Table) Programs() []*Program {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Program, 0, len(t.programs))
	for _, p := range t.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewFramebuffer allocates a framebuffer name.
func (t *Table) NewFramebuffer() glcmd.FramebufferID {
	return glcmd.FramebufferID(t.nextFramebuffer.Add(1))
}

// NewBuffer allocates a buffer name.
func (t *Table) NewBuffer() glcmd.BufferID {
	return glcmd.BufferID(t.nextBuffer.Add(1))
}

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
