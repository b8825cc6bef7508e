package glcmd

import (
	"fmt"
	"sync"
)

// StorageMode selects how a pool backs its recorders.
type StorageMode uint8

const (
	// StorageLinear shares one command log and data buffer across every
	// recorder of the pool. The pool is reset as a whole.
	StorageLinear StorageMode = iota

	// StorageIndividual gives every recorder its own command log and data
	// buffer, so recorders can be reset independently.
	StorageIndividual
)

// String returns the string representation of StorageMode.
func (m StorageMode) String() string {
	switch m {
	case StorageLinear:
		return "Linear"
	case StorageIndividual:
		return "Individual"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ownedBuffer is one command log with its data buffer.
type ownedBuffer struct {
	commands []Command
	data     []byte
}

func newOwnedBuffer(commandCap, dataCap int) *ownedBuffer {
	return &ownedBuffer{
		commands: make([]Command, 0, commandCap),
		data:     make([]byte, 0, dataCap),
	}
}

// clear empties both sequences. With release set the backing arrays are
// dropped as well; otherwise their capacity is kept for reuse.
func (b *ownedBuffer) clear(release bool) {
	if release {
		b.commands = nil
		b.data = nil
		return
	}
	clear(b.commands) // drop references held by the old commands
	b.commands = b.commands[:0]
	b.data = b.data[:0]
}

// memory is the sum of the two storage layouts. Every access matches on
// the concrete variant.
type memory interface {
	mode() StorageMode
}

// linearMemory is one buffer pair for the whole pool.
type linearMemory struct {
	buffer *ownedBuffer
}

func (*linearMemory) mode() StorageMode { return StorageLinear }

// individualMemory maps buffer ids to their own buffer pair.
type individualMemory struct {
	buffers map[uint64]*ownedBuffer
	nextID  uint64
}

func (*individualMemory) mode() StorageMode { return StorageIndividual }

// storage is the pool-owned backing store of all recorders.
//
// Every access takes mu with TryLock and panics if it is already held:
// recording and resetting on one pool must happen from one goroutine at a
// time, and contention is a bug in the caller rather than something to
// wait out.
type storage struct {
	mu  sync.Mutex
	mem memory // nil once the pool is destroyed

	// epoch counts pool-wide resets.
	epoch uint64

	commandCap int
	dataCap    int
}

func newStorage(mode StorageMode, commandCap, dataCap int) *storage {
	s := &storage{commandCap: commandCap, dataCap: dataCap}
	switch mode {
	case StorageIndividual:
		s.mem = &individualMemory{buffers: make(map[uint64]*ownedBuffer)}
	default:
		s.mem = &linearMemory{buffer: newOwnedBuffer(commandCap, dataCap)}
	}
	return s
}

// acquire locks the storage for op, failing immediately on contention.
func (s *storage) acquire(op string) {
	if !s.mu.TryLock() {
		panic(fmt.Errorf("%w: %s", ErrStorageInUse, op))
	}
	if s.mem == nil {
		s.mu.Unlock()
		panic(fmt.Errorf("%w: %s", ErrPoolDestroyed, op))
	}
}

func (s *storage) release() {
	s.mu.Unlock()
}

// buffer returns the buffer pair of id. The caller must hold the storage.
func (s *storage) buffer(id uint64) *ownedBuffer {
	switch m := s.mem.(type) {
	case *linearMemory:
		return m.buffer
	case *individualMemory:
		b, ok := m.buffers[id]
		if !ok {
			panic(fmt.Sprintf("glcmd: no command buffer with id %d (freed?)", id))
		}
		return b
	default:
		panic(fmt.Sprintf("glcmd: unknown storage layout %T", m))
	}
}

// mode returns the storage layout.
func (s *storage) mode() StorageMode {
	s.acquire("mode")
	defer s.release()
	return s.mem.mode()
}

// allocate registers a new buffer. In individual mode it inserts an empty
// buffer pair under the next sequential id; in linear mode every buffer
// shares id 0.
func (s *storage) allocate() (id uint64, individual bool) {
	s.acquire("allocate")
	defer s.release()

	switch m := s.mem.(type) {
	case *linearMemory:
		return 0, false
	case *individualMemory:
		id = m.nextID
		m.buffers[id] = newOwnedBuffer(s.commandCap, s.dataCap)
		m.nextID++
		return id, true
	default:
		panic(fmt.Sprintf("glcmd: unknown storage layout %T", m))
	}
}

// appendCommand appends cmd to the log of id and returns the Slice covering
// the new entry.
func (s *storage) appendCommand(id uint64, cmd Command) Slice {
	s.acquire("record")
	defer s.release()

	b := s.buffer(id)
	b.commands = append(b.commands, cmd)
	return Slice{
		//nolint:gosec // log length is bounded well below uint32 max
		Offset: uint32(len(b.commands) - 1),
		Size:   1,
	}
}

// appendBytes copies raw to the tail of the data buffer of id and returns
// the Slice covering it.
func (s *storage) appendBytes(id uint64, raw []byte) Slice {
	s.acquire("record")
	defer s.release()

	b := s.buffer(id)
	offset := len(b.data)
	b.data = append(b.data, raw...)
	return Slice{
		//nolint:gosec // data buffer length is bounded well below uint32 max
		Offset: uint32(offset),
		//nolint:gosec // payloads are a few dozen bytes
		Size: uint32(len(raw)),
	}
}

// resetBuffer empties the buffer pair of id. Only individual storage can
// reset a single buffer.
func (s *storage) resetBuffer(id uint64, release bool) {
	s.acquire("reset")
	defer s.release()

	switch m := s.mem.(type) {
	case *individualMemory:
		if b, ok := m.buffers[id]; ok {
			b.clear(release)
		}
	case *linearMemory:
		panic("glcmd: linear storage cannot reset a single buffer")
	}
}

// resetAll empties every buffer pair and starts a new epoch.
func (s *storage) resetAll(release bool) {
	s.acquire("reset")
	defer s.release()

	switch m := s.mem.(type) {
	case *linearMemory:
		m.buffer.clear(release)
	case *individualMemory:
		for _, b := range m.buffers {
			b.clear(release)
		}
	}
	s.epoch++
}

// free releases the slot of id. Linear storage has nothing to release.
func (s *storage) free(id uint64) {
	s.acquire("free")
	defer s.release()

	if m, ok := s.mem.(*individualMemory); ok {
		delete(m.buffers, id)
	}
}

// currentEpoch returns the number of pool-wide resets so far.
func (s *storage) currentEpoch() uint64 {
	s.acquire("epoch")
	defer s.release()
	return s.epoch
}

// view returns the log and data buffer of id. The returned slices alias
// the storage and are only valid until its next reset.
func (s *storage) view(id uint64) ([]Command, []byte) {
	s.acquire("view")
	defer s.release()

	b := s.buffer(id)
	return b.commands, b.data
}

// buffers returns the number of live buffer pairs.
func (s *storage) buffers() int {
	s.acquire("buffers")
	defer s.release()

	switch m := s.mem.(type) {
	case *individualMemory:
		return len(m.buffers)
	default:
		return 1
	}
}

// destroy releases all storage. Any later access panics.
func (s *storage) destroy() {
	s.acquire("destroy")
	defer s.release()
	s.mem = nil
}
