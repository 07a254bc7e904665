// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"sync"
)

// BufferState is the lifecycle state of a buffer. States are ordered.
type BufferState int

const (
	BufferInitial BufferState = iota
	BufferFilled
	BufferQueued
	BufferPlaying
	BufferProcessed
)

func (s BufferState) String() string {
	switch s {
	case BufferInitial:
		return "initial"
	case BufferFilled:
		return "filled"
	case BufferQueued:
		return "queued"
	case BufferPlaying:
		return "playing"
	case BufferProcessed:
		return "processed"
	}
	return fmt.Sprintf("BufferState(%d)", int(s))
}

// BufferProperty selects a value returned by BufferStore.Query. All of them
// describe the PCM as it was handed to Fill, not the converted data.
type BufferProperty int

const (
	BufferFrequency BufferProperty = iota + 1
	BufferBits
	BufferChannels
	BufferSize
)

type buffer struct {
	state  BufferState
	locked bool

	data     []byte
	size     int
	sampsize int
	width    int
	channels int
	step     Step

	orgFreq     int
	orgSize     int
	orgChannels int
	orgChansize int

	// next is meaningful only while the buffer is queued to exactly one source.
	next BufferHandle
}

func (b *buffer) frames() Frames {
	return Frames{
		Data:      b.data,
		Width:     b.width,
		FrameSize: b.sampsize,
		High:      b.step.High,
	}
}

// BufferStore owns the pool of buffers of one mixer. It is safe for
// concurrent use.
type BufferStore struct {
	freq   int
	format Format

	// convert is called without mu held.
	convert func(src Format, data []byte, srcFreq int, dst Format, dstFreq int) (Converted, error)

	mu   sync.Mutex
	pool arena[buffer]
}

func newBufferStore(freq int, format Format) *BufferStore {
	return &BufferStore{freq: freq, format: format, convert: Convert}
}

// lookup must be called with bs.mu held.
func (bs *BufferStore) lookup(h BufferHandle) (*buffer, error) {
	b := bs.pool.get(handle(h))
	if b == nil {
		return nil, fmt.Errorf("%v: %w", h, ErrInvalidName)
	}
	return b, nil
}

// Allocate returns n new buffers in the initial state.
func (bs *BufferStore) Allocate(n int) ([]BufferHandle, error) {
	if n < 0 {
		return nil, fmt.Errorf("allocate %d buffers: %w", n, ErrInvalidValue)
	}
	hs := make([]BufferHandle, n)

	bs.mu.Lock()
	defer bs.mu.Unlock()

	for i := range hs {
		h, _ := bs.pool.alloc()
		hs[i] = BufferHandle(h)
	}
	return hs, nil
}

// Destroy frees every listed buffer, or none of them: all handles are
// checked before any is released.
func (bs *BufferStore) Destroy(hs ...BufferHandle) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	for i, h := range hs {
		b, err := bs.lookup(h)
		if err != nil {
			return err
		}
		if b.locked {
			return fmt.Errorf("destroy %v: locked: %w", h, ErrInvalidOperation)
		}
		if b.state >= BufferQueued {
			return fmt.Errorf("destroy %v: buffer is %v: %w", h, b.state, ErrInvalidOperation)
		}
		for _, prev := range hs[:i] {
			if prev == h {
				return fmt.Errorf("destroy %v: listed twice: %w", h, ErrInvalidName)
			}
		}
	}
	for _, h := range hs {
		bs.pool.release(handle(h))
	}
	return nil
}

// IsValid reports whether h references a live buffer.
func (bs *BufferStore) IsValid(h BufferHandle) bool {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.pool.get(handle(h)) != nil
}

// Fill converts data from format at freq into the mixer's representation and
// stores it in the buffer. Only initial or filled buffers can be (re)filled.
// The conversion runs unlocked; the buffer is checked again before the
// result is stored, so a buffer destroyed, locked or queued meanwhile
// rejects the fill.
func (bs *BufferStore) Fill(h BufferHandle, format Format, data []byte, freq int) error {
	bs.mu.Lock()
	err := bs.checkFillable(h)
	bs.mu.Unlock()
	if err != nil {
		return err
	}

	conv, err := bs.convert(format, data, freq, bs.format, bs.freq)
	if err != nil {
		return fmt.Errorf("fill %v: %w", h, err)
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()

	if err := bs.checkFillable(h); err != nil {
		return err
	}
	b := bs.pool.get(handle(h))
	b.data = conv.Data
	b.size = len(conv.Data)
	b.sampsize = conv.FrameSize
	b.width = conv.Width
	b.channels = conv.Channels
	b.step = conv.Step
	b.orgFreq = freq
	b.orgSize = len(data)
	b.orgChannels = format.Channels()
	b.orgChansize = format.BytesPerChannel()
	b.state = BufferFilled
	return nil
}

// checkFillable must be called with bs.mu held.
func (bs *BufferStore) checkFillable(h BufferHandle) error {
	b, err := bs.lookup(h)
	if err != nil {
		return err
	}
	if b.locked {
		return fmt.Errorf("fill %v: locked: %w", h, ErrInvalidOperation)
	}
	if b.state > BufferFilled {
		return fmt.Errorf("fill %v: buffer is %v: %w", h, b.state, ErrInvalidOperation)
	}
	return nil
}

// Query returns a property of the PCM originally handed to Fill.
func (bs *BufferStore) Query(h BufferHandle, prop BufferProperty) (int, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, err := bs.lookup(h)
	if err != nil {
		return 0, err
	}
	if b.locked {
		return 0, fmt.Errorf("query %v: locked: %w", h, ErrInvalidOperation)
	}

	switch prop {
	case BufferFrequency:
		return b.orgFreq, nil
	case BufferBits:
		return b.orgChansize * 8, nil
	case BufferChannels:
		return b.orgChannels, nil
	case BufferSize:
		return b.orgSize, nil
	}
	return 0, fmt.Errorf("query %v: property %d: %w", h, prop, ErrInvalidEnum)
}

// State returns the lifecycle state of the buffer.
func (bs *BufferStore) State(h BufferHandle) (BufferState, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, err := bs.lookup(h)
	if err != nil {
		return 0, err
	}
	return b.state, nil
}

// Lock reserves the buffer for an in-progress mutation by the caller. A
// locked buffer cannot be filled, queried, queued or destroyed.
func (bs *BufferStore) Lock(h BufferHandle) error {
	return bs.setLocked(h, true)
}

// Unlock releases a reservation taken with Lock.
func (bs *BufferStore) Unlock(h BufferHandle) error {
	return bs.setLocked(h, false)
}

func (bs *BufferStore) setLocked(h BufferHandle, locked bool) error {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	b, err := bs.lookup(h)
	if err != nil {
		return err
	}
	if b.locked == locked {
		return fmt.Errorf("%v: lock state already %t: %w", h, locked, ErrInvalidOperation)
	}
	b.locked = locked
	return nil
}

// Len returns the number of live buffers.
func (bs *BufferStore) Len() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.pool.len()
}
