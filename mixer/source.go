// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// gainAdjust scales every source gain so a few full-scale sources can be
// summed before clipping. Gain is stored pre-scaled and de-scaled on read.
const gainAdjust float32 = 0.75

// SourceState is the playback state of a source. SourceInitial doubles as
// the rewound state.
type SourceState int

const (
	SourceInitial SourceState = iota
	SourcePlaying
	SourcePaused
	SourceStopped
)

func (s SourceState) String() string {
	switch s {
	case SourceInitial:
		return "initial"
	case SourcePlaying:
		return "playing"
	case SourcePaused:
		return "paused"
	case SourceStopped:
		return "stopped"
	}
	return fmt.Sprintf("SourceState(%d)", int(s))
}

// SourceProperty selects a value for the Get/Set accessors of SourceStore.
type SourceProperty int

const (
	SourceLooping          SourceProperty = iota + 1 // int, 0 or 1
	SourceGain                                       // float
	SourceCurrentState                               // int, a SourceState
	SourceBuffersQueued                              // int, read-only
	SourceBuffersProcessed                           // int, read-only
)

type source struct {
	state   SourceState
	locked  bool
	looping bool
	gain    float32

	queued    int
	processed int

	// FIFO of buffers linked through buffer.next.
	firstQueued BufferHandle
	nextQueued  BufferHandle // buffer being consumed, zero once the queue ran out
	prevQueued  BufferHandle // buffer before nextQueued
	lastQueued  BufferHandle

	pos         int    // byte offset into nextQueued
	count       uint32 // 16.16 fraction of a frame
	sampleCache float32
}

func (s *source) resetCursor() {
	s.pos = 0
	s.count = 0
	s.sampleCache = 0
}

// SourceStore owns the pool of sources of one mixer. It is safe for
// concurrent use. Operations touching queued buffers lock the source pool
// first and the buffer pool second.
type SourceStore struct {
	buffers *BufferStore
	logger  *slog.Logger

	mu   sync.Mutex
	pool arena[source]
}

func newSourceStore(buffers *BufferStore, logger *slog.Logger) *SourceStore {
	return &SourceStore{buffers: buffers, logger: logger}
}

func (ss *SourceStore) lockAll() {
	ss.mu.Lock()
	ss.buffers.mu.Lock()
}

func (ss *SourceStore) unlockAll() {
	ss.buffers.mu.Unlock()
	ss.mu.Unlock()
}

// lookup must be called with ss.mu held.
func (ss *SourceStore) lookup(h SourceHandle) (*source, error) {
	s := ss.pool.get(handle(h))
	if s == nil {
		return nil, fmt.Errorf("%v: %w", h, ErrInvalidName)
	}
	return s, nil
}

// lookupUnlocked resolves a source that the caller intends to mutate.
func (ss *SourceStore) lookupUnlocked(op string, h SourceHandle) (*source, error) {
	s, err := ss.lookup(h)
	if err != nil {
		return nil, err
	}
	if s.locked {
		return nil, fmt.Errorf("%s %v: locked: %w", op, h, ErrInvalidOperation)
	}
	return s, nil
}

// Allocate returns n new sources in the initial state with unit gain.
func (ss *SourceStore) Allocate(n int) ([]SourceHandle, error) {
	if n < 0 {
		return nil, fmt.Errorf("allocate %d sources: %w", n, ErrInvalidValue)
	}
	hs := make([]SourceHandle, n)

	ss.mu.Lock()
	defer ss.mu.Unlock()

	for i := range hs {
		h, s := ss.pool.alloc()
		s.gain = gainAdjust
		hs[i] = SourceHandle(h)
	}
	return hs, nil
}

// Destroy frees every listed source, or none of them. Buffers still queued
// on a destroyed source are released back to the filled state.
func (ss *SourceStore) Destroy(hs ...SourceHandle) error {
	ss.lockAll()
	defer ss.unlockAll()

	for i, h := range hs {
		if _, err := ss.lookupUnlocked("destroy", h); err != nil {
			return err
		}
		for _, prev := range hs[:i] {
			if prev == h {
				return fmt.Errorf("destroy %v: listed twice: %w", h, ErrInvalidName)
			}
		}
	}
	for _, h := range hs {
		s := ss.pool.get(handle(h))
		ss.releaseQueue(h, s)
		ss.pool.release(handle(h))
	}
	return nil
}

// IsValid reports whether h references a live source.
func (ss *SourceStore) IsValid(h SourceHandle) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.pool.get(handle(h)) != nil
}

// Len returns the number of live sources.
func (ss *SourceStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.pool.len()
}

// Play starts or resumes playback. From the initial or stopped state the
// source is rewound first, which also restarts a source that ran out of
// buffers. Playing an already playing source does nothing.
func (ss *SourceStore) Play(h SourceHandle) error {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("play", h)
	if err != nil {
		return err
	}
	switch s.state {
	case SourcePlaying:
		return nil
	case SourcePaused:
		s.state = SourcePlaying
		return nil
	}

	ss.rewindQueue(s)
	if b := ss.buffers.pool.get(handle(s.nextQueued)); b != nil {
		b.state = BufferPlaying
	}
	s.state = SourcePlaying
	return nil
}

// Pause suspends a playing source, keeping its cursor. It does nothing in
// any other state.
func (ss *SourceStore) Pause(h SourceHandle) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, err := ss.lookupUnlocked("pause", h)
	if err != nil {
		return err
	}
	if s.state == SourcePlaying {
		s.state = SourcePaused
	}
	return nil
}

// Stop halts the source and discards its queue. The buffers themselves are
// not destroyed; they return to the filled state.
func (ss *SourceStore) Stop(h SourceHandle) error {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("stop", h)
	if err != nil {
		return err
	}
	ss.releaseQueue(h, s)
	s.state = SourceStopped
	return nil
}

// Rewind moves the cursor back to the first queued buffer, keeping the
// queue, and puts the source in the initial state.
func (ss *SourceStore) Rewind(h SourceHandle) error {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("rewind", h)
	if err != nil {
		return err
	}
	ss.rewindQueue(s)
	s.state = SourceInitial
	return nil
}

// QueueBuffers appends buffers to the tail of the source's queue in order.
// Every buffer must be filled and unlocked; if any is not, nothing is queued.
func (ss *SourceStore) QueueBuffers(h SourceHandle, bufs ...BufferHandle) error {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("queue", h)
	if err != nil {
		return err
	}
	for i, bh := range bufs {
		b, err := ss.buffers.lookup(bh)
		if err != nil {
			return fmt.Errorf("queue on %v: %w", h, err)
		}
		if b.locked {
			return fmt.Errorf("queue %v on %v: locked: %w", bh, h, ErrInvalidOperation)
		}
		if b.state != BufferFilled {
			return fmt.Errorf("queue %v on %v: buffer is %v: %w", bh, h, b.state, ErrInvalidOperation)
		}
		for _, prev := range bufs[:i] {
			if prev == bh {
				return fmt.Errorf("queue %v on %v: listed twice: %w", bh, h, ErrInvalidOperation)
			}
		}
	}

	for _, bh := range bufs {
		b := ss.buffers.pool.get(handle(bh))
		b.state = BufferQueued
		b.next = 0
		if last := ss.buffers.pool.get(handle(s.lastQueued)); last != nil {
			last.next = bh
		} else {
			s.firstQueued = bh
			s.nextQueued = bh
			s.prevQueued = 0
		}
		s.lastQueued = bh
		s.queued++
	}
	return nil
}

// UnqueueBuffers removes n buffers from the head of the queue and returns
// them, back in the filled state and no longer owned by the source. It fails
// without removing anything when n exceeds the queue length or when one of
// the n buffers is playing.
func (ss *SourceStore) UnqueueBuffers(h SourceHandle, n int) ([]BufferHandle, error) {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("unqueue", h)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("unqueue %d from %v: %w", n, h, ErrInvalidValue)
	}
	if n > s.queued {
		return nil, fmt.Errorf("unqueue %d from %v with %d queued: %w", n, h, s.queued, ErrInvalidOperation)
	}

	out := make([]BufferHandle, 0, n)
	for cur := s.firstQueued; len(out) < n; {
		b := ss.buffers.pool.get(handle(cur))
		if b == nil {
			ss.logger.Error("source queue is shorter than its count",
				"source", h, "queued", s.queued, "reachable", len(out))
			return nil, fmt.Errorf("unqueue from %v: queue holds %d of %d buffers: %w",
				h, len(out), s.queued, ErrInvalidOperation)
		}
		if b.state == BufferPlaying {
			return nil, fmt.Errorf("unqueue %v from %v: buffer is playing: %w", cur, h, ErrInvalidOperation)
		}
		out = append(out, cur)
		cur = b.next
	}

	for _, bh := range out {
		b := ss.buffers.pool.get(handle(bh))
		if b.state == BufferProcessed && s.processed > 0 {
			s.processed--
		}
		next := b.next
		b.state = BufferFilled
		b.next = 0

		if s.nextQueued == bh {
			s.nextQueued = next
			s.resetCursor()
		}
		if s.prevQueued == bh {
			s.prevQueued = 0
		}
		s.firstQueued = next
		s.queued--
	}
	if s.firstQueued == 0 {
		s.lastQueued = 0
		s.nextQueued = 0
		s.prevQueued = 0
	}
	return out, nil
}

// GetInt returns an integer property.
func (ss *SourceStore) GetInt(h SourceHandle, prop SourceProperty) (int, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, err := ss.lookupUnlocked("get", h)
	if err != nil {
		return 0, err
	}
	switch prop {
	case SourceLooping:
		if s.looping {
			return 1, nil
		}
		return 0, nil
	case SourceCurrentState:
		return int(s.state), nil
	case SourceBuffersQueued:
		return s.queued, nil
	case SourceBuffersProcessed:
		return s.processed, nil
	}
	return 0, fmt.Errorf("get %v: int property %d: %w", h, prop, ErrInvalidEnum)
}

// SetInt sets an integer property. The state can only be set to
// SourceInitial, which rewinds; the other states are reached through Play,
// Pause and Stop.
func (ss *SourceStore) SetInt(h SourceHandle, prop SourceProperty, v int) error {
	ss.lockAll()
	defer ss.unlockAll()

	s, err := ss.lookupUnlocked("set", h)
	if err != nil {
		return err
	}
	switch prop {
	case SourceLooping:
		s.looping = v != 0
		return nil
	case SourceCurrentState:
		if SourceState(v) != SourceInitial {
			return fmt.Errorf("set %v: state %v: %w", h, SourceState(v), ErrInvalidEnum)
		}
		ss.rewindQueue(s)
		s.state = SourceInitial
		return nil
	case SourceBuffersQueued, SourceBuffersProcessed:
		return fmt.Errorf("set %v: property %d is read-only: %w", h, prop, ErrInvalidOperation)
	}
	return fmt.Errorf("set %v: int property %d: %w", h, prop, ErrInvalidEnum)
}

// GetFloat returns a float property.
func (ss *SourceStore) GetFloat(h SourceHandle, prop SourceProperty) (float32, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, err := ss.lookupUnlocked("get", h)
	if err != nil {
		return 0, err
	}
	if prop != SourceGain {
		return 0, fmt.Errorf("get %v: float property %d: %w", h, prop, ErrInvalidEnum)
	}
	return s.gain / gainAdjust, nil
}

// SetFloat sets a float property.
func (ss *SourceStore) SetFloat(h SourceHandle, prop SourceProperty, v float32) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, err := ss.lookupUnlocked("set", h)
	if err != nil {
		return err
	}
	if prop != SourceGain {
		return fmt.Errorf("set %v: float property %d: %w", h, prop, ErrInvalidEnum)
	}
	if v < 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return fmt.Errorf("set %v: gain %v: %w", h, v, ErrInvalidValue)
	}
	s.gain = v * gainAdjust
	return nil
}

// State returns the playback state of the source.
func (ss *SourceStore) State(h SourceHandle) (SourceState, error) {
	v, err := ss.GetInt(h, SourceCurrentState)
	return SourceState(v), err
}

// Lock reserves the source; a locked source rejects every other operation
// until Unlock.
func (ss *SourceStore) Lock(h SourceHandle) error {
	return ss.setLocked(h, true)
}

// Unlock releases a reservation taken with Lock.
func (ss *SourceStore) Unlock(h SourceHandle) error {
	return ss.setLocked(h, false)
}

func (ss *SourceStore) setLocked(h SourceHandle, locked bool) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, err := ss.lookup(h)
	if err != nil {
		return err
	}
	if s.locked == locked {
		return fmt.Errorf("%v: lock state already %t: %w", h, locked, ErrInvalidOperation)
	}
	s.locked = locked
	return nil
}

// rewindQueue puts every queued buffer back to queued and points the
// cursor at the head. Both locks must be held.
func (ss *SourceStore) rewindQueue(s *source) {
	for cur := s.firstQueued; cur != 0; {
		b := ss.buffers.pool.get(handle(cur))
		if b == nil {
			break
		}
		b.state = BufferQueued
		cur = b.next
	}
	s.nextQueued = s.firstQueued
	s.prevQueued = 0
	s.processed = 0
	s.resetCursor()
}

// releaseQueue unlinks every queued buffer, returning it to filled, and
// clears all queue bookkeeping. Both locks must be held.
func (ss *SourceStore) releaseQueue(h SourceHandle, s *source) {
	released := 0
	for cur := s.firstQueued; cur != 0; {
		b := ss.buffers.pool.get(handle(cur))
		if b == nil {
			ss.logger.Error("source queue links a dead buffer", "source", h, "buffer", cur)
			break
		}
		cur = b.next
		b.state = BufferFilled
		b.next = 0
		released++
	}
	if released != s.queued {
		ss.logger.Error("source queue count mismatch", "source", h, "queued", s.queued, "released", released)
	}
	s.firstQueued = 0
	s.nextQueued = 0
	s.prevQueued = 0
	s.lastQueued = 0
	s.queued = 0
	s.processed = 0
	s.resetCursor()
}
