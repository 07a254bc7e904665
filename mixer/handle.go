// SPDX-License-Identifier: EPL-2.0

package mixer

import "fmt"

// BufferHandle is an opaque reference to a buffer. The zero value is never valid.
type BufferHandle uint64

// SourceHandle is an opaque reference to a source. The zero value is never valid.
type SourceHandle uint64

func (h BufferHandle) String() string { return fmt.Sprintf("buffer#%d.%d", handle(h).slot(), handle(h).gen()) }
func (h SourceHandle) String() string { return fmt.Sprintf("source#%d.%d", handle(h).slot(), handle(h).gen()) }

// handle packs generation<<32 | (slot+1).
type handle uint64

func makeHandle(slot int, gen uint32) handle {
	return handle(uint64(gen)<<32 | uint64(slot+1))
}

func (h handle) slot() int   { return int(uint32(h)) - 1 }
func (h handle) gen() uint32 { return uint32(h >> 32) }

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena is a growable slot pool. Freed slots are reused only after their
// generation is bumped, so a stale handle never resolves to the new occupant.
// It is not safe for concurrent use; the owning store's mutex guards it.
type arena[T any] struct {
	slots []slot[T]
	free  []int
}

func (a *arena[T]) alloc() (handle, *T) {
	var i int
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		i = len(a.slots) - 1
	}
	s := &a.slots[i]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	var zero T
	s.val = zero
	return makeHandle(i, s.gen), &s.val
}

func (a *arena[T]) get(h handle) *T {
	i := h.slot()
	if i < 0 || i >= len(a.slots) {
		return nil
	}
	s := &a.slots[i]
	if !s.live || s.gen != h.gen() {
		return nil
	}
	return &s.val
}

func (a *arena[T]) release(h handle) {
	i := h.slot()
	s := &a.slots[i]
	s.live = false
	var zero T
	s.val = zero
	a.free = append(a.free, i)
}

// each calls fn for every live slot in slot order.
func (a *arena[T]) each(fn func(h handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(makeHandle(i, s.gen), &s.val)
		}
	}
}

func (a *arena[T]) len() int {
	return len(a.slots) - len(a.free)
}
