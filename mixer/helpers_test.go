// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"testing"
)

func newTestMixer(t testing.TB, freq int, format Format, quality Quality) *Mixer {
	t.Helper()

	m, err := NewMixer(Config{Frequency: freq, Format: format, Quality: quality})
	if err != nil {
		t.Fatalf("NewMixer() error = %v", err)
	}
	return m
}

func filledBuffer(t testing.TB, m *Mixer, format Format, data []byte, freq int) BufferHandle {
	t.Helper()

	hs, err := m.Buffers().Allocate(1)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if err := m.Buffers().Fill(hs[0], format, data, freq); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	return hs[0]
}

func newSource(t testing.TB, m *Mixer) SourceHandle {
	t.Helper()

	hs, err := m.Sources().Allocate(1)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	return hs[0]
}

func wantKind(t testing.TB, err error, kind Error) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
}

func bufferState(t testing.TB, m *Mixer, h BufferHandle) BufferState {
	t.Helper()

	st, err := m.Buffers().State(h)
	if err != nil {
		t.Fatalf("State(%v) error = %v", h, err)
	}
	return st
}

func sourceInt(t testing.TB, m *Mixer, h SourceHandle, prop SourceProperty) int {
	t.Helper()

	v, err := m.Sources().GetInt(h, prop)
	if err != nil {
		t.Fatalf("GetInt(%v, %d) error = %v", h, prop, err)
	}
	return v
}

func readFrames(t testing.TB, m *Mixer, frames int) []byte {
	t.Helper()

	p := make([]byte, frames*m.Format().FrameSize())
	n, err := m.Read(p)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if n != len(p) {
		t.Fatalf("Read() = %d bytes, want %d", n, len(p))
	}
	return p
}

// checkInvariants walks every source queue and verifies the linkage and
// ownership rules hold across the whole mixer.
func checkInvariants(t testing.TB, m *Mixer) {
	t.Helper()

	ss, bs := m.sources, m.buffers
	ss.lockAll()
	defer ss.unlockAll()

	owner := map[BufferHandle]SourceHandle{}
	ss.pool.each(func(hh handle, s *source) {
		h := SourceHandle(hh)
		n := 0
		var last BufferHandle
		seenNext := s.nextQueued == 0
		for cur := s.firstQueued; cur != 0; {
			b := bs.pool.get(handle(cur))
			if b == nil {
				t.Errorf("%v: queue links dead %v", h, cur)
				return
			}
			if o, ok := owner[cur]; ok {
				t.Errorf("%v queued on both %v and %v", cur, o, h)
			}
			owner[cur] = h
			if b.state < BufferQueued {
				t.Errorf("%v on %v is %v", cur, h, b.state)
			}
			if cur == s.nextQueued {
				seenNext = true
			}
			n++
			last = cur
			cur = b.next
		}
		if n != s.queued {
			t.Errorf("%v: %d reachable buffers, queued = %d", h, n, s.queued)
		}
		if last != s.lastQueued {
			t.Errorf("%v: lastQueued = %v, chain ends at %v", h, s.lastQueued, last)
		}
		if !seenNext {
			t.Errorf("%v: nextQueued %v not in its queue", h, s.nextQueued)
		}
		if s.processed > s.queued {
			t.Errorf("%v: processed %d > queued %d", h, s.processed, s.queued)
		}
	})
	bs.pool.each(func(hh handle, b *buffer) {
		h := BufferHandle(hh)
		if _, ok := owner[h]; !ok && b.state >= BufferQueued {
			t.Errorf("%v is %v but owned by no source", h, b.state)
		}
		if b.state >= BufferFilled && b.sampsize <= 0 {
			t.Errorf("%v is %v with sampsize %d", h, b.state, b.sampsize)
		}
	})
}
