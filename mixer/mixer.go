// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audmix/utils"
)

// Config is the fixed output format of a mixer.
type Config struct {
	Frequency int
	Format    Format
	Quality   Quality
}

// DefaultConfig is 44.1 kHz 16-bit stereo with linear interpolation.
func DefaultConfig() Config {
	return Config{
		Frequency: 44100,
		Format:    Stereo16,
		Quality:   QualityMedium,
	}
}

func (c Config) validate() error {
	if c.Frequency <= 0 {
		return fmt.Errorf("mixer frequency %d: %w", c.Frequency, ErrInvalidValue)
	}
	if err := c.Format.validate(); err != nil {
		return fmt.Errorf("mixer format: %w", err)
	}
	if c.Quality < QualityLow || c.Quality > QualityHigh {
		return fmt.Errorf("mixer quality %v: %w", c.Quality, ErrInvalidEnum)
	}
	return nil
}

// Option configures a Mixer.
type Option interface {
	apply(*Mixer)
}

type loggerOption struct {
	logger *slog.Logger
}

func (o loggerOption) apply(m *Mixer) {
	if o.logger != nil {
		m.logger = o.logger
	}
}

// WithLogger sets the logger used for playback events and queue
// consistency errors. Defaults to discarding everything.
func WithLogger(l *slog.Logger) Option {
	return loggerOption{logger: l}
}

// Mixer sums every playing source into frames of its configured format.
// Reading from it drives playback: each Read advances every playing source
// by the number of frames produced.
//
// It is safe to call methods on Mixer and its stores from multiple
// goroutines.
type Mixer struct {
	cfg      Config
	logger   *slog.Logger
	resample Resampler

	buffers *BufferStore
	sources *SourceStore

	// acc is guarded by sources.mu.
	acc []float32
}

// NewMixer creates a mixer with empty buffer and source pools.
func NewMixer(cfg Config, opts ...Option) (*Mixer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	m := &Mixer{
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		resample: cfg.Quality.resampler(),
	}
	for _, opt := range opts {
		opt.apply(m)
	}
	m.buffers = newBufferStore(cfg.Frequency, cfg.Format)
	m.sources = newSourceStore(m.buffers, m.logger)
	return m, nil
}

func (m *Mixer) Buffers() *BufferStore { return m.buffers }
func (m *Mixer) Sources() *SourceStore { return m.sources }
func (m *Mixer) Frequency() int        { return m.cfg.Frequency }
func (m *Mixer) Format() Format        { return m.cfg.Format }
func (m *Mixer) Quality() Quality      { return m.cfg.Quality }

// Read mixes len(p)/FrameSize whole frames into p. It never returns io.EOF:
// with nothing playing it produces silence.
func (m *Mixer) Read(p []byte) (int, error) {
	fs := m.cfg.Format.FrameSize()
	frames := len(p) / fs
	if frames == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	ss := m.sources
	ss.lockAll()
	defer ss.unlockAll()

	chans := m.cfg.Format.Channels()
	if cap(m.acc) < frames*chans {
		m.acc = make([]float32, frames*chans)
	}
	acc := m.acc[:frames*chans]
	clear(acc)

	ss.pool.each(func(h handle, s *source) {
		if s.state == SourcePlaying {
			m.mixSource(SourceHandle(h), s, acc, frames)
		}
	})

	bpc := m.cfg.Format.BytesPerChannel()
	for i, v := range acc {
		writeExternal(p[i*bpc:], bpc, utils.ClampSample(v, m.cfg.Format.Bits()))
	}
	return frames * fs, nil
}

// mixSource adds up to frames frames of s into acc. Both locks are held.
func (m *Mixer) mixSource(h SourceHandle, s *source, acc []float32, frames int) {
	chans := m.cfg.Format.Channels()
	for f := range frames {
		b := m.buffers.pool.get(handle(s.nextQueued))
		if b == nil {
			if s.nextQueued != 0 {
				m.logger.Error("playing source references a dead buffer", "source", h, "buffer", s.nextQueued)
			}
			m.finish(h, s)
			return
		}
		if b.state == BufferQueued {
			b.state = BufferPlaying
		}

		fr := b.frames()
		rs := m.resample
		unity := b.step.Unity(b.sampsize)
		if unity {
			rs = ResampleNone
		}

		out := acc[f*chans : (f+1)*chans]
		next := s.pos
		for c := range out {
			if c < b.channels {
				v, adv := rs(fr, s.pos+c*b.width, s.count)
				if c == 0 {
					next = adv
				}
				s.sampleCache = v
			}
			out[c] += s.sampleCache * s.gain
		}

		s.pos = next
		if !unity {
			s.count += b.step.Low
			if s.count >= fracOne {
				s.count -= fracOne
				s.pos += b.sampsize
			}
		}
		if s.pos >= b.size && !m.nextBuffer(h, s, b) {
			return
		}
	}
}

// nextBuffer retires the exhausted buffer b and moves s to the following
// one, wrapping around when looping. It reports false once s has stopped.
func (m *Mixer) nextBuffer(h SourceHandle, s *source, b *buffer) bool {
	for s.pos >= b.size {
		overshoot := (s.pos - b.size) / b.sampsize

		b.state = BufferProcessed
		s.processed++
		s.prevQueued = s.nextQueued
		s.nextQueued = b.next

		if s.nextQueued == 0 {
			if !s.looping {
				m.finish(h, s)
				return false
			}
			// the wrap carries the fraction like any other buffer change
			count := s.count
			m.sources.rewindQueue(s)
			s.count = count
			m.logger.Debug("source looped", "source", h)
		}

		b = m.buffers.pool.get(handle(s.nextQueued))
		if b == nil {
			m.logger.Error("source queue links a dead buffer", "source", h, "buffer", s.nextQueued)
			m.finish(h, s)
			return false
		}
		b.state = BufferPlaying
		s.pos = overshoot * b.sampsize
	}
	return true
}

func (m *Mixer) finish(h SourceHandle, s *source) {
	s.nextQueued = 0
	s.state = SourceStopped
	s.resetCursor()
	m.logger.Debug("source finished", "source", h, "processed", s.processed)
}
