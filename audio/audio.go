// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Clip is decoded PCM ready to be handed to a mixer buffer. Data is
// interleaved; 8-bit samples are unsigned, 16-bit samples are signed
// little-endian.
type Clip struct {
	// SampleRate of the PCM in Hz.
	SampleRate int
	// Channels count, 1 for mono or 2 for stereo.
	Channels int
	// BytesPerChannel is 1 for 8-bit or 2 for 16-bit samples.
	BytesPerChannel int
	// Data holds whole frames.
	Data []byte
}

// FrameSize is the number of bytes in one frame of every channel.
func (c *Clip) FrameSize() int {
	return c.Channels * c.BytesPerChannel
}

// Frames returns the number of whole frames in Data.
func (c *Clip) Frames() int {
	if c.FrameSize() == 0 {
		return 0
	}
	return len(c.Data) / c.FrameSize()
}

// Duration is the playing time of the clip at its own sample rate.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Validate checks that the clip describes PCM a mixer can accept.
func (c *Clip) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidClip)
	case c.Channels != 1 && c.Channels != 2:
		return fmt.Errorf("%d channels: %w", c.Channels, ErrInvalidClip)
	case c.BytesPerChannel != 1 && c.BytesPerChannel != 2:
		return fmt.Errorf("%d bytes per channel: %w", c.BytesPerChannel, ErrInvalidClip)
	case len(c.Data) == 0:
		return fmt.Errorf("no pcm data: %w", ErrInvalidClip)
	case len(c.Data)%c.FrameSize() != 0:
		return fmt.Errorf("%d bytes is not a whole number of %d-byte frames: %w",
			len(c.Data), c.FrameSize(), ErrInvalidClip)
	}
	return nil
}

// Decoder reads a whole encoded stream into a Clip.
type Decoder interface {
	Decode(r io.Reader) (*Clip, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are case-insensitive.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ForPath picks the decoder registered for the file extension of path.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension: %w", path, ErrUnknownFormat)
	}
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", path, ext, ErrUnknownFormat)
	}
	return d, nil
}
