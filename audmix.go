// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// DefaultRegistry returns a registry with every bundled decoder registered
// under its usual file extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// FormatOf returns the mixer format code describing the clip's PCM layout.
func FormatOf(clip *audio.Clip) mixer.Format {
	return mixer.MakeFormat(clip.BytesPerChannel, clip.Channels)
}

// LoadBuffer allocates a buffer and fills it with the clip. The buffer is
// destroyed again if the fill fails, so on error nothing is left allocated.
func LoadBuffer(bs *mixer.BufferStore, clip *audio.Clip) (mixer.BufferHandle, error) {
	if err := clip.Validate(); err != nil {
		return 0, err
	}
	hs, err := bs.Allocate(1)
	if err != nil {
		return 0, err
	}
	if err := bs.Fill(hs[0], FormatOf(clip), clip.Data, clip.SampleRate); err != nil {
		return 0, errors.Join(err, bs.Destroy(hs[0]))
	}
	return hs[0], nil
}

// LoadFile decodes the file at path with the decoder registered for its
// extension and loads it into a new buffer.
func LoadFile(bs *mixer.BufferStore, reg *audio.Registry, path string) (mixer.BufferHandle, error) {
	clip, err := DecodeFile(reg, path)
	if err != nil {
		return 0, err
	}
	h, err := LoadBuffer(bs, clip)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// DecodeFile decodes the file at path with the decoder registered for its
// extension.
func DecodeFile(reg *audio.Registry, path string) (*audio.Clip, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return clip, nil
}
