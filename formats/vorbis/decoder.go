// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
	"github.com/jfreymuth/oggvorbis"
)

// ErrNoChannels is returned for a stream header that declares no channels.
var ErrNoChannels = errors.New("vorbis stream has no channels")

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type Decoder struct{}

// Decode reads a whole Ogg Vorbis stream into 16-bit PCM. Streams with more
// than two channels are averaged down to mono.
func (Decoder) Decode(r io.Reader) (*audio.Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return readClip(dec)
}

func readClip(dec oggReader) (*audio.Clip, error) {
	inChans := dec.Channels()
	if inChans < 1 {
		return nil, ErrNoChannels
	}
	outChans := inChans
	if inChans > 2 {
		outChans = 1
	}

	clip := &audio.Clip{
		SampleRate:      dec.SampleRate(),
		Channels:        outChans,
		BytesPerChannel: 2,
	}

	// Read returns interleaved values, always a multiple of the channel count
	frameBuf := make([]float32, 4096*inChans)
	mono := make([]float32, 4096)
	for {
		n, err := dec.Read(frameBuf)
		samples := frameBuf[:n-n%inChans]
		if outChans != inChans {
			samples = mono[:audio.DownmixMono(mono, samples, inChans)]
		}
		for _, s := range samples {
			clip.Data = binary.LittleEndian.AppendUint16(clip.Data, uint16(utils.Float32ToInt16(s)))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding vorbis packets: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return clip, nil
}
