// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
)

// go-mp3 always produces 16-bit little-endian interleaved stereo
const (
	channels        = 2
	bytesPerChannel = 2
	frameSize       = channels * bytesPerChannel
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return readClip(dec)
}

func readClip(dec mp3Reader) (*audio.Clip, error) {
	data, err := io.ReadAll(dec)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("decoding mp3 frames: %w", err)
	}

	return &audio.Clip{
		SampleRate:      dec.SampleRate(),
		Channels:        channels,
		BytesPerChannel: bytesPerChannel,
		Data:            data[:len(data)/frameSize*frameSize],
	}, nil
}
