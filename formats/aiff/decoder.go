// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audmix/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type Decoder struct{}

// Decode reads a 16-bit PCM AIFF file, mono or stereo, into a clip of
// signed little-endian samples.
func (Decoder) Decode(r io.Reader) (*audio.Clip, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	// Check bit depth - only support 16-bit for now
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	return readClip(dec)
}

func readClip(dec aiffReader) (*audio.Clip, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, ErrUnsupportedAiffLayout
	}

	clip := &audio.Clip{
		SampleRate:      format.SampleRate,
		Channels:        format.NumChannels,
		BytesPerChannel: 2,
	}
	intBuf := &goaudio.IntBuffer{
		Data:   make([]int, 4096),
		Format: format,
	}
	for {
		n, err := dec.PCMBuffer(intBuf)
		clip.Data = audio.AppendInts(clip.Data, intBuf.Data[:n], 2)
		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
	}

	clip.Data = clip.Data[:clip.Frames()*clip.FrameSize()]
	return clip, nil
}
