// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"fmt"
)

// fracOne is 1.0 in 16.16 fixed point.
const fracOne = 1 << 16

// Step is the fixed-point distance a cursor moves per output frame:
// High whole bytes plus Low/65536 of a frame.
type Step struct {
	High int
	Low  uint32
}

// Unity reports whether the step advances exactly one frame of size frameSize.
func (s Step) Unity(frameSize int) bool {
	return s.Low == 0 && s.High == frameSize
}

// Converted is PCM in the mixer's internal representation: signed samples,
// Width bytes per channel, Channels interleaved channels.
type Converted struct {
	Data      []byte
	Width     int
	Channels  int
	FrameSize int
	Step      Step
}

// Convert turns external PCM (8-bit unsigned or 16-bit signed little-endian,
// mono or stereo) into the internal representation for a mixer running at
// dstFreq with format dst, and computes the resample step.
//
// The internal channel count is min(src, dst): stereo into a mono mixer is
// averaged, mono into a stereo mixer stays mono and is duplicated at mix time.
// Width changes shift by 8 bits without dithering. A trailing partial frame
// is dropped.
func Convert(src Format, data []byte, srcFreq int, dst Format, dstFreq int) (Converted, error) {
	if err := src.validate(); err != nil {
		return Converted{}, err
	}
	if err := dst.validate(); err != nil {
		return Converted{}, err
	}
	if srcFreq <= 0 || dstFreq <= 0 {
		return Converted{}, fmt.Errorf("frequency %d -> %d: %w", srcFreq, dstFreq, ErrInvalidValue)
	}
	if len(data) == 0 {
		return Converted{}, fmt.Errorf("empty pcm data: %w", ErrInvalidValue)
	}

	srcBpc, srcChans := src.BytesPerChannel(), src.Channels()
	dstBpc, dstChans := dst.BytesPerChannel(), dst.Channels()
	srcFrame := src.FrameSize()

	frames := len(data) / srcFrame
	if frames == 0 {
		return Converted{}, fmt.Errorf("%d bytes is less than one %v frame: %w", len(data), src, ErrInvalidValue)
	}

	chans := min(srcChans, dstChans)
	conv := Converted{
		Width:     dstBpc,
		Channels:  chans,
		FrameSize: dstBpc * chans,
	}
	conv.Data = make([]byte, frames*conv.FrameSize)

	if srcBpc == dstBpc && srcChans <= dstChans {
		copy(conv.Data, data[:frames*srcFrame])
		if srcBpc == 1 {
			for i := range conv.Data {
				conv.Data[i] ^= 0x80
			}
		}
	} else {
		convertSamples(conv.Data, data, frames, srcBpc, srcChans, dstBpc, chans)
	}

	conv.Step = computeStep(srcFreq, dstFreq, conv.FrameSize)
	return conv, nil
}

func convertSamples(dst, src []byte, frames, srcBpc, srcChans, dstBpc, chans int) {
	downmix := srcChans > chans
	srcFrame := srcBpc * srcChans
	o := 0
	for f := range frames {
		in := f * srcFrame
		for range chans {
			s := readExternal(src[in:], srcBpc)
			in += srcBpc
			if downmix {
				s = (s + readExternal(src[in:], srcBpc)) / 2
				in += srcBpc
			}
			switch {
			case srcBpc < dstBpc:
				s <<= 8
			case srcBpc > dstBpc:
				s >>= 8
			}
			writeInternal(dst[o:], dstBpc, s)
			o += dstBpc
		}
		// whatever source channels remain in this frame are skipped
	}
}

func computeStep(srcFreq, dstFreq, frameSize int) Step {
	if srcFreq == dstFreq {
		return Step{High: frameSize}
	}
	return Step{
		High: (srcFreq / dstFreq) * frameSize,
		Low:  uint32((int64(srcFreq%dstFreq) << 16) / int64(dstFreq)),
	}
}

// readExternal reads an 8-bit unsigned or 16-bit signed sample and returns
// it centred on zero.
func readExternal(b []byte, bpc int) int32 {
	if bpc == 2 {
		return int32(int16(binary.LittleEndian.Uint16(b)))
	}
	return int32(b[0]) - 128
}

// readInternal reads a signed internal sample.
func readInternal(b []byte, bpc int) int32 {
	if bpc == 2 {
		return int32(int16(binary.LittleEndian.Uint16(b)))
	}
	return int32(int8(b[0]))
}

func writeInternal(b []byte, bpc int, s int32) {
	if bpc == 2 {
		binary.LittleEndian.PutUint16(b, uint16(int16(s)))
		return
	}
	b[0] = byte(int8(s))
}

// writeExternal writes an output sample, restoring the unsigned bias for
// 8-bit output.
func writeExternal(b []byte, bpc int, s int32) {
	if bpc == 2 {
		binary.LittleEndian.PutUint16(b, uint16(int16(s)))
		return
	}
	b[0] = byte(int8(s)) ^ 0x80
}
