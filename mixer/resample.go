// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/utils"

// Frames is a read-only view of a buffer's converted data.
type Frames struct {
	Data      []byte
	Width     int // bytes per channel sample
	FrameSize int // bytes between consecutive frames
	High      int // whole bytes advanced per output frame
}

func (f Frames) at(pos int) float32 {
	return float32(readInternal(f.Data[pos:], f.Width))
}

// has reports whether a full sample starts at pos.
func (f Frames) has(pos int) bool {
	return pos >= 0 && pos+f.Width <= len(f.Data)
}

// Resampler produces one sample read at byte offset pos with the 16.16
// fraction count, and returns it with the advanced byte offset. The result
// spans the signed range of the internal sample width. The caller keeps pos
// inside the data and accumulates the fractional step into count.
type Resampler func(f Frames, pos int, count uint32) (float32, int)

// ResampleNone reads the sample at pos and advances one frame. It is only
// correct when the buffer rate equals the mixer rate.
func ResampleNone(f Frames, pos int, _ uint32) (float32, int) {
	return f.at(pos), pos + f.FrameSize
}

// ResampleNearest reads the sample at pos. The fraction is never used for
// interpolation, only carried by the caller into whole-frame steps.
func ResampleNearest(f Frames, pos int, _ uint32) (float32, int) {
	return f.at(pos), pos + f.High
}

// ResampleLinear interpolates between the sample at pos and the next frame.
// The last frame of the data is held rather than read past.
func ResampleLinear(f Frames, pos int, count uint32) (float32, int) {
	s0 := f.at(pos)
	s1 := s0
	if next := pos + f.FrameSize; f.has(next) {
		s1 = f.at(next)
	}
	t := float32(count) / fracOne
	return s0 + t*(s1-s0), pos + f.High
}

// ResampleCubic fits a Catmull-Rom spline through the previous, current and
// two following frames, duplicating the nearest valid sample at the edges.
func ResampleCubic(f Frames, pos int, count uint32) (float32, int) {
	s1 := f.at(pos)
	s0 := s1
	if prev := pos - f.FrameSize; f.has(prev) {
		s0 = f.at(prev)
	}
	s2 := s1
	if next := pos + f.FrameSize; f.has(next) {
		s2 = f.at(next)
	}
	s3 := s2
	if next := pos + 2*f.FrameSize; f.has(next) {
		s3 = f.at(next)
	}
	t := float32(count) / fracOne
	return utils.CubicInterpolate(s0, s1, s2, s3, t), pos + f.High
}
