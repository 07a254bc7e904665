// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strings"
)

// formatTag marks a value as a packed format code.
const formatTag Format = 0x00170000

// Format is a packed PCM format code: tag | channels<<8 | bytesPerChannel.
type Format uint32

var (
	Mono8    = MakeFormat(1, 1)
	Stereo8  = MakeFormat(1, 2)
	Mono16   = MakeFormat(2, 1)
	Stereo16 = MakeFormat(2, 2)
)

// MakeFormat packs a bytes-per-channel and channel count into a Format.
func MakeFormat(bytesPerChannel, channels int) Format {
	return formatTag | Format(bytesPerChannel&0xff) | Format(channels&0xff)<<8
}

func (f Format) BytesPerChannel() int { return int(f & 0xff) }
func (f Format) Channels() int        { return int((f >> 8) & 0xff) }
func (f Format) Bits() int            { return f.BytesPerChannel() * 8 }

// FrameSize is the number of bytes of one sample frame.
func (f Format) FrameSize() int { return f.BytesPerChannel() * f.Channels() }

// validate checks the descriptor, not just the tag: a packed code with zero
// or out-of-range fields is malformed input.
func (f Format) validate() error {
	if f&^0xffff != formatTag {
		return fmt.Errorf("format %#x: %w", uint32(f), ErrInvalidEnum)
	}
	bpc, chans := f.BytesPerChannel(), f.Channels()
	if bpc == 0 || chans == 0 {
		return fmt.Errorf("format %#x: zero sample size or channel count: %w", uint32(f), ErrInvalidValue)
	}
	if bpc > 2 || chans > 2 {
		return fmt.Errorf("format %#x: unsupported %d bytes x %d channels: %w", uint32(f), bpc, chans, ErrInvalidValue)
	}
	return nil
}

func (f Format) String() string {
	var name string
	switch f.Channels() {
	case 1:
		name = "mono"
	case 2:
		name = "stereo"
	default:
		return fmt.Sprintf("Format(%#x)", uint32(f))
	}
	return fmt.Sprintf("%s%d", name, f.Bits())
}

// ParseFormat parses names such as "mono8" or "stereo16".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mono8":
		return Mono8, nil
	case "stereo8":
		return Stereo8, nil
	case "mono16":
		return Mono16, nil
	case "stereo16":
		return Stereo16, nil
	}
	return 0, fmt.Errorf("format %q: %w", s, ErrInvalidEnum)
}

// Quality selects the interpolating resampler used for buffers whose rate
// differs from the mixer's.
type Quality int

const (
	QualityLow    Quality = iota // nearest neighbour
	QualityMedium                // linear
	QualityHigh                  // cubic
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality accepts the quality names and the algorithm names.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "nearest":
		return QualityLow, nil
	case "medium", "linear":
		return QualityMedium, nil
	case "high", "cubic":
		return QualityHigh, nil
	}
	return 0, fmt.Errorf("quality %q: %w", s, ErrInvalidEnum)
}

func (q Quality) resampler() Resampler {
	switch q {
	case QualityLow:
		return ResampleNearest
	case QualityHigh:
		return ResampleCubic
	}
	return ResampleLinear
}
