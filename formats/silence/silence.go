// SPDX-License-Identifier: EPL-2.0

// Package silence generates silent clips, for padding a mix or holding a
// source slot open without decoding a file.
package silence

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/audmix/audio"
)

var ErrNegativeDuration = errors.New("negative silence duration")

// New returns d of silence rounded up to a whole frame, in the given
// layout. 8-bit silence is the unsigned midpoint 0x80, 16-bit silence is zero.
func New(d time.Duration, sampleRate, channels, bytesPerChannel int) (*audio.Clip, error) {
	if d < 0 {
		return nil, fmt.Errorf("%v: %w", d, ErrNegativeDuration)
	}
	clip := &audio.Clip{
		SampleRate:      sampleRate,
		Channels:        channels,
		BytesPerChannel: bytesPerChannel,
	}
	frames := max(1, int((int64(d)*int64(sampleRate)+int64(time.Second)-1)/int64(time.Second)))

	// Validate needs data of the right shape
	clip.Data = make([]byte, frames*clip.FrameSize())
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	if bytesPerChannel == 1 {
		for i := range clip.Data {
			clip.Data[i] = 0x80
		}
	}
	return clip, nil
}
