// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

var ErrUnsupportedLayout = errors.New("unsupported output layout")

// pollInterval is how often Play checks whether the device drained.
const pollInterval = 10 * time.Millisecond

// stream is the part of oto.Player Play drives, to allow testing
type stream interface {
	Play()
	IsPlaying() bool
	Err() error
	Close() error
}

// Player owns the device context.
type Player struct {
	otoCtx     *oto.Context
	newStream  func(io.Reader) stream
	sampleRate int
	channels   int
	bpc        int
}

// NewPlayer opens the default device for interleaved PCM at sampleRate with
// 1 or 2 channels of 8-bit unsigned or 16-bit signed little-endian samples.
// It blocks until the device is ready.
func NewPlayer(sampleRate, channels, bytesPerChannel int) (*Player, error) {
	if err := checkLayout(sampleRate, channels, bytesPerChannel); err != nil {
		return nil, err
	}

	format := oto.FormatSignedInt16LE
	if bytesPerChannel == 1 {
		format = oto.FormatUnsignedInt8
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       format,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	return &Player{
		otoCtx:     otoCtx,
		newStream:  func(r io.Reader) stream { return otoCtx.NewPlayer(r) },
		sampleRate: sampleRate,
		channels:   channels,
		bpc:        bytesPerChannel,
	}, nil
}

func checkLayout(sampleRate, channels, bytesPerChannel int) error {
	switch {
	case sampleRate <= 0:
		return fmt.Errorf("sample rate %d: %w", sampleRate, ErrUnsupportedLayout)
	case channels != 1 && channels != 2:
		return fmt.Errorf("%d channels: %w", channels, ErrUnsupportedLayout)
	case bytesPerChannel != 1 && bytesPerChannel != 2:
		return fmt.Errorf("%d bytes per sample: %w", bytesPerChannel, ErrUnsupportedLayout)
	}
	return nil
}

// Play streams d of audio from r to the device and returns once it has been
// played, r is exhausted, or ctx is done. A non-positive d plays until r
// ends. Stopping through ctx returns ctx.Err().
func (p *Player) Play(ctx context.Context, r io.Reader, d time.Duration) error {
	if d > 0 {
		r = io.LimitReader(r, p.byteLength(d))
	}
	return drain(ctx, p.newStream(r), pollInterval)
}

// byteLength is the size of d of audio, in whole frames.
func (p *Player) byteLength(d time.Duration) int64 {
	frames := int64(d) * int64(p.sampleRate) / int64(time.Second)
	return frames * int64(p.channels*p.bpc)
}

func drain(ctx context.Context, s stream, poll time.Duration) (err error) {
	defer func() {
		err = errors.Join(err, s.Close())
	}()

	s.Play()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for s.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return s.Err()
}

// Close suspends the device. oto cannot reopen a context, so the Player
// must not be used afterwards.
func (p *Player) Close() error {
	return p.otoCtx.Suspend()
}
