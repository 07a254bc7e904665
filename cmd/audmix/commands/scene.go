// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/silence"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/mixer"
)

// mixScene creates a mixer in the scene's format and starts every source
// of the scene playing on it.
func mixScene(scene *config.Scene, reg *audio.Registry, logger *slog.Logger) (*mixer.Mixer, error) {
	cfg, err := scene.MixerConfig()
	if err != nil {
		return nil, err
	}
	m, err := mixer.NewMixer(cfg, mixer.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	srcs, err := m.Sources().Allocate(len(scene.Sources))
	if err != nil {
		return nil, err
	}
	for i, src := range scene.Sources {
		if err := startSource(m, srcs[i], src, reg); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		logger.Info("source started", "source", srcs[i], "file", src.File, "repeat", src.Repeat)
	}
	return m, nil
}

func startSource(m *mixer.Mixer, h mixer.SourceHandle, src config.Source, reg *audio.Registry) error {
	var clip *audio.Clip
	var err error
	if src.File != "" {
		clip, err = audmix.DecodeFile(reg, src.File)
	} else {
		clip, err = silenceFor(m, src.SilenceLength())
	}
	if err != nil {
		return err
	}

	var bufs []mixer.BufferHandle
	if d := src.DelayLength(); d > 0 {
		gap, err := silenceFor(m, d)
		if err != nil {
			return err
		}
		buf, err := audmix.LoadBuffer(m.Buffers(), gap)
		if err != nil {
			return err
		}
		bufs = append(bufs, buf)
	}
	// a buffer belongs to one queue slot, so each repeat gets its own copy
	for range src.Repeat {
		buf, err := audmix.LoadBuffer(m.Buffers(), clip)
		if err != nil {
			return err
		}
		bufs = append(bufs, buf)
	}

	ss := m.Sources()
	if err := ss.QueueBuffers(h, bufs...); err != nil {
		return err
	}
	if err := ss.SetFloat(h, mixer.SourceGain, float32(src.GainOr(1))); err != nil {
		return err
	}
	looping := 0
	if src.Looping {
		looping = 1
	}
	if err := ss.SetInt(h, mixer.SourceLooping, looping); err != nil {
		return err
	}
	return ss.Play(h)
}

// silenceFor is d of silence in the mixer's own format.
func silenceFor(m *mixer.Mixer, d time.Duration) (*audio.Clip, error) {
	f := m.Format()
	return silence.New(d, m.Frequency(), f.Channels(), f.BytesPerChannel())
}

// sceneFrames is the scene length in mixer frames.
func sceneFrames(scene *config.Scene, m *mixer.Mixer) int {
	return int(int64(scene.Length()) * int64(m.Frequency()) / int64(time.Second))
}
