// SPDX-License-Identifier: EPL-2.0

// Package config loads scene files: a YAML description of a mixer and the
// sources to play on it.
//
//	mixer:
//	  frequency: 44100
//	  format: stereo16
//	  quality: medium
//	duration: 10s
//	output: out.wav
//	sources:
//	  - file: drums.wav
//	    looping: true
//	  - file: voice.ogg
//	    gain: 0.8
//	    delay: 1.5s
//	  - silence: 2s
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audmix/mixer"
)

var ErrInvalidScene = errors.New("invalid scene")

const (
	DefaultFrequency = 44100
	DefaultFormat    = "stereo16"
	DefaultQuality   = "medium"
	DefaultDuration  = 5 * time.Second
)

// Scene is a whole scene file.
type Scene struct {
	Mixer    Mixer    `yaml:"mixer"`
	Duration string   `yaml:"duration,omitempty"`
	Output   string   `yaml:"output,omitempty"`
	Sources  []Source `yaml:"sources"`
}

// Mixer holds the output format of the scene.
type Mixer struct {
	Frequency int    `yaml:"frequency,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Quality   string `yaml:"quality,omitempty"`
}

// Source is one playing source. Exactly one of File and Silence is set.
type Source struct {
	File    string   `yaml:"file,omitempty"`
	Silence string   `yaml:"silence,omitempty"`
	Gain    *float64 `yaml:"gain,omitempty"`
	Looping bool     `yaml:"looping,omitempty"`

	// Repeat queues the clip this many times back to back.
	Repeat int `yaml:"repeat,omitempty"`

	// Delay queues silence of this length ahead of the clip.
	Delay string `yaml:"delay,omitempty"`
}

// Load reads and validates the scene at path. Relative source files are
// resolved against the scene file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range s.Sources {
		if f := s.Sources[i].File; f != "" && !filepath.IsAbs(f) {
			s.Sources[i].File = filepath.Join(dir, f)
		}
	}
	if s.Output != "" && !filepath.IsAbs(s.Output) {
		s.Output = filepath.Join(dir, s.Output)
	}
	return s, nil
}

// Parse decodes a scene, fills in defaults and validates it.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s.setDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) setDefaults() {
	if s.Mixer.Frequency == 0 {
		s.Mixer.Frequency = DefaultFrequency
	}
	if s.Mixer.Format == "" {
		s.Mixer.Format = DefaultFormat
	}
	if s.Mixer.Quality == "" {
		s.Mixer.Quality = DefaultQuality
	}
	if s.Duration == "" {
		s.Duration = DefaultDuration.String()
	}
	for i := range s.Sources {
		if s.Sources[i].Repeat == 0 {
			s.Sources[i].Repeat = 1
		}
	}
}

// Validate reports every problem found in the scene, joined.
func (s *Scene) Validate() error {
	var errs []error
	if _, err := s.MixerConfig(); err != nil {
		errs = append(errs, err)
	}
	if d, err := parseDuration("duration", s.Duration); err != nil {
		errs = append(errs, err)
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("duration %v: %w", d, ErrInvalidScene))
	}
	for i, src := range s.Sources {
		if err := src.validate(); err != nil {
			errs = append(errs, fmt.Errorf("source %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// MixerConfig converts the mixer section into an engine config.
func (s *Scene) MixerConfig() (mixer.Config, error) {
	format, err := mixer.ParseFormat(s.Mixer.Format)
	if err != nil {
		return mixer.Config{}, err
	}
	quality, err := mixer.ParseQuality(s.Mixer.Quality)
	if err != nil {
		return mixer.Config{}, err
	}
	if s.Mixer.Frequency <= 0 {
		return mixer.Config{}, fmt.Errorf("frequency %d: %w", s.Mixer.Frequency, ErrInvalidScene)
	}
	return mixer.Config{Frequency: s.Mixer.Frequency, Format: format, Quality: quality}, nil
}

// Length is the scene duration.
func (s *Scene) Length() time.Duration {
	d, _ := time.ParseDuration(s.Duration)
	return d
}

func (src Source) validate() error {
	switch {
	case src.File == "" && src.Silence == "":
		return fmt.Errorf("neither file nor silence set: %w", ErrInvalidScene)
	case src.File != "" && src.Silence != "":
		return fmt.Errorf("both file and silence set: %w", ErrInvalidScene)
	}
	if src.Silence != "" {
		d, err := parseDuration("silence", src.Silence)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("silence %v: %w", d, ErrInvalidScene)
		}
	}
	if src.Gain != nil && *src.Gain < 0 {
		return fmt.Errorf("gain %v: %w", *src.Gain, ErrInvalidScene)
	}
	if src.Repeat < 1 {
		return fmt.Errorf("repeat %d: %w", src.Repeat, ErrInvalidScene)
	}
	if d, err := parseDuration("delay", src.Delay); err != nil {
		return err
	} else if d < 0 {
		return fmt.Errorf("delay %v: %w", d, ErrInvalidScene)
	}
	return nil
}

// GainOr returns the configured gain, or def when none is set.
func (src Source) GainOr(def float64) float64 {
	if src.Gain == nil {
		return def
	}
	return *src.Gain
}

// SilenceLength is the length of a silence source, zero for file sources.
func (src Source) SilenceLength() time.Duration {
	d, _ := time.ParseDuration(src.Silence)
	return d
}

// DelayLength is the silence queued ahead of the clip.
func (src Source) DelayLength() time.Duration {
	d, _ := time.ParseDuration(src.Delay)
	return d
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, v, ErrInvalidScene)
	}
	return d, nil
}
