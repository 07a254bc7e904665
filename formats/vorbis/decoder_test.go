// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	maxFrames    int // frames per Read, 0 for as many as fit
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	framesToRead := min(len(buf), len(m.samples)-m.offset) / m.channels
	if m.maxFrames > 0 {
		framesToRead = min(framesToRead, m.maxFrames)
	}

	samplesToRead := framesToRead * m.channels
	copy(buf, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}

	return samplesToRead, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	// Invalid Ogg Vorbis data
	invalidData := []byte("This is not Ogg Vorbis data")

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader(invalidData))

	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte{}))

	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestReadClip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		wantCh   int
		want     []int16
	}{
		{
			name:     "mono",
			channels: 1,
			samples:  []float32{0, 0.5, -0.5, 1, -1},
			wantCh:   1,
			want:     []int16{0, 16383, -16383, 32767, -32767},
		},
		{
			name:     "stereo",
			channels: 2,
			samples:  []float32{0.25, -0.25, 1, 0},
			wantCh:   2,
			want:     []int16{8191, -8191, 32767, 0},
		},
		{
			name:     "out of range clamps",
			channels: 1,
			samples:  []float32{1.5, -2},
			wantCh:   1,
			want:     []int16{32767, -32767},
		},
		{
			name:     "quad folds to mono",
			channels: 4,
			samples:  []float32{1, 1, 0, 0, -0.5, -0.5, -0.5, -0.5},
			wantCh:   1,
			want:     []int16{16383, -16383},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := &mockOggVorbisReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    tt.samples,
				maxFrames:  1,
			}
			clip, err := readClip(dec)
			if err != nil {
				t.Fatalf("readClip() error = %v", err)
			}

			if clip.Channels != tt.wantCh || clip.BytesPerChannel != 2 || clip.SampleRate != 44100 {
				t.Errorf("layout = %d Hz %d ch %d bytes", clip.SampleRate, clip.Channels, clip.BytesPerChannel)
			}
			if got := audiotest.Int16s(clip.Data); !slices.Equal(got, tt.want) {
				t.Errorf("samples = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadClip_LargeStream(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 44100*2)
	for i := range samples {
		samples[i] = 0.5
	}

	clip, err := readClip(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
	if err != nil {
		t.Fatalf("readClip() error = %v", err)
	}
	if clip.Frames() != 44100 {
		t.Errorf("Frames() = %d, want 44100", clip.Frames())
	}
}

func TestReadClip_Errors(t *testing.T) {
	t.Parallel()

	_, err := readClip(&mockOggVorbisReader{sampleRate: 44100, channels: 2, returnErrors: true})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("readClip() error = %v, want io.ErrUnexpectedEOF", err)
	}

	_, err = readClip(&mockOggVorbisReader{sampleRate: 44100, channels: 0})
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("readClip() error = %v, want ErrNoChannels", err)
	}
}

func BenchmarkReadClip(b *testing.B) {
	samples := make([]float32, 44100*2)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = readClip(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
	}
}
