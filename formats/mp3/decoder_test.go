// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16 // PCM samples (16-bit)
	offset     int
	chunk      int   // max bytes per Read, 0 for unlimited
	finalErr   error // returned once the samples run out
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.offset >= len(m.samples) {
		if m.finalErr != nil {
			return 0, m.finalErr
		}
		return 0, io.EOF
	}

	// Calculate how many samples we can fit in the buffer
	bytesToRead := min(len(buf), (len(m.samples)-m.offset)*2)
	if m.chunk > 0 {
		bytesToRead = min(bytesToRead, m.chunk)
	}

	// Ensure we read complete samples (even number of bytes)
	samplesToRead := bytesToRead / 2

	// Write samples as little-endian int16
	for i := range samplesToRead {
		sample := m.samples[m.offset+i]
		binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(sample))
	}

	m.offset += samplesToRead
	return samplesToRead * 2, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	// Invalid MP3 data
	invalidData := []byte("This is not MP3 data")

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

	samples := []int16{0, 16384, -16384, 32767, -32768, 1}
	clip, err := readClip(&mockMP3Reader{sampleRate: 44100, samples: samples, chunk: 4})
	if err != nil {
		t.Fatalf("readClip() error = %v", err)
	}

	if clip.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", clip.SampleRate)
	}
	if clip.Channels != 2 || clip.BytesPerChannel != 2 {
		t.Errorf("layout = %d ch %d bytes, want stereo 16-bit", clip.Channels, clip.BytesPerChannel)
	}
	if want := audiotest.Samples16(samples...); !bytes.Equal(clip.Data, want) {
		t.Errorf("Data = %v, want %v", audiotest.Int16s(clip.Data), samples)
	}
}

func TestReadClip_PartialFrameDropped(t *testing.T) {
	t.Parallel()

	clip, err := readClip(&mockMP3Reader{sampleRate: 48000, samples: []int16{1, 2, 3}})
	if err != nil {
		t.Fatalf("readClip() error = %v", err)
	}
	if clip.Frames() != 1 || len(clip.Data) != 4 {
		t.Errorf("Data = %v, want one stereo frame", audiotest.Int16s(clip.Data))
	}
}

func TestReadClip_TruncatedStream(t *testing.T) {
	t.Parallel()

	clip, err := readClip(&mockMP3Reader{
		sampleRate: 22050,
		samples:    []int16{5, 6, 7, 8},
		finalErr:   io.ErrUnexpectedEOF,
	})
	if err != nil {
		t.Fatalf("readClip() error = %v, want the decoded prefix", err)
	}
	if clip.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", clip.Frames())
	}
}

func TestReadClip_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	_, err := readClip(&mockMP3Reader{sampleRate: 44100, samples: []int16{1, 2}, finalErr: boom})
	if !errors.Is(err, boom) {
		t.Errorf("readClip() error = %v, want %v", err, boom)
	}
}

func TestReadClip_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 16000, 22050, 32000, 44100, 48000} {
		clip, err := readClip(&mockMP3Reader{sampleRate: rate, samples: make([]int16, 8)})
		if err != nil {
			t.Fatalf("readClip() error = %v", err)
		}
		if clip.SampleRate != rate {
			t.Errorf("SampleRate = %d, want %d", clip.SampleRate, rate)
		}
	}
}

func BenchmarkReadClip(b *testing.B) {
	samples := make([]int16, 44100*2)

	b.ReportAllocs()
	for b.Loop() {
		_, _ = readClip(&mockMP3Reader{sampleRate: 44100, samples: samples, chunk: 4608})
	}
}
