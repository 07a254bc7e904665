// SPDX-License-Identifier: EPL-2.0

package silence

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/ik5/audmix/audio"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		d               time.Duration
		rate            int
		channels        int
		bytesPerChannel int
		frames          int
		fill            byte
	}{
		{"one second mono8", time.Second, 8000, 1, 1, 8000, 0x80},
		{"half second stereo16", 500 * time.Millisecond, 44100, 2, 2, 22050, 0x00},
		{"rounds up to a frame", time.Microsecond, 8000, 1, 2, 1, 0x00},
		{"zero is one frame", 0, 22050, 2, 1, 1, 0x80},
		{"fraction rounds up", 1500 * time.Microsecond, 1000, 1, 1, 2, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clip, err := New(tt.d, tt.rate, tt.channels, tt.bytesPerChannel)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if clip.Frames() != tt.frames {
				t.Errorf("Frames() = %d, want %d", clip.Frames(), tt.frames)
			}
			want := bytes.Repeat([]byte{tt.fill}, tt.frames*tt.channels*tt.bytesPerChannel)
			if !bytes.Equal(clip.Data, want) {
				t.Errorf("Data is not silence")
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(-time.Second, 8000, 1, 1); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("New(negative) error = %v, want ErrNegativeDuration", err)
	}
	if _, err := New(time.Second, 8000, 3, 2); !errors.Is(err, audio.ErrInvalidClip) {
		t.Errorf("New(3 channels) error = %v, want ErrInvalidClip", err)
	}
	if _, err := New(time.Second, 0, 1, 2); !errors.Is(err, audio.ErrInvalidClip) {
		t.Errorf("New(0 Hz) error = %v, want ErrInvalidClip", err)
	}
}
