// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"testing"
)

func TestFormat_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format    Format
		bpc       int
		channels  int
		frameSize int
		name      string
	}{
		{Mono8, 1, 1, 1, "mono8"},
		{Stereo8, 1, 2, 2, "stereo8"},
		{Mono16, 2, 1, 2, "mono16"},
		{Stereo16, 2, 2, 4, "stereo16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.format.BytesPerChannel(); got != tt.bpc {
				t.Errorf("BytesPerChannel() = %d, want %d", got, tt.bpc)
			}
			if got := tt.format.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}
			if got := tt.format.FrameSize(); got != tt.frameSize {
				t.Errorf("FrameSize() = %d, want %d", got, tt.frameSize)
			}
			if got := tt.format.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			parsed, err := ParseFormat(tt.name)
			if err != nil || parsed != tt.format {
				t.Errorf("ParseFormat(%q) = %v, %v", tt.name, parsed, err)
			}
		})
	}
}

func TestFormat_PackedLayout(t *testing.T) {
	t.Parallel()

	if got := uint32(Stereo16); got != 0x00170202 {
		t.Errorf("Stereo16 = %#x, want 0x00170202", got)
	}
	if got := uint32(Mono8); got != 0x00170101 {
		t.Errorf("Mono8 = %#x, want 0x00170101", got)
	}
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		want   error
	}{
		{"zero bytes per channel", MakeFormat(0, 1), ErrInvalidValue},
		{"zero channels", MakeFormat(2, 0), ErrInvalidValue},
		{"24-bit", MakeFormat(3, 2), ErrInvalidValue},
		{"surround", MakeFormat(2, 6), ErrInvalidValue},
		{"missing tag", Format(0x0202), ErrInvalidEnum},
		{"valid", Stereo16, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.format.validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Quality{
		"low": QualityLow, "nearest": QualityLow,
		"Medium": QualityMedium, "linear": QualityMedium,
		"high": QualityHigh, " cubic ": QualityHigh,
	} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Errorf("ParseQuality(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	_, err := ParseQuality("sinc")
	wantKind(t, err, InvalidEnum)
	_, err = ParseFormat("quad16")
	wantKind(t, err, InvalidEnum)
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	m := newTestMixer(t, 44100, Mono16, QualityMedium)
	err := m.Sources().Play(SourceHandle(12345))

	if got := ErrorKind(err); got != InvalidName {
		t.Errorf("ErrorKind() = %v, want %v", got, InvalidName)
	}
	if got := ErrorKind(errors.New("other")); got != 0 {
		t.Errorf("ErrorKind(foreign) = %v, want 0", got)
	}
	if got := ErrorKind(nil); got != 0 {
		t.Errorf("ErrorKind(nil) = %v, want 0", got)
	}
}
