// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/mixer"
)

// renderChunk bounds how many frames one mixer Read produces, which is also
// how long the mixer locks are held at a time.
const renderChunk = 4096

// Render mixes exactly frames frames and returns them in the mixer's output
// format. Sources that run out before the end are padded with silence.
func Render(m *mixer.Mixer, frames int) ([]byte, error) {
	if frames < 0 {
		return nil, fmt.Errorf("render %d frames: %w", frames, mixer.ErrInvalidValue)
	}
	fs := m.Format().FrameSize()
	out := make([]byte, frames*fs)
	for off := 0; off < len(out); {
		end := min(len(out), off+renderChunk*fs)
		n, err := m.Read(out[off:end])
		if err != nil {
			return nil, err
		}
		off += n
	}
	return out, nil
}

// RenderTo streams frames mixed frames to w in chunks and returns the
// number of bytes written.
func RenderTo(w io.Writer, m *mixer.Mixer, frames int) (int64, error) {
	if frames < 0 {
		return 0, fmt.Errorf("render %d frames: %w", frames, mixer.ErrInvalidValue)
	}
	fs := m.Format().FrameSize()
	buf := make([]byte, min(frames, renderChunk)*fs)

	var written int64
	for left := frames; left > 0; {
		chunk := min(left, renderChunk)
		n, err := m.Read(buf[:chunk*fs])
		if err != nil {
			return written, err
		}
		nw, err := w.Write(buf[:n])
		written += int64(nw)
		if err != nil {
			return written, err
		}
		left -= n / fs
	}
	return written, nil
}
