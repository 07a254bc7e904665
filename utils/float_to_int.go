// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalised sample in [-1, 1] to 16-bit PCM,
// clamping out-of-range input.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	// 32767 keeps +1.0 from overflowing
	return int16(x * math.MaxInt16)
}

// ClampSample truncates a mixed sample toward zero and clips it to the
// signed range of a bits-wide integer (8 or 16).
func ClampSample(x float32, bits int) int32 {
	hi := float32(int32(1)<<(bits-1) - 1)
	lo := -hi - 1
	switch {
	case x >= hi:
		return int32(hi)
	case x <= lo:
		return int32(lo)
	case x != x: // NaN
		return 0
	}
	return int32(x)
}
