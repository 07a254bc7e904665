// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidClip   = errors.New("invalid pcm clip")
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
