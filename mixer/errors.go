// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

// Error is the kind of failure reported by a store operation.
type Error int

const (
	// InvalidName means the handle does not reference a live buffer or source.
	InvalidName Error = iota + 1
	// InvalidEnum means an unsupported property selector or state value.
	InvalidEnum
	// InvalidValue means malformed input data.
	InvalidValue
	// InvalidOperation means the object is locked or the transition is illegal.
	InvalidOperation
)

func (e Error) Error() string {
	switch e {
	case InvalidName:
		return "invalid name"
	case InvalidEnum:
		return "invalid enum"
	case InvalidValue:
		return "invalid value"
	case InvalidOperation:
		return "invalid operation"
	}
	return "unknown mixer error"
}

var (
	ErrInvalidName      error = InvalidName
	ErrInvalidEnum      error = InvalidEnum
	ErrInvalidValue     error = InvalidValue
	ErrInvalidOperation error = InvalidOperation
)

// ErrorKind returns the kind carried by err, or 0 when err is nil or was not
// produced by this package.
func ErrorKind(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return 0
}
