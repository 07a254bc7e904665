// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"io"
)

// File is an in-memory io.ReadWriteSeeker for encoders that patch headers
// after writing the payload.
type File struct {
	data   []byte
	offset int64
}

// NewFile returns a File positioned at the start of data.
func NewFile(data []byte) *File {
	return &File{data: data}
}

// Bytes returns everything written so far.
func (f *File) Bytes() []byte { return f.data }

func (f *File) Read(p []byte) (n int, err error) {
	if f.offset >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n = copy(p, f.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	end := f.offset + int64(len(p))
	if end > int64(len(f.data)) {
		f.data = append(f.data, make([]byte, end-int64(len(f.data)))...)
	}
	copy(f.data[f.offset:], p)
	f.offset = end
	return len(p), nil
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = f.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position")
	}

	f.offset = newOffset
	return newOffset, nil
}
