// genicam-snapshot - grab and encode still images from GenICam cameras
//  Copyright (C) 2020, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package encode converts raw camera frames into PNM, PNG and JPEG files.
//
// All encoders crop the frame to the same Window, so a given request
// selects the same rows whatever the container. Encoders only read the
// frame's pixel data while Encode runs; the returned slice is owned by
// the caller.
package encode

import (
	"errors"
	"math/bits"

	"github.com/TheCacophonyProject/genicam-snapshot/convert"
	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// DefaultMaxBytes bounds the size of any buffer an Encoder allocates.
const DefaultMaxBytes = 256 << 20

// JPEGQuality is the quality every JPEG is written with.
const JPEGQuality = 100

var (
	// ErrAllocation is returned when an output or intermediate buffer
	// would exceed the encoder's size limit. Nothing is allocated.
	ErrAllocation = errors.New("image buffer allocation failed")

	// ErrNoImage is returned when a frame cannot provide a complete
	// image, for example because its pixel data is truncated.
	ErrNoImage = errors.New("no complete image in buffer")
)

// Encoder holds encoding limits and options. The zero value uses
// DefaultMaxBytes and default PNG compression.
type Encoder struct {
	MaxBytes       uint64
	PNGCompression Compression
}

var defaultEncoder Encoder

// Encode encodes the rows of f selected by win with the default Encoder.
func Encode(format Format, f *layout.Frame, win layout.Window) ([]byte, error) {
	return defaultEncoder.Encode(format, f, win)
}

// Encode encodes the rows of f selected by win into a complete file of
// the given format.
func (e *Encoder) Encode(format Format, f *layout.Frame, win layout.Window) ([]byte, error) {
	if f.Class() == layout.ClassGeneric && !convert.Supported(f.PixelFormat) {
		return nil, &convert.UnsupportedFormatError{Format: f.PixelFormat}
	}
	if err := f.Check(win); err != nil {
		if err == layout.ErrShortBuffer {
			return nil, ErrNoImage
		}
		return nil, err
	}

	switch format {
	case PNM:
		return e.encodePNM(f, win)
	case PNG:
		return e.encodePNG(f, win)
	case JPEG:
		return e.encodeJPEG(f, win)
	}
	return nil, errors.New("unknown image format " + format.String())
}

func (e *Encoder) maxBytes() uint64 {
	if e.MaxBytes == 0 {
		return DefaultMaxBytes
	}
	return e.MaxBytes
}

// alloc returns a buffer of extra + product(factors) bytes, or
// ErrAllocation if that overflows or exceeds the limit.
func (e *Encoder) alloc(extra uint64, factors ...uint64) ([]byte, error) {
	size := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(size, f)
		if hi != 0 {
			return nil, ErrAllocation
		}
		size = lo
	}
	size, carry := bits.Add64(size, extra, 0)
	if carry != 0 || size > e.maxBytes() {
		return nil, ErrAllocation
	}
	return make([]byte, size), nil
}

// rgbRows calls emit with each selected row as 3*width RGB bytes. The
// row slice is only valid during the call.
func (e *Encoder) rgbRows(f *layout.Frame, win layout.Window, emit func(row []byte)) error {
	w := uint64(f.Width)
	switch f.Class() {
	case layout.ClassRGB8:
		for k := uint32(0); k < win.RowCount; k++ {
			emit(f.Row(win.RowOffset + k))
		}
		return nil

	case layout.ClassChroma411, layout.ClassChroma422:
		tmp, err := e.alloc(0, 3, w)
		if err != nil {
			return err
		}
		for k := uint32(0); k < win.RowCount; k++ {
			convert.ExpandRow(tmp, f.Row(win.RowOffset+k), int(f.Width), f.Class())
			emit(tmp)
		}
		return nil
	}

	plane, err := e.alloc(0, 3, w, uint64(win.RowCount))
	if err != nil {
		return err
	}
	if err := convert.ToRGB8(plane, f, win); err != nil {
		return err
	}
	rowLen := 3 * int(f.Width)
	for k := 0; k < int(win.RowCount); k++ {
		emit(plane[k*rowLen : (k+1)*rowLen])
	}
	return nil
}

// swap16 copies src to dst swapping the bytes of every 16 bit sample.
func swap16(dst, src []byte) {
	for i := 0; i+1 < len(src); i += 2 {
		dst[i], dst[i+1] = src[i+1], src[i]
	}
}
