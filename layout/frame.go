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

package layout

import (
	"errors"
	"math/bits"
)

var (
	// ErrShortBuffer is returned when a frame's pixel data is too small
	// for its declared geometry.
	ErrShortBuffer = errors.New("pixel data shorter than frame geometry")

	// ErrWidthNotQuad is returned for chroma subsampled frames whose
	// width is not a multiple of 4. Such frames are not supported.
	ErrWidthNotQuad = errors.New("chroma subsampled frame width must be a multiple of 4")
)

// Frame is a raw frame as delivered by a camera stream. Pix is borrowed
// from the stream's buffer and is only valid until the next grab.
type Frame struct {
	Width       uint32
	Height      uint32
	PixelFormat PixelFormat
	BigEndian   bool

	// XPadding is the number of padding bytes at the end of each row.
	XPadding uint32

	Pix []byte
}

// Class returns the layout class of the frame's pixel format.
func (f *Frame) Class() Class {
	return Classify(f.PixelFormat)
}

// RowBytes returns the number of pixel bytes in one row, excluding
// padding.
func (f *Frame) RowBytes() uint64 {
	w := uint64(f.Width)
	switch f.Class() {
	case ClassMono8:
		return w
	case ClassMono16:
		return 2 * w
	case ClassChroma411:
		return (w >> 2) * 6
	case ClassChroma422:
		return (w >> 2) * 8
	case ClassRGB8:
		return 3 * w
	}
	return w * uint64(f.PixelFormat.BitsPerPixel()) / 8
}

// RowStride returns the distance in bytes between the starts of two
// consecutive rows.
func (f *Frame) RowStride() uint64 {
	return f.RowBytes() + uint64(f.XPadding)
}

// RowOffset returns the byte offset of row y.
func (f *Frame) RowOffset(y uint32) uint64 {
	return uint64(y) * f.RowStride()
}

// Row returns the pixel bytes of row y without padding. The caller must
// have checked the frame with Check first.
func (f *Frame) Row(y uint32) []byte {
	off := f.RowOffset(y)
	return f.Pix[off : off+f.RowBytes()]
}

// Check verifies that the pixel data holds every row selected by win.
// Padding after the last selected row is not required. Geometry too
// large to address is reported as ErrShortBuffer.
func (f *Frame) Check(win Window) error {
	switch f.Class() {
	case ClassChroma411, ClassChroma422:
		if f.Width%4 != 0 {
			return ErrWidthNotQuad
		}
	}
	if win.RowCount == 0 {
		return nil
	}
	last := win.RowOffset + win.RowCount - 1
	hi, end := bits.Mul64(uint64(last), f.RowStride())
	end, carry := bits.Add64(end, f.RowBytes(), 0)
	if hi != 0 || carry != 0 || end > uint64(len(f.Pix)) {
		return ErrShortBuffer
	}
	return nil
}
