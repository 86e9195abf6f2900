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

package encode

import (
	"image"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// toImage wraps the selected rows in an image.Image for the library
// encoders. Mono8 and big endian Mono16 frames are aliased, not copied,
// so the result must not outlive the Encode call. When gray8 is set,
// Mono16 frames are reduced to their most significant byte.
func (e *Encoder) toImage(f *layout.Frame, win layout.Window, gray8 bool) (image.Image, error) {
	if win.Empty() || f.Width == 0 {
		return nil, ErrNoImage
	}
	w := int(f.Width)
	rect := image.Rect(0, 0, w, int(win.RowCount))
	off := f.RowOffset(win.RowOffset)
	stride := int(f.RowStride())

	switch f.Class() {
	case layout.ClassMono8:
		return &image.Gray{Pix: f.Pix[off:], Stride: stride, Rect: rect}, nil

	case layout.ClassMono16:
		if gray8 {
			pix, err := e.alloc(0, uint64(f.Width), uint64(win.RowCount))
			if err != nil {
				return nil, err
			}
			msb := 1
			if f.BigEndian {
				msb = 0
			}
			for k := 0; k < int(win.RowCount); k++ {
				row := f.Row(win.RowOffset + uint32(k))
				dst := pix[k*w : (k+1)*w]
				for i := range dst {
					dst[i] = row[2*i+msb]
				}
			}
			return &image.Gray{Pix: pix, Stride: w, Rect: rect}, nil
		}
		if f.BigEndian {
			return &image.Gray16{Pix: f.Pix[off:], Stride: stride, Rect: rect}, nil
		}
		// image.Gray16 is big endian; swap while copying.
		pix, err := e.alloc(0, 2, uint64(f.Width), uint64(win.RowCount))
		if err != nil {
			return nil, err
		}
		for k := 0; k < int(win.RowCount); k++ {
			swap16(pix[2*k*w:2*(k+1)*w], f.Row(win.RowOffset+uint32(k)))
		}
		return &image.Gray16{Pix: pix, Stride: 2 * w, Rect: rect}, nil
	}

	pix, err := e.alloc(0, 4, uint64(f.Width), uint64(win.RowCount))
	if err != nil {
		return nil, err
	}
	img := &image.RGBA{Pix: pix, Stride: 4 * w, Rect: rect}
	k := 0
	err = e.rgbRows(f, win, func(row []byte) {
		dst := img.Pix[k*img.Stride : (k+1)*img.Stride]
		for i := 0; i < w; i++ {
			dst[4*i] = row[3*i]
			dst[4*i+1] = row[3*i+1]
			dst[4*i+2] = row[3*i+2]
			dst[4*i+3] = 0xff
		}
		k++
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
