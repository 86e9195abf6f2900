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
	"strconv"

	"github.com/TheCacophonyProject/genicam-snapshot/convert"
	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

func pnmHeader(magic string, width, height uint32, maxval int) string {
	return magic + "\n" +
		strconv.FormatUint(uint64(width), 10) + " " + strconv.FormatUint(uint64(height), 10) + "\n" +
		strconv.Itoa(maxval) + "\n"
}

// encodePNM writes P5 for mono frames (maxval 255 or 65535, samples
// always big endian) and P6 for everything else. The output length is
// exactly the header plus width*rows*samples*bytesPerSample.
func (e *Encoder) encodePNM(f *layout.Frame, win layout.Window) ([]byte, error) {
	w := uint64(f.Width)
	rows := uint64(win.RowCount)

	switch f.Class() {
	case layout.ClassMono8:
		hdr := pnmHeader("P5", f.Width, win.RowCount, 255)
		out, err := e.alloc(uint64(len(hdr)), w, rows)
		if err != nil {
			return nil, err
		}
		n := copy(out, hdr)
		for k := uint32(0); k < win.RowCount; k++ {
			n += copy(out[n:], f.Row(win.RowOffset+k))
		}
		return out, nil

	case layout.ClassMono16:
		hdr := pnmHeader("P5", f.Width, win.RowCount, 65535)
		out, err := e.alloc(uint64(len(hdr)), 2, w, rows)
		if err != nil {
			return nil, err
		}
		n := copy(out, hdr)
		for k := uint32(0); k < win.RowCount; k++ {
			row := f.Row(win.RowOffset + k)
			if f.BigEndian {
				copy(out[n:], row)
			} else {
				swap16(out[n:n+len(row)], row)
			}
			n += len(row)
		}
		return out, nil
	}

	hdr := pnmHeader("P6", f.Width, win.RowCount, 255)
	out, err := e.alloc(uint64(len(hdr)), 3, w, rows)
	if err != nil {
		return nil, err
	}
	n := copy(out, hdr)
	if f.Class() == layout.ClassGeneric {
		// The payload is exactly the converter's RGB plane.
		if err := convert.ToRGB8(out[n:], f, win); err != nil {
			return nil, err
		}
		return out, nil
	}
	err = e.rgbRows(f, win, func(row []byte) {
		n += copy(out[n:], row)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
