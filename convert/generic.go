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

package convert

import (
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// UnsupportedFormatError is returned when a pixel format has no
// conversion to RGB.
type UnsupportedFormatError struct {
	Format layout.PixelFormat
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported pixel format: " + e.Format.String()
}

// rowFunc converts absolute row y of f into 3*f.Width RGB bytes.
type rowFunc func(dst []byte, f *layout.Frame, y uint32)

var rowFuncs = map[layout.PixelFormat]rowFunc{
	layout.Mono8:           mono8Row,
	layout.Confidence8:     mono8Row,
	layout.Error8:          mono8Row,
	layout.Mono10:          mono16Row(2),
	layout.Mono12:          mono16Row(4),
	layout.Mono16:          mono16Row(8),
	layout.Coord3D_C16:     mono16Row(8),
	layout.Confidence16:    mono16Row(8),
	layout.RGB8:            packedRow(3, 0, 1, 2),
	layout.BGR8:            packedRow(3, 2, 1, 0),
	layout.RGBa8:           packedRow(4, 0, 1, 2),
	layout.BGRa8:           packedRow(4, 2, 1, 0),
	layout.YCbCr8:          yuv444Row(0, 1, 2),
	layout.YCbCr8_CbYCr:    yuv444Row(1, 0, 2),
	layout.YUV8_UYV:        yuv444Row(1, 0, 2),
	layout.YCbCr411_8:      chromaRow,
	layout.YCbCr422_8:      chromaRow,
	layout.YUV422_8:        chromaRow,
	layout.YUV422_8_UYVY:   uyvyRow,
	layout.YUV411_8_UYYVYY: uyyvyyRow,
	layout.BayerRG8:        bayerRow(bayerRG),
	layout.BayerGR8:        bayerRow(bayerGR),
	layout.BayerGB8:        bayerRow(bayerGB),
	layout.BayerBG8:        bayerRow(bayerBG),
}

// Supported reports whether ToRGB8 can convert pf.
func Supported(pf layout.PixelFormat) bool {
	_, ok := rowFuncs[pf]
	return ok
}

// ToRGB8 converts the rows of f selected by win into a tightly packed
// RGB plane of 3*width*rows bytes at the start of dst.
func ToRGB8(dst []byte, f *layout.Frame, win layout.Window) error {
	conv, ok := rowFuncs[f.PixelFormat]
	if !ok {
		return &UnsupportedFormatError{Format: f.PixelFormat}
	}
	switch f.PixelFormat {
	case layout.YUV422_8_UYVY, layout.YUV411_8_UYYVYY:
		if f.Width%4 != 0 {
			return layout.ErrWidthNotQuad
		}
	}
	if err := f.Check(win); err != nil {
		return err
	}
	if isBayer(f.PixelFormat) {
		// Quads may reach one row outside the window.
		if err := f.Check(layout.NewWindow(f.Height, 0, 0)); err != nil {
			return err
		}
	}
	rowLen := 3 * int(f.Width)
	if need := rowLen * int(win.RowCount); len(dst) < need {
		return errors.Errorf("rgb plane too small: %d < %d", len(dst), need)
	}
	for k := uint32(0); k < win.RowCount; k++ {
		conv(dst[int(k)*rowLen:int(k+1)*rowLen], f, win.RowOffset+k)
	}
	return nil
}

func mono8Row(dst []byte, f *layout.Frame, y uint32) {
	for i, v := range f.Row(y) {
		dst[3*i] = v
		dst[3*i+1] = v
		dst[3*i+2] = v
	}
}

func mono16Row(shift uint) rowFunc {
	return func(dst []byte, f *layout.Frame, y uint32) {
		row := f.Row(y)
		for i := 0; i < int(f.Width); i++ {
			var v uint16
			if f.BigEndian {
				v = uint16(row[2*i])<<8 | uint16(row[2*i+1])
			} else {
				v = uint16(row[2*i+1])<<8 | uint16(row[2*i])
			}
			g := clamp8(int(v >> shift))
			dst[3*i] = g
			dst[3*i+1] = g
			dst[3*i+2] = g
		}
	}
}

func packedRow(size, r, g, b int) rowFunc {
	return func(dst []byte, f *layout.Frame, y uint32) {
		row := f.Row(y)
		for i := 0; i < int(f.Width); i++ {
			px := row[size*i : size*i+size]
			dst[3*i] = px[r]
			dst[3*i+1] = px[g]
			dst[3*i+2] = px[b]
		}
	}
}

func yuv444Row(yi, cbi, cri int) rowFunc {
	return func(dst []byte, f *layout.Frame, y uint32) {
		row := f.Row(y)
		for i := 0; i < int(f.Width); i++ {
			px := row[3*i : 3*i+3]
			dst[3*i], dst[3*i+1], dst[3*i+2] = YCbCrToRGB(px[yi], px[cbi], px[cri])
		}
	}
}

func chromaRow(dst []byte, f *layout.Frame, y uint32) {
	ExpandRow(dst, f.Row(y), int(f.Width), f.Class())
}

// uyvyRow reorders U Y0 V Y1 pairs into the Y0 Cb Y1 Cr order the 4:2:2
// expander reads.
func uyvyRow(dst []byte, f *layout.Frame, y uint32) {
	row := f.Row(y)
	var group [8]byte
	for i := 0; i < int(f.Width); i += 4 {
		src := row[2*i : 2*i+8]
		group = [8]byte{src[1], src[0], src[3], src[2], src[5], src[4], src[7], src[6]}
		QuadRGB422(dst[3*i:3*i+12], group[:], 0)
	}
}

// uyyvyyRow reorders U Y0 Y1 V Y2 Y3 groups into Y0 Y1 Cb Y2 Y3 Cr.
func uyyvyyRow(dst []byte, f *layout.Frame, y uint32) {
	row := f.Row(y)
	var group [6]byte
	for i := 0; i < int(f.Width); i += 4 {
		src := row[(i>>2)*6 : (i>>2)*6+6]
		group = [6]byte{src[1], src[2], src[0], src[4], src[5], src[3]}
		QuadRGB411(dst[3*i:3*i+12], group[:], 0)
	}
}

func isBayer(pf layout.PixelFormat) bool {
	switch pf {
	case layout.BayerRG8, layout.BayerGR8, layout.BayerGB8, layout.BayerBG8:
		return true
	}
	return false
}

// Bayer patterns give the colour (0 red, 1 green, 2 blue) of each cell
// of a 2x2 quad, indexed [row parity][column parity].
type bayerPattern [2][2]int

var (
	bayerRG = bayerPattern{{0, 1}, {1, 2}}
	bayerGR = bayerPattern{{1, 0}, {2, 1}}
	bayerGB = bayerPattern{{1, 2}, {0, 1}}
	bayerBG = bayerPattern{{2, 1}, {1, 0}}
)

// bayerRow demosaics by giving every pixel the colour of the 2x2 quad it
// sits in. Quads are aligned to absolute frame coordinates so the
// result does not depend on the window.
func bayerRow(p bayerPattern) rowFunc {
	return func(dst []byte, f *layout.Frame, y uint32) {
		w := int(f.Width)
		if w < 2 || f.Height < 2 {
			mono8Row(dst, f, y)
			return
		}
		oy := y &^ 1
		if oy+1 >= f.Height {
			oy = f.Height - 2
		}
		rows := [2][]byte{f.Row(oy), f.Row(oy + 1)}
		for x := 0; x < w; x++ {
			ox := x &^ 1
			if ox+1 >= w {
				ox = w - 2
			}
			var sum [3]int
			var n [3]int
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					c := p[(int(oy)+dy)&1][(ox+dx)&1]
					sum[c] += int(rows[dy][ox+dx])
					n[c]++
				}
			}
			for c := 0; c < 3; c++ {
				dst[3*x+c] = byte((sum[c] + n[c]/2) / n[c])
			}
		}
	}
}
