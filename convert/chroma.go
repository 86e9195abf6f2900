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

// Package convert turns raw camera pixel layouts into packed 8 bit RGB.
package convert

import "github.com/TheCacophonyProject/genicam-snapshot/layout"

// QuadRGB411 writes the 12 RGB bytes of the 4 pixel group containing
// pixel i of a YCbCr 4:1:1 row. A group is 6 bytes: Y0 Y1 Cb Y2 Y3 Cr.
func QuadRGB411(rgb, row []byte, i int) {
	j := (i >> 2) * 6
	rc, gc, bc := chromaOffsets(row[j+2], row[j+5])
	put(rgb[0:3], int(row[j]), rc, gc, bc)
	put(rgb[3:6], int(row[j+1]), rc, gc, bc)
	put(rgb[6:9], int(row[j+3]), rc, gc, bc)
	put(rgb[9:12], int(row[j+4]), rc, gc, bc)
}

// QuadRGB422 writes the 12 RGB bytes of the 4 pixel group containing
// pixel i of a YCbCr 4:2:2 row. A group is 8 bytes: Y0 Cb Y1 Cr Y2 Cb Y3 Cr.
func QuadRGB422(rgb, row []byte, i int) {
	j := (i >> 2) * 8
	rc, gc, bc := chromaOffsets(row[j+1], row[j+3])
	put(rgb[0:3], int(row[j]), rc, gc, bc)
	put(rgb[3:6], int(row[j+2]), rc, gc, bc)
	rc, gc, bc = chromaOffsets(row[j+5], row[j+7])
	put(rgb[6:9], int(row[j+4]), rc, gc, bc)
	put(rgb[9:12], int(row[j+6]), rc, gc, bc)
}

// YCbCrToRGB converts a single YCbCr sample with the same fixed point
// transform the quad expanders use.
func YCbCrToRGB(y, cb, cr uint8) (uint8, uint8, uint8) {
	var rgb [3]byte
	rc, gc, bc := chromaOffsets(cb, cr)
	put(rgb[:], int(y), rc, gc, bc)
	return rgb[0], rgb[1], rgb[2]
}

// ExpandRow converts one chroma subsampled row of width pixels into
// 3*width RGB bytes. width must be a multiple of 4.
func ExpandRow(dst, row []byte, width int, class layout.Class) {
	quad := QuadRGB422
	if class == layout.ClassChroma411 {
		quad = QuadRGB411
	}
	for i := 0; i < width; i += 4 {
		quad(dst[3*i:3*i+12], row, i)
	}
}

// chromaOffsets returns the per channel offsets added to luma. Factors
// are BT.601 scaled by 64; the +32 rounds halves up and the arithmetic
// shift floors, so -22.5 becomes -22 and 22.5 becomes 23.
func chromaOffsets(cb, cr uint8) (rc, gc, bc int) {
	cbv := int(cb) - 128
	crv := int(cr) - 128
	rc = (90*crv + 32) >> 6
	gc = (-22*cbv - 46*crv + 32) >> 6
	bc = (113*cbv + 32) >> 6
	return
}

func put(rgb []byte, y, rc, gc, bc int) {
	rgb[0] = clamp8(y + rc)
	rgb[1] = clamp8(y + gc)
	rgb[2] = clamp8(y + bc)
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
