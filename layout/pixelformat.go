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

// Package layout describes how the pixels of a raw camera frame are laid
// out in memory: pixel format codes, the layout class each code belongs
// to, row strides and the row window selected for encoding.
package layout

import "fmt"

// PixelFormat is a GenICam PFNC pixel format code.
type PixelFormat uint32

// PFNC codes handled by this module. Error8 is a vendor specific code
// (custom bit set) used by depth cameras for their error images.
const (
	Mono8           PixelFormat = 0x01080001
	Mono10          PixelFormat = 0x01100003
	Mono12          PixelFormat = 0x01100005
	Mono16          PixelFormat = 0x01100007
	BayerGR8        PixelFormat = 0x01080008
	BayerRG8        PixelFormat = 0x01080009
	BayerGB8        PixelFormat = 0x0108000A
	BayerBG8        PixelFormat = 0x0108000B
	RGB8            PixelFormat = 0x02180014
	BGR8            PixelFormat = 0x02180015
	RGBa8           PixelFormat = 0x02200016
	BGRa8           PixelFormat = 0x02200017
	YUV411_8_UYYVYY PixelFormat = 0x020C001E
	YUV422_8_UYVY   PixelFormat = 0x0210001F
	YUV8_UYV        PixelFormat = 0x02180020
	YUV422_8        PixelFormat = 0x02100032
	YCbCr8_CbYCr    PixelFormat = 0x0218003A
	YCbCr422_8      PixelFormat = 0x0210003B
	YCbCr411_8      PixelFormat = 0x020C005A
	YCbCr8          PixelFormat = 0x0218005B
	Coord3D_C16     PixelFormat = 0x011000B8
	Confidence8     PixelFormat = 0x010800C6
	Confidence16    PixelFormat = 0x011000C7
	Error8          PixelFormat = 0x81080001
)

var formatNames = map[PixelFormat]string{
	Mono8:           "Mono8",
	Mono10:          "Mono10",
	Mono12:          "Mono12",
	Mono16:          "Mono16",
	BayerGR8:        "BayerGR8",
	BayerRG8:        "BayerRG8",
	BayerGB8:        "BayerGB8",
	BayerBG8:        "BayerBG8",
	RGB8:            "RGB8",
	BGR8:            "BGR8",
	RGBa8:           "RGBa8",
	BGRa8:           "BGRa8",
	YUV411_8_UYYVYY: "YUV411_8_UYYVYY",
	YUV422_8_UYVY:   "YUV422_8_UYVY",
	YUV8_UYV:        "YUV8_UYV",
	YUV422_8:        "YUV422_8",
	YCbCr8_CbYCr:    "YCbCr8_CbYCr",
	YCbCr422_8:      "YCbCr422_8",
	YCbCr411_8:      "YCbCr411_8",
	YCbCr8:          "YCbCr8",
	Coord3D_C16:     "Coord3D_C16",
	Confidence8:     "Confidence8",
	Confidence16:    "Confidence16",
	Error8:          "Error8",
}

// String returns the PFNC display name of the format.
func (pf PixelFormat) String() string {
	if name, ok := formatNames[pf]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%08x)", uint32(pf))
}

// ParsePixelFormat looks up a pixel format by its display name.
func ParsePixelFormat(name string) (PixelFormat, error) {
	for pf, n := range formatNames {
		if n == name {
			return pf, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q", name)
}

// BitsPerPixel returns the number of bits one pixel occupies, as
// encoded in bits 16-23 of the PFNC code.
func (pf PixelFormat) BitsPerPixel() uint32 {
	return (uint32(pf) >> 16) & 0xff
}

// Class is the layout category of a pixel format. It decides which
// decode path an encoder takes.
type Class int

const (
	ClassGeneric Class = iota
	ClassMono8
	ClassMono16
	ClassChroma411
	ClassChroma422
	ClassRGB8
)

func (c Class) String() string {
	switch c {
	case ClassMono8:
		return "mono8"
	case ClassMono16:
		return "mono16"
	case ClassChroma411:
		return "chroma411"
	case ClassChroma422:
		return "chroma422"
	case ClassRGB8:
		return "rgb8"
	}
	return "generic"
}

// Classify maps a pixel format to its layout class. Formats without a
// dedicated path are ClassGeneric.
func Classify(pf PixelFormat) Class {
	switch pf {
	case Mono8, Confidence8, Error8:
		return ClassMono8
	case Mono16, Coord3D_C16:
		return ClassMono16
	case YCbCr411_8:
		return ClassChroma411
	case YCbCr422_8, YUV422_8:
		return ClassChroma422
	case RGB8:
		return ClassRGB8
	}
	return ClassGeneric
}
