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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[PixelFormat]Class{
		Mono8:         ClassMono8,
		Confidence8:   ClassMono8,
		Error8:        ClassMono8,
		Mono16:        ClassMono16,
		Coord3D_C16:   ClassMono16,
		YCbCr411_8:    ClassChroma411,
		YCbCr422_8:    ClassChroma422,
		YUV422_8:      ClassChroma422,
		RGB8:          ClassRGB8,
		BGR8:          ClassGeneric,
		BayerRG8:      ClassGeneric,
		YUV422_8_UYVY: ClassGeneric,
		0x12345678:    ClassGeneric,
	}
	for pf, class := range cases {
		assert.Equal(t, class, Classify(pf), pf.String())
	}
}

func TestPixelFormatNames(t *testing.T) {
	assert.Equal(t, "Mono8", Mono8.String())
	assert.Equal(t, "YCbCr422_8", YCbCr422_8.String())
	assert.Equal(t, "Unknown(0x12345678)", PixelFormat(0x12345678).String())

	pf, err := ParsePixelFormat("BayerGB8")
	require.NoError(t, err)
	assert.Equal(t, BayerGB8, pf)

	_, err = ParsePixelFormat("Mono9")
	assert.Error(t, err)
}

func TestBitsPerPixel(t *testing.T) {
	assert.Equal(t, uint32(8), Mono8.BitsPerPixel())
	assert.Equal(t, uint32(16), Mono16.BitsPerPixel())
	assert.Equal(t, uint32(24), BGR8.BitsPerPixel())
	assert.Equal(t, uint32(32), RGBa8.BitsPerPixel())
	assert.Equal(t, uint32(12), YCbCr411_8.BitsPerPixel())
}

func TestRowStride(t *testing.T) {
	cases := []struct {
		pf     PixelFormat
		stride uint64
	}{
		{Mono8, 8 + 3},
		{Mono16, 16 + 3},
		{YCbCr411_8, 12 + 3},
		{YCbCr422_8, 16 + 3},
		{RGB8, 24 + 3},
		{BGRa8, 32 + 3},
	}
	for _, c := range cases {
		f := Frame{Width: 8, Height: 2, PixelFormat: c.pf, XPadding: 3}
		assert.Equal(t, c.stride, f.RowStride(), c.pf.String())
	}
}

func TestWindowFullHeight(t *testing.T) {
	assert.Equal(t, Window{0, 240}, NewWindow(240, 0, 0))
	assert.Equal(t, Window{40, 200}, NewWindow(240, 40, 0))
}

func TestWindowTruncated(t *testing.T) {
	assert.Equal(t, Window{10, 20}, NewWindow(240, 10, 20))
	assert.Equal(t, Window{230, 10}, NewWindow(240, 230, 100))
}

func TestWindowOffsetPastEnd(t *testing.T) {
	for _, yoffset := range []uint32{240, 241, 1000} {
		win := NewWindow(240, yoffset, 0)
		assert.Equal(t, uint32(240), win.RowOffset)
		assert.Equal(t, uint32(0), win.RowCount)
		assert.True(t, win.Empty())

		win = NewWindow(240, yoffset, 5)
		assert.Equal(t, uint32(0), win.RowCount)
	}
}

func TestWindowInvariants(t *testing.T) {
	for h := uint32(0); h < 6; h++ {
		for y := uint32(0); y < 8; y++ {
			for req := uint32(0); req < 8; req++ {
				win := NewWindow(h, y, req)
				assert.True(t, win.RowOffset <= h)
				assert.True(t, win.RowOffset+win.RowCount <= h)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	f := Frame{Width: 4, Height: 3, PixelFormat: Mono8, XPadding: 2, Pix: make([]byte, 6+6+4)}
	assert.NoError(t, f.Check(f.Window(0, 0)))

	f.Pix = f.Pix[:15]
	assert.Equal(t, ErrShortBuffer, f.Check(f.Window(0, 0)))
	assert.NoError(t, f.Check(f.Window(0, 2)))
	assert.NoError(t, f.Check(f.Window(3, 0)))
}

func TestCheckGeometryOverflow(t *testing.T) {
	// Offset of the last row wraps around 2^64 to a small value.
	f := Frame{
		Width: 4294967295, Height: 2851245713, XPadding: 2174746624,
		PixelFormat: Mono8, Pix: make([]byte, 881007),
	}
	assert.Equal(t, ErrShortBuffer, f.Check(f.Window(0, 0)))

	f = Frame{
		Width: ^uint32(0), Height: ^uint32(0), XPadding: ^uint32(0),
		PixelFormat: Mono16, BigEndian: true, Pix: make([]byte, 64),
	}
	assert.Equal(t, ErrShortBuffer, f.Check(f.Window(0, 0)))
	assert.Equal(t, ErrShortBuffer, f.Check(f.Window(f.Height-1, 1)))
}

func TestCheckChromaWidth(t *testing.T) {
	f := Frame{Width: 6, Height: 1, PixelFormat: YCbCr422_8, Pix: make([]byte, 64)}
	assert.Equal(t, ErrWidthNotQuad, f.Check(f.Window(0, 0)))
}

func TestRow(t *testing.T) {
	f := Frame{Width: 2, Height: 2, PixelFormat: Mono8, XPadding: 1, Pix: []byte{1, 2, 0, 3, 4, 0}}
	assert.Equal(t, []byte{1, 2}, f.Row(0))
	assert.Equal(t, []byte{3, 4}, f.Row(1))
}
