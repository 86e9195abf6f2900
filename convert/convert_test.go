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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

func TestYCbCrNeutralChroma(t *testing.T) {
	for _, y := range []uint8{0, 1, 100, 254, 255} {
		r, g, b := YCbCrToRGB(y, 128, 128)
		assert.Equal(t, []uint8{y, y, y}, []uint8{r, g, b})
	}
}

func TestYCbCrKnownValues(t *testing.T) {
	cases := []struct {
		y, cb, cr uint8
		rgb       [3]uint8
	}{
		{100, 200, 60, [3]uint8{4, 124, 227}},
		{250, 255, 128, [3]uint8{250, 206, 255}},
		{10, 128, 0, [3]uint8{0, 102, 10}},
	}
	for _, c := range cases {
		r, g, b := YCbCrToRGB(c.y, c.cb, c.cr)
		assert.Equal(t, c.rgb, [3]uint8{r, g, b}, "%v", c)
	}
}

func TestYCbCrRoundsHalfUp(t *testing.T) {
	// Cr' = 16 gives a red offset of exactly 22.5, Cr' = -16 gives -22.5.
	// Rounding half up yields 23 and -22; truncation or banker's rounding
	// would give 22 for the first.
	r, g, b := YCbCrToRGB(100, 128, 144)
	assert.Equal(t, [3]uint8{123, 89, 100}, [3]uint8{r, g, b})

	r, g, b = YCbCrToRGB(100, 128, 112)
	assert.Equal(t, [3]uint8{78, 112, 100}, [3]uint8{r, g, b})
}

func TestQuadRGB411(t *testing.T) {
	row := []byte{10, 20, 128, 30, 40, 144}
	rgb := make([]byte, 12)
	QuadRGB411(rgb, row, 0)
	assert.Equal(t, []byte{
		33, 0, 10,
		43, 9, 20,
		53, 19, 30,
		63, 29, 40,
	}, rgb)
}

func TestQuadRGB411SecondGroup(t *testing.T) {
	row := []byte{0, 0, 0, 0, 0, 0, 10, 20, 128, 30, 40, 128}
	rgb := make([]byte, 12)
	QuadRGB411(rgb, row, 5)
	assert.Equal(t, []byte{10, 10, 10, 20, 20, 20, 30, 30, 30, 40, 40, 40}, rgb)
}

func TestQuadRGB422(t *testing.T) {
	row := []byte{10, 128, 20, 128, 100, 128, 110, 144}
	rgb := make([]byte, 12)
	QuadRGB422(rgb, row, 2)
	assert.Equal(t, []byte{
		10, 10, 10,
		20, 20, 20,
		123, 89, 100,
		133, 99, 110,
	}, rgb)
}

func TestToRGB8Unsupported(t *testing.T) {
	f := &layout.Frame{Width: 2, Height: 2, PixelFormat: 0x12345678, Pix: make([]byte, 16)}
	err := ToRGB8(make([]byte, 12), f, f.Window(0, 0))
	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "unsupported pixel format: Unknown(0x12345678)", err.Error())
	assert.False(t, Supported(0x12345678))
}

func TestToRGB8BGR(t *testing.T) {
	f := &layout.Frame{
		Width: 2, Height: 2, PixelFormat: layout.BGR8, XPadding: 1,
		Pix: []byte{
			1, 2, 3, 4, 5, 6, 0,
			7, 8, 9, 10, 11, 12, 0,
		},
	}
	dst := make([]byte, 6)
	require.NoError(t, ToRGB8(dst, f, f.Window(1, 0)))
	assert.Equal(t, []byte{9, 8, 7, 12, 11, 10}, dst)
}

func TestToRGB8RGBa(t *testing.T) {
	f := &layout.Frame{Width: 2, Height: 1, PixelFormat: layout.RGBa8, Pix: []byte{1, 2, 3, 255, 4, 5, 6, 255}}
	dst := make([]byte, 6)
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, dst)
}

func TestToRGB8Mono12(t *testing.T) {
	f := &layout.Frame{Width: 2, Height: 1, PixelFormat: layout.Mono12, Pix: []byte{0xff, 0x0f, 0x10, 0x00}}
	dst := make([]byte, 6)
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	assert.Equal(t, []byte{255, 255, 255, 1, 1, 1}, dst)

	f.BigEndian = true
	f.Pix = []byte{0x0f, 0xff, 0x00, 0x10}
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	assert.Equal(t, []byte{255, 255, 255, 1, 1, 1}, dst)
}

func TestToRGB8UYVYMatchesYUYV(t *testing.T) {
	yuyv := []byte{10, 90, 20, 170, 30, 60, 40, 200}
	uyvy := []byte{90, 10, 170, 20, 60, 30, 200, 40}

	want := make([]byte, 12)
	QuadRGB422(want, yuyv, 0)

	f := &layout.Frame{Width: 4, Height: 1, PixelFormat: layout.YUV422_8_UYVY, Pix: uyvy}
	dst := make([]byte, 12)
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	assert.Equal(t, want, dst)
}

func TestToRGB8UYYVYYMatches411(t *testing.T) {
	ycbcr := []byte{10, 20, 90, 30, 40, 170}
	uyyvyy := []byte{90, 10, 20, 170, 30, 40}

	want := make([]byte, 12)
	QuadRGB411(want, ycbcr, 0)

	f := &layout.Frame{Width: 4, Height: 1, PixelFormat: layout.YUV411_8_UYYVYY, Pix: uyyvyy}
	dst := make([]byte, 12)
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	assert.Equal(t, want, dst)
}

func TestToRGB8ChromaWidth(t *testing.T) {
	f := &layout.Frame{Width: 6, Height: 1, PixelFormat: layout.YUV422_8_UYVY, Pix: make([]byte, 12)}
	assert.Equal(t, layout.ErrWidthNotQuad, ToRGB8(make([]byte, 18), f, f.Window(0, 0)))
}

func TestToRGB8Bayer(t *testing.T) {
	// R G
	// G B with greens 100 and 50.
	pix := []byte{
		200, 100, 200, 100,
		50, 30, 50, 30,
	}
	f := &layout.Frame{Width: 4, Height: 2, PixelFormat: layout.BayerRG8, Pix: pix}
	dst := make([]byte, 24)
	require.NoError(t, ToRGB8(dst, f, f.Window(0, 0)))
	for i := 0; i < 8; i++ {
		assert.Equal(t, []byte{200, 75, 30}, dst[3*i:3*i+3])
	}

	f.PixelFormat = layout.BayerBG8
	require.NoError(t, ToRGB8(dst, f, f.Window(1, 1)))
	assert.Equal(t, []byte{30, 75, 200}, dst[0:3])
}

func TestToRGB8ShortBuffer(t *testing.T) {
	f := &layout.Frame{Width: 4, Height: 2, PixelFormat: layout.BGR8, Pix: make([]byte, 20)}
	assert.Equal(t, layout.ErrShortBuffer, ToRGB8(make([]byte, 24), f, f.Window(0, 0)))
}

func TestToRGB8DestinationTooSmall(t *testing.T) {
	f := &layout.Frame{Width: 2, Height: 2, PixelFormat: layout.RGB8, Pix: make([]byte, 12)}
	assert.Error(t, ToRGB8(make([]byte, 11), f, f.Window(0, 0)))
}
