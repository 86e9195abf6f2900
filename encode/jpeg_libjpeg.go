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

// +build libjpeg

package encode

import (
	"image"
	"io"

	libjpeg "github.com/pixiv/go-libjpeg/jpeg"
)

// writeJPEG uses the system libjpeg when built with the libjpeg tag.
func writeJPEG(w io.Writer, img image.Image) error {
	return libjpeg.Encode(w, img, &libjpeg.EncoderOptions{Quality: JPEGQuality})
}
