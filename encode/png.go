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
	"bytes"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// encodePNG writes 8 bit gray for Mono8, 16 bit gray for Mono16 and 8
// bit RGB for everything else. Unlike PNM the output size is only known
// once the encoder is done.
func (e *Encoder) encodePNG(f *layout.Frame, win layout.Window) ([]byte, error) {
	img, err := e.toImage(f, win, false)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.CompressionLevel(e.PNGCompression)))
	if err != nil {
		return nil, errors.Wrap(err, "png encoding failed")
	}
	return buf.Bytes(), nil
}
