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

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// encodeJPEG writes a single component gray JPEG for mono frames and a
// colour JPEG for everything else, always at JPEGQuality. JPEG has no
// 16 bit baseline mode so Mono16 frames keep their high byte.
func (e *Encoder) encodeJPEG(f *layout.Frame, win layout.Window) ([]byte, error) {
	img, err := e.toImage(f, win, true)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeJPEG(&buf, img); err != nil {
		return nil, errors.Wrap(err, "jpeg encoding failed")
	}
	return buf.Bytes(), nil
}
