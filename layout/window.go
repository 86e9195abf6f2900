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

// Window is the range of rows of a frame that gets encoded.
type Window struct {
	RowOffset uint32
	RowCount  uint32
}

// NewWindow clamps a requested crop to a frame of realHeight rows. A
// height of 0 selects all rows from yoffset on. Out of range requests
// are not an error, they just select fewer (or no) rows.
func NewWindow(realHeight, yoffset, height uint32) Window {
	if yoffset > realHeight {
		yoffset = realHeight
	}
	if height == 0 {
		height = realHeight
	}
	if remaining := realHeight - yoffset; height > remaining {
		height = remaining
	}
	return Window{RowOffset: yoffset, RowCount: height}
}

// Window returns the clamped window for this frame.
func (f *Frame) Window(yoffset, height uint32) Window {
	return NewWindow(f.Height, yoffset, height)
}

// Empty reports whether the window selects no rows.
func (w Window) Empty() bool {
	return w.RowCount == 0
}
