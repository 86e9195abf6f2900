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

package acquire

import (
	"time"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// Device is a camera that can hand out streams. Device discovery and
// property access live with whoever implements it.
type Device interface {
	Streams() ([]Stream, error)
}

// Stream is a camera streaming channel. An acquisition opens, starts,
// stops and closes the stream within one call.
type Stream interface {
	// Open is the only call not followed by Close when it fails, so a
	// failing Open must free anything the stream holds.
	Open() error
	AttachBuffers() error
	StartStreaming() error

	// Grab blocks for at most timeout waiting for the next buffer. A
	// nil buffer or an error means the device could not deliver one.
	Grab(timeout time.Duration) (*Buffer, error)

	StopStreaming() error
	Close() error
}

// Buffer is one grabbed stream buffer. Frame.Pix is only valid until
// the next Grab on the same stream.
type Buffer struct {
	Incomplete   bool
	ImagePresent bool
	Frame        layout.Frame
}
