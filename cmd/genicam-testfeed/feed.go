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

package main

import (
	"bufio"
	"io"
	"net"
	"time"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
	"github.com/TheCacophonyProject/genicam-snapshot/framesock"
	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// feed serves synthetic frames the way a camera bridge would.
type feed struct {
	pixelFormat     layout.PixelFormat
	width           uint32
	height          uint32
	xPadding        uint32
	bigEndian       bool
	incompleteEvery int
	interval        time.Duration
}

func (f *feed) header() *framesock.Header {
	return &framesock.Header{
		Brand:     "Cacophony",
		Model:     "testfeed",
		Serial:    "0",
		Streams:   1,
		FrameSize: len(f.frame(0).Frame.Pix),
	}
}

// frame returns the n'th frame: a diagonal gradient that moves one step
// per frame.
func (f *feed) frame(n int) *acquire.Buffer {
	fr := layout.Frame{
		Width:       f.width,
		Height:      f.height,
		PixelFormat: f.pixelFormat,
		BigEndian:   f.bigEndian,
		XPadding:    f.xPadding,
	}
	fr.Pix = make([]byte, fr.RowStride()*uint64(fr.Height))
	rowBytes := int(fr.RowBytes())
	for y := uint32(0); y < fr.Height; y++ {
		row := fr.Pix[fr.RowOffset(y):]
		for i := 0; i < rowBytes; i++ {
			row[i] = byte(i + int(y) + n)
		}
	}
	return &acquire.Buffer{
		Incomplete:   f.incompleteEvery > 0 && (n+1)%f.incompleteEvery == 0,
		ImagePresent: true,
		Frame:        fr,
	}
}

// serve handles one client connection until it is closed.
func (f *feed) serve(conn net.Conn) error {
	defer conn.Close()

	w := framesock.NewWriter(conn)
	if err := w.WriteHeader(f.header()); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	cmds := make(chan framesock.Command)
	readErr := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(conn)
		for {
			cmd, err := framesock.ReadCommand(reader)
			if err != nil {
				readErr <- err
				return
			}
			select {
			case cmds <- cmd:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	streaming := false
	n := 0
	for {
		select {
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case cmd := <-cmds:
			streaming = cmd == framesock.CmdStart
		case <-ticker.C:
			if !streaming {
				continue
			}
			if err := w.WriteBuffer(f.frame(n)); err != nil {
				return err
			}
			n++
		}
	}
}
