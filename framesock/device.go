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

// Package framesock talks to a camera bridge over a unix socket.
//
// The bridge owns the camera SDK. On connection it sends a Header, then
// waits for a start command and streams frame records until told to
// stop. Each acquisition uses its own connection.
package framesock

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
)

// DialTimeout bounds connecting to the bridge and reading its header.
const DialTimeout = 5 * time.Second

var errStreamClosed = errors.New("stream is closed")

// Device is an acquire.Device served by a camera bridge.
type Device struct {
	path string
}

// New returns a Device for the bridge listening on the socket at path.
// No connection is made until Streams or Probe is called.
func New(path string) *Device {
	return &Device{path: path}
}

func (d *Device) connect() (net.Conn, *bufio.Reader, *Header, error) {
	conn, err := net.DialTimeout("unix", d.path, DialTimeout)
	if err != nil {
		return nil, nil, nil, err
	}
	conn.SetReadDeadline(time.Now().Add(DialTimeout))
	reader := bufio.NewReader(conn)
	header, err := ReadHeader(reader)
	if err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	conn.SetReadDeadline(time.Time{})
	return conn, reader, header, nil
}

// Probe connects, reads the bridge's header and disconnects.
func (d *Device) Probe() (*Header, error) {
	conn, _, header, err := d.connect()
	if err != nil {
		return nil, err
	}
	conn.Close()
	return header, nil
}

// Streams connects to the bridge. Only the first stream a bridge
// advertises is used.
func (d *Device) Streams() ([]acquire.Stream, error) {
	conn, reader, header, err := d.connect()
	if err != nil {
		return nil, err
	}
	if header.Streams < 1 {
		conn.Close()
		return nil, nil
	}
	return []acquire.Stream{&stream{conn: conn, reader: reader, header: header}}, nil
}

type stream struct {
	conn      net.Conn
	reader    *bufio.Reader
	header    *Header
	pix       []byte
	opened    bool
	streaming bool
}

// Open checks the bridge's header. A stream that fails to open is never
// released by its caller, so it closes its own connection.
func (s *stream) Open() error {
	if s.conn == nil {
		return errStreamClosed
	}
	if s.header.FrameSize < 0 || s.header.FrameSize > MaxPayload {
		s.Close()
		return fmt.Errorf("bridge frame size of %d bytes is out of range", s.header.FrameSize)
	}
	s.opened = true
	return nil
}

func (s *stream) AttachBuffers() error {
	if !s.opened {
		return errors.New("stream is not open")
	}
	if s.header.FrameSize > 0 {
		s.pix = make([]byte, s.header.FrameSize)
	}
	return nil
}

func (s *stream) StartStreaming() error {
	if s.conn == nil {
		return errStreamClosed
	}
	if err := writeCommand(s.conn, CmdStart); err != nil {
		return err
	}
	s.streaming = true
	return nil
}

func (s *stream) Grab(timeout time.Duration) (*acquire.Buffer, error) {
	if !s.streaming {
		return nil, errors.New("stream is not streaming")
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	buf, pix, err := readBuffer(s.reader, s.pix)
	s.pix = pix
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *stream) StopStreaming() error {
	if !s.streaming {
		return nil
	}
	s.streaming = false
	return writeCommand(s.conn, CmdStop)
}

func (s *stream) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
