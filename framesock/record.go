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

package framesock

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

// Frame records are a fixed size little endian header followed by the
// frame's pixel bytes:
//
//	0      'F'
//	1      flags
//	2-3    reserved
//	4-7    width
//	8-11   height
//	12-15  pixel format (PFNC)
//	16-19  x padding
//	20-23  payload length
const recordHeaderSize = 24

const frameMarker = 'F'

// MaxPayload bounds the payload of a single frame record.
const MaxPayload = 256 << 20

const (
	flagIncomplete = 1 << iota
	flagImagePresent
	flagBigEndian
)

// Command is sent by a client to control streaming.
type Command string

const (
	CmdStart Command = "start"
	CmdStop  Command = "stop"
)

// ReadCommand reads the next newline terminated command.
func ReadCommand(r *bufio.Reader) (Command, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	cmd := Command(strings.TrimSpace(line))
	switch cmd {
	case CmdStart, CmdStop:
		return cmd, nil
	}
	return "", fmt.Errorf("unknown command %q", cmd)
}

func writeCommand(w io.Writer, cmd Command) error {
	_, err := io.WriteString(w, string(cmd)+"\n")
	return err
}

// Writer is the camera bridge side of a frame socket.
type Writer struct {
	w   io.Writer
	hdr [recordHeaderSize]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteHeader(h *Header) error {
	return WriteHeader(w.w, h)
}

// WriteBuffer sends one grabbed buffer.
func (w *Writer) WriteBuffer(buf *acquire.Buffer) error {
	f := &buf.Frame
	if len(f.Pix) > MaxPayload {
		return fmt.Errorf("frame payload of %d bytes is too large", len(f.Pix))
	}
	var flags byte
	if buf.Incomplete {
		flags |= flagIncomplete
	}
	if buf.ImagePresent {
		flags |= flagImagePresent
	}
	if f.BigEndian {
		flags |= flagBigEndian
	}

	hdr := w.hdr[:]
	hdr[0] = frameMarker
	hdr[1] = flags
	hdr[2], hdr[3] = 0, 0
	binary.LittleEndian.PutUint32(hdr[4:], f.Width)
	binary.LittleEndian.PutUint32(hdr[8:], f.Height)
	binary.LittleEndian.PutUint32(hdr[12:], uint32(f.PixelFormat))
	binary.LittleEndian.PutUint32(hdr[16:], f.XPadding)
	binary.LittleEndian.PutUint32(hdr[20:], uint32(len(f.Pix)))
	if _, err := w.w.Write(hdr); err != nil {
		return err
	}
	_, err := w.w.Write(f.Pix)
	return err
}

// readBuffer reads one frame record into pix, growing it as needed. The
// returned buffer's pixel data aliases the returned slice.
func readBuffer(r io.Reader, pix []byte) (*acquire.Buffer, []byte, error) {
	var hdr [recordHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, pix, err
	}
	if hdr[0] != frameMarker {
		return nil, pix, fmt.Errorf("bad frame marker 0x%02x", hdr[0])
	}
	n := binary.LittleEndian.Uint32(hdr[20:])
	if n > MaxPayload {
		return nil, pix, fmt.Errorf("frame payload of %d bytes is too large", n)
	}
	if cap(pix) < int(n) {
		pix = make([]byte, n)
	}
	pix = pix[:n]
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, pix, err
	}

	flags := hdr[1]
	return &acquire.Buffer{
		Incomplete:   flags&flagIncomplete != 0,
		ImagePresent: flags&flagImagePresent != 0,
		Frame: layout.Frame{
			Width:       binary.LittleEndian.Uint32(hdr[4:]),
			Height:      binary.LittleEndian.Uint32(hdr[8:]),
			PixelFormat: layout.PixelFormat(binary.LittleEndian.Uint32(hdr[12:])),
			BigEndian:   flags&flagBigEndian != 0,
			XPadding:    binary.LittleEndian.Uint32(hdr[16:]),
			Pix:         pix,
		},
	}, pix, nil
}
