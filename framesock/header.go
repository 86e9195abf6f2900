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
	"bytes"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v1"
)

// Header fields sent by a camera bridge when a client connects.
const (
	Brand     = "brand"
	Model     = "model"
	Serial    = "serial"
	Streams   = "streams"
	FrameSize = "frame-size"
)

// Header describes the camera behind a frame socket.
type Header struct {
	Brand   string
	Model   string
	Serial  string
	Streams int

	// FrameSize is the largest frame payload the bridge will send, or 0
	// if unknown.
	FrameSize int
}

// ReadHeader reads YAML "key: value" lines up to the first blank line.
func ReadHeader(reader *bufio.Reader) (*Header, error) {
	var buf bytes.Buffer
	for {
		line, err := reader.ReadString(byte('\n'))
		if err != nil {
			return nil, err
		}
		if strings.Trim(line, " \r") == "\n" {
			break
		}
		buf.WriteString(line)
	}
	h := make(map[string]interface{})
	err := yaml.Unmarshal(buf.Bytes(), &h)
	if err != nil {
		return nil, err
	}

	return &Header{
		Brand:     toStr(h[Brand]),
		Model:     toStr(h[Model]),
		Serial:    toStr(h[Serial]),
		Streams:   toInt(h[Streams]),
		FrameSize: toInt(h[FrameSize]),
	}, nil
}

// WriteHeader writes h followed by the terminating blank line.
func WriteHeader(w io.Writer, h *Header) error {
	out, err := yaml.Marshal(map[string]interface{}{
		Brand:     h.Brand,
		Model:     h.Model,
		Serial:    h.Serial,
		Streams:   h.Streams,
		FrameSize: h.FrameSize,
	})
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func toInt(v interface{}) int {
	out, ok := v.(int)
	if !ok {
		return 0
	}
	return out
}

func toStr(v interface{}) string {
	switch out := v.(type) {
	case string:
		return out
	case int:
		// Serial numbers are often all digits.
		return strconv.Itoa(out)
	}
	return ""
}
