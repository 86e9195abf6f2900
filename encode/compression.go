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
	"fmt"
	"image/png"
	"strings"
)

// Compression is a PNG compression level. The zero value is the
// encoder's default level.
type Compression png.CompressionLevel

const (
	DefaultCompression = Compression(png.DefaultCompression)
	NoCompression      = Compression(png.NoCompression)
	BestSpeed          = Compression(png.BestSpeed)
	BestCompression    = Compression(png.BestCompression)
)

var compressionNames = map[Compression]string{
	DefaultCompression: "default",
	NoCompression:      "none",
	BestSpeed:          "best-speed",
	BestCompression:    "best-compression",
}

// ParseCompression parses a compression level name: "default", "none",
// "best-speed" or "best-compression".
func ParseCompression(s string) (Compression, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range compressionNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unsupported png compression %q", s)
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

func (c *Compression) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseCompression(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Compression) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}
