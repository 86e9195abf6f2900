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
	"strings"
)

// Format is an output image container.
type Format int

const (
	PNM Format = iota
	PNG
	JPEG
)

// ParseFormat parses a container name as used in configuration and on
// the D-Bus interface: "pnm", "png" or "jpeg" ("jpg" is accepted too).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pnm":
		return PNM, nil
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return 0, fmt.Errorf("unsupported image format %q, only jpeg, png or pnm are supported", s)
}

func (f Format) String() string {
	switch f {
	case PNM:
		return "pnm"
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file name extension for the format, without a dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "image/x-portable-anymap"
}

// UnmarshalYAML allows formats to be given by name in YAML files.
func (f *Format) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML writes the format name.
func (f Format) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}
