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
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/convert"
	"github.com/TheCacophonyProject/genicam-snapshot/encode"
)

var (
	ErrNoStreams = errors.New("no stream available on device")
	ErrNoImages  = errors.New("no images received")
)

// DeviceError is a hard failure reported by the camera or its stream.
type DeviceError struct {
	Msg string
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Outcome classifies the result of an acquisition.
type Outcome int

const (
	Success Outcome = iota
	NoImages
	NoStreams
	AllocationFailure
	UnsupportedFormat
	DeviceFailure
)

var outcomeNames = map[Outcome]string{
	Success:           "success",
	NoImages:          "no images",
	NoStreams:         "no streams",
	AllocationFailure: "allocation failure",
	UnsupportedFormat: "unsupported format",
	DeviceFailure:     "device error",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Classify maps an error returned by Acquire to its Outcome. Errors
// from outside this package are treated as device failures.
func Classify(err error) Outcome {
	var unsupported *convert.UnsupportedFormatError
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrNoImages):
		return NoImages
	case errors.Is(err, ErrNoStreams):
		return NoStreams
	case errors.Is(err, encode.ErrAllocation):
		return AllocationFailure
	case errors.As(err, &unsupported):
		return UnsupportedFormat
	}
	return DeviceFailure
}
