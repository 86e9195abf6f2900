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

// Package acquire grabs a single frame from a camera stream and
// encodes it, retrying over incomplete buffers.
package acquire

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/encode"
	"github.com/TheCacophonyProject/genicam-snapshot/loglimiter"
)

const (
	DefaultRetries = 10
	DefaultTimeout = 3000 * time.Millisecond
)

// Config bounds an acquisition. Worst case an acquisition blocks for
// Retries * Timeout.
type Config struct {
	Retries        int                `yaml:"retries"`
	Timeout        time.Duration      `yaml:"timeout"`
	MaxImageBytes  uint64             `yaml:"max-image-bytes"`
	PNGCompression encode.Compression `yaml:"png-compression"`
}

// DefaultConfig returns the default acquisition settings.
func DefaultConfig() Config {
	return Config{
		Retries:       DefaultRetries,
		Timeout:       DefaultTimeout,
		MaxImageBytes: encode.DefaultMaxBytes,
	}
}

// WindowRequest selects the rows to encode. A Height of 0 means all
// rows from YOffset on. Requests are clamped to the frame.
type WindowRequest struct {
	YOffset uint32 `yaml:"y-offset"`
	Height  uint32 `yaml:"height"`
}

// Image is an encoded image. The caller owns Data.
type Image struct {
	Format encode.Format
	Data   []byte
}

// Stats counts what happened during the last acquisition.
type Stats struct {
	Attempts   int
	Received   int
	Incomplete int
}

// Acquirer runs acquisitions. It must not be used by more than one
// goroutine at a time.
type Acquirer struct {
	conf       Config
	encoder    *encode.Encoder
	logLimiter *loglimiter.LogLimiter
	stats      Stats
}

// New returns an Acquirer using conf. Zero fields take their defaults.
func New(conf Config) *Acquirer {
	def := DefaultConfig()
	if conf.Retries <= 0 {
		conf.Retries = def.Retries
	}
	if conf.Timeout <= 0 {
		conf.Timeout = def.Timeout
	}
	if conf.MaxImageBytes == 0 {
		conf.MaxImageBytes = def.MaxImageBytes
	}
	encoder := &encode.Encoder{
		MaxBytes:       conf.MaxImageBytes,
		PNGCompression: conf.PNGCompression,
	}
	return &Acquirer{
		conf:       conf,
		encoder:    encoder,
		logLimiter: loglimiter.New(time.Minute),
	}
}

// Acquire is a convenience for New(conf).Acquire(dev, format, win).
func Acquire(dev Device, format encode.Format, win WindowRequest, conf Config) (*Image, error) {
	return New(conf).Acquire(dev, format, win)
}

// Stats returns the counters of the last acquisition.
func (a *Acquirer) Stats() Stats {
	return a.stats
}

// Acquire grabs from the first stream of dev until a frame encodes,
// the retry budget runs out or an unrecoverable error occurs. Once the
// stream has been opened it is stopped and closed exactly once,
// whatever the outcome.
func (a *Acquirer) Acquire(dev Device, format encode.Format, win WindowRequest) (*Image, error) {
	a.stats = Stats{}

	streams, err := dev.Streams()
	if err != nil {
		return nil, &DeviceError{Msg: "cannot get streams", Err: err}
	}
	if len(streams) == 0 {
		return nil, ErrNoStreams
	}
	stream := streams[0]

	if err := stream.Open(); err != nil {
		return nil, &DeviceError{Msg: "cannot open stream", Err: err}
	}
	defer release(stream)

	if err := stream.AttachBuffers(); err != nil {
		return nil, &DeviceError{Msg: "cannot attach stream buffers", Err: err}
	}
	if err := stream.StartStreaming(); err != nil {
		return nil, &DeviceError{Msg: "cannot start streaming", Err: err}
	}

	img, err := a.grab(stream, format, win)
	log.Printf("acquisition finished: %d attempts, %d received, %d incomplete",
		a.stats.Attempts, a.stats.Received, a.stats.Incomplete)
	return img, err
}

func (a *Acquirer) grab(stream Stream, format encode.Format, win WindowRequest) (*Image, error) {
	for budget := a.conf.Retries; budget > 0; budget-- {
		a.stats.Attempts++
		buf, err := stream.Grab(a.conf.Timeout)
		if err != nil || buf == nil {
			return nil, &DeviceError{Msg: "cannot grab images", Err: err}
		}
		if buf.Incomplete || !buf.ImagePresent {
			a.stats.Incomplete++
			a.logLimiter.Print("incomplete buffer received")
			continue
		}

		frame := buf.Frame
		data, err := a.encoder.Encode(format, &frame, frame.Window(win.YOffset, win.Height))
		switch {
		case err == nil && len(data) > 0:
			a.stats.Received++
			return &Image{Format: format, Data: data}, nil
		case err == nil || err == encode.ErrNoImage:
			a.stats.Incomplete++
			a.logLimiter.Print("buffer holds no complete image")
		case Classify(err) == DeviceFailure:
			return nil, &DeviceError{Msg: "cannot encode image", Err: err}
		default:
			return nil, errors.Wrapf(err, "encoding %s frame as %s", frame.PixelFormat, format)
		}
	}
	return nil, ErrNoImages
}

func release(stream Stream) {
	if err := stream.StopStreaming(); err != nil {
		log.Printf("failed to stop streaming: %v", err)
	}
	if err := stream.Close(); err != nil {
		log.Printf("failed to close stream: %v", err)
	}
}
