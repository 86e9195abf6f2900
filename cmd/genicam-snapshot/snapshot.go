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
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
	"github.com/TheCacophonyProject/genicam-snapshot/encode"
)

const snapshotTempExt = ".temp"

type eventRecorder interface {
	Snapshot(fileName string, format encode.Format, size int)
	SnapshotFailed(outcome string, err error)
}

// snapshotter takes one snapshot at a time from the camera, saves it
// to the output directory and uploads it.
type snapshotter struct {
	mu       sync.Mutex
	acquirer *acquire.Acquirer
	camera   acquire.Device
	crop     acquire.WindowRequest
	dir      string
	identity deviceIdentity
	uploader *uploader
	events   eventRecorder
	power    powerCycler
	now      func() time.Time

	formatMu sync.Mutex
	format   encode.Format
}

func newSnapshotter(
	conf *Config,
	camera acquire.Device,
	identity deviceIdentity,
	events eventRecorder,
	power powerCycler,
) *snapshotter {
	return &snapshotter{
		acquirer: acquire.New(conf.Acquisition),
		camera:   camera,
		crop:     conf.Crop,
		dir:      conf.OutputDir,
		identity: identity,
		uploader: newUploader(conf.Upload),
		events:   events,
		power:    power,
		now:      time.Now,
		format:   conf.ImageFormat,
	}
}

func (s *snapshotter) Format() encode.Format {
	s.formatMu.Lock()
	defer s.formatMu.Unlock()
	return s.format
}

func (s *snapshotter) SetFormat(format encode.Format) {
	s.formatMu.Lock()
	defer s.formatMu.Unlock()
	s.format = format
}

// Take takes a snapshot in the current format.
func (s *snapshotter) Take() (string, error) {
	return s.TakeAs(s.Format())
}

// TakeAs takes a snapshot in the given format and returns the path it
// was saved to.
func (s *snapshotter) TakeAs(format encode.Format) (string, error) {
	img, err := s.acquire(format)
	if err != nil {
		return "", err
	}

	filename, err := s.save(img)
	if err != nil {
		return "", err
	}
	log.Printf("snapshot saved: %s (%d bytes)", filename, len(img.Data))
	s.events.Snapshot(filepath.Base(filename), format, len(img.Data))

	if err := s.uploader.Upload(img); err != nil {
		return filename, err
	}
	return filename, nil
}

func (s *snapshotter) acquire(format encode.Format) (*acquire.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.acquirer.Acquire(s.camera, format, s.crop)
	if err == nil {
		return img, nil
	}

	outcome := acquire.Classify(err)
	log.Printf("snapshot failed (%s): %v", outcome, err)
	s.events.SnapshotFailed(outcome.String(), err)
	if outcome == acquire.DeviceFailure {
		if err := s.power.Cycle(); err != nil {
			log.Printf("camera power cycle failed: %v", err)
		}
	}
	return nil, err
}

// save writes the image under a temporary name first so that nothing
// watching the directory sees a partial file.
func (s *snapshotter) save(img *acquire.Image) (string, error) {
	filename := filepath.Join(s.dir, s.fileName(img.Format))
	tempName := filename + snapshotTempExt
	if err := ioutil.WriteFile(tempName, img.Data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tempName, filename); err != nil {
		os.Remove(tempName)
		return "", err
	}
	return filename, nil
}

func (s *snapshotter) fileName(format encode.Format) string {
	ts := s.now().Format("20060102-150405.000")
	return fmt.Sprintf("%s-%s.%s", s.identity.prefix(), ts, format.Ext())
}
