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

	goconfig "github.com/TheCacophonyProject/go-config"
	"github.com/TheCacophonyProject/window"
)

type deviceIdentity struct {
	ID   int
	Name string
}

// prefix is used to start snapshot file names.
func (d deviceIdentity) prefix() string {
	if d.Name != "" {
		return d.Name
	}
	if d.ID != 0 {
		return fmt.Sprintf("device-%d", d.ID)
	}
	return "genicam"
}

type deviceConfig struct {
	identity  deviceIdentity
	latitude  float64
	longitude float64
}

func loadDeviceConfig(dir string) (*deviceConfig, error) {
	configRW, err := goconfig.New(dir)
	if err != nil {
		return nil, err
	}

	var device goconfig.Device
	if err := configRW.Unmarshal(goconfig.DeviceKey, &device); err != nil {
		return nil, err
	}

	location := goconfig.DefaultWindowLocation()
	if err := configRW.Unmarshal(goconfig.LocationKey, &location); err != nil {
		return nil, err
	}

	return &deviceConfig{
		identity:  deviceIdentity{ID: device.ID, Name: device.Name},
		latitude:  float64(location.Latitude),
		longitude: float64(location.Longitude),
	}, nil
}

// schedule limits when continuous snapshots are taken.
type schedule interface {
	Active() bool
}

// newSchedule returns nil when no window is configured. Window times
// may be relative to sunrise and sunset, hence the location.
func newSchedule(conf ContinuousConfig, dev *deviceConfig) (schedule, error) {
	if conf.WindowStart == "" && conf.WindowEnd == "" {
		return nil, nil
	}
	w, err := window.New(conf.WindowStart, conf.WindowEnd, dev.latitude, dev.longitude)
	if err != nil {
		return nil, err
	}
	return w, nil
}
