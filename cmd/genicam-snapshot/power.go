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
	"log"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

const (
	powerOffTime      = 2 * time.Second
	cameraStartupTime = 8 * time.Second
)

type powerCycler interface {
	Cycle() error
}

// gpioPower switches the camera's supply through a GPIO pin.
type gpioPower struct {
	pinName     string
	initialised bool
}

func newPowerCycler(pinName string) powerCycler {
	return &gpioPower{pinName: pinName}
}

func (p *gpioPower) Cycle() error {
	if p.pinName == "" {
		return nil
	}
	if !p.initialised {
		log.Print("host initialisation")
		if _, err := host.Init(); err != nil {
			return err
		}
		p.initialised = true
	}

	pin := gpioreg.ByName(p.pinName)
	if pin == nil {
		return fmt.Errorf("unknown camera power pin %q", p.pinName)
	}

	log.Print("turning camera power off")
	if err := pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to set camera power pin low: %v", err)
	}
	time.Sleep(powerOffTime)

	log.Print("turning camera power on")
	if err := pin.Out(gpio.High); err != nil {
		return fmt.Errorf("failed to set camera power pin high: %v", err)
	}

	log.Print("waiting for camera startup")
	time.Sleep(cameraStartupTime)
	log.Print("camera should be ready")
	return nil
}
