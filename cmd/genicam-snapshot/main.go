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
	"io/ioutil"
	"log"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/TheCacophonyProject/genicam-snapshot/encode"
	"github.com/TheCacophonyProject/genicam-snapshot/events"
	"github.com/TheCacophonyProject/genicam-snapshot/framesock"
	"github.com/TheCacophonyProject/genicam-snapshot/throttle"
)

const watchdogInterval = 10 * time.Second

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	Once       bool   `arg:"--once" help:"take one snapshot and exit"`
	Format     string `arg:"-f,--format" help:"image format for --once (jpeg, png or pnm)"`
	Output     string `arg:"-o,--output" help:"where to write the --once snapshot"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/genicam-snapshot.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	logConfig(conf)

	devConf, err := loadDeviceConfig(conf.DeviceConfigDir)
	if err != nil {
		log.Printf("failed to load device config, using defaults: %v", err)
		devConf = new(deviceConfig)
	}
	log.Printf("device name: %s", devConf.identity.prefix())

	camera := framesock.New(conf.FrameInput)
	if header, err := camera.Probe(); err != nil {
		log.Printf("camera bridge not available yet: %v", err)
	} else {
		log.Printf("camera: %s %s (serial %s), %d stream(s)",
			header.Brand, header.Model, header.Serial, header.Streams)
	}

	recorder := events.NewRecorder()
	snap := newSnapshotter(conf, camera, devConf.identity, recorder, newPowerCycler(conf.PowerPin))

	if args.Once {
		return takeOnce(snap, args)
	}

	sched, err := newSchedule(conf.Continuous, devConf)
	if err != nil {
		return err
	}
	throttler := throttle.New(conf.Continuous.Throttle, recorder)
	trig := newTrigger(snap, conf.Continuous.Interval, sched, throttler)

	log.Println("starting d-bus service")
	if err := startService(snap, trig); err != nil {
		return err
	}

	daemon.SdNotify(false, "READY=1")
	for {
		daemon.SdNotify(false, "WATCHDOG=1")
		time.Sleep(watchdogInterval)
	}
}

func takeOnce(snap *snapshotter, args Args) error {
	format := snap.Format()
	if args.Format != "" {
		var err error
		if format, err = encode.ParseFormat(args.Format); err != nil {
			return err
		}
	}
	if args.Output == "" {
		filename, err := snap.TakeAs(format)
		if err != nil {
			return err
		}
		log.Printf("snapshot written to %s", filename)
		return nil
	}

	img, err := snap.acquire(format)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(args.Output, img.Data, 0644); err != nil {
		return err
	}
	log.Printf("snapshot written to %s (%d bytes)", args.Output, len(img.Data))
	return snap.uploader.Upload(img)
}

func logConfig(conf *Config) {
	log.Printf("frame input: %s", conf.FrameInput)
	log.Printf("output dir: %s", conf.OutputDir)
	log.Printf("image format: %s", conf.ImageFormat)
	log.Printf("crop: %+v", conf.Crop)
	log.Printf("acquisition: %d retries, %s timeout, png compression %s",
		conf.Acquisition.Retries, conf.Acquisition.Timeout, conf.Acquisition.PNGCompression)
	if conf.Upload.URL != "" {
		log.Printf("upload url: %s", conf.Upload.URL)
	}
	log.Printf("continuous: %+v", conf.Continuous)
	if conf.PowerPin != "" {
		log.Printf("power pin: %s", conf.PowerPin)
	}
}
