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
	"errors"
	"io/ioutil"
	"net/url"
	"time"

	goconfig "github.com/TheCacophonyProject/go-config"
	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
	"github.com/TheCacophonyProject/genicam-snapshot/encode"
	"github.com/TheCacophonyProject/genicam-snapshot/throttle"
)

type Config struct {
	FrameInput      string                `yaml:"frame-input"`
	OutputDir       string                `yaml:"output-dir"`
	ImageFormat     encode.Format         `yaml:"image-format"`
	Crop            acquire.WindowRequest `yaml:"crop"`
	Acquisition     acquire.Config        `yaml:"acquisition"`
	Upload          UploadConfig          `yaml:"upload"`
	Continuous      ContinuousConfig      `yaml:"continuous"`
	PowerPin        string                `yaml:"power-pin"`
	DeviceConfigDir string                `yaml:"device-config-dir"`
}

type UploadConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ContinuousConfig struct {
	Interval    time.Duration   `yaml:"interval"`
	Throttle    throttle.Config `yaml:",inline"`
	WindowStart string          `yaml:"window-start"`
	WindowEnd   string          `yaml:"window-end"`
}

var defaultConfig = Config{
	FrameInput:  "/var/run/genicam-frames",
	OutputDir:   "/var/spool/genicam-snapshot",
	ImageFormat: encode.JPEG,
	Acquisition: acquire.DefaultConfig(),
	Upload: UploadConfig{
		Timeout: 30 * time.Second,
	},
	Continuous: ContinuousConfig{
		Interval: time.Minute,
		Throttle: throttle.DefaultConfig(),
	},
	DeviceConfigDir: goconfig.DefaultConfigDir,
}

func (conf *Config) Validate() error {
	if conf.FrameInput == "" {
		return errors.New("frame-input must be set")
	}
	if conf.OutputDir == "" {
		return errors.New("output-dir must be set")
	}
	if conf.Acquisition.Retries < 1 {
		return errors.New("acquisition retries must be at least 1")
	}
	if conf.Acquisition.Timeout <= 0 {
		return errors.New("acquisition timeout must be positive")
	}
	if conf.Upload.URL != "" {
		if err := validateURL(conf.Upload.URL); err != nil {
			return err
		}
	}
	if conf.Continuous.Interval <= 0 {
		return errors.New("continuous interval must be positive")
	}
	if conf.Continuous.Throttle.BucketSize < 1 {
		return errors.New("continuous bucket-size must be at least 1")
	}
	if conf.Continuous.Throttle.RefillInterval <= 0 {
		return errors.New("continuous refill-interval must be positive")
	}
	if conf.Continuous.WindowStart != "" && conf.Continuous.WindowEnd == "" {
		return errors.New("window-start is set but window-end isn't")
	}
	if conf.Continuous.WindowStart == "" && conf.Continuous.WindowEnd != "" {
		return errors.New("window-end is set but window-start isn't")
	}
	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("upload url must be http or https")
	}
	return nil
}

func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}
