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
	"log"
	"net"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

var version = "<not set>"

type Args struct {
	Socket          string `arg:"-s,--socket" help:"unix socket to serve frames on"`
	PixelFormat     string `arg:"-p,--pixel-format" help:"PFNC pixel format name"`
	Width           uint32 `arg:"--width"`
	Height          uint32 `arg:"--height"`
	XPadding        uint32 `arg:"--x-padding" help:"padding bytes at the end of each row"`
	BigEndian       bool   `arg:"--big-endian" help:"mark multi-byte pixels as big endian"`
	FPS             int    `arg:"--fps"`
	IncompleteEvery int    `arg:"--incomplete-every" help:"mark every nth frame as incomplete"`
	Timestamps      bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	args := Args{
		Socket:      "/var/run/genicam-frames",
		PixelFormat: "Mono8",
		Width:       640,
		Height:      480,
		FPS:         5,
	}
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
		log.SetFlags(0)
	}

	f, err := newFeed(args)
	if err != nil {
		return err
	}
	log.Printf("serving %dx%d %s frames at %d fps on %s",
		f.width, f.height, f.pixelFormat, args.FPS, args.Socket)

	os.Remove(args.Socket)
	listener, err := net.Listen("unix", args.Socket)
	if err != nil {
		return err
	}
	defer listener.Close()
	return acceptLoop(listener, f)
}

func newFeed(args Args) (*feed, error) {
	pf, err := layout.ParsePixelFormat(args.PixelFormat)
	if err != nil {
		return nil, err
	}
	fps := args.FPS
	if fps < 1 {
		fps = 1
	}
	return &feed{
		pixelFormat:     pf,
		width:           args.Width,
		height:          args.Height,
		xPadding:        args.XPadding,
		bigEndian:       args.BigEndian,
		incompleteEvery: args.IncompleteEvery,
		interval:        time.Second / time.Duration(fps),
	}, nil
}

func acceptLoop(listener net.Listener, f *feed) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go func() {
			if err := f.serve(conn); err != nil {
				log.Printf("connection ended with: %v", err)
			}
		}()
	}
}
