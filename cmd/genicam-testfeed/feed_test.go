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
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
	"github.com/TheCacophonyProject/genicam-snapshot/encode"
	"github.com/TheCacophonyProject/genicam-snapshot/framesock"
	"github.com/TheCacophonyProject/genicam-snapshot/layout"
)

func TestFrameGradient(t *testing.T) {
	f := &feed{pixelFormat: layout.Mono8, width: 3, height: 2, xPadding: 1}
	buf := f.frame(5)
	assert.Equal(t, []byte{5, 6, 7, 0, 6, 7, 8, 0}, buf.Frame.Pix)
	assert.False(t, buf.Incomplete)
	assert.True(t, buf.ImagePresent)
	assert.Equal(t, 8, f.header().FrameSize)
}

func TestFrameIncompleteEvery(t *testing.T) {
	f := &feed{pixelFormat: layout.Mono8, width: 1, height: 1, incompleteEvery: 3}
	var incomplete []int
	for n := 0; n < 7; n++ {
		if f.frame(n).Incomplete {
			incomplete = append(incomplete, n)
		}
	}
	assert.Equal(t, []int{2, 5}, incomplete)
}

func TestNewFeed(t *testing.T) {
	f, err := newFeed(Args{PixelFormat: "YUV422_8", Width: 8, Height: 4, FPS: 10})
	require.NoError(t, err)
	assert.Equal(t, layout.YUV422_8, f.pixelFormat)
	assert.Equal(t, 100*time.Millisecond, f.interval)

	_, err = newFeed(Args{PixelFormat: "Mono7"})
	assert.Error(t, err)
}

func startFeed(t *testing.T, f *feed) string {
	path := filepath.Join(t.TempDir(), "frames.sock")
	listener, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })
	go acceptLoop(listener, f)
	return path
}

func TestAcquireFromFeed(t *testing.T) {
	f := &feed{pixelFormat: layout.Mono8, width: 4, height: 2, interval: time.Millisecond}
	path := startFeed(t, f)

	header, err := framesock.New(path).Probe()
	require.NoError(t, err)
	assert.Equal(t, "testfeed", header.Model)

	img, err := acquire.Acquire(framesock.New(path), encode.PNM, acquire.WindowRequest{}, acquire.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "P5\n4 2\n255\n\x00\x01\x02\x03\x01\x02\x03\x04", string(img.Data))
}

func TestAcquireFromIncompleteFeed(t *testing.T) {
	f := &feed{pixelFormat: layout.Mono8, width: 4, height: 2, incompleteEvery: 1, interval: time.Millisecond}
	path := startFeed(t, f)

	conf := acquire.Config{Retries: 3, Timeout: time.Second}
	_, err := acquire.Acquire(framesock.New(path), encode.PNM, acquire.WindowRequest{}, conf)
	assert.Equal(t, acquire.ErrNoImages, err)
}
