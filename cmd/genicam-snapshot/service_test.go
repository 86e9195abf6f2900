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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/genicam-snapshot/encode"
)

func newTestService(t *testing.T) *service {
	snap, _, _ := newTestSnapshotter(t, new(fakeCamera))
	return &service{
		snapshotter: snap,
		trigger:     newTestTrigger(snap, nil, 5),
	}
}

func TestServiceImageFormat(t *testing.T) {
	s := newTestService(t)

	format, dErr := s.GetImageFormat()
	require.Nil(t, dErr)
	assert.Equal(t, "pnm", format)

	require.Nil(t, s.SetImageFormat("JPG"))
	assert.Equal(t, encode.JPEG, s.snapshotter.Format())

	dErr = s.SetImageFormat("gif")
	require.NotNil(t, dErr)
	assert.Equal(t, dbusName+".SetImageFormat", dErr.Name)
	assert.Equal(t, encode.JPEG, s.snapshotter.Format())
}

func TestServiceTakeSnapshot(t *testing.T) {
	s := newTestService(t)

	filename, dErr := s.TakeSnapshot()
	require.Nil(t, dErr)
	assert.Contains(t, filename, ".pnm")

	filename, dErr = s.TakeSnapshotAs("png")
	require.Nil(t, dErr)
	assert.Contains(t, filename, ".png")

	_, dErr = s.TakeSnapshotAs("tiff")
	assert.NotNil(t, dErr)
}

func TestServiceTrigger(t *testing.T) {
	s := newTestService(t)

	mode, dErr := s.GetTrigger()
	require.Nil(t, dErr)
	assert.Equal(t, "stop", mode)

	require.Nil(t, s.SetTrigger("single"))
	assert.NotNil(t, s.SetTrigger("sometimes"))
}

func TestServiceImageURL(t *testing.T) {
	s := newTestService(t)

	require.Nil(t, s.SetImageURL("http://localhost:8080/image"))
	url, dErr := s.GetImageURL()
	require.Nil(t, dErr)
	assert.Equal(t, "http://localhost:8080/image", url)

	assert.NotNil(t, s.SetImageURL("localhost"))
}
