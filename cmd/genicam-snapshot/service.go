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

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/TheCacophonyProject/genicam-snapshot/encode"
)

const (
	dbusName = "org.cacophony.genicamsnapshot"
	dbusPath = "/org/cacophony/genicamsnapshot"
)

type service struct {
	snapshotter *snapshotter
	trigger     *trigger
}

func startService(snap *snapshotter, trig *trigger) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		snapshotter: snap,
		trigger:     trig,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")

	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

func dbusErr(method string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + "." + method,
		Body: []interface{}{err.Error()},
	}
}

// TakeSnapshot takes a snapshot in the current image format and
// returns the file it was saved to.
func (s *service) TakeSnapshot() (string, *dbus.Error) {
	filename, err := s.snapshotter.Take()
	if err != nil {
		return "", dbusErr("TakeSnapshot", err)
	}
	return filename, nil
}

// TakeSnapshotAs takes a snapshot in the given format (jpeg, png or pnm).
func (s *service) TakeSnapshotAs(format string) (string, *dbus.Error) {
	f, err := encode.ParseFormat(format)
	if err != nil {
		return "", dbusErr("TakeSnapshotAs", err)
	}
	filename, err := s.snapshotter.TakeAs(f)
	if err != nil {
		return "", dbusErr("TakeSnapshotAs", err)
	}
	return filename, nil
}

func (s *service) SetImageFormat(format string) *dbus.Error {
	f, err := encode.ParseFormat(format)
	if err != nil {
		return dbusErr("SetImageFormat", err)
	}
	s.snapshotter.SetFormat(f)
	return nil
}

func (s *service) GetImageFormat() (string, *dbus.Error) {
	return s.snapshotter.Format().String(), nil
}

// SetTrigger takes a single snapshot, or starts or stops continuous
// snapshots.
func (s *service) SetTrigger(mode string) *dbus.Error {
	if err := s.trigger.Set(mode); err != nil {
		return dbusErr("SetTrigger", err)
	}
	return nil
}

func (s *service) GetTrigger() (string, *dbus.Error) {
	return s.trigger.Mode(), nil
}

// SetImageURL sets where snapshots are uploaded to. An empty url
// disables uploading.
func (s *service) SetImageURL(url string) *dbus.Error {
	if err := s.snapshotter.uploader.SetURL(url); err != nil {
		return dbusErr("SetImageURL", err)
	}
	return nil
}

func (s *service) GetImageURL() (string, *dbus.Error) {
	return s.snapshotter.uploader.URL(), nil
}
