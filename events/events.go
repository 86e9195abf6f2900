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

// Package events queues snapshot events with the Cacophony event
// reporter over D-Bus.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/godbus/dbus"

	"github.com/TheCacophonyProject/genicam-snapshot/encode"
)

const (
	SnapshotType       = "genicamSnapshot"
	SnapshotFailedType = "genicamSnapshotFailed"
	ThrottleType       = "genicamSnapshotThrottle"
)

// QueueFunc hands serialised event details to the event service.
type QueueFunc func(details []byte, nanos int64) error

// Recorder queues events. Failures to queue are logged, never
// returned, so they cannot interfere with taking snapshots.
type Recorder struct {
	queue QueueFunc
	now   func() time.Time
}

// NewRecorder returns a Recorder that queues events on the system bus.
func NewRecorder() *Recorder {
	return NewRecorderWithQueue(dbusQueue)
}

func NewRecorderWithQueue(queue QueueFunc) *Recorder {
	return &Recorder{queue: queue, now: time.Now}
}

// Snapshot records a saved image.
func (r *Recorder) Snapshot(fileName string, format encode.Format, size int) {
	r.record(SnapshotType, map[string]interface{}{
		"file":     fileName,
		"format":   format.String(),
		"mimeType": format.MIMEType(),
		"size":     size,
	})
}

// SnapshotFailed records an acquisition that produced no image.
func (r *Recorder) SnapshotFailed(outcome string, err error) {
	r.record(SnapshotFailedType, map[string]interface{}{
		"outcome": outcome,
		"error":   err.Error(),
	})
}

// WhenThrottled implements throttle.ThrottledEventListener.
func (r *Recorder) WhenThrottled() {
	r.record(ThrottleType, nil)
}

func (r *Recorder) record(eventType string, details map[string]interface{}) {
	description := map[string]interface{}{
		"type": eventType,
	}
	if details != nil {
		description["details"] = details
	}
	detailsJSON, err := json.Marshal(map[string]interface{}{
		"description": description,
	})
	if err != nil {
		log.Printf("Could not record %s event: %s", eventType, err)
		return
	}
	if err := r.queue(detailsJSON, r.now().UnixNano()); err != nil {
		log.Printf("Could not record %s event: %s", eventType, err)
	}
}

func dbusQueue(details []byte, nanos int64) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	obj := conn.Object("org.cacophony.Events", "/org/cacophony/Events")
	return obj.Call("org.cacophony.Events.Queue", 0, details, nanos).Err
}
