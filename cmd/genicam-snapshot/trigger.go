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
	"strings"
	"sync"
	"time"

	"github.com/TheCacophonyProject/genicam-snapshot/loglimiter"
	"github.com/TheCacophonyProject/genicam-snapshot/throttle"
)

const (
	triggerSingle     = "single"
	triggerContinuous = "continuous"
	triggerStop       = "stop"
)

func parseTrigger(s string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(s))
	switch mode {
	case triggerSingle, triggerContinuous, triggerStop:
		return mode, nil
	}
	return "", fmt.Errorf("unsupported trigger %q, only single, continuous or stop are supported", s)
}

type snapshotTaker interface {
	Take() (string, error)
}

// trigger decides when snapshots are taken. A single trigger takes one
// snapshot straight away. A continuous trigger takes one every
// interval, while the schedule is active and the throttler allows it,
// until the trigger is set to stop.
type trigger struct {
	mu         sync.Mutex
	mode       string
	interval   time.Duration
	taker      snapshotTaker
	schedule   schedule
	throttler  *throttle.Throttler
	logLimiter *loglimiter.LogLimiter
	stop       chan struct{}
	done       chan struct{}
}

func newTrigger(
	taker snapshotTaker,
	interval time.Duration,
	sched schedule,
	throttler *throttle.Throttler,
) *trigger {
	return &trigger{
		mode:       triggerStop,
		interval:   interval,
		taker:      taker,
		schedule:   sched,
		throttler:  throttler,
		logLimiter: loglimiter.New(10 * time.Minute),
	}
}

func (t *trigger) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Set changes the trigger mode. A single snapshot does not stop
// continuous capture.
func (t *trigger) Set(s string) error {
	mode, err := parseTrigger(s)
	if err != nil {
		return err
	}

	switch mode {
	case triggerSingle:
		_, err := t.taker.Take()
		return err
	case triggerStop:
		t.stopContinuous()
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return nil
	}
	log.Printf("starting continuous snapshots every %s", t.interval)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	t.mode = triggerContinuous
	go t.run(t.stop, t.done)
	return nil
}

func (t *trigger) stopContinuous() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mode = triggerStop
	t.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
		log.Print("continuous snapshots stopped")
	}
}

func (t *trigger) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		t.tick()
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (t *trigger) tick() {
	if t.schedule != nil && !t.schedule.Active() {
		t.logLimiter.Print("outside of snapshot window")
		return
	}
	if !t.throttler.Allow() {
		return
	}
	if _, err := t.taker.Take(); err != nil {
		t.logLimiter.Printf("continuous snapshot failed: %v", err)
	}
}
