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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/genicam-snapshot/throttle"
)

type countingTaker struct {
	mu    sync.Mutex
	n     int
	err   error
	taken chan struct{}
}

func newCountingTaker() *countingTaker {
	return &countingTaker{taken: make(chan struct{}, 10)}
}

func (c *countingTaker) Take() (string, error) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
	select {
	case c.taken <- struct{}{}:
	default:
	}
	return "snap.jpg", c.err
}

func (c *countingTaker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type fixedSchedule bool

func (s fixedSchedule) Active() bool { return bool(s) }

func newTestTrigger(taker snapshotTaker, sched schedule, bucket int64) *trigger {
	throttler := throttle.New(throttle.Config{BucketSize: bucket, RefillInterval: time.Hour}, nil)
	return newTrigger(taker, time.Hour, sched, throttler)
}

func TestParseTrigger(t *testing.T) {
	mode, err := parseTrigger(" Continuous ")
	require.NoError(t, err)
	assert.Equal(t, triggerContinuous, mode)

	_, err = parseTrigger("sometimes")
	assert.Error(t, err)
}

func TestSingleTriggerKeepsMode(t *testing.T) {
	taker := newCountingTaker()
	trig := newTestTrigger(taker, nil, 5)

	require.NoError(t, trig.Set("single"))
	assert.Equal(t, 1, taker.count())
	assert.Equal(t, triggerStop, trig.Mode())
}

func TestSingleTriggerReturnsError(t *testing.T) {
	taker := newCountingTaker()
	taker.err = errors.New("no images received")
	trig := newTestTrigger(taker, nil, 5)
	assert.Error(t, trig.Set("single"))
}

func TestBadTrigger(t *testing.T) {
	trig := newTestTrigger(newCountingTaker(), nil, 5)
	assert.Error(t, trig.Set("twice"))
	assert.Equal(t, triggerStop, trig.Mode())
}

func TestContinuousStartStop(t *testing.T) {
	taker := newCountingTaker()
	trig := newTestTrigger(taker, nil, 5)

	require.NoError(t, trig.Set("continuous"))
	assert.Equal(t, triggerContinuous, trig.Mode())
	// Starting again is a no-op.
	require.NoError(t, trig.Set("continuous"))

	select {
	case <-taker.taken:
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot taken after starting continuous trigger")
	}

	require.NoError(t, trig.Set("stop"))
	assert.Equal(t, triggerStop, trig.Mode())
	assert.Equal(t, 1, taker.count())

	// Stopping twice is fine.
	require.NoError(t, trig.Set("stop"))
}

func TestTickOutsideSchedule(t *testing.T) {
	taker := newCountingTaker()
	trig := newTestTrigger(taker, fixedSchedule(false), 5)

	trig.tick()
	trig.tick()
	assert.Equal(t, 0, taker.count())
}

func TestTickThrottled(t *testing.T) {
	taker := newCountingTaker()
	trig := newTestTrigger(taker, fixedSchedule(true), 2)

	for i := 0; i < 5; i++ {
		trig.tick()
	}
	assert.Equal(t, 2, taker.count())
}
