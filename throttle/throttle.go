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

package throttle

import (
	"log"
	"sync"
	"time"

	"github.com/juju/ratelimit"
)

// Config sizes the snapshot token bucket: at most BucketSize snapshots
// back to back, then one more per RefillInterval.
type Config struct {
	BucketSize     int64         `yaml:"bucket-size"`
	RefillInterval time.Duration `yaml:"refill-interval"`
}

func DefaultConfig() Config {
	return Config{
		BucketSize:     10,
		RefillInterval: time.Minute,
	}
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

// Throttler stops continuous capture from taking snapshots faster than
// its bucket allows. The listener hears about each period of
// throttling once.
type Throttler struct {
	mu        sync.Mutex
	bucket    *ratelimit.Bucket
	listener  ThrottledEventListener
	throttled bool
}

func New(conf Config, listener ThrottledEventListener) *Throttler {
	return NewWithClock(conf, listener, new(realClock))
}

func NewWithClock(conf Config, listener ThrottledEventListener, clock ratelimit.Clock) *Throttler {
	if listener == nil {
		listener = new(nullListener)
	}
	return &Throttler{
		bucket:   ratelimit.NewBucketWithClock(conf.RefillInterval, conf.BucketSize, clock),
		listener: listener,
	}
}

// Allow takes a token if one is available.
func (t *Throttler) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bucket.TakeAvailable(1) > 0 {
		if t.throttled {
			log.Print("snapshots resumed after throttling")
		}
		t.throttled = false
		return true
	}
	if !t.throttled {
		log.Print("snapshots throttled")
		t.throttled = true
		t.listener.WhenThrottled()
	}
	return false
}

// Available returns the number of snapshots that can be taken now.
func (t *Throttler) Available() int64 {
	return t.bucket.Available()
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
