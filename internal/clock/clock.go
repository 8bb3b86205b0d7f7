// Package clock provides a cached coarse time source for hot loops.
//
// The stress driver checks its run deadline on every table operation;
// calling time.Now there would dominate the measured cost. The cached
// value is refreshed every millisecond, which is plenty for deadline
// checks on runs measured in seconds.
package clock

import (
	"sync/atomic"
	"time"
)

var cachedNano atomic.Int64

func init() {
	cachedNano.Store(time.Now().UnixNano())
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		for range ticker.C {
			cachedNano.Store(time.Now().UnixNano())
		}
	}()
}

// NowNano returns the cached time in Unix nanoseconds, up to 1ms stale.
func NowNano() int64 {
	return cachedNano.Load()
}

// Now returns the cached time as time.Time, up to 1ms stale.
func Now() time.Time {
	return time.Unix(0, cachedNano.Load())
}
