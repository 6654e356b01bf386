// This file is part of Eightbench.
//
// Eightbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Eightbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Eightbench.  If not, see <https://www.gnu.org/licenses/>.

package emulation

import (
	"time"
)

// Limiter paces the emulation to a requested number of frames per second. The
// emulation calls Wait() at the end of every frame.
type Limiter struct {
	// whether to wait for the ticker at the end of each frame
	limit bool

	// the requested number of frames per second
	requested float32

	// actual calculation
	actual         float32
	actualCt       int
	actualCtTarget int
	actualRefTime  time.Time

	// channels
	sync    chan bool
	reqRate chan time.Duration
	quit    chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// A rate of zero or less creates a limiter that never waits.
func NewLimiter(fps float32) *Limiter {
	lmtr := &Limiter{
		actualRefTime: time.Now(),
		sync:          make(chan bool),
		reqRate:       make(chan time.Duration),
		quit:          make(chan bool),
	}

	go func() {
		// new ticker with an arbitrary value. it'll get changed soon enough
		tck := time.NewTicker(time.Second)
		defer tck.Stop()

		for {
			select {
			case <-tck.C:
				select {
				case lmtr.sync <- true:

				// listen for rate changes while signalling the sync channel.
				// if we don't do this then setting the rate can deadlock
				case d := <-lmtr.reqRate:
					tck.Reset(d)

				case <-lmtr.quit:
					return
				}

			case d := <-lmtr.reqRate:
				tck.Reset(d)

			case <-lmtr.quit:
				return
			}
		}
	}()

	lmtr.SetRate(fps)

	return lmtr
}

// SetRate changes the requested number of frames per second. A rate of zero
// or less turns limiting off.
func (lmtr *Limiter) SetRate(fps float32) {
	lmtr.requested = fps
	lmtr.limit = fps > 0
	if !lmtr.limit {
		return
	}

	lmtr.reqRate <- time.Duration(float64(time.Second) / float64(fps))

	lmtr.actualCtTarget = max(int(fps)/2, 1)
	lmtr.actualCt = 0
	lmtr.actualRefTime = time.Now()
}

// Wait until it is time for the next frame. Returns immediately if limiting
// is turned off. The actual frame rate is measured whether or not limiting
// is on.
func (lmtr *Limiter) Wait() {
	if lmtr.limit {
		<-lmtr.sync
	}
	lmtr.measureActual()
}

// Actual returns the most recent measurement of the frame rate.
func (lmtr *Limiter) Actual() float32 {
	return lmtr.actual
}

// Stop the limiter's ticker. The limiter must not be used after Stop().
func (lmtr *Limiter) Stop() {
	close(lmtr.quit)
}

// called every frame to calculate the actual frame rate being achieved
func (lmtr *Limiter) measureActual() {
	if lmtr.actualCtTarget < 1 {
		lmtr.actualCtTarget = 1
	}

	lmtr.actualCt++
	if lmtr.actualCt >= lmtr.actualCtTarget {
		t := time.Now()
		lmtr.actual = float32(lmtr.actualCt) / float32(t.Sub(lmtr.actualRefTime).Seconds())

		// we'll be remeasuring every second or so. if actual is less than 1
		// however, we re-measure every frame
		if lmtr.actual > 1 {
			lmtr.actualCtTarget = int(lmtr.actual)
		} else {
			lmtr.actualCtTarget = 1
		}

		lmtr.actualRefTime = t
		lmtr.actualCt = 0
	}
}
