// File: core/tick/converter.go
// Package tick converts elapsed wall-clock time into logical timer ticks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The conversion consumes elapsed microseconds in bounded chunks so that
// the intermediate multiplication never overflows a 32-bit integer, while
// keeping multiply-before-divide ordering so that low rates do not lose
// precision. The sub-tick remainder of each call is carried forward, so
// splitting a duration across calls yields the same tick total as
// converting it whole, within one tick.

package tick

import (
	"errors"
	"math"
)

const (
	// prescale divides the rate once up front; scaleDiv folds the
	// remaining 10^4 back out after the multiply. Together they apply
	// rate/10^6 ticks per microsecond without overflow.
	prescale = 100
	scaleDiv = 10000
)

// ErrRateTooLow reports a tick rate below the prescale resolution.
var ErrRateTooLow = errors.New("tick rate below 100 ticks per second")

// Converter scales elapsed microseconds into logical ticks at a fixed
// rate. Not safe for concurrent use; the driver owns its converter.
type Converter struct {
	step int64 // rate / prescale: ticks per 10^4 microseconds
	acc  int64 // carried remainder in step-scaled units, < scaleDiv
}

// NewConverter builds a converter for rate ticks per second.
func NewConverter(rate int) (*Converter, error) {
	if rate < prescale {
		return nil, ErrRateTooLow
	}
	return &Converter{step: int64(rate) / prescale}, nil
}

// Next consumes at most one overflow-safe chunk from the remaining
// elapsed time. It returns the microseconds consumed and the tick batch
// they amount to; callers loop until the duration is spent. A zero or
// negative duration consumes nothing.
func (c *Converter) Next(usec int64) (consumed, ticks int64) {
	if usec <= 0 {
		return 0, 0
	}
	chunk := usec
	if limit := int64(math.MaxInt32) / c.step; chunk > limit {
		chunk = limit
	}
	c.acc += chunk * c.step
	ticks = c.acc / scaleDiv
	c.acc %= scaleDiv
	return chunk, ticks
}

// Ticks converts an entire duration at once, chunk by chunk.
func (c *Converter) Ticks(usec int64) int64 {
	var total int64
	for usec > 0 {
		consumed, n := c.Next(usec)
		usec -= consumed
		total += n
	}
	return total
}

// Reset discards the carried remainder.
func (c *Converter) Reset() {
	c.acc = 0
}
