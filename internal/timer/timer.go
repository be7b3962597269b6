// Package timer implements the 60 Hz delay and sound timers.
package timer

import (
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Rate is the timer decrement frequency in Hz.
const Rate = 60

// Period is the duration of a single timer tick.
const Period = time.Second / Rate

// Tick decrements the delay and sound timers if they are nonzero. It returns
// true if the sound timer transitioned from 1 to 0 with this tick, which
// signals the end of a tone.
func Tick(state *machine.State) bool {
	if state.DelayTimer > 0 {
		state.DelayTimer--
	}
	if state.SoundTimer == 0 {
		return false
	}
	state.SoundTimer--
	return state.SoundTimer == 0
}

// Sounding returns whether a tone should currently be played.
func Sounding(state *machine.State) bool {
	return state.SoundTimer > 0
}

// Clock converts elapsed wall clock time into a number of due timer ticks,
// independent of the instruction rate.
type Clock struct {
	pending time.Duration
}

// Advance adds the elapsed time and returns the number of ticks that are due.
// The remainder is carried over to the next call.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	c.pending += elapsed
	ticks := int(c.pending / Period)
	c.pending -= time.Duration(ticks) * Period
	return ticks
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.pending = 0
}
