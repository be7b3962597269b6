// Package keypad implements the 16 key hex keypad that CHIP-8 programs read.
package keypad

import "sync"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Reader is the read-only view of the keypad that the interpreter uses.
type Reader interface {
	// IsDown returns whether the hex key is currently held down.
	IsDown(key uint8) bool
	// LastPressed returns the most recently pressed hex key since the last
	// call and consumes the observation.
	LastPressed() (uint8, bool)
}

// Compile-time check to ensure State implements Reader.
var _ Reader = (*State)(nil)

// State holds the key states. It is safe for concurrent use, an input host
// goroutine can press and release keys while the interpreter reads them.
type State struct {
	mu          sync.Mutex
	down        [KeyCount]bool
	lastPressed uint8
	pressed     bool
}

// New returns a keypad with all keys released.
func New() *State {
	return &State{}
}

// Press marks the key as held down and records it as the last pressed key.
// Keys outside of 0-F are ignored.
func (s *State) Press(key uint8) {
	if key >= KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down[key] = true
	s.lastPressed = key
	s.pressed = true
}

// Release marks the key as up.
func (s *State) Release(key uint8) {
	if key >= KeyCount {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down[key] = false
}

// ReleaseAll marks all keys as up and drops a pending press observation.
func (s *State) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = [KeyCount]bool{}
	s.pressed = false
}

// IsDown returns whether the key is currently held down. Only the low
// nibble of key is used.
func (s *State) IsDown(key uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.down[key&0xF]
}

// LastPressed returns the last pressed key if a press was observed since
// the previous call.
func (s *State) LastPressed() (uint8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pressed {
		return 0, false
	}
	s.pressed = false
	return s.lastPressed, true
}
