// Package machine contains the CHIP-8 machine state: memory, registers,
// stack, timers and the display buffer.
package machine

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrROMTooLarge is returned when a ROM does not fit into the program space.
	ErrROMTooLarge = errors.New("rom too large")

	// ErrAddressOutOfRange is returned for memory accesses outside of 0x000-0xFFF.
	ErrAddressOutOfRange = chip8.ErrMemoryOutOfBounds
)

// State is the complete CHIP-8 machine state. It is owned by a single
// driver loop and is not safe for concurrent use.
type State struct {
	Memory  [MemorySize]byte
	Display Display

	V     [RegisterCount]byte // general purpose registers V0-VF
	Stack [StackSize]uint16   // return addresses, slot 0 is unused
	SP    uint8               // stack pointer, 0 means empty

	PC uint16 // program counter
	I  uint16 // index register

	DelayTimer byte
	SoundTimer byte
}

// New returns an initialized machine state with the font table and the
// given ROM loaded.
func New(rom []byte) (*State, error) {
	s := &State{}
	if err := s.Reset(rom); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset reinitializes the state in place: memory and registers are zeroed,
// the font is copied to FontStart, the ROM to ProgramStart and the program
// counter is set to ProgramStart. On error the state is left unchanged.
func (s *State) Reset(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceeds the maximum of %d bytes", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	*s = State{}
	copy(s.Memory[FontStart:], font[:])
	copy(s.Memory[ProgramStart:], rom)
	s.PC = ProgramStart
	return nil
}

// Flag returns the value of the flag output register VF.
func (s *State) Flag() byte {
	return s.V[FlagRegister]
}

// SetFlag sets the flag output register VF to 1 if set is true, otherwise to 0.
func (s *State) SetFlag(set bool) {
	if set {
		s.V[FlagRegister] = 1
	} else {
		s.V[FlagRegister] = 0
	}
}

// Load reads the byte at the given address.
func (s *State) Load(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: reading $%04X", ErrAddressOutOfRange, address)
	}
	return s.Memory[address], nil
}

// Store writes a byte to the given address.
func (s *State) Store(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("%w: writing $%04X", ErrAddressOutOfRange, address)
	}
	s.Memory[address] = value
	return nil
}

// LoadWord reads a big-endian 16-bit word starting at the given address.
func (s *State) LoadWord(address uint16) (uint16, error) {
	if address > LastInstructionAddress {
		return 0, fmt.Errorf("%w: reading word at $%04X", ErrAddressOutOfRange, address)
	}
	return uint16(s.Memory[address])<<8 | uint16(s.Memory[address+1]), nil
}

// CheckRange verifies that the length bytes starting at address are
// addressable.
func CheckRange(address uint16, length int) error {
	if length <= 0 {
		return nil
	}
	if int(address)+length-1 > MaxAddress {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfRange, address, length)
	}
	return nil
}
